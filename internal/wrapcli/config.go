package wrapcli

import (
	"bufio"
	"os"

	"github.com/spf13/pflag"

	"github.com/paul-j-lucas/wrap-sub000/internal/sysexit"
	"github.com/paul-j-lucas/wrap-sub000/internal/wrapconf"
)

// LoadConfig loads explicitPath if given, else the discovered config
// path; it returns (nil, nil) when no config file is configured or
// found, which is not an error (spec §6 treats the config file as
// optional).
func LoadConfig(explicitPath string) (*wrapconf.Config, error) {
	path := explicitPath
	if path == "" {
		p, ok := DiscoverConfigPath()
		if !ok {
			return nil, nil
		}
		path = p
	}
	return wrapconf.Load(path)
}

// ResolveAlias expands a config alias or file-pattern match into an argv
// prefix to reparse flags with. name is the explicit `-alias` flag value
// (if any); file is the single positional input filename (if any). The
// explicit alias wins over a pattern match.
func ResolveAlias(cfg *wrapconf.Config, name, file string) ([]string, error) {
	if cfg == nil {
		if name != "" {
			return nil, sysexit.Errorf(sysexit.Usage, "-alias requires a config file")
		}
		return nil, nil
	}
	if name != "" {
		return cfg.Resolve(name)
	}
	if file != "" {
		if argv, ok := cfg.AliasForFile(file); ok {
			return argv, nil
		}
	}
	return nil, nil
}

// Reparse re-registers a fresh flag set and parses extra (a resolved
// alias's argv) followed by the original command line again, so options
// given directly on the command line still override the alias.
func Reparse(prog string, wrapcOnly bool, extra, args []string) (*pflag.FlagSet, *Flags, error) {
	fs, v := NewFlagSet(prog, wrapcOnly)
	combined := make([]string, 0, len(extra)+len(args))
	combined = append(combined, extra...)
	combined = append(combined, args...)
	if err := fs.Parse(combined); err != nil {
		return nil, nil, sysexit.Errorf(sysexit.Usage, "%v", err)
	}
	return fs, v, nil
}

// MaybeDumpConfig implements WRAP_DUMP_CONF: if set, writes cfg's
// resolved aliases/patterns to stdout and terminates the process with OK
// (or CONFIG if no config file was found).
func MaybeDumpConfig(cfg *wrapconf.Config) {
	if !EnvTruthy("WRAP_DUMP_CONF") {
		return
	}
	if cfg == nil {
		os.Exit(int(sysexit.Config))
	}
	w := bufio.NewWriter(os.Stdout)
	if err := cfg.Dump(w); err != nil {
		os.Exit(int(sysexit.IOErr))
	}
	os.Exit(int(sysexit.OK))
}
