// Package wrapconf reads the `[ALIASES]`/`[PATTERNS]` configuration file
// shared by cmd/wrap and cmd/wrapc (spec §6/§9), and resolves a filename or
// an explicit `@alias` reference into an argv the flag parser can consume
// as if it had been typed on the command line.
//
// The file format itself (`[section]` headers, `name = value`, `#`
// comments) is parsed by gopkg.in/ini.v1, grounded on the rest of the
// retrieval pack's preference for a real config-file library over a
// hand-rolled line scanner. The shell-like quoting *within* an alias's
// value, and the resulting argv-quoting helpers, are grounded on
// internal/socutil/args.go's ScanArgs/QuotedArgs, adapted from "tokenize an
// arbitrary arg string" to "tokenize and expand one alias's @-references".
package wrapconf

import (
	"bufio"
	"fmt"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/paul-j-lucas/wrap-sub000/internal/socutil"
	"github.com/paul-j-lucas/wrap-sub000/internal/sysexit"
)

// Config is a parsed `[ALIASES]`/`[PATTERNS]` file.
type Config struct {
	aliases  map[string][]string
	patterns []pattern
}

type pattern struct {
	glob  string
	alias string
}

var loadOpts = ini.LoadOptions{IgnoreInlineComment: true}

// Load parses the config file at path.
func Load(path string) (*Config, error) {
	f, err := ini.LoadSources(loadOpts, path)
	if err != nil {
		return nil, sysexit.Wrap(sysexit.Config, err)
	}
	return fromINI(f)
}

// Parse parses config file content already in memory, used by tests and by
// WRAP_DUMP_CONF-style debug tooling that wants to validate a buffer before
// writing it to disk.
func Parse(data []byte) (*Config, error) {
	f, err := ini.LoadSources(loadOpts, data)
	if err != nil {
		return nil, sysexit.Wrap(sysexit.Config, err)
	}
	return fromINI(f)
}

func fromINI(f *ini.File) (*Config, error) {
	c := &Config{aliases: map[string][]string{}}

	if sec, err := f.GetSection("ALIASES"); err == nil {
		for _, key := range sec.Keys() {
			argv, err := socutil.Tokenize(key.Value())
			if err != nil {
				return nil, sysexit.Errorf(sysexit.Config, "alias %q: %v", key.Name(), err)
			}
			c.aliases[key.Name()] = argv
		}
	}

	if sec, err := f.GetSection("PATTERNS"); err == nil {
		for _, key := range sec.Keys() {
			c.patterns = append(c.patterns, pattern{glob: key.Name(), alias: key.Value()})
		}
	}

	for _, name := range f.SectionStrings() {
		if name != ini.DefaultSection && name != "ALIASES" && name != "PATTERNS" {
			return nil, sysexit.Errorf(sysexit.Config, "unknown config section %q", name)
		}
	}
	if def := f.Section(ini.DefaultSection); def != nil && len(def.Keys()) > 0 {
		return nil, sysexit.Errorf(sysexit.Config, "config line %q outside any section", def.Keys()[0].Name())
	}

	for name := range c.aliases {
		if _, err := c.Resolve(name); err != nil {
			return nil, err
		}
	}
	for _, p := range c.patterns {
		if _, err := c.Resolve(p.alias); err != nil {
			return nil, sysexit.Errorf(sysexit.Config, "pattern %q: %v", p.glob, err)
		}
	}

	return c, nil
}

// Resolve expands alias name into a flat argv, recursively expanding any
// leading `@other` reference within the alias's own argv, and failing on a
// reference cycle (spec §9, "Cyclic reference... broken by making
// pattern.alias a borrow of the alias array").
func (c *Config) Resolve(name string) ([]string, error) {
	return c.resolve(name, make(map[string]bool))
}

func (c *Config) resolve(name string, seen map[string]bool) ([]string, error) {
	if seen[name] {
		return nil, sysexit.Errorf(sysexit.Config, "cyclic alias reference involving %q", name)
	}
	seen[name] = true
	defer delete(seen, name)

	argv, ok := c.aliases[name]
	if !ok {
		return nil, sysexit.Errorf(sysexit.Config, "undefined alias %q", name)
	}

	var out []string
	for _, a := range argv {
		if len(a) > 1 && a[0] == '@' {
			expanded, err := c.resolve(a[1:], seen)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// AliasForFile returns the argv of the first [PATTERNS] entry whose glob
// matches name, in file order, or (nil, false) if none match. Pattern
// aliases are validated at Load/Parse time, so Resolve here cannot fail.
func (c *Config) AliasForFile(name string) ([]string, bool) {
	base := filepath.Base(name)
	for _, p := range c.patterns {
		if ok, _ := filepath.Match(p.glob, base); ok {
			argv, _ := c.Resolve(p.alias)
			return argv, true
		}
	}
	return nil, false
}

// AliasNames returns every defined alias name, for WRAP_DUMP_CONF.
func (c *Config) AliasNames() []string {
	names := make([]string, 0, len(c.aliases))
	for name := range c.aliases {
		names = append(names, name)
	}
	return names
}

// Dump writes a human-readable rendering of every alias and pattern,
// resolved, for the WRAP_DUMP_CONF debug environment variable (spec §6).
func (c *Config) Dump(w *bufio.Writer) error {
	for name := range c.aliases {
		argv, err := c.Resolve(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %s\n", name, socutil.QuotedArgs(argv))
	}
	for _, p := range c.patterns {
		fmt.Fprintf(w, "%s = %s\n", p.glob, p.alias)
	}
	return w.Flush()
}
