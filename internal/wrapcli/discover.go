package wrapcli

import (
	"os"
	"path/filepath"

	"github.com/paul-j-lucas/wrap-sub000/internal/socutil"
)

// DiscoverConfigPath is the injectable collaborator that locates the
// config file cmd/wrap and cmd/wrapc read `[ALIASES]`/`[PATTERNS]` from
// (spec §9): the first of a `.wraprc` found by walking up from the
// working directory, `$XDG_CONFIG_HOME/wrap/wraprc`
// (`~/.config/wrap/wraprc` if unset), or `/etc/xdg/wrap/wraprc` that
// exists. Replaceable outright by tests or an alternate front end that
// wants a fixed path instead of re-deriving this precedence.
var DiscoverConfigPath = defaultDiscoverConfigPath

func defaultDiscoverConfigPath() (string, bool) {
	if info, path, err := socutil.FindWDFile(".wraprc"); err == nil && info != nil {
		return path, true
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		p := filepath.Join(xdg, "wrap", "wraprc")
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", "wrap", "wraprc")
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}

	const systemPath = "/etc/xdg/wrap/wraprc"
	if _, err := os.Stat(systemPath); err == nil {
		return systemPath, true
	}
	return "", false
}
