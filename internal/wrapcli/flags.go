// Package wrapcli holds the flag surface, environment-variable handling,
// and I/O plumbing shared by cmd/wrap and cmd/wrapc (spec §6/§7), so
// neither binary re-derives the other's option parsing.
//
// Grounded on cmd/soc/main.go's logState pattern (a package-level
// collaborator configured once at startup) for the env-var/debug-wait
// handling, generalized from "always write to stderr" to "read a handful
// of WRAP_* toggles".
package wrapcli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/paul-j-lucas/wrap-sub000/internal/sysexit"
	"github.com/paul-j-lucas/wrap-sub000/internal/wrapcore"
)

// Flags holds every option flag value, bound by NewFlagSet. Re-parsing
// after a config alias expands into an earlier argv reuses a fresh Flags
// value (flag state does not survive a second Parse cleanly otherwise).
type Flags struct {
	Width     int
	TabSpaces int
	EOSSpaces int

	IndentTabs   int
	IndentSpaces int
	HangTabs     int
	HangSpaces   int
	LeadTabs     int
	LeadSpaces   int
	MirrorTabs   bool
	MirrorSpaces bool

	ParaChars       string
	LeadParaChars   string
	NewlinesDelimit int
	EOSDelimit      bool
	LeadWSDelimit   bool
	LeadDotIgnore   bool

	TitleLine    bool
	Prototype    bool
	Markdown     bool
	Doxygen      bool
	NoHyphen     bool
	EOL          string
	LeadString   string
	BlockRegex   string
	CommentChars string

	Output string
	Alias  string
	Config string
}

// NewFlagSet registers every option in §3/§6 onto a fresh pflag.FlagSet
// bound to a fresh Flags, for name (the program's argv[0] basename).
// wrapcOnly adds the flags only wrapc's reader consults.
func NewFlagSet(name string, wrapcOnly bool) (*pflag.FlagSet, *Flags) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	v := &Flags{}

	fs.IntVarP(&v.Width, "width", "w", 80, "maximum output line width")
	fs.IntVar(&v.TabSpaces, "tab-spaces", 8, "display width of a tab")
	fs.IntVar(&v.EOSSpaces, "eos-spaces", 2, "spaces inserted after end-of-sentence punctuation")

	fs.IntVar(&v.IndentTabs, "indent-tabs", 0, "tabs prefixed to every paragraph's first line")
	fs.IntVar(&v.IndentSpaces, "indent-spaces", 0, "spaces prefixed to every paragraph's first line")
	fs.IntVar(&v.HangTabs, "hang-tabs", 0, "tabs prefixed to a paragraph's continuation lines")
	fs.IntVar(&v.HangSpaces, "hang-spaces", 0, "spaces prefixed to a paragraph's continuation lines")
	fs.IntVar(&v.LeadTabs, "lead-tabs", 0, "tabs prefixed to every output line")
	fs.IntVar(&v.LeadSpaces, "lead-spaces", 0, "spaces prefixed to every output line")
	fs.BoolVar(&v.MirrorTabs, "mirror-tabs", false, "hang tabs mirror lead tabs")
	fs.BoolVar(&v.MirrorSpaces, "mirror-spaces", false, "hang spaces mirror lead spaces")

	fs.StringVar(&v.ParaChars, "para-chars", "", "characters that force a paragraph break when followed by a space or tab")
	fs.StringVar(&v.LeadParaChars, "lead-para-chars", "", "characters that after the lead force a paragraph break (stored in Options; the wrap engine does not consult it)")
	fs.IntVar(&v.NewlinesDelimit, "newlines-delimit", 2, "consecutive newlines that force a paragraph break (0 = never)")
	fs.BoolVar(&v.EOSDelimit, "eos-delimit", false, "end-of-sentence punctuation forces a paragraph break")
	fs.BoolVar(&v.LeadWSDelimit, "lead-ws-delimit", false, "leading whitespace on a line forces a paragraph break")
	fs.BoolVar(&v.LeadDotIgnore, "lead-dot-ignore", false, "pass lines beginning with '.' through verbatim (*roff requests)")

	fs.BoolVarP(&v.TitleLine, "title-line", "t", false, "treat the first line as an unwrapped title")
	fs.BoolVarP(&v.Prototype, "prototype", "p", false, "derive the lead from the first line's own leading whitespace")
	fs.BoolVarP(&v.Markdown, "markdown", "m", false, "enable Markdown-aware wrapping")
	fs.BoolVar(&v.Doxygen, "doxygen", false, "recognize Doxygen command lines as Markdown-adjacent (stored in Options; the wrap engine does not consult it)")
	fs.BoolVar(&v.NoHyphen, "no-hyphen", false, "never rejoin a hyphenated line break")
	fs.StringVar(&v.EOL, "eol", "input", "end-of-line mode: input, unix, or windows")
	fs.StringVar(&v.LeadString, "lead-string", "", "literal string used as the lead in place of the first line's leading whitespace (with --prototype)")
	fs.StringVar(&v.BlockRegex, "block-regex", "", "lines matching this regex pass through verbatim")

	fs.StringVarP(&v.Output, "output", "o", "", "write output to FILE instead of stdout")
	fs.StringVar(&v.Alias, "alias", "", "expand a config [ALIASES] entry in place of flags")
	fs.StringVar(&v.Config, "config", "", "path to the [ALIASES]/[PATTERNS] config file")

	if wrapcOnly {
		fs.StringVarP(&v.CommentChars, "comment-chars", "c", "", "comment characters the reader recognizes")
	}

	return fs, v
}

// BuildOptions converts parsed Flags into a wrapcore.Options, reporting
// usage errors for invalid values (spec §7).
func (v *Flags) BuildOptions() (wrapcore.Options, error) {
	if v.Width < 1 {
		return wrapcore.Options{}, sysexit.Errorf(sysexit.Usage, "line width must be positive, got %d", v.Width)
	}
	if v.NewlinesDelimit < 0 {
		return wrapcore.Options{}, sysexit.Errorf(sysexit.Usage, "newlines-delimit must be >= 0, got %d", v.NewlinesDelimit)
	}

	eol, err := parseEOL(v.EOL)
	if err != nil {
		return wrapcore.Options{}, err
	}

	var blockRe *regexp.Regexp
	if v.BlockRegex != "" {
		re, err := regexp.Compile(v.BlockRegex)
		if err != nil {
			return wrapcore.Options{}, sysexit.Errorf(sysexit.Usage, "invalid block-regex: %v", err)
		}
		blockRe = re
	}

	return wrapcore.Options{
		LineWidth:       v.Width,
		TabSpaces:       v.TabSpaces,
		EOSSpaces:       v.EOSSpaces,
		IndentTabs:      v.IndentTabs,
		IndentSpaces:    v.IndentSpaces,
		HangTabs:        v.HangTabs,
		HangSpaces:      v.HangSpaces,
		LeadTabs:        v.LeadTabs,
		LeadSpaces:      v.LeadSpaces,
		MirrorTabs:      v.MirrorTabs,
		MirrorSpaces:    v.MirrorSpaces,
		ParaChars:       charSet(v.ParaChars),
		LeadParaChars:   charSet(v.LeadParaChars),
		NewlinesDelimit: v.NewlinesDelimit,
		EOSDelimit:      v.EOSDelimit,
		LeadWSDelimit:   v.LeadWSDelimit,
		LeadDotIgnore:   v.LeadDotIgnore,
		TitleLine:       v.TitleLine,
		Prototype:       v.Prototype,
		Markdown:        v.Markdown,
		Doxygen:         v.Doxygen,
		NoHyphen:        v.NoHyphen,
		EOL:             eol,
		LeadString:      v.LeadString,
		BlockRegex:      blockRe,
		CommentChars:    v.CommentChars,
	}, nil
}

func parseEOL(s string) (wrapcore.EOLMode, error) {
	switch strings.ToLower(s) {
	case "", "input":
		return wrapcore.EOLInput, nil
	case "unix":
		return wrapcore.EOLUnix, nil
	case "windows", "dos":
		return wrapcore.EOLWindows, nil
	default:
		return 0, sysexit.Errorf(sysexit.Usage, "invalid eol mode %q (want input, unix, or windows)", s)
	}
}

func charSet(s string) map[rune]bool {
	if s == "" {
		return nil
	}
	m := make(map[rune]bool, len(s))
	for _, r := range s {
		m[r] = true
	}
	return m
}

// EnvTruthy reports whether the named environment variable is set to a
// conventionally "true" value (spec §6's WRAP_DEBUG/WRAP_DUMP_* toggles).
func EnvTruthy(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

// WaitForDebugger blocks on SIGCONT when WRAP_DEBUG is truthy, giving an
// operator time to attach a debugger to this process before it runs
// (spec §6).
func WaitForDebugger(prog string) {
	if !EnvTruthy("WRAP_DEBUG") {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: waiting for SIGCONT to attach a debugger (pid %d)\n", prog, os.Getpid())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGCONT)
	<-ch
	signal.Stop(ch)
}
