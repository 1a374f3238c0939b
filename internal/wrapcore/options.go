// Package wrapcore implements the shared wrap engine (spec §3, §4.3): the
// character-driven state machine that reformats a byte stream into wrapped
// paragraphs, optionally Markdown-aware and optionally fed by wrapc's
// control protocol (see internal/wraprc).
//
// The engine's shape is grounded on mohae-linewrap's Wrapper/lexer pair
// (a token classifier driving a line-accumulation buffer with pending-space
// and hyphen state), generalized from mohae's three fixed comment styles to
// this package's fully configurable Options.
package wrapcore

import "regexp"

// EOLMode selects how end-of-line bytes are inferred and emitted.
type EOLMode int

// EOLMode values, per spec §3/§4.3.1.
const (
	EOLInput EOLMode = iota // infer from the first input line
	EOLUnix                 // always "\n"
	EOLWindows              // always "\r\n"
)

// IndentMode is the pending indentation to apply to the next non-whitespace
// byte emitted (spec §3, field `indent`).
type IndentMode int

// IndentMode values.
const (
	IndentNone IndentMode = iota
	IndentLine
	IndentHang
)

// Hyphen is the tri-state trailing-hyphen rejoin tracker (spec §3).
type Hyphen int

// Hyphen values.
const (
	HyphenNo Hyphen = iota
	HyphenMaybe
	HyphenYes
)

// NewlinesDelimit selects how many consecutive newlines are required before
// a paragraph break is forced; spec §3 allows 1, 2, or "infinite" (no
// newline run alone ever forces a break — only other delimiting rules do).
const NewlinesInfinite = 0

// Options holds the wrap engine's immutable configuration (spec §3).
// Zero-valued fields are not valid: use NewOptions for spec-compliant
// defaults.
type Options struct {
	// Widths.
	LineWidth int
	TabSpaces int
	EOSSpaces int

	// Indentation.
	IndentTabs   int
	IndentSpaces int
	HangTabs     int
	HangSpaces   int
	LeadTabs     int
	LeadSpaces   int
	MirrorTabs   bool
	MirrorSpaces bool

	// Delimiters.
	ParaChars       map[rune]bool
	LeadParaChars   map[rune]bool
	NewlinesDelimit int
	EOSDelimit      bool
	LeadWSDelimit   bool
	LeadDotIgnore   bool

	// Policy.
	TitleLine   bool
	Prototype   bool
	Markdown    bool
	Doxygen     bool
	NoHyphen    bool
	DataLinkEsc bool
	EOL         EOLMode

	// Strings.
	LeadString   string
	BlockRegex   *regexp.Regexp
	CommentChars string

	uriPatternOverride *regexp.Regexp
}

// WithURIPattern returns a copy of o using re in place of the package's
// default URI/email no-wrap pattern; intended for tests that need
// deterministic, narrower patterns.
func (o Options) WithURIPattern(re *regexp.Regexp) Options {
	o.uriPatternOverride = re
	return o
}

// NewOptions returns spec-compliant defaults: an 80-column line, 8-space
// tabs, 2 spaces after a sentence, no indentation, paragraphs delimited by
// two consecutive newlines, Unix EOLs on input inference.
func NewOptions() Options {
	return Options{
		LineWidth:       80,
		TabSpaces:       8,
		EOSSpaces:       2,
		NewlinesDelimit: 2,
		EOSDelimit:      false,
		EOL:             EOLInput,
	}
}
