package wrapcore

import (
	"regexp"

	"github.com/paul-j-lucas/wrap-sub000/internal/mdblock"
	"github.com/paul-j-lucas/wrap-sub000/internal/rune8"
)

// Engine is the wrap engine's per-run mutable state (spec §3), constructed
// from an immutable Options value. It is single-threaded and strictly
// sequential (spec §5): one Run call processes one byte stream start to
// finish with no suspension points other than the underlying reads/writes.
type Engine struct {
	opt Options

	// control-protocol hook (wrapc pipeline); nil for plain wrap.
	control ControlSink

	w          writer
	eol        string
	eolLocked  bool
	bomChecked bool

	leadFirst []byte
	leadHang  []byte

	consecNewlines   int
	encounteredNonWS bool
	hyphen           Hyphen
	indent           IndentMode
	isLongLine       bool
	isPreformatted   bool
	putSpaces        int
	wasEOS           bool

	out          []byte
	outWidth     int
	wrapPos      int
	wrapPosWidth int

	lineWidth  int
	leadSpaces int
	hangSpaces int

	nextLineIsTitle bool
	prevCP          rune8.Codepoint
	atLineStart     bool

	classifier *mdblock.Classifier
	mdSeq      int

	uriRe       *regexp.Regexp
	curRanges   []noWrapRange
	curRangeIdx int

	pendingLeader func()
	copyThrough   bool
}

// writer is the minimal sink the engine writes wrapped output to.
type writer interface {
	Write(p []byte) (int, error)
}

// ControlSink receives the wrapc in-band control codes the engine emits
// when Options.DataLinkEsc is set (spec §4.4.2). It is implemented by
// internal/wraprc; plain `wrap` runs with a nil ControlSink.
type ControlSink interface {
	DelimitParagraph()
	NewLeader(lineWidth int, leader []byte)
	PreformattedBegin()
	PreformattedEnd()
	WrapEnd()
}

// New constructs an Engine from opt. The returned Engine is ready for a
// single Run call; construct a fresh Engine per input stream.
func New(opt Options) *Engine {
	e := &Engine{opt: opt}
	if opt.Markdown {
		e.classifier = mdblock.New()
	}
	if u := opt.UnsafeURIPattern(); u != nil {
		e.uriRe = u
	} else {
		e.uriRe = uriPattern
	}
	e.lineWidth = opt.LineWidth
	e.leadSpaces = opt.LeadSpaces
	e.hangSpaces = opt.HangSpaces
	e.indent = IndentLine
	e.nextLineIsTitle = opt.TitleLine
	return e
}

// SetControlSink attaches the wrapc control-protocol sink used when
// Options.DataLinkEsc is set.
func (e *Engine) SetControlSink(c ControlSink) { e.control = c }

// UnsafeURIPattern allows callers (tests, wrapc) to override the compiled
// no-wrap regex; returns nil (meaning "use the package default") unless the
// Options was built with a custom pattern via WithURIPattern.
func (o Options) UnsafeURIPattern() *regexp.Regexp { return o.uriPatternOverride }
