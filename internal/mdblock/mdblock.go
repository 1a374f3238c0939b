// Package mdblock implements the single-pass Markdown block-line
// classifier used by the wrap engine's optional Markdown mode (spec §4.2).
//
// It is block-only: no inline/span parsing is attempted, matching the
// spec's Non-goal of a full Markdown renderer. The recognition helpers
// (delimiter runs, fences, rulers, list markers, indent trimming) are
// grounded on internal/scandown's BlockStack matching helpers, reworked
// from a bufio.SplitFunc byte-window scanner into a Classify(line)-per-call
// API, since the spec wants a pure function of one line plus a small
// carried-over state record, not an arbitrary-window tokenizer.
package mdblock

// LineType classifies one source line at the block level.
type LineType int

// LineType values, per spec §4.2.
const (
	Text LineType = iota
	Blank
	ATXHeader
	SetextHeader
	Rule
	FencedCode
	IndentedCode
	HTMLBlock
	HTMLAbbrev
	LinkLabel
	FootnoteDef
	OrderedList
	UnorderedList
	DefinitionList
	Table
)

func (t LineType) String() string {
	switch t {
	case Text:
		return "Text"
	case Blank:
		return "Blank"
	case ATXHeader:
		return "ATXHeader"
	case SetextHeader:
		return "SetextHeader"
	case Rule:
		return "Rule"
	case FencedCode:
		return "FencedCode"
	case IndentedCode:
		return "IndentedCode"
	case HTMLBlock:
		return "HTMLBlock"
	case HTMLAbbrev:
		return "HTMLAbbrev"
	case LinkLabel:
		return "LinkLabel"
	case FootnoteDef:
		return "FootnoteDef"
	case OrderedList:
		return "OrderedList"
	case UnorderedList:
		return "UnorderedList"
	case DefinitionList:
		return "DefinitionList"
	case Table:
		return "Table"
	default:
		return "InvalidLineType"
	}
}

// State is the per-line classification record returned by Classify.
type State struct {
	Type LineType

	// Sequence increases whenever the active list identity changes: a
	// switch between ordered and unordered, or, within an ordered list, a
	// change of marker character (e.g. "1." followed by "1)").
	Sequence int

	// NestingDepth is the depth of the open list/quote container stack.
	NestingDepth int

	// LeftIndent is the column at which content begins.
	LeftIndent int

	// HangIndent is the extra indent applied to continuation lines of a
	// list item, in Markdown's 4-column tab model (independent of the
	// host's configured tab_spaces).
	HangIndent int

	// OrderedMarkerChar is '.' or ')' for OrderedList lines, else 0.
	OrderedMarkerChar byte

	// OrderedNumber is the parsed ordinal for OrderedList lines.
	OrderedNumber int

	// FootnoteHasInlineText reports whether a FootnoteDef marker line
	// carries text after the marker on the same line.
	FootnoteHasInlineText bool
}

const mdTabWidth = 4 // Markdown's own indent unit, independent of the host's tab_spaces.

// frame is one open container on the classifier's depth stack.
type frame struct {
	listOrdered bool
	markerChar  byte // '.', ')', '-', '*', '+'
	indent      int  // column the marker itself started at
	width       int  // marker + trailing-space width
}

// Classifier holds the state a Classify call needs from the lines seen so
// far: the open-container stack, the active fence (if inside one), and
// whether the previous non-blank line was plain text (for Setext lookback).
type Classifier struct {
	stack       []frame
	seq         int
	inFence     bool
	fenceDelim  byte
	fenceWidth  int
	fenceIndent int
	prevWasText bool
	prevLine    string
}

// New returns a Classifier ready to classify the first line of a document.
func New() *Classifier { return &Classifier{} }

// Reset clears all carried-over state, as if New had been called.
func (c *Classifier) Reset() { *c = Classifier{} }

// Classify classifies one line (without its trailing newline) and updates
// the classifier's carried-over state accordingly.
func (c *Classifier) Classify(line []byte) State {
	defer func() { c.prevLine = string(line) }()

	if c.inFence {
		if delim, width, tail := fence(line, c.fenceWidth, c.fenceDelim); delim != 0 && len(trimSpace(tail)) == 0 && width >= c.fenceWidth {
			c.inFence = false
			c.prevWasText = false
			return State{Type: FencedCode, NestingDepth: len(c.stack), LeftIndent: c.fenceIndent}
		}
		c.prevWasText = false
		return State{Type: FencedCode, NestingDepth: len(c.stack), LeftIndent: c.fenceIndent}
	}

	indent, tail := trimIndent(line, 0, 4)
	if indent >= 4 && len(trimSpace(tail)) > 0 {
		c.prevWasText = false
		return State{Type: IndentedCode, NestingDepth: len(c.stack), LeftIndent: indent}
	}

	if len(trimSpace(tail)) == 0 {
		c.prevWasText = false
		return State{Type: Blank, NestingDepth: len(c.stack)}
	}

	if delim, width, rest := fence(tail, 3, '`', '~'); delim != 0 && len(trimSpace(rest)) >= 0 {
		c.inFence = true
		c.fenceDelim = delim
		c.fenceWidth = width
		c.fenceIndent = indent
		c.prevWasText = false
		return State{Type: FencedCode, NestingDepth: len(c.stack), LeftIndent: indent}
	}

	if delim, width, _ := ruler(tail, '-', '_', '*'); delim != 0 {
		if delim == '-' && c.prevWasText && len(c.prevLine) > 0 {
			c.prevWasText = false
			return State{Type: SetextHeader, NestingDepth: len(c.stack), LeftIndent: indent, OrderedNumber: 2}
		}
		c.prevWasText = false
		return State{Type: Rule, NestingDepth: len(c.stack), LeftIndent: indent, OrderedNumber: width}
	}
	if delim, level, _ := delimiter(tail, 6, '#'); delim != 0 {
		c.prevWasText = false
		return State{Type: ATXHeader, NestingDepth: len(c.stack), LeftIndent: indent, OrderedNumber: level}
	}
	if c.prevWasText && isSetextUnderline(tail, '=') {
		c.prevWasText = false
		return State{Type: SetextHeader, NestingDepth: len(c.stack), LeftIndent: indent, OrderedNumber: 1}
	}

	if isHTMLBlockStart(tail) {
		c.prevWasText = false
		return State{Type: HTMLBlock, NestingDepth: len(c.stack), LeftIndent: indent}
	}
	if isHTMLAbbrev(tail) {
		c.prevWasText = false
		return State{Type: HTMLAbbrev, NestingDepth: len(c.stack), LeftIndent: indent}
	}
	if isLinkLabel(tail) {
		c.prevWasText = false
		return State{Type: LinkLabel, NestingDepth: len(c.stack), LeftIndent: indent}
	}
	if hasInline, ok := footnoteDef(tail); ok {
		c.prevWasText = false
		return State{Type: FootnoteDef, NestingDepth: len(c.stack), LeftIndent: indent, FootnoteHasInlineText: hasInline}
	}

	if delim, width, num, cont := orderedListMarker(tail); delim != 0 {
		width += indent
		c.pushList(true, delim, indent, width)
		c.prevWasText = false
		_ = cont
		return State{
			Type:              OrderedList,
			Sequence:          c.seq,
			NestingDepth:      len(c.stack),
			LeftIndent:        width,
			HangIndent:        width,
			OrderedMarkerChar: delim,
			OrderedNumber:     num,
		}
	}
	if delim, width, _ := unorderedListMarker(tail); delim != 0 {
		width += indent
		c.pushList(false, delim, indent, width)
		c.prevWasText = false
		return State{
			Type:         UnorderedList,
			Sequence:     c.seq,
			NestingDepth: len(c.stack),
			LeftIndent:   width,
			HangIndent:   width,
		}
	}
	if isDefinitionList(tail) {
		c.prevWasText = false
		return State{Type: DefinitionList, NestingDepth: len(c.stack), LeftIndent: indent + 2, HangIndent: indent + 2}
	}
	if hasTableBar(tail) {
		c.prevWasText = false
		return State{Type: Table, NestingDepth: len(c.stack), LeftIndent: indent}
	}

	c.prevWasText = true
	depth := len(c.stack)
	left, hang := indent, indent
	if depth > 0 {
		top := c.stack[depth-1]
		left, hang = top.width, top.width
	}
	return State{Type: Text, NestingDepth: depth, LeftIndent: left, HangIndent: hang}
}

// pushList updates the container stack for a (possibly new) list item,
// bumping Sequence whenever the list's identity changes.
func (c *Classifier) pushList(ordered bool, delim byte, indent, width int) {
	if len(c.stack) == 0 {
		c.seq++
		c.stack = append(c.stack, frame{listOrdered: ordered, markerChar: delim, indent: indent, width: width})
		return
	}
	top := &c.stack[len(c.stack)-1]
	if top.listOrdered != ordered || (ordered && top.markerChar != delim) {
		c.seq++
		*top = frame{listOrdered: ordered, markerChar: delim, indent: indent, width: width}
		return
	}
	top.indent, top.width, top.markerChar = indent, width, delim
}
