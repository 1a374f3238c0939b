package wrapcore

import (
	"bytes"

	"github.com/paul-j-lucas/wrap-sub000/internal/rune8"
)

// consumeLine dispatches one raw input line (including its trailing EOL
// bytes, if any) through the Markdown classifier (spec §4.3.4) and the
// lead-dot-ignore / block_regex checks (spec §4.3.2 step 6), then feeds
// whatever remains through the per-codepoint core loop.
func (e *Engine) consumeLine(line []byte) error {
	if e.isPreformatted {
		return e.flushVerbatim(line)
	}

	raw := trimEOLBytes(line)

	if e.opt.LeadDotIgnore && len(raw) > 0 && raw[0] == '.' {
		return e.flushVerbatim(line)
	}

	if e.opt.Markdown {
		st := e.classifier.Classify(raw)
		if isVerbatimLineType(st.Type) {
			return e.flushVerbatim(line)
		}
		e.applyMarkdownState(st)
	}

	if e.opt.BlockRegex != nil && e.opt.BlockRegex.Match(raw) {
		if e.classifier != nil {
			e.classifier.Reset()
			e.mdSeq = 0
		}
		return e.flushVerbatim(line)
	}

	return e.feedLine(line)
}

// trimEOLBytes strips a trailing "\n" and, if present, the "\r" before it.
func trimEOLBytes(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return line
}

// feedLine decodes and processes every codepoint of one raw line, in order,
// through the core-loop state machine (spec §4.3.2).
func (e *Engine) feedLine(line []byte) error {
	e.curRanges = computeNoWrapRanges(e.uriRe, trimEOLBytes(line))
	e.curRangeIdx = 0

	pos := 0
	for pos < len(line) {
		cp, n := rune8.Decode(line[pos:])
		noWrap := inNoWrapRange(e.curRanges, &e.curRangeIdx, pos)
		if err := e.step(cp, noWrap); err != nil {
			return err
		}
		pos += n
	}
	return nil
}

// step processes one decoded codepoint through core-loop steps 1-11.
func (e *Engine) step(cp rune8.Codepoint, noWrap bool) error {
	// Step 1: strip BOM/invalid.
	if cp == rune8.Invalid || cp == 0xFEFF {
		return nil
	}

	// Step 2: discard \r.
	if cp == '\r' {
		return nil
	}

	atLineStart := e.prevCP == '\n' || e.prevCP == 0

	switch {
	case cp == '\n':
		e.onNewline()
		e.prevCP = cp
		return nil

	case rune8.IsSpace(cp) || cp == '\t':
		e.onSpace(cp)

	case rune8.IsControl(cp):
		// step 5: discard.

	default:
		if atLineStart && e.hyphen == HyphenMaybe && !rune8.IsHyphenAdjacent(cp) {
			// step 6: undo a pending cross-line rejoin.
			e.hyphen = HyphenNo
			e.putSpaces = 1
		}
		e.onText(cp, noWrap)
	}

	e.consecNewlines = 0
	e.prevCP = cp
	return nil
}

// onNewline implements core-loop step 3.
func (e *Engine) onNewline() {
	e.encounteredNonWS = false
	e.consecNewlines++

	if e.opt.NewlinesDelimit != NewlinesInfinite && e.consecNewlines >= e.opt.NewlinesDelimit {
		if e.opt.TitleLine {
			e.nextLineIsTitle = true
		}
		e.delimitParagraph()
		return
	}
	if len(e.out) > 0 && e.nextLineIsTitle {
		e.emitTitleLine()
		e.indent = IndentHang
		e.nextLineIsTitle = false
		return
	}
	if e.wasEOS {
		if e.opt.EOSDelimit {
			e.delimitParagraph()
		} else {
			e.putSpaces = e.opt.EOSSpaces
		}
		return
	}
	if e.hyphen == HyphenMaybe {
		// Swallow the newline: trailing-hyphen rejoin.
		return
	}

	// Otherwise a single embedded newline is just whitespace between two
	// words on either side of it.
	if e.putSpaces < 1 {
		e.putSpaces = 1
	}
}

// onSpace implements core-loop step 4.
func (e *Engine) onSpace(cp rune8.Codepoint) {
	switch {
	case e.isLongLine,
		(e.opt.LeadWSDelimit && e.prevCP == '\n'),
		(e.opt.EOSDelimit && e.wasEOS),
		e.opt.ParaChars[rune(e.prevCP)]:
		e.delimitParagraph()
	case e.hyphen == HyphenMaybe && !e.encounteredNonWS:
		// Swallow: rejoin after a cross-line hyphen with no content yet.
	case len(e.out) > 0:
		want := 1
		if e.wasEOS {
			want = e.opt.EOSSpaces
		}
		if want > e.putSpaces {
			e.putSpaces = want
		}
	}
}

// onText implements core-loop steps 7-11 for a non-whitespace, non-control
// codepoint.
func (e *Engine) onText(cp rune8.Codepoint, noWrap bool) {
	// Step 7: update was_eos.
	switch {
	case rune8.IsEOS(cp):
		e.wasEOS = true
	case rune8.IsEOSExt(cp) && e.wasEOS:
		// stays true
	default:
		e.wasEOS = false
	}

	// Step 8: flush pending spaces.
	e.flushPutSpaces()

	// Step 9: apply pending indent once.
	e.applyIndent()

	// Step 10: emit the codepoint's UTF-8 bytes.
	e.encounteredNonWS = true
	e.emitCodepoint(cp, noWrap)

	// Step 11: width check / wrap.
	e.checkWidth()
}

func (e *Engine) flushPutSpaces() {
	if e.putSpaces <= 0 {
		return
	}
	n := e.putSpaces
	e.putSpaces = 0
	if len(e.out) == 0 {
		return // never emit leading whitespace inside line content
	}
	e.wrapPos = len(e.out)
	e.wrapPosWidth = e.outWidth
	for i := 0; i < n; i++ {
		e.out = append(e.out, ' ')
	}
	e.outWidth += n
}

// applyIndent is a no-op placeholder for core-loop step 9: this engine
// defers writing lead/hang bytes until a buffered line is actually flushed
// (see leadFor), rather than materializing them into out up front, so
// there is nothing to apply yet when the first non-whitespace byte of a
// line arrives.
func (e *Engine) applyIndent() {}

// emitCodepoint appends cp's UTF-8 bytes to the output buffer and advances
// the hyphen tri-state machine (spec §4.3.2 step 10).
func (e *Engine) emitCodepoint(cp rune8.Codepoint, noWrap bool) {
	var tmp [rune8.MaxLen]byte
	n := encodeUTF8(tmp[:], cp)
	e.out = append(e.out, tmp[:n]...)
	e.outWidth++

	if e.opt.NoHyphen || noWrap {
		e.hyphen = HyphenNo
		return
	}

	isHyphen := rune8.IsHyphen(cp)
	switch e.hyphen {
	case HyphenMaybe:
		if isHyphen {
			// still possibly hyphenated, e.g. "--"
			return
		}
		if rune8.IsHyphenAdjacent(cp) {
			e.hyphen = HyphenYes
			return
		}
		e.hyphen = HyphenNo
	case HyphenYes, HyphenNo:
		if isHyphen && rune8.IsHyphenAdjacent(e.prevCP) {
			// The wrap point is right after the hyphen itself (already
			// appended above), not after whatever follows it: "well-known"
			// wraps to "well-" / "known", never "well-k" / "nown".
			e.hyphen = HyphenMaybe
			e.wrapPos = len(e.out)
			e.wrapPosWidth = e.outWidth
		} else if !isHyphen {
			e.hyphen = HyphenNo
		}
	}
}

// checkWidth implements core-loop step 11.
func (e *Engine) checkWidth() {
	if e.outWidth < e.lineWidth {
		return
	}
	if e.wrapPos == 0 {
		// No wrap point yet: long-line mode, emit without EOL and keep going.
		e.emitLongLine()
		e.isLongLine = true
		return
	}
	e.wrapAtPos()
}

// emitLongLine implements spec §4.3.2 step 11's no-wrap-point branch and
// invariant 1's long-line exception.
func (e *Engine) emitLongLine() {
	if !e.isLongLine {
		e.write(e.leadFor(e.indent, false))
	}
	e.write(e.out)
	e.out = e.out[:0]
	e.outWidth = 0
	e.wrapPos = 0
	e.wrapPosWidth = 0
}

// wrapAtPos implements step 11's wrap-point branch: emit up to wrap_pos
// with an EOL, then slide the remainder left, skipping embedded whitespace.
func (e *Engine) wrapAtPos() {
	head := e.out[:e.wrapPos]
	lead := e.leadFor(e.indent, len(bytes.TrimSpace(head)) == 0)
	e.write(lead)
	e.write(bytes.TrimRight(head, " \t"))
	e.write([]byte(e.eol))

	rest := e.out[e.wrapPos:]
	for len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
		rest = rest[1:]
	}
	e.out = append(e.out[:0], rest...)
	e.outWidth = runeWidth(e.out)
	e.wrapPos = 0
	e.wrapPosWidth = 0
	e.isLongLine = false
	e.indent = IndentHang
	e.hyphen = HyphenNo
}

func runeWidth(b []byte) int {
	n := 0
	for pos := 0; pos < len(b); {
		_, m := rune8.Decode(b[pos:])
		if m == 0 {
			m = 1
		}
		pos += m
		n++
	}
	return n
}

// emitTitleLine implements the spec's title-line handling: the
// accumulated buffer (the first line of a paragraph) is emitted alone,
// and continuation lines switch to hang indentation.
func (e *Engine) emitTitleLine() {
	lead := e.leadFor(e.indent, false)
	e.write(lead)
	e.write(bytes.TrimRight(e.out, " \t"))
	e.write([]byte(e.eol))
	e.out = e.out[:0]
	e.outWidth = 0
	e.wrapPos = 0
	e.wrapPosWidth = 0
}

// delimitParagraph flushes any buffered line, emits a blank line when the
// newline run warrants one, and resets per-paragraph state (spec §4.3.2,
// "Paragraph delimitation").
func (e *Engine) delimitParagraph() {
	if len(e.out) > 0 {
		lead := e.leadFor(e.indent, false)
		e.write(lead)
		e.write(bytes.TrimRight(e.out, " \t"))
		e.write([]byte(e.eol))
	} else if e.isLongLine {
		e.write([]byte(e.eol))
	}
	e.out = e.out[:0]
	e.outWidth = 0
	e.wrapPos = 0
	e.wrapPosWidth = 0
	e.isLongLine = false

	e.encounteredNonWS = false
	e.hyphen = HyphenNo
	e.putSpaces = 0
	e.wasEOS = false
	if e.opt.Markdown {
		e.indent = IndentNone
	} else {
		e.indent = IndentLine
	}

	if e.control != nil {
		e.control.DelimitParagraph()
	}

	if e.pendingLeader != nil {
		e.pendingLeader()
		e.pendingLeader = nil
	}

	blank := e.consecNewlines == 2 || (e.consecNewlines > 2 && e.opt.NewlinesDelimit == 1)
	if blank {
		e.write(e.leadFor(IndentLine, true))
		e.write([]byte(e.eol))
	}
}

// flushVerbatim flushes any buffered paragraph text, then writes line
// (with its original EOL, re-synthesized per the locked EOL mode) prefixed
// by the current lead, unwrapped (spec §4.3.4's verbatim line classes).
func (e *Engine) flushVerbatim(line []byte) error {
	e.delimitParagraph()
	raw := trimEOLBytes(line)
	lead := e.leadFor(IndentLine, len(bytes.TrimSpace(raw)) == 0)
	e.write(lead)
	e.write(raw)
	e.write([]byte(e.eol))
	e.consecNewlines = 0
	return nil
}

// finish flushes any remaining buffered content at end of input.
func (e *Engine) finish() error {
	if len(e.out) > 0 || e.isLongLine {
		e.delimitParagraph()
	}
	return nil
}

func (e *Engine) write(p []byte) {
	if len(p) == 0 {
		return
	}
	_, _ = e.w.Write(p)
}

// encodeUTF8 writes cp's canonical UTF-8 encoding into dst and returns the
// length written.
func encodeUTF8(dst []byte, cp rune8.Codepoint) int {
	r := rune(cp)
	switch {
	case r < 0:
		return 0
	case r <= 0x7F:
		dst[0] = byte(r)
		return 1
	case r <= 0x7FF:
		dst[0] = 0xC0 | byte(r>>6)
		dst[1] = 0x80 | byte(r&0x3F)
		return 2
	case r <= 0xFFFF:
		dst[0] = 0xE0 | byte(r>>12)
		dst[1] = 0x80 | byte((r>>6)&0x3F)
		dst[2] = 0x80 | byte(r&0x3F)
		return 3
	default:
		dst[0] = 0xF0 | byte(r>>18)
		dst[1] = 0x80 | byte((r>>12)&0x3F)
		dst[2] = 0x80 | byte((r>>6)&0x3F)
		dst[3] = 0x80 | byte(r&0x3F)
		return 4
	}
}
