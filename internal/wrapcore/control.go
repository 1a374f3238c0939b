package wrapcore

import "bytes"

// DLE is the control-escape byte the wrapc reader stage uses to embed
// out-of-band control lines in the byte stream it feeds the wrap engine
// (spec §4.4.2). A control line is exactly DLE followed by one code byte,
// optionally followed by a payload and a trailing "\n".
const DLE = 0x10

// Control codes recognized on a DLE-prefixed input line. Values are this
// module's own wire format between internal/wraprc's reader stage and this
// package; the spec leaves the encoding unspecified beyond "one code byte".
const (
	CtrlDelimitParagraph byte = iota + 1
	CtrlNewLeader
	CtrlPreformattedBegin
	CtrlPreformattedEnd
	CtrlWrapEnd
)

// isControlLine reports whether line is a DLE-escaped control line and, if
// so, its code byte and payload (the bytes after the code byte, with any
// trailing "\n" stripped).
func isControlLine(line []byte) (code byte, payload []byte, ok bool) {
	if len(line) < 2 || line[0] != DLE {
		return 0, nil, false
	}
	rest := bytes.TrimSuffix(line[2:], []byte("\n"))
	return line[1], rest, true
}

// handleControlLine applies the local effect of a DLE control line (spec
// §4.4.2) and forwards the same control code to dst for the downstream
// framer, unless the engine has no ControlSink attached (plain `wrap`
// never sees control lines, since data_link_esc is wrapc-only).
//
// NEW_LEADER is deferred until the current output line is flushed: if a
// paragraph is mid-buffer, the new leader is recorded and applied only
// once that buffer is next delimited, so the framer still receives it
// between lines rather than in the middle of one (spec §4.4.2).
func (e *Engine) handleControlLine(code byte, payload []byte) error {
	switch code {
	case CtrlDelimitParagraph:
		e.delimitParagraph()

	case CtrlNewLeader:
		// The leader text itself is reinserted downstream by the framer
		// (spec §4.4.3); the engine only tracks the new effective width
		// for its own wrapping, since the body text it receives has
		// already had its leader stripped by the reader. The forwarded
		// notification to the framer is deferred along with the width
		// change, so the framer never switches leaders mid-line.
		width, leader, ok := parseNewLeaderPayload(payload)
		if !ok {
			return nil
		}
		apply := func() {
			e.lineWidth = width
			if e.control != nil {
				e.control.NewLeader(width, leader)
			}
		}
		if len(e.out) > 0 {
			e.pendingLeader = apply
		} else {
			apply()
		}

	case CtrlPreformattedBegin:
		e.delimitParagraph()
		e.isPreformatted = true
		if e.control != nil {
			e.control.PreformattedBegin()
		}

	case CtrlPreformattedEnd:
		e.isPreformatted = false
		if e.control != nil {
			e.control.PreformattedEnd()
		}

	case CtrlWrapEnd:
		if len(e.out) > 0 || e.isLongLine {
			e.delimitParagraph()
		}
		e.copyThrough = true
		if e.control != nil {
			e.control.WrapEnd()
		}
	}
	return nil
}

// parseNewLeaderPayload parses the "<decimal-width>\x01<leader>" payload
// carried by a NEW_LEADER control line (spec §4.4.2/§4.4.3).
func parseNewLeaderPayload(payload []byte) (width int, leader []byte, ok bool) {
	sep := bytes.IndexByte(payload, 0x01)
	if sep < 0 {
		return 0, nil, false
	}
	n := 0
	for _, b := range payload[:sep] {
		if b < '0' || b > '9' {
			return 0, nil, false
		}
		n = n*10 + int(b-'0')
	}
	return n, append([]byte(nil), payload[sep+1:]...), true
}
