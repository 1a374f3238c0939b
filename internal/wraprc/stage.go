package wraprc

import (
	"bufio"
	"bytes"
	"io"

	"github.com/paul-j-lucas/wrap-sub000/internal/wrapcore"
)

// dleForwarder implements wrapcore.ControlSink by serializing each event
// as a literal DLE control line onto an io.Writer, for the three-OS-
// process model (spec §4.4.5) where pipe₁ really is a byte stream the
// framer process must parse, rather than the in-process Framer's direct
// method calls.
type dleForwarder struct{ w io.Writer }

func (d dleForwarder) DelimitParagraph() { d.send(wrapcore.CtrlDelimitParagraph, nil) }

func (d dleForwarder) NewLeader(width int, leader []byte) {
	payload := append(itoaBytes(width), 0x01)
	payload = append(payload, leader...)
	d.send(wrapcore.CtrlNewLeader, payload)
}

func (d dleForwarder) PreformattedBegin() { d.send(wrapcore.CtrlPreformattedBegin, nil) }
func (d dleForwarder) PreformattedEnd()   { d.send(wrapcore.CtrlPreformattedEnd, nil) }
func (d dleForwarder) WrapEnd()           { d.send(wrapcore.CtrlWrapEnd, nil) }

func (d dleForwarder) send(code byte, payload []byte) {
	buf := make([]byte, 0, len(payload)+3)
	buf = append(buf, wrapcore.DLE, code)
	buf = append(buf, payload...)
	buf = append(buf, '\n')
	_, _ = d.w.Write(buf)
}

// RunReaderStage runs the leader-detecting reader as the first of the
// three processes: src is the real stdin, dst is pipe₀.
func RunReaderStage(src io.Reader, dst io.Writer, opt wrapcore.Options) error {
	r := NewReader(dst, opt.CommentChars, opt.LineWidth, opt.TabSpaces)
	return r.Run(src)
}

// RunEngineStage runs the wrap engine as the middle of the three-process
// pipeline: src is pipe₀, dst is pipe₁, and control codes the engine
// would hand to an in-process Framer are instead DLE-serialized onto dst
// itself, immediately ahead of or behind the line they apply to.
func RunEngineStage(src io.Reader, dst io.Writer, opt wrapcore.Options) error {
	opt.DataLinkEsc = true
	e := wrapcore.New(opt)
	e.SetControlSink(dleForwarder{dst})
	return e.Run(src, dst)
}

// RunFramerStage runs the framer as the last of the three processes:
// reads pipe₁ (src), decodes DLE control lines back into Framer method
// calls, and writes the final leader-prefixed bytes to dst.
func RunFramerStage(src io.Reader, dst io.Writer, initialLeader []byte) error {
	f := NewFramer(dst, initialLeader)
	br := bufio.NewReaderSize(src, 64*1024)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if code, payload, ok := decodeControlLine(line); ok {
				dispatchControl(f, code, payload)
			} else if _, werr := f.Write(line); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return f.Close()
		}
		if err != nil {
			return err
		}
	}
}

func decodeControlLine(line []byte) (code byte, payload []byte, ok bool) {
	if len(line) < 2 || line[0] != wrapcore.DLE {
		return 0, nil, false
	}
	return line[1], bytes.TrimSuffix(line[2:], []byte("\n")), true
}

func dispatchControl(f *Framer, code byte, payload []byte) {
	switch code {
	case wrapcore.CtrlDelimitParagraph:
		f.DelimitParagraph()
	case wrapcore.CtrlNewLeader:
		if width, leader, ok := parseNewLeaderPayload(payload); ok {
			f.NewLeader(width, leader)
		}
	case wrapcore.CtrlPreformattedBegin:
		f.PreformattedBegin()
	case wrapcore.CtrlPreformattedEnd:
		f.PreformattedEnd()
	case wrapcore.CtrlWrapEnd:
		f.WrapEnd()
	}
}

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
