package wraprc

import (
	"bytes"
	"io"

	"github.com/paul-j-lucas/wrap-sub000/internal/socutil"
)

// Framer implements wrapcore.ControlSink and io.Writer. It is supplied as
// the wrap engine's output destination when running under wrapc: every
// wrapped body line the engine writes gets the current leader reapplied
// (spec §4.4.3), and the control events the engine would otherwise
// DLE-frame onto pipe₁ instead arrive here as direct method calls, since
// this package runs the three wrapc stages as goroutines rather than OS
// processes (see the Pipeline doc comment in pipeline.go).
//
// Buffering and final-flush discipline are delegated to socutil.WriteBuffer
// (an ErrWriter-wrapped destination, flushed a full line at a time by
// FlushLineChunks): Close must be called once writing is done to push out
// any partial final line still held in the buffer.
type Framer struct {
	ew  socutil.ErrWriter
	buf socutil.WriteBuffer

	leader       []byte
	preformatted bool
	copyThrough  bool
}

// NewFramer constructs a Framer writing the final, leader-prefixed output
// to out, starting with the reader's initial leader.
func NewFramer(out io.Writer, leader []byte) *Framer {
	f := &Framer{leader: append([]byte(nil), leader...)}
	f.ew.Writer = out
	f.buf.To = &f.ew
	return f
}

// Write accepts output from the wrap engine, which may deliver one line in
// several pieces, and prefixes each line with the current leader once, in
// front of its first piece (spec §4.4.3).
func (f *Framer) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		var line []byte
		if i := bytes.IndexByte(p, '\n'); i >= 0 {
			line, p = p[:i+1], p[i+1:]
		} else {
			line, p = p, nil
		}
		if err := f.writeLine(line); err != nil {
			return 0, err
		}
	}
	return n, f.ew.Err
}

func (f *Framer) writeLine(line []byte) error {
	atLineStart := f.buf.Len() == 0 || f.buf.Bytes()[f.buf.Len()-1] == '\n'
	if atLineStart && !f.copyThrough && !f.preformatted && len(f.leader) > 0 {
		lead := f.leader
		if bytes.HasSuffix(line, []byte("\n")) &&
			len(bytes.TrimRight(bytes.TrimSuffix(line, []byte("\n")), " \t")) == 0 {
			lead = bytes.TrimRight(lead, " \t")
		}
		if len(lead) > 0 {
			_, _ = f.buf.Write(lead)
		}
	}
	_, _ = f.buf.Write(line)
	return f.buf.MaybeFlush()
}

// Close flushes any partial final line still held in the buffer and
// reports the first write error, if any, encountered along the way.
func (f *Framer) Close() error {
	if err := f.buf.Flush(); err != nil {
		return err
	}
	return f.ew.Err
}

// DelimitParagraph is a no-op: the blank separator line is already part
// of the byte stream the engine writes through Write.
func (f *Framer) DelimitParagraph() {}

// NewLeader updates the leader reapplied to subsequent lines. The width
// argument is the engine's own concern (already applied internally); the
// framer only needs the literal leader bytes.
func (f *Framer) NewLeader(width int, leader []byte) {
	_ = width
	f.leader = append([]byte(nil), leader...)
}

// PreformattedBegin suppresses leader rewriting until PreformattedEnd
// (spec §4.4.3).
func (f *Framer) PreformattedBegin() { f.preformatted = true }

// PreformattedEnd resumes leader rewriting.
func (f *Framer) PreformattedEnd() { f.preformatted = false }

// WrapEnd switches the framer to raw copy-through: everything the engine
// writes from here on (already raw, since the engine itself enters
// copy-through on WRAP_END) passes to out unchanged.
func (f *Framer) WrapEnd() { f.copyThrough = true }
