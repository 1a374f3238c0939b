// Package wraprc implements the wrapc pipeline (spec §4.4): a reader stage
// that detects the comment leader of a piped source file and narrates
// leader changes as in-band control codes, the shared wrap engine in
// internal/wrapcore running in the middle, and a framer stage that
// reapplies the leader to the engine's wrapped output.
//
// Grounded on internal/socutil/writer.go's Prefixer/WriteBuffer (the
// framer buffers its leader-prefixed output through a WriteBuffer) and
// scandown/block.go's scan-the-first-line-byte-by-byte marker-recognition
// style (the reader's leader detection).
package wraprc

import (
	"bufio"
	"bytes"
	"io"

	"github.com/paul-j-lucas/wrap-sub000/internal/wrapcore"
)

// twoCharOpeners maps a two-character block-comment opener to its closing
// delimiter (spec §4.4.1).
var twoCharOpeners = map[string]string{
	"/*": "*/",
	"(*": "*)",
	"(:": ":)",
	"{-": "-}",
	"#|": "|#",
	"<#": "#>",
}

// Reader consumes a raw, comment-bearing source stream and writes a
// leader-stripped body stream plus DLE-escaped control lines (spec
// §4.4.2) to Out, for the wrap engine to consume as its own stdin.
type Reader struct {
	// CommentChars is the configured comment-character set (spec §4.4.1's
	// `CC`), e.g. "/#-;%" for a file whose comment styles include `//`,
	// `#`, `--`, and `;`.
	CommentChars string
	// LineWidth is the nominal (un-narrowed) line width; NEW_LEADER
	// payloads carry LineWidth minus the new leader's display width.
	LineWidth int
	// TabSpaces is the display width of a tab, used only to size a
	// leader containing literal tabs.
	TabSpaces int

	Out io.Writer

	started     bool
	passThrough bool // first line had no comment char: leader is fixed, never ends
	ccSet       string
	blockEnd    []byte // non-nil while inside a two-char block comment
	leader      []byte
	ended       bool // WRAP_END already emitted; now pure byte copy-through
}

// TwoCharOpeners returns a copy of the package's table of two-character
// block-comment openers to their closing delimiters (spec §4.4.1), for
// WRAP_DUMP_CC_MAP diagnostics.
func TwoCharOpeners() map[string]string {
	m := make(map[string]string, len(twoCharOpeners))
	for k, v := range twoCharOpeners {
		m[k] = v
	}
	return m
}

// NewReader constructs a Reader writing to out.
func NewReader(out io.Writer, commentChars string, lineWidth, tabSpaces int) *Reader {
	return &Reader{CommentChars: commentChars, LineWidth: lineWidth, TabSpaces: tabSpaces, Out: out}
}

// Run reads src line by line until EOF, driving leader detection and
// control-code emission, and copies any trailing unterminated bytes
// through unchanged.
func (r *Reader) Run(src io.Reader) error {
	br := bufio.NewReaderSize(src, 64*1024)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if perr := r.processLine(line); perr != nil {
				return perr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (r *Reader) processLine(line []byte) error {
	if r.ended {
		_, err := r.Out.Write(line)
		return err
	}
	if !r.started {
		r.started = true
		return r.firstLine(line)
	}
	if r.passThrough {
		return r.emitBody(line, r.leader)
	}
	return r.bodyLine(line)
}

// firstLine derives the prototype leader (spec §4.4.1) from the first
// input line.
func (r *Reader) firstLine(line []byte) error {
	ws, rest := leadingWS(line)

	opener, closer, isTwoChar := matchTwoCharOpener(rest, r.CommentChars)
	switch {
	case isTwoChar:
		r.ccSet = opener
		r.blockEnd = []byte(closer)
		if isBlockOpenerOnlyLine(rest[len(opener):]) {
			// The opener sits alone on its own line: write it verbatim and
			// take the prototype from the second line instead.
			_, err := r.Out.Write(line)
			return err
		}
		r.leader = append([]byte(nil), line[:len(ws)+len(opener)]...)
		return r.afterLeader(line[len(r.leader):])

	case len(rest) > 0 && bytes.ContainsRune([]byte(r.CommentChars), rune(rest[0])):
		cc := narrowCommentSet(rest, r.CommentChars)
		r.ccSet = cc
		if rest[0] == '{' {
			// Pascal block comments: narrow set still special-cases the
			// closing brace so a later bodyLine recognizes `}`.
			r.ccSet += "}"
			r.blockEnd = []byte("}")
		}
		n := len(cc)
		wsAfter, _ := leadingWS(rest[n:])
		r.leader = append([]byte(nil), line[:len(ws)+n+len(wsAfter)]...)
		return r.afterLeader(line[len(r.leader):])

	default:
		// No comment character on the first line: there is no comment to
		// narrow a leader from, so the whole stream is forwarded as
		// ordinary text with an empty leader (spec §4.4.1).
		r.passThrough = true
		r.leader = nil
		return r.afterLeader(line)
	}
}

// afterLeader finishes processing the first line once r.leader is locked:
// announce the initial effective width via NEW_LEADER, then emit the body.
func (r *Reader) afterLeader(body []byte) error {
	if err := r.writeNewLeader(); err != nil {
		return err
	}
	return r.emitBodyRaw(body)
}

// bodyLine processes a non-first line while inside a detected comment.
func (r *Reader) bodyLine(line []byte) error {
	if r.blockEnd != nil {
		if i := bytes.Index(line, r.blockEnd); i >= 0 {
			if err := r.emitBodyRaw(line[:i]); err != nil {
				return err
			}
			if err := r.writeControl(wrapcore.CtrlWrapEnd, nil); err != nil {
				return err
			}
			r.ended = true
			rest := line[i+len(r.blockEnd):]
			if len(rest) == 0 {
				return nil
			}
			_, err := r.Out.Write(rest)
			return err
		}
		return r.emitBodyRaw(line)
	}

	ws, rest := leadingWS(line)
	n := commentRunLen(rest, r.ccSet)
	if n == 0 && len(bytes.TrimSpace(line)) > 0 {
		// The comment-character run vanished: the comment has ended and
		// source code continues.
		if err := r.writeControl(wrapcore.CtrlWrapEnd, nil); err != nil {
			return err
		}
		r.ended = true
		_, err := r.Out.Write(line)
		return err
	}

	wsAfter, _ := leadingWS(rest[n:])
	newLeader := line[:len(ws)+n+len(wsAfter)]
	if !bytes.Equal(newLeader, r.leader) {
		r.leader = append([]byte(nil), newLeader...)
		if err := r.writeNewLeader(); err != nil {
			return err
		}
	}
	return r.emitBodyRaw(line[len(newLeader):])
}

func (r *Reader) writeNewLeader() error {
	width := r.LineWidth - leaderDisplayWidth(r.leader, r.TabSpaces)
	if width < 1 {
		width = 1
	}
	payload := append(itoaBytes(width), 0x01)
	payload = append(payload, r.leader...)
	return r.writeControl(wrapcore.CtrlNewLeader, payload)
}

func (r *Reader) emitBody(line []byte, leader []byte) error {
	return r.emitBodyRaw(bytes.TrimPrefix(line, leader))
}

func (r *Reader) emitBodyRaw(body []byte) error {
	if len(body) == 0 || body[len(body)-1] != '\n' {
		body = append(append([]byte(nil), body...), '\n')
	}
	_, err := r.Out.Write(body)
	return err
}

func (r *Reader) writeControl(code byte, payload []byte) error {
	buf := make([]byte, 0, len(payload)+3)
	buf = append(buf, wrapcore.DLE, code)
	buf = append(buf, payload...)
	buf = append(buf, '\n')
	_, err := r.Out.Write(buf)
	return err
}

func leadingWS(b []byte) (ws, rest []byte) {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t') {
		i++
	}
	return b[:i], b[i:]
}

// matchTwoCharOpener reports whether rest begins with one of the
// configured two-character block-comment openers.
func matchTwoCharOpener(rest []byte, cc string) (opener, closer string, ok bool) {
	if len(rest) < 2 {
		return "", "", false
	}
	pair := string(rest[:2])
	closer, known := twoCharOpeners[pair]
	if !known {
		return "", "", false
	}
	if !bytes.ContainsRune([]byte(cc), rune(pair[0])) {
		return "", "", false
	}
	return pair, closer, true
}

// narrowCommentSet returns the run of identical comment characters opening
// rest (e.g. "//" narrows the active set to "/").
func narrowCommentSet(rest []byte, cc string) string {
	if len(rest) == 0 {
		return ""
	}
	c := rest[0]
	n := 1
	for n < len(rest) && rest[n] == c {
		n++
	}
	_ = cc
	return string(rest[:n])
}

// commentRunLen returns how many leading bytes of rest belong to the
// narrowed comment-character set ccSet.
func commentRunLen(rest []byte, ccSet string) int {
	n := 0
	for n < len(rest) && bytes.ContainsRune([]byte(ccSet), rune(rest[n])) {
		n++
	}
	return n
}

// isBlockOpenerOnlyLine reports whether the remainder of a line after a
// block-comment opener contains no alphanumeric characters, meaning the
// opener sits alone on its own line (spec §4.4.1).
func isBlockOpenerOnlyLine(rest []byte) bool {
	for _, b := range bytes.TrimRight(rest, "\n") {
		if b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' {
			return false
		}
	}
	return true
}

func leaderDisplayWidth(lead []byte, tabSpaces int) int {
	w := 0
	for _, b := range lead {
		if b == '\t' {
			w += tabSpaces
		} else {
			w++
		}
	}
	return w
}

func itoaBytes(n int) []byte {
	if n == 0 {
		return []byte{'0'}
	}
	var tmp [20]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	return append([]byte(nil), tmp[i:]...)
}
