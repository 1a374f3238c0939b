package wrapcore

import (
	"bufio"
	"bytes"
	"io"

	"github.com/paul-j-lucas/wrap-sub000/internal/socutil"
)

// Run reads src to completion and writes the wrapped result to dst,
// implementing the wrap engine's core contract (spec §4.3.1).
//
// Read errors on src and write errors on dst are both fatal and are
// returned as-is to the caller, which per spec §4.3.5 should map them to
// the IOERR sysexits code; invalid UTF-8 bytes are recovered locally
// (mapped to rune8.Invalid and discarded) rather than being fatal.
func (e *Engine) Run(src io.Reader, dst io.Writer) error {
	ew := &socutil.ErrWriter{Writer: dst}
	e.w = ew
	br := bufio.NewReaderSize(src, 64*1024)

	first := true
	for {
		line, rerr := readRawLine(br)
		if rerr != nil && rerr != io.EOF {
			return rerr
		}
		if len(line) == 0 && rerr == io.EOF {
			break
		}
		if first {
			line = e.stripBOM(line)
			e.resolveEOL(line)
			e.resolveLead(line)
			first = false
		}

		if e.copyThrough {
			e.write(line)
			if rerr == io.EOF {
				break
			}
			continue
		}

		if e.opt.DataLinkEsc {
			if code, payload, ok := isControlLine(line); ok {
				if err := e.handleControlLine(code, payload); err != nil {
					return err
				}
				if rerr == io.EOF {
					break
				}
				continue
			}
		}

		if err := e.consumeLine(line); err != nil {
			return err
		}
		if rerr == io.EOF {
			break
		}
	}
	if err := e.finish(); err != nil {
		return err
	}
	return ew.Err
}

// readRawLine reads one line, including its trailing "\n" if present, from
// br. It returns io.EOF alongside any final unterminated line, matching
// bufio.Reader.ReadBytes semantics.
func readRawLine(br *bufio.Reader) ([]byte, error) {
	line, err := br.ReadBytes('\n')
	if err == io.EOF {
		return line, io.EOF
	}
	return line, err
}

// stripBOM removes a leading UTF-8 byte-order mark from the very first
// line of input (spec §4.3.2 step 1).
func (e *Engine) stripBOM(line []byte) []byte {
	const bom = "\xEF\xBB\xBF"
	return bytes.TrimPrefix(line, []byte(bom))
}

// resolveEOL locks in Unix or Windows line endings when Options.EOL is
// EOLInput, by inspecting the first input line (spec §4.3.1).
func (e *Engine) resolveEOL(firstLine []byte) {
	switch e.opt.EOL {
	case EOLWindows:
		e.eol = "\r\n"
	case EOLUnix:
		e.eol = "\n"
	default:
		if bytes.HasSuffix(firstLine, []byte("\r\n")) {
			e.eol = "\r\n"
		} else {
			e.eol = "\n"
		}
	}
	e.eolLocked = true
}
