// Package wrapio implements the output-side file handling shared by
// cmd/wrap and cmd/wrapc: writing to stdout by default, or staging a
// replacement file and renaming it into place atomically when `-o FILE` is
// given.
//
// The staged-write-then-rename shape is grounded on cmd/soc/store.go's
// fsStore.update/pendingUpdateFile (a sibling temp file opened next to the
// destination, synced and renamed into place on Close, removed on
// Cleanup if never closed successfully); this package adapts that pattern
// onto github.com/google/renameio's PendingFile, which already implements
// the same temp-dir-colocated + fsync + rename discipline as a reusable
// library instead of a hand-rolled *os.File wrapper.
package wrapio

import (
	"io"
	"os"

	"github.com/google/renameio"

	"github.com/paul-j-lucas/wrap-sub000/internal/sysexit"
)

// Output is the destination the wrap engine writes its result to: either
// stdout passed straight through, or a renameio.PendingFile staged next to
// the final destination path.
type Output struct {
	w       io.Writer
	pending *renameio.PendingFile
	closed  bool
}

// Stdout returns an Output that writes straight through to w (typically
// os.Stdout), with no staging or rename.
func Stdout(w io.Writer) *Output { return &Output{w: w} }

// Create returns an Output staged at a temporary sibling of path; its
// final bytes are only visible at path once Close succeeds (spec §4.5's
// "-o FILE never leaves a partial or missing file" guarantee).
func Create(path string) (*Output, error) {
	pf, err := renameio.TempFile("", path)
	if err != nil {
		return nil, sysexit.Wrap(sysexit.CantCreat, err)
	}
	return &Output{w: pf, pending: pf}, nil
}

// Write implements io.Writer.
func (o *Output) Write(p []byte) (int, error) { return o.w.Write(p) }

// Close commits a staged file (renaming it into place) or is a no-op for
// Stdout. It must be called exactly once, after all writes, only on the
// success path; call Abort instead on an error path.
func (o *Output) Close() error {
	if o.pending == nil || o.closed {
		return nil
	}
	o.closed = true
	if err := o.pending.CloseAtomicallyReplace(); err != nil {
		return sysexit.Wrap(sysexit.CantCreat, err)
	}
	return nil
}

// Abort discards a staged file without replacing the destination, used
// when the engine run failed partway through and the original file (if
// any) must be left untouched.
func (o *Output) Abort() error {
	if o.pending == nil || o.closed {
		return nil
	}
	o.closed = true
	return o.pending.Cleanup()
}

// OpenInput opens path for reading, mapping a missing file to the NOINPUT
// exit code (spec §4.5) instead of a bare *os.PathError.
func OpenInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sysexit.Wrap(sysexit.NoInput, err)
	}
	return f, nil
}
