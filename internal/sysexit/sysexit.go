// Package sysexit defines the sysexits(3)-family process exit codes used by
// cmd/wrap and cmd/wrapc (spec §4.5), and an Error type that carries one
// alongside a message, generalized from cmd/soc/main.go's log.Fatalf-and-exit
// pattern into a value a caller can return and inspect instead of one that
// terminates the process directly.
package sysexit

import "fmt"

// Code is a sysexits(3) exit status.
type Code int

// Exit codes used by cmd/wrap and cmd/wrapc (spec §4.5), taken from the
// BSD sysexits.h family.
const (
	OK       Code = 0
	Usage    Code = 64 // command line usage error
	DataErr  Code = 65 // malformed input data
	NoInput  Code = 66 // input file does not exist or is unreadable
	Software Code = 70 // internal software error
	OSErr    Code = 71 // an OS-level error occurred (fork/exec/pipe failed)
	CantCreat Code = 73 // output file cannot be created
	IOErr    Code = 74 // read or write error on a stream
	Config   Code = 78 // configuration error
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case Usage:
		return "USAGE"
	case DataErr:
		return "DATAERR"
	case NoInput:
		return "NOINPUT"
	case Software:
		return "SOFTWARE"
	case OSErr:
		return "OSERR"
	case CantCreat:
		return "CANTCREAT"
	case IOErr:
		return "IOERR"
	case Config:
		return "CONFIG"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Error pairs an error message with the sysexits code a command-line main
// should terminate with.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error from a sysexits code and a formatted message,
// mirroring fmt.Errorf.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a sysexits code to an existing error, leaving err untouched
// if it is nil.
func Wrap(code Code, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

// CodeOf extracts the sysexits code from err if it (or something in its
// Unwrap chain) is an *Error, defaulting to Software otherwise.
func CodeOf(err error) Code {
	for {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return Software
		}
		err = u.Unwrap()
		if err == nil {
			return Software
		}
	}
}
