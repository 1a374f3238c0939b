package wrapcli

import (
	"io"
	"os"

	"github.com/paul-j-lucas/wrap-sub000/internal/sysexit"
	"github.com/paul-j-lucas/wrap-sub000/internal/wrapio"
)

// OpenInput opens the single positional filename in args, or stdin if
// args is empty; more than one positional filename is a usage error
// (spec §6: both tools are single-file pipeline filters).
func OpenInput(args []string) (io.ReadCloser, error) {
	switch len(args) {
	case 0:
		return io.NopCloser(os.Stdin), nil
	case 1:
		f, err := wrapio.OpenInput(args[0])
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, sysexit.Errorf(sysexit.Usage, "too many input files: %v", args)
	}
}

// OpenOutput opens path for atomic staged output, or stdout if path is
// empty.
func OpenOutput(path string) (*wrapio.Output, error) {
	if path == "" {
		return wrapio.Stdout(os.Stdout), nil
	}
	return wrapio.Create(path)
}
