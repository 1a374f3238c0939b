// Command wrap reformats text on stdin (or a named file) into wrapped
// paragraphs on stdout (or a named file), per spec §1/§3.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paul-j-lucas/wrap-sub000/internal/sysexit"
	"github.com/paul-j-lucas/wrap-sub000/internal/wrapcli"
	"github.com/paul-j-lucas/wrap-sub000/internal/wrapcore"
)

var prog = filepath.Base(os.Args[0])

func main() {
	wrapcli.WaitForDebugger(prog)
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", prog, err)
		os.Exit(int(sysexit.CodeOf(err)))
	}
}

func run(args []string) error {
	fs, v := wrapcli.NewFlagSet(prog, false)
	if err := fs.Parse(args); err != nil {
		return sysexit.Errorf(sysexit.Usage, "%v", err)
	}

	cfg, err := wrapcli.LoadConfig(v.Config)
	if err != nil {
		return err
	}
	wrapcli.MaybeDumpConfig(cfg)

	var file string
	if a := fs.Args(); len(a) == 1 {
		file = a[0]
	}
	extra, err := wrapcli.ResolveAlias(cfg, v.Alias, file)
	if err != nil {
		return err
	}
	if len(extra) > 0 {
		fs, v, err = wrapcli.Reparse(prog, false, extra, args)
		if err != nil {
			return err
		}
	}

	opt, err := v.BuildOptions()
	if err != nil {
		return err
	}

	in, err := wrapcli.OpenInput(fs.Args())
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := wrapcli.OpenOutput(v.Output)
	if err != nil {
		return err
	}

	e := wrapcore.New(opt)
	if runErr := e.Run(in, out); runErr != nil {
		_ = out.Abort()
		return sysexit.Wrap(sysexit.IOErr, runErr)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return nil
}
