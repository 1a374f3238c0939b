// Command wrapc wraps the comment bodies of a source file while leaving
// its code untouched, by detecting the comment leader and running the
// shared wrap engine over the leader-stripped body (spec §1, §4.4).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paul-j-lucas/wrap-sub000/internal/sysexit"
	"github.com/paul-j-lucas/wrap-sub000/internal/wrapcli"
	"github.com/paul-j-lucas/wrap-sub000/internal/wraprc"
)

var prog = filepath.Base(os.Args[0])

func main() {
	// A re-exec'd pipeline stage (see internal/wraprc.RunProcesses) never
	// waits on a debugger or touches the config file; it just runs its
	// one role against its own stdin/stdout.
	if stage := os.Getenv("WRAPC_STAGE"); stage != "" {
		if err := runStage(stage, os.Args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "%s (%s stage): %s\n", prog, stage, err)
			os.Exit(int(sysexit.CodeOf(err)))
		}
		return
	}

	wrapcli.WaitForDebugger(prog)
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", prog, err)
		os.Exit(int(sysexit.CodeOf(err)))
	}
}

func run(args []string) error {
	fs, v := wrapcli.NewFlagSet(prog, true)
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
		fs, v, err = wrapcli.Reparse(prog, true, extra, args)
		if err != nil {
			return err
		}
	}

	opt, err := v.BuildOptions()
	if err != nil {
		return err
	}

	if wrapcli.EnvTruthy("WRAP_DUMP_CC_MAP") {
		dumpCCMap(opt.CommentChars)
		return nil
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

	p := wraprc.Pipeline{Opt: opt}
	if runErr := p.Run(in, out); runErr != nil {
		_ = out.Abort()
		return runErr
	}
	return out.Close()
}

// runStage dispatches to one of the three process-hygiene stages
// (reader, engine, framer) when invoked as a WRAPC_STAGE re-exec child
// of internal/wraprc.RunProcesses (spec §4.4.5). It shares flag parsing
// with the parent invocation so the derived Options match exactly.
func runStage(stage string, args []string) error {
	fs, v := wrapcli.NewFlagSet(prog, true)
	if err := fs.Parse(args); err != nil {
		return sysexit.Errorf(sysexit.Usage, "%v", err)
	}
	opt, err := v.BuildOptions()
	if err != nil {
		return err
	}

	switch stage {
	case "reader":
		return wraprc.RunReaderStage(os.Stdin, os.Stdout, opt)
	case "engine":
		return wraprc.RunEngineStage(os.Stdin, os.Stdout, opt)
	case "framer":
		return wraprc.RunFramerStage(os.Stdin, os.Stdout, nil)
	default:
		return sysexit.Errorf(sysexit.Software, "unknown WRAPC_STAGE %q", stage)
	}
}

func dumpCCMap(commentChars string) {
	fmt.Printf("comment_chars = %q\n", commentChars)
	for opener, closer := range wraprc.TwoCharOpeners() {
		fmt.Printf("%s ... %s\n", opener, closer)
	}
}
