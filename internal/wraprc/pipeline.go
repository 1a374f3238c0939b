package wraprc

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/paul-j-lucas/wrap-sub000/internal/sysexit"
	"github.com/paul-j-lucas/wrap-sub000/internal/wrapcore"
)

// Pipeline wires the reader, wrap engine, and framer stages described in
// spec §4.4: `stdin → [reader] → pipe₀ → [wrap engine] → pipe₁ → [framer]
// → stdout`. Run implements pipe₀/pipe₁ with io.Pipe and the three stages
// as goroutines, which keeps the control protocol in-process and testable; RunProcesses implements the
// literal three-OS-process model via self-exec for spec-fidelity/process-
// hygiene parity (spec §4.4.5).
type Pipeline struct {
	Opt wrapcore.Options
}

// Run executes the pipeline in-process: a reader goroutine feeds pipe₀,
// the wrap engine consumes pipe₀ and writes every wrapped body line and
// control notification directly to a Framer (the in-process stand-in for
// pipe₁), and the Framer writes the final, leader-prefixed bytes to dst.
func (p Pipeline) Run(src io.Reader, dst io.Writer) error {
	pr, pw := io.Pipe()

	reader := NewReader(pw, p.Opt.CommentChars, p.Opt.LineWidth, p.Opt.TabSpaces)

	errc := make(chan error, 1)
	go func() {
		err := reader.Run(src)
		errc <- err
		_ = pw.CloseWithError(err)
	}()

	framer := NewFramer(dst, nil)
	opt := p.Opt
	opt.DataLinkEsc = true
	e := wrapcore.New(opt)
	e.SetControlSink(framer)

	runErr := e.Run(pr, framer)
	_ = pr.Close()
	closeErr := framer.Close()

	readErr := <-errc
	if runErr != nil {
		return sysexit.Wrap(sysexit.IOErr, runErr)
	}
	if closeErr != nil {
		return sysexit.Wrap(sysexit.IOErr, closeErr)
	}
	if readErr != nil && readErr != io.EOF {
		return sysexit.Wrap(sysexit.IOErr, readErr)
	}
	return nil
}

// wrapcStageEnv marks a re-exec'd child as one of the pipeline's three
// stages, for RunProcesses.
const wrapcStageEnv = "WRAPC_STAGE"

// RunProcesses implements the pipeline as three real OS processes
// connected by two unnamed pipes (spec §4.4.5), self-exec'ing os.Args[0]
// with WRAPC_STAGE set to select each child's role. argv carries the wrap
// engine's own derived flags (the reader's detected comment_chars etc.),
// assembled by the caller the same way a config alias is expanded.
func RunProcesses(self string, argv []string, stdin io.Reader, stdout io.Writer) error {
	pipe0R, pipe0W, err := os.Pipe()
	if err != nil {
		return sysexit.Wrap(sysexit.OSErr, err)
	}
	pipe1R, pipe1W, err := os.Pipe()
	if err != nil {
		return sysexit.Wrap(sysexit.OSErr, err)
	}

	readerCmd := exec.Command(self, argv...)
	readerCmd.Env = append(os.Environ(), wrapcStageEnv+"=reader")
	readerCmd.Stdin = stdin
	readerCmd.Stdout = pipe0W
	readerCmd.Stderr = os.Stderr

	engineCmd := exec.Command(self, argv...)
	engineCmd.Env = append(os.Environ(), wrapcStageEnv+"=engine")
	engineCmd.Stdin = pipe0R
	engineCmd.Stdout = pipe1W
	engineCmd.Stderr = os.Stderr

	framerCmd := exec.Command(self, argv...)
	framerCmd.Env = append(os.Environ(), wrapcStageEnv+"=framer")
	framerCmd.Stdin = pipe1R
	framerCmd.Stdout = stdout
	framerCmd.Stderr = os.Stderr

	cmds := []*exec.Cmd{readerCmd, engineCmd, framerCmd}
	started := make([]*exec.Cmd, 0, 3)
	for _, c := range cmds {
		if err := c.Start(); err != nil {
			for _, s := range started {
				_ = s.Process.Kill()
			}
			return sysexit.Wrap(sysexit.OSErr, fmt.Errorf("starting %s stage: %w", stageName(c, cmds), err))
		}
		started = append(started, c)
	}

	// Each process owns exactly one end of each pipe; close the ends this
	// parent no longer needs once every child has its own copy (spec
	// §4.4.5's "unused ends are closed in each process").
	_ = pipe0R.Close()
	_ = pipe0W.Close()
	_ = pipe1R.Close()
	_ = pipe1W.Close()

	var first error
	for _, c := range cmds {
		if err := c.Wait(); err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return sysexit.Wrap(sysexit.OSErr, first)
	}
	return nil
}

func stageName(c *exec.Cmd, all []*exec.Cmd) string {
	switch c {
	case all[0]:
		return "reader"
	case all[1]:
		return "engine"
	default:
		return "framer"
	}
}
