// Package execx is a narrow subprocess capability: command name, argument
// list, captured stdout/stderr and exit code. Build steps depend on the
// Runner interface so tests can substitute a fake and assert on exact
// argument vectors without spawning real tools.
package execx

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// Cmd describes one subprocess invocation.
type Cmd struct {
	Name string
	Args []string
	Dir  string
}

// Result carries the captured output of a finished subprocess. ExitCode is
// zero on success.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner runs subprocesses. Run captures output; a non-zero exit is
// reported through Result.ExitCode, not the error return, which is
// reserved for spawn failures. Stream wires the subprocess to the parent's
// stdout/stderr and blocks until it exits (used for esbuild watch mode,
// where the subprocess normally never exits).
type Runner interface {
	Run(ctx context.Context, cmd Cmd) (Result, error)
	Stream(ctx context.Context, cmd Cmd) error
}

// OSRunner is the real Runner backed by os/exec.
type OSRunner struct{}

func (OSRunner) Run(ctx context.Context, cmd Cmd) (Result, error) {
	// #nosec G204 -- command name and args are assembled from validated config
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			res.ExitCode = ee.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}

func (OSRunner) Stream(ctx context.Context, cmd Cmd) error {
	// #nosec G204 -- command name and args are assembled from validated config
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// IsExit reports whether err is a subprocess exit failure (as opposed to a
// spawn failure or context cancellation).
func IsExit(err error) bool {
	var ee *exec.ExitError
	return errors.As(err, &ee)
}
