package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"
)

const (
	// gracefulShutdown is how long a timed-out command gets to exit after
	// an interrupt before it is killed.
	gracefulShutdown = 2 * time.Second
	binarySample     = 8000
)

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// executor runs shell commands through "sh -c".
type executor struct {
	maxOutput int
	env       []string
}

func newExecutor(maxOutput int64) *executor {
	return &executor{maxOutput: int(maxOutput), env: os.Environ()}
}

// RunWithTimeout executes command in dir. When the timeout elapses the process
// is interrupted, then killed after gracefulShutdown, and ErrTimeout is returned
// together with whatever output was collected. A non-zero exit is not an error.
func (e *executor) RunWithTimeout(ctx context.Context, command string, dir string, captureStderr bool, timeout time.Duration) (*Result, error) {
	if command == "" {
		return nil, ErrCommandRequired
	}

	stdout := newCollector(e.maxOutput, binarySample)
	stderr := newCollector(e.maxOutput, binarySample)

	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = dir
	cmd.Env = e.env
	cmd.Stdin = nil
	cmd.Stdout = stdout
	if captureStderr {
		cmd.Stderr = stderr
	} else {
		cmd.Stderr = io.Discard
	}
	// Background children may keep the pipes open after the shell exits.
	cmd.WaitDelay = gracefulShutdown

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Command: command, Cause: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return nil, ctx.Err()
	case <-time.After(timeout):
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
		case <-time.After(gracefulShutdown):
			_ = cmd.Process.Kill()
			<-done
		}
		execErr = ErrTimeout
	}

	res := &Result{
		Stdout:    stdout.String(),
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}
	if captureStderr {
		res.Stderr = stderr.String()
	}

	switch {
	case execErr == nil:
		return res, nil
	case errors.Is(execErr, ErrTimeout):
		res.ExitCode = -1
		return res, ErrTimeout
	default:
		var exitErr *exec.ExitError
		if errors.As(execErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if errors.Is(execErr, exec.ErrWaitDelay) {
			return res, nil
		}
		return nil, &CommandError{Command: command, Cause: execErr}
	}
}
