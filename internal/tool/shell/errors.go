package shell

import (
	"errors"
	"fmt"
)

// -- Error Types --

// CommandError is returned when the shell process cannot be started.
type CommandError struct {
	Command string
	Cause   error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Command, e.Cause)
}

func (e *CommandError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrCommandRequired = errors.New("command is required")
	ErrTimeout         = errors.New("command timeout")
	ErrNegativeLimit   = errors.New("max_answer_chars must not be negative")
)
