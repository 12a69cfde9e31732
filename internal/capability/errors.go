package capability

import (
	"errors"
	"fmt"
)

// -- Error Types --

// AdaptationError is returned when a descriptor cannot be turned into a Capability.
type AdaptationError struct {
	TypeName string
	Cause    error
}

func (e *AdaptationError) Error() string {
	return fmt.Sprintf("failed to adapt tool %s: %v", e.TypeName, e.Cause)
}

func (e *AdaptationError) Unwrap() error { return e.Cause }

// InvocationError is returned when a capability's call fails. The agent loop
// hands it back to the model as the tool result.
type InvocationError struct {
	Capability string
	Cause      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Capability, e.Cause)
}

func (e *InvocationError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrNoConstructor = errors.New("descriptor has no constructor")
	ErrNilTool       = errors.New("constructor returned a nil tool")
	ErrDuplicateName = errors.New("duplicate capability name")
	ErrInvalidArgs   = errors.New("invalid arguments")
)
