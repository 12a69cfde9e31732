package workspace

import (
	"errors"
	"fmt"
)

// -- Error Types --

// RootError is returned when the workspace root is invalid.
type RootError struct {
	Root  string
	Cause error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}
func (e *RootError) Unwrap() error { return e.Cause }

// GitignoreReadError is returned when .gitignore cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrOutsideWorkspace = errors.New("path is outside workspace root")
	ErrNotADirectory    = errors.New("not a directory")
	ErrNotExist         = errors.New("path does not exist")
)
