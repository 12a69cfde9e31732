package file

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// -- Error Types --

// TooLargeError is returned when a file exceeds the configured size limit.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file %s is too large (%s, limit %s)", e.Path, humanize.IBytes(uint64(e.Size)), humanize.IBytes(uint64(e.Limit)))
}

// -- Sentinels --

var (
	ErrPathRequired  = errors.New("relative_path is required")
	ErrFileMissing   = errors.New("file does not exist")
	ErrIsDirectory   = errors.New("path is a directory")
	ErrBinaryFile    = errors.New("file is binary")
	ErrInvalidRange  = errors.New("invalid line range")
	ErrNegativeLimit = errors.New("max_answer_chars must not be negative")
)
