package directory

import (
	"errors"
)

// -- Sentinels --

var (
	ErrPatternRequired = errors.New("file_mask is required")
	ErrInvalidPattern  = errors.New("invalid file_mask")
	ErrNegativeLimit   = errors.New("max_answer_chars must not be negative")
)
