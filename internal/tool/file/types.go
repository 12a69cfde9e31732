package file

import (
	"fmt"
)

// ReadFileRequest is the argument struct of read_file.
type ReadFileRequest struct {
	RelativePath   string `json:"relative_path" jsonschema_description:"The relative path to the file to read."`
	StartLine      int    `json:"start_line,omitempty" jsonschema_description:"The 0-based index of the first line to be retrieved." jsonschema:"default=0"`
	EndLine        int    `json:"end_line,omitempty" jsonschema_description:"The 0-based index of the last line to be retrieved (inclusive). If not positive, read until the end of the file." jsonschema:"default=-1"`
	MaxAnswerChars int    `json:"max_answer_chars,omitempty" jsonschema_description:"If the file (chunk) is longer than this number of characters, no content is returned. Leave unset to use the default." jsonschema:"default=-1"`
}

func (r *ReadFileRequest) Validate() error {
	if r.RelativePath == "" {
		return ErrPathRequired
	}
	if r.StartLine < 0 {
		return fmt.Errorf("%w: start_line %d is negative", ErrInvalidRange, r.StartLine)
	}
	if r.EndLine > 0 && r.EndLine < r.StartLine {
		return fmt.Errorf("%w: end_line %d is before start_line %d", ErrInvalidRange, r.EndLine, r.StartLine)
	}
	if r.MaxAnswerChars < -1 {
		return ErrNegativeLimit
	}
	return nil
}

func (r *ReadFileRequest) String() string {
	if r.StartLine == 0 && r.EndLine <= 0 {
		return fmt.Sprintf("Reading %s", r.RelativePath)
	}
	if r.EndLine <= 0 {
		return fmt.Sprintf("Reading %s from line %d", r.RelativePath, r.StartLine)
	}
	return fmt.Sprintf("Reading %s lines %d-%d", r.RelativePath, r.StartLine, r.EndLine)
}
