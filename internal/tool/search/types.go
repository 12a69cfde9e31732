package search

import (
	"errors"
	"fmt"
	"regexp"
)

// -- Sentinels --

var (
	ErrPatternRequired = errors.New("substring_pattern is required")
	ErrInvalidPattern  = errors.New("invalid substring_pattern")
	ErrInvalidContext  = errors.New("context line counts must not be negative")
	ErrNegativeLimit   = errors.New("max_answer_chars must not be negative")
)

// SearchForPatternRequest is the argument struct of search_for_pattern.
type SearchForPatternRequest struct {
	SubstringPattern   string `json:"substring_pattern" jsonschema_description:"Regular expression for a substring pattern to search for. Dot matches newlines."`
	ContextLinesBefore int    `json:"context_lines_before,omitempty" jsonschema_description:"Number of lines of context to include before each match." jsonschema:"default=0"`
	ContextLinesAfter  int    `json:"context_lines_after,omitempty" jsonschema_description:"Number of lines of context to include after each match." jsonschema:"default=0"`
	PathsIncludeGlob   string `json:"paths_include_glob,omitempty" jsonschema_description:"Optional glob pattern specifying files to include in the search, e.g. \"*.go\" or \"src/**/*.ts\". Matches against relative file paths."`
	PathsExcludeGlob   string `json:"paths_exclude_glob,omitempty" jsonschema_description:"Optional glob pattern specifying files to exclude from the search. Takes precedence over paths_include_glob."`
	RelativePath       string `json:"relative_path,omitempty" jsonschema_description:"Only search in this path (a file or a directory) relative to the workspace root. Leave empty to search everywhere."`
	MaxAnswerChars     int    `json:"max_answer_chars,omitempty" jsonschema_description:"If the output is longer than this number of characters, no content is returned. Leave unset to use the default." jsonschema:"default=-1"`
}

func (r *SearchForPatternRequest) Validate() error {
	if r.SubstringPattern == "" {
		return ErrPatternRequired
	}
	if _, err := compile(r.SubstringPattern); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	if r.ContextLinesBefore < 0 || r.ContextLinesAfter < 0 {
		return ErrInvalidContext
	}
	if r.MaxAnswerChars < -1 {
		return ErrNegativeLimit
	}
	return nil
}

func (r *SearchForPatternRequest) String() string {
	where := r.RelativePath
	if where == "" {
		where = "."
	}
	return fmt.Sprintf("Searching %q in %s", r.SubstringPattern, where)
}

// SearchForPatternResponse is encoded as the search_for_pattern answer.
// Matches maps each file to its snippets in file order.
type SearchForPatternResponse struct {
	Matches   map[string][]string `json:"matches"`
	Truncated bool                `json:"truncated,omitempty"`
}

func compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?s)" + pattern)
}
