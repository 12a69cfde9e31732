package directory

import (
	"fmt"
	"path/filepath"
)

// -- List Dir --

// ListDirRequest is the argument struct of list_dir.
type ListDirRequest struct {
	RelativePath     string `json:"relative_path" jsonschema_description:"The relative path to the directory to list; pass \".\" to scan the workspace root."`
	Recursive        bool   `json:"recursive" jsonschema_description:"Whether to scan subdirectories recursively."`
	SkipIgnoredFiles bool   `json:"skip_ignored_files,omitempty" jsonschema_description:"Whether to skip files and directories that are ignored by .gitignore." jsonschema:"default=false"`
	MaxAnswerChars   int    `json:"max_answer_chars,omitempty" jsonschema_description:"If the output is longer than this number of characters, no content is returned. Leave unset to use the default." jsonschema:"default=-1"`
}

func (r *ListDirRequest) Validate() error {
	if r.MaxAnswerChars < -1 {
		return ErrNegativeLimit
	}
	return nil
}

// String renders the request for progress output.
func (r *ListDirRequest) String() string {
	if r.Recursive {
		return fmt.Sprintf("Listing %s recursively", displayPath(r.RelativePath))
	}
	return fmt.Sprintf("Listing %s", displayPath(r.RelativePath))
}

// ListDirResponse is encoded as the list_dir answer.
type ListDirResponse struct {
	Dirs      []string `json:"dirs"`
	Files     []string `json:"files"`
	Truncated bool     `json:"truncated,omitempty"`
}

// -- Find File --

// FindFileRequest is the argument struct of find_file.
type FindFileRequest struct {
	FileMask     string `json:"file_mask" jsonschema_description:"The filename or file mask (using the wildcards * or ?) to search for."`
	RelativePath string `json:"relative_path" jsonschema_description:"The relative path to the directory to search in; pass \".\" to scan the workspace root."`
}

func (r *FindFileRequest) Validate() error {
	if r.FileMask == "" {
		return ErrPatternRequired
	}
	if _, err := filepath.Match(r.FileMask, ""); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidPattern, r.FileMask, err)
	}
	return nil
}

func (r *FindFileRequest) String() string {
	return fmt.Sprintf("Finding %s in %s", r.FileMask, displayPath(r.RelativePath))
}

// FindFileResponse is encoded as the find_file answer.
type FindFileResponse struct {
	Files     []string `json:"files"`
	Truncated bool     `json:"truncated,omitempty"`
}

func displayPath(p string) string {
	if p == "" {
		return "."
	}
	return p
}
