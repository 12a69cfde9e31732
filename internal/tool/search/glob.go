package search

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// globFilter applies the include/exclude globs with gitignore semantics, so
// "*.go" matches at any depth and "**" spans directories.
type globFilter struct {
	include gitignore.Pattern
	exclude gitignore.Pattern
}

func newGlobFilter(include, exclude string) globFilter {
	var f globFilter
	if include = strings.TrimSpace(include); include != "" {
		f.include = gitignore.ParsePattern(include, nil)
	}
	if exclude = strings.TrimSpace(exclude); exclude != "" {
		f.exclude = gitignore.ParsePattern(exclude, nil)
	}
	return f
}

// allows reports whether the slash-separated relative file path passes both globs.
func (f globFilter) allows(relativePath string) bool {
	segments := strings.Split(relativePath, "/")
	if f.include != nil && f.include.Match(segments, false) != gitignore.Exclude {
		return false
	}
	if f.exclude != nil && f.exclude.Match(segments, false) == gitignore.Exclude {
		return false
	}
	return true
}
