package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ignoreMatcher implements gitignore pattern matching using go-git's gitignore matcher.
// A nil matcher never ignores.
type ignoreMatcher struct {
	matcher gitignore.Matcher
}

// loadIgnoreMatcher loads .gitignore from the workspace root.
// Returns a matcher that never ignores if .gitignore doesn't exist (no error).
func loadIgnoreMatcher(root string) (*ignoreMatcher, error) {
	gitignorePath := filepath.Join(root, ".gitignore")

	data, err := os.ReadFile(gitignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &ignoreMatcher{}, nil
		}
		return nil, &GitignoreReadError{Path: gitignorePath, Cause: err}
	}

	// Parse gitignore patterns line by line
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}

	return &ignoreMatcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// match reports whether a relative path matches any gitignore pattern.
func (m *ignoreMatcher) match(relativePath string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

// splitPath splits a path into segments for gitignore matching.
// It normalizes path separators and filters out empty and "." segments.
func splitPath(path string) []string {
	if path == "" {
		return []string{}
	}

	parts := strings.Split(filepath.ToSlash(path), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}

	return segments
}

// hasGitSegment reports whether any path segment is ".git".
func hasGitSegment(relativePath string) bool {
	for _, seg := range splitPath(relativePath) {
		if seg == ".git" {
			return true
		}
	}
	return false
}
