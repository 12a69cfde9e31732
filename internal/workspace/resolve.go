package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &RootError{Root: root, Cause: err}
	}

	// Resolve symlinks in the workspace root to get canonical path
	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &RootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &RootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &RootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Abs resolves any path to absolute and validates it is within the workspace boundary.
// Relative paths are taken relative to the root. An empty path means the root itself.
func (w *Workspace) Abs(path string) (string, error) {
	var abs string
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Clean(filepath.Join(w.root, path))
	}

	// Boundary check: must be the root itself or a child of the root
	if !w.contains(abs) {
		return "", fmt.Errorf("%w: %s", ErrOutsideWorkspace, path)
	}

	return abs, nil
}

// Rel resolves any path to a slash-separated path relative to the workspace root.
// The root itself is returned as "".
func (w *Workspace) Rel(path string) (string, error) {
	abs, err := w.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(w.root, abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideWorkspace, path)
	}

	if rel == "." {
		return "", nil
	}

	return filepath.ToSlash(rel), nil
}

// ResolveDir resolves path and checks that it is an existing directory.
func (w *Workspace) ResolveDir(path string) (string, error) {
	abs, err := w.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return abs, nil
}

func (w *Workspace) contains(abs string) bool {
	if abs == w.root {
		return true
	}
	prefix := w.root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(abs, prefix)
}
