// Package workspace binds tools to the repository they explore.
//
// A Workspace is created once per run and shared read-only by every tool
// instance: it owns the canonical root, the path boundary check and the
// ignore rules.
package workspace

import (
	"github.com/Cyclone1070/repoqa/internal/config"
)

// Workspace is the project handle tools operate against.
type Workspace struct {
	root    string
	cfg     *config.Config
	ignores *ignoreMatcher
}

// New canonicalises root and loads its .gitignore.
// cfg may be nil, in which case the default configuration is used.
func New(root string, cfg *config.Config) (*Workspace, error) {
	canonical, err := CanonicaliseRoot(root)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ignores, err := loadIgnoreMatcher(canonical)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		root:    canonical,
		cfg:     cfg,
		ignores: ignores,
	}, nil
}

// Root returns the canonical absolute workspace root.
func (w *Workspace) Root() string {
	return w.root
}

// Config returns the run configuration.
func (w *Workspace) Config() *config.Config {
	return w.cfg
}

// IsIgnored reports whether a workspace-relative path should be skipped when
// ignored files are excluded. Anything inside .git is always ignored.
func (w *Workspace) IsIgnored(relativePath string, isDir bool) bool {
	if hasGitSegment(relativePath) {
		return true
	}
	return w.ignores.match(relativePath, isDir)
}

// Excluded reports whether a walk should skip relativePath. Anything inside
// .git is always excluded; gitignore rules apply only when skipIgnored is set.
func (w *Workspace) Excluded(relativePath string, isDir, skipIgnored bool) bool {
	if hasGitSegment(relativePath) {
		return true
	}
	return skipIgnored && w.ignores.match(relativePath, isDir)
}
