package directory

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/Cyclone1070/repoqa/internal/tool"
	"github.com/Cyclone1070/repoqa/internal/workspace"
)

// FindFileTool finds files by name below a workspace directory.
type FindFileTool struct {
	ws *workspace.Workspace
}

// NewFindFileTool binds a FindFileTool to a workspace.
func NewFindFileTool(ws *workspace.Workspace) (*FindFileTool, error) {
	if ws == nil {
		return nil, fmt.Errorf("find_file: workspace is required")
	}
	return &FindFileTool{ws: ws}, nil
}

func (t *FindFileTool) Doc() string {
	return "Finds non-gitignored files matching the given file mask within the given relative path. " +
		"Returns a JSON object with the list of matching files."
}

func (t *FindFileTool) Input() any {
	return &FindFileRequest{}
}

func (t *FindFileTool) Apply(ctx context.Context, input any) (string, error) {
	req, ok := input.(*FindFileRequest)
	if !ok {
		return "", fmt.Errorf("find_file: unexpected input %T", input)
	}
	resp, err := t.Run(ctx, req)
	if err != nil {
		return "", err
	}
	return tool.MarshalAnswer(resp, t.ws.Config().Tools.DefaultMaxAnswerChars)
}

// Run walks the search directory and matches the file mask against each file name.
// Gitignored paths and .git are skipped.
func (t *FindFileTool) Run(ctx context.Context, req *FindFileRequest) (*FindFileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	absSearchPath, err := t.ws.ResolveDir(req.RelativePath)
	if err != nil {
		return nil, err
	}

	maxResults := t.ws.Config().Tools.MaxFindFileResults
	resp := &FindFileResponse{Files: []string{}}

	err = filepath.WalkDir(absSearchPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped rather than failing the whole search
			if d != nil && d.IsDir() && path != absSearchPath {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == absSearchPath {
			return nil
		}

		rel, relErr := t.ws.Rel(path)
		if relErr != nil {
			return relErr
		}
		if t.ws.Excluded(rel, d.IsDir(), true) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if matched, _ := filepath.Match(req.FileMask, d.Name()); matched {
			if len(resp.Files) >= maxResults {
				resp.Truncated = true
				return fs.SkipAll
			}
			resp.Files = append(resp.Files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
