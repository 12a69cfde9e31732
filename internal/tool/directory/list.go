package directory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/repoqa/internal/tool"
	"github.com/Cyclone1070/repoqa/internal/workspace"
)

// ListDirTool lists the contents of a workspace directory.
type ListDirTool struct {
	ws *workspace.Workspace
}

// NewListDirTool binds a ListDirTool to a workspace.
func NewListDirTool(ws *workspace.Workspace) (*ListDirTool, error) {
	if ws == nil {
		return nil, fmt.Errorf("list_dir: workspace is required")
	}
	return &ListDirTool{ws: ws}, nil
}

// Doc is surfaced to the model as the tool description.
func (t *ListDirTool) Doc() string {
	return "Lists files and directories in the given directory (optionally with recursion). " +
		"Returns a JSON object with the names of directories and files within the given directory."
}

// Input returns a fresh argument struct.
func (t *ListDirTool) Input() any {
	return &ListDirRequest{}
}

// Apply runs list_dir with a *ListDirRequest.
func (t *ListDirTool) Apply(ctx context.Context, input any) (string, error) {
	req, ok := input.(*ListDirRequest)
	if !ok {
		return "", fmt.Errorf("list_dir: unexpected input %T", input)
	}
	resp, err := t.Run(ctx, req)
	if err != nil {
		return "", err
	}
	cfg := t.ws.Config()
	return tool.MarshalAnswer(resp, tool.MaxChars(req.MaxAnswerChars, cfg.Tools.DefaultMaxAnswerChars))
}

// Run lists the contents of a directory within the workspace.
// It validates that the path is within workspace boundaries, optionally respects
// gitignore rules, and returns directories and files in lexical walk order.
func (t *ListDirTool) Run(ctx context.Context, req *ListDirRequest) (*ListDirResponse, error) {
	abs, err := t.ws.ResolveDir(req.RelativePath)
	if err != nil {
		return nil, err
	}

	resp := &ListDirResponse{Dirs: []string{}, Files: []string{}}
	maxResults := t.ws.Config().Tools.MaxListDirectoryResults
	if err := t.listRecursive(ctx, abs, req, maxResults, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// listRecursive appends the entries of abs to resp, descending when requested.
// Symlinked directories are reported as files and never followed, so loops cannot occur.
func (t *ListDirTool) listRecursive(ctx context.Context, abs string, req *ListDirRequest, maxResults int, resp *ListDirResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}

	for _, entry := range entries {
		if len(resp.Dirs)+len(resp.Files) >= maxResults {
			resp.Truncated = true
			return nil
		}

		entryAbs := filepath.Join(abs, entry.Name())
		entryRel, err := t.ws.Rel(entryAbs)
		if err != nil {
			return err
		}

		if t.ws.Excluded(entryRel, entry.IsDir(), req.SkipIgnoredFiles) {
			continue
		}

		if !entry.IsDir() {
			resp.Files = append(resp.Files, entryRel)
			continue
		}

		resp.Dirs = append(resp.Dirs, entryRel)
		if req.Recursive {
			if err := t.listRecursive(ctx, entryAbs, req, maxResults, resp); err != nil {
				return err
			}
			if resp.Truncated {
				return nil
			}
		}
	}

	return nil
}
