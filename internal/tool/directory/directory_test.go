package directory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/repoqa/internal/config"
	"github.com/Cyclone1070/repoqa/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWorkspace(t *testing.T, cfg *config.Config, files map[string]string) *workspace.Workspace {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	ws, err := workspace.New(root, cfg)
	require.NoError(t, err)
	return ws
}

var repoFiles = map[string]string{
	".gitignore":           "*.log\ndist/\n",
	".git/HEAD":            "ref: refs/heads/main\n",
	"README.md":            "# demo\n",
	"cmd/app/main.go":      "package main\n",
	"internal/a/a.go":      "package a\n",
	"internal/a/a_test.go": "package a\n",
	"debug.log":            "noise\n",
	"dist/bundle.js":       "x\n",
}

// --- list_dir ---

func TestListDir_NonRecursive_ReturnsImmediateChildren(t *testing.T) {
	ws := setupWorkspace(t, nil, repoFiles)
	tool, err := NewListDirTool(ws)
	require.NoError(t, err)

	resp, err := tool.Run(context.Background(), &ListDirRequest{RelativePath: "."})

	require.NoError(t, err)
	assert.Equal(t, []string{"cmd", "dist", "internal"}, resp.Dirs)
	assert.Equal(t, []string{".gitignore", "README.md", "debug.log"}, resp.Files)
	assert.False(t, resp.Truncated)
}

func TestListDir_Recursive_SkipIgnored(t *testing.T) {
	ws := setupWorkspace(t, nil, repoFiles)
	tool, _ := NewListDirTool(ws)

	resp, err := tool.Run(context.Background(), &ListDirRequest{RelativePath: ".", Recursive: true, SkipIgnoredFiles: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"cmd", "cmd/app", "internal", "internal/a"}, resp.Dirs)
	assert.ElementsMatch(t, []string{".gitignore", "README.md", "cmd/app/main.go", "internal/a/a.go", "internal/a/a_test.go"}, resp.Files)
}

func TestListDir_GitDirAlwaysHidden(t *testing.T) {
	ws := setupWorkspace(t, nil, repoFiles)
	tool, _ := NewListDirTool(ws)

	resp, err := tool.Run(context.Background(), &ListDirRequest{RelativePath: "", Recursive: true})

	require.NoError(t, err)
	assert.NotContains(t, resp.Dirs, ".git")
	assert.NotContains(t, resp.Files, ".git/HEAD")
	assert.Contains(t, resp.Files, "dist/bundle.js")
}

func TestListDir_Subdirectory(t *testing.T) {
	ws := setupWorkspace(t, nil, repoFiles)
	tool, _ := NewListDirTool(ws)

	resp, err := tool.Run(context.Background(), &ListDirRequest{RelativePath: "internal/a"})

	require.NoError(t, err)
	assert.Empty(t, resp.Dirs)
	assert.Equal(t, []string{"internal/a/a.go", "internal/a/a_test.go"}, resp.Files)
}

func TestListDir_CapHit_Truncates(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.MaxListDirectoryResults = 2
	ws := setupWorkspace(t, cfg, repoFiles)
	tool, _ := NewListDirTool(ws)

	resp, err := tool.Run(context.Background(), &ListDirRequest{RelativePath: ".", Recursive: true})

	require.NoError(t, err)
	assert.True(t, resp.Truncated)
	assert.Len(t, append(resp.Dirs, resp.Files...), 2)
}

func TestListDir_Errors(t *testing.T) {
	ws := setupWorkspace(t, nil, repoFiles)
	tool, _ := NewListDirTool(ws)

	_, err := tool.Run(context.Background(), &ListDirRequest{RelativePath: "../"})
	assert.ErrorIs(t, err, workspace.ErrOutsideWorkspace)

	_, err = tool.Run(context.Background(), &ListDirRequest{RelativePath: "README.md"})
	assert.ErrorIs(t, err, workspace.ErrNotADirectory)

	_, err = tool.Run(context.Background(), &ListDirRequest{RelativePath: "nope"})
	assert.ErrorIs(t, err, workspace.ErrNotExist)
}

func TestListDir_Apply_EncodesJSONAndLimits(t *testing.T) {
	ws := setupWorkspace(t, nil, repoFiles)
	tool, _ := NewListDirTool(ws)

	out, err := tool.Apply(context.Background(), &ListDirRequest{RelativePath: "internal/a"})
	require.NoError(t, err)
	var decoded ListDirResponse
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, []string{"internal/a/a.go", "internal/a/a_test.go"}, decoded.Files)

	out, err = tool.Apply(context.Background(), &ListDirRequest{RelativePath: ".", Recursive: true, MaxAnswerChars: 10})
	require.NoError(t, err)
	assert.Contains(t, out, "too long")
}

func TestListDir_Apply_WrongInputType(t *testing.T) {
	ws := setupWorkspace(t, nil, nil)
	tool, _ := NewListDirTool(ws)

	_, err := tool.Apply(context.Background(), &FindFileRequest{})
	assert.Error(t, err)
}

func TestNewListDirTool_NilWorkspace(t *testing.T) {
	_, err := NewListDirTool(nil)
	assert.Error(t, err)
}

// --- find_file ---

func TestFindFile_MatchesMaskAcrossTree(t *testing.T) {
	ws := setupWorkspace(t, nil, repoFiles)
	tool, _ := NewFindFileTool(ws)

	resp, err := tool.Run(context.Background(), &FindFileRequest{FileMask: "*.go", RelativePath: "."})

	require.NoError(t, err)
	assert.Equal(t, []string{"cmd/app/main.go", "internal/a/a.go", "internal/a/a_test.go"}, resp.Files)
}

func TestFindFile_SkipsIgnored(t *testing.T) {
	ws := setupWorkspace(t, nil, repoFiles)
	tool, _ := NewFindFileTool(ws)

	logs, err := tool.Run(context.Background(), &FindFileRequest{FileMask: "*.log", RelativePath: "."})
	require.NoError(t, err)
	assert.Empty(t, logs.Files)

	js, err := tool.Run(context.Background(), &FindFileRequest{FileMask: "*.js", RelativePath: "."})
	require.NoError(t, err)
	assert.Empty(t, js.Files)

	head, err := tool.Run(context.Background(), &FindFileRequest{FileMask: "HEAD", RelativePath: "."})
	require.NoError(t, err)
	assert.Empty(t, head.Files)
}

func TestFindFile_Subdirectory_QuestionMarkMask(t *testing.T) {
	ws := setupWorkspace(t, nil, repoFiles)
	tool, _ := NewFindFileTool(ws)

	resp, err := tool.Run(context.Background(), &FindFileRequest{FileMask: "?.go", RelativePath: "internal"})

	require.NoError(t, err)
	assert.Equal(t, []string{"internal/a/a.go"}, resp.Files)
}

func TestFindFile_CapHit_Truncates(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.MaxFindFileResults = 1
	ws := setupWorkspace(t, cfg, repoFiles)
	tool, _ := NewFindFileTool(ws)

	resp, err := tool.Run(context.Background(), &FindFileRequest{FileMask: "*.go", RelativePath: "."})

	require.NoError(t, err)
	assert.True(t, resp.Truncated)
	assert.Len(t, resp.Files, 1)
}

func TestFindFile_Validation(t *testing.T) {
	ws := setupWorkspace(t, nil, repoFiles)
	tool, _ := NewFindFileTool(ws)

	_, err := tool.Run(context.Background(), &FindFileRequest{RelativePath: "."})
	assert.ErrorIs(t, err, ErrPatternRequired)

	_, err = tool.Run(context.Background(), &FindFileRequest{FileMask: "[", RelativePath: "."})
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = tool.Run(context.Background(), &FindFileRequest{FileMask: "*.go", RelativePath: "/etc"})
	assert.ErrorIs(t, err, workspace.ErrOutsideWorkspace)
}

func TestFindFile_Apply(t *testing.T) {
	ws := setupWorkspace(t, nil, repoFiles)
	tool, _ := NewFindFileTool(ws)

	out, err := tool.Apply(context.Background(), &FindFileRequest{FileMask: "README.md", RelativePath: "."})

	require.NoError(t, err)
	assert.JSONEq(t, `{"files":["README.md"]}`, out)
}
