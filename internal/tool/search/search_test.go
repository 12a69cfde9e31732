package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/repoqa/internal/config"
	"github.com/Cyclone1070/repoqa/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSearchTool(t *testing.T, cfg *config.Config, files map[string]string) *SearchForPatternTool {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	ws, err := workspace.New(root, cfg)
	require.NoError(t, err)
	tool, err := NewSearchForPatternTool(ws)
	require.NoError(t, err)
	return tool
}

var repo = map[string]string{
	".gitignore":       "gen/\n",
	"main.go":          "package main\n\nfunc main() {\n\tRun()\n}\n",
	"internal/run.go":  "package internal\n\n// Run starts the app.\nfunc Run() {}\n",
	"internal/run.ts":  "export function Run() {}\n",
	"gen/generated.go": "func Run() {}\n",
	".git/config":      "Run\n",
	"docs/notes.md":    "call Run()\nthen stop\n",
	"assets/logo.bin":  "Run\x00\x01",
}

// --- HAPPY PATH TESTS ---

func TestSearch_FindsMatchesAndSkipsIgnored(t *testing.T) {
	tool := setupSearchTool(t, nil, repo)

	resp, err := tool.Run(context.Background(), &SearchForPatternRequest{SubstringPattern: `Run\(\) \{`})

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"internal/run.go": {">   3: func Run() {}"},
		"internal/run.ts": {">   0: export function Run() {}"},
	}, resp.Matches)
	assert.False(t, resp.Truncated)
}

func TestSearch_ContextLines(t *testing.T) {
	tool := setupSearchTool(t, nil, repo)

	resp, err := tool.Run(context.Background(), &SearchForPatternRequest{
		SubstringPattern:   `\tRun\(\)`,
		RelativePath:       "main.go",
		ContextLinesBefore: 1,
		ContextLinesAfter:  1,
	})

	require.NoError(t, err)
	require.Contains(t, resp.Matches, "main.go")
	assert.Equal(t, []string{"    2: func main() {\n>   3: \tRun()\n    4: }"}, resp.Matches["main.go"])
}

func TestSearch_MultilineMatch_MarksAllLines(t *testing.T) {
	tool := setupSearchTool(t, nil, repo)

	resp, err := tool.Run(context.Background(), &SearchForPatternRequest{SubstringPattern: `call.*stop`, RelativePath: "docs"})

	require.NoError(t, err)
	assert.Equal(t, []string{">   0: call Run()\n>   1: then stop"}, resp.Matches["docs/notes.md"])
}

func TestSearch_IncludeExcludeGlobs(t *testing.T) {
	tool := setupSearchTool(t, nil, repo)

	onlyGo, err := tool.Run(context.Background(), &SearchForPatternRequest{SubstringPattern: `Run`, PathsIncludeGlob: "*.go"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main.go", "internal/run.go"}, keys(onlyGo.Matches))

	deep, err := tool.Run(context.Background(), &SearchForPatternRequest{SubstringPattern: `Run`, PathsIncludeGlob: "internal/**/*.ts"})
	require.NoError(t, err)
	assert.Equal(t, []string{"internal/run.ts"}, keys(deep.Matches))

	noInternal, err := tool.Run(context.Background(), &SearchForPatternRequest{SubstringPattern: `Run`, PathsExcludeGlob: "internal"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main.go", "docs/notes.md"}, keys(noInternal.Matches))
}

func TestSearch_SkipsBinaryAndGitDir(t *testing.T) {
	tool := setupSearchTool(t, nil, repo)

	resp, err := tool.Run(context.Background(), &SearchForPatternRequest{SubstringPattern: `^Run`})

	require.NoError(t, err)
	assert.NotContains(t, resp.Matches, "assets/logo.bin")
	assert.NotContains(t, resp.Matches, ".git/config")
}

func TestSearch_CapHit_Truncates(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.MaxSearchResults = 2
	tool := setupSearchTool(t, cfg, repo)

	resp, err := tool.Run(context.Background(), &SearchForPatternRequest{SubstringPattern: `Run`})

	require.NoError(t, err)
	assert.True(t, resp.Truncated)
	count := 0
	for _, s := range resp.Matches {
		count += len(s)
	}
	assert.Equal(t, 2, count)
}

func TestSearch_Apply_EncodesJSON(t *testing.T) {
	tool := setupSearchTool(t, nil, repo)

	out, err := tool.Apply(context.Background(), &SearchForPatternRequest{SubstringPattern: `then stop`})

	require.NoError(t, err)
	assert.JSONEq(t, `{"matches":{"docs/notes.md":[">   1: then stop"]}}`, out)
}

// --- UNHAPPY PATH TESTS ---

func TestSearch_Validation(t *testing.T) {
	tool := setupSearchTool(t, nil, repo)

	_, err := tool.Run(context.Background(), &SearchForPatternRequest{})
	assert.ErrorIs(t, err, ErrPatternRequired)

	_, err = tool.Run(context.Background(), &SearchForPatternRequest{SubstringPattern: `(`})
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = tool.Run(context.Background(), &SearchForPatternRequest{SubstringPattern: `x`, ContextLinesAfter: -1})
	assert.ErrorIs(t, err, ErrInvalidContext)

	_, err = tool.Run(context.Background(), &SearchForPatternRequest{SubstringPattern: `x`, RelativePath: "../"})
	assert.ErrorIs(t, err, workspace.ErrOutsideWorkspace)

	_, err = tool.Run(context.Background(), &SearchForPatternRequest{SubstringPattern: `x`, RelativePath: "nope"})
	assert.ErrorIs(t, err, workspace.ErrNotExist)
}

func TestSearch_CancelledContext(t *testing.T) {
	tool := setupSearchTool(t, nil, repo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tool.Run(ctx, &SearchForPatternRequest{SubstringPattern: `Run`})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLineOf(t *testing.T) {
	starts := lineStarts("ab\ncd\n\nef")
	assert.Equal(t, []int{0, 3, 6, 7}, starts)
	assert.Equal(t, 0, lineOf(starts, 0))
	assert.Equal(t, 0, lineOf(starts, 2))
	assert.Equal(t, 1, lineOf(starts, 3))
	assert.Equal(t, 2, lineOf(starts, 6))
	assert.Equal(t, 3, lineOf(starts, 8))
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
