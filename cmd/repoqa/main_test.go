package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/repoqa/internal/provider"
)

// fakeOpenAI replays canned chat completion responses in order.
type fakeOpenAI struct {
	mu        sync.Mutex
	responses []map[string]any
	requests  []map[string]any
	status    int
}

func (f *fakeOpenAI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.requests = append(f.requests, body)

	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad key"}}`))
		return
	}

	i := len(f.requests) - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(f.responses[i])
}

func textChoice(text string) map[string]any {
	return map[string]any{"choices": []any{map[string]any{
		"message":       map[string]any{"role": "assistant", "content": text},
		"finish_reason": "stop",
	}}}
}

func toolChoice(id, name, args string) map[string]any {
	return map[string]any{"choices": []any{map[string]any{
		"message": map[string]any{
			"role":    "assistant",
			"content": "",
			"tool_calls": []any{map[string]any{
				"id":       id,
				"type":     "function",
				"function": map[string]any{"name": name, "arguments": args},
			}},
		},
		"finish_reason": "tool_calls",
	}}}
}

func setupRepo(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.go"), []byte("package x\n\nfunc X() int { return 42 }\n"), 0o644))
	return dir
}

func runCLI(t *testing.T, env provider.MapEnvironment, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, env, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_EndToEnd_PrintsBoundedAnswer(t *testing.T) {
	dir := setupRepo(t)
	fake := &fakeOpenAI{responses: []map[string]any{
		toolChoice("call_1", "list_dir", `{"relative_path":".","recursive":false}`),
		textChoice("X returns 42."),
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	code, out, _ := runCLI(t, provider.MapEnvironment{
		"OPENAI_API_KEY":  "sk-test",
		"OPENAI_BASE_URL": srv.URL,
	}, "--query", "What does function X do?", "--provider", "openai", "-C", dir)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Initializing QA Agent with model: gpt-5.2 (Provider: openai)")
	assert.Contains(t, out, "Loaded 5 tools")
	assert.Contains(t, out, "list_dir")

	header := strings.Index(out, "=== Agent Response ===")
	body := strings.Index(out, "X returns 42.")
	footer := strings.LastIndex(out, "======================")
	assert.True(t, header >= 0 && body > header && footer > body, out)

	require.Len(t, fake.requests, 2)
	assert.Len(t, fake.requests[0]["tools"], 5)
	msgs := fake.requests[1]["messages"].([]any)
	last := msgs[len(msgs)-1].(map[string]any)
	assert.Equal(t, "tool", last["role"])
	assert.Equal(t, "call_1", last["tool_call_id"])
	assert.Contains(t, last["content"], "x.go")
	first := msgs[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
}

func TestRun_ShortFlagsAndModelOverride(t *testing.T) {
	dir := setupRepo(t)
	fake := &fakeOpenAI{responses: []map[string]any{textChoice("ok")}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	code, out, _ := runCLI(t, provider.MapEnvironment{
		"OPENAI_API_KEY":  "sk-test",
		"OPENAI_BASE_URL": srv.URL,
		"MODEL_NAME":      "from-env",
	}, "-q", "hi", "-p", "openai", "-m", "from-flag", "-C", dir, "--raw")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "model: from-flag")
	require.Len(t, fake.requests, 1)
	assert.Equal(t, "from-flag", fake.requests[0]["model"])
}

func TestRun_MissingQuery_ExitsOne(t *testing.T) {
	code, out, _ := runCLI(t, provider.MapEnvironment{"OPENAI_API_KEY": "sk-test"})

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error: Query must be provided via --query argument.")
}

func TestRun_MissingCredential_ExitsOneWithoutModelCall(t *testing.T) {
	dir := setupRepo(t)
	fake := &fakeOpenAI{responses: []map[string]any{textChoice("never")}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	code, out, _ := runCLI(t, provider.MapEnvironment{"OPENAI_BASE_URL": srv.URL}, "-q", "hi", "-p", "openai", "-C", dir)

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "OPENAI_API_KEY environment variable is required for provider openai")
	assert.Empty(t, fake.requests)
}

func TestRun_UnknownProvider_ExitsOne(t *testing.T) {
	dir := setupRepo(t)

	code, out, _ := runCLI(t, provider.MapEnvironment{}, "-q", "hi", "-p", "mystery", "-C", dir)

	assert.Equal(t, 1, code)
	assert.Contains(t, out, `unsupported provider "mystery"`)
}

func TestRun_ProviderFailure_ReportsAndExitsZero(t *testing.T) {
	dir := setupRepo(t)
	fake := &fakeOpenAI{status: http.StatusUnauthorized}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	code, out, _ := runCLI(t, provider.MapEnvironment{
		"OPENAI_API_KEY":  "sk-bad",
		"OPENAI_BASE_URL": srv.URL,
	}, "-q", "hi", "-C", dir)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "An error occurred:")
	assert.NotContains(t, out, "=== Agent Response ===")
}

func TestRun_ProjectConfig_DisablesTool(t *testing.T) {
	dir := setupRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".repoqa.yaml"), []byte("tools:\n  disabled: [execute_shell_command]\n"), 0o644))
	fake := &fakeOpenAI{responses: []map[string]any{textChoice("ok")}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	code, out, _ := runCLI(t, provider.MapEnvironment{
		"OPENAI_API_KEY":  "sk-test",
		"OPENAI_BASE_URL": srv.URL,
	}, "-q", "hi", "-C", dir)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Loaded 4 tools")
}

func TestRun_BadFlag_ExitsTwo(t *testing.T) {
	code, _, errOut := runCLI(t, provider.MapEnvironment{}, "--nope")

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "flag provided but not defined")
}
