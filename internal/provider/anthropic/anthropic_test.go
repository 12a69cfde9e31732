package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Cyclone1070/repoqa/internal/provider"
	"github.com/Cyclone1070/repoqa/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string, inspect func(req messagesRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req messagesRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && inspect != nil {
			inspect(req)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate_TextResponse(t *testing.T) {
	var got messagesRequest
	srv := newServer(t, http.StatusOK,
		`{"id":"msg_1","role":"assistant","content":[{"type":"text","text":"Hello"},{"type":"text","text":" world"}],"stop_reason":"end_turn"}`,
		func(req messagesRequest) { got = req })
	m := New("sk-ant", srv.URL, "claude-test", 0, srv.Client())

	msg, err := m.Generate(context.Background(), []provider.Message{
		{Role: provider.RoleSystem, Content: "rules"},
		{Role: provider.RoleUser, Content: "hi"},
	}, []tool.Declaration{{Name: "list_dir", Description: "Lists."}})

	require.NoError(t, err)
	assert.Equal(t, "Hello world", msg.Content)

	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
	assert.Equal(t, "rules", got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	require.Len(t, got.Tools, 1)
	assert.JSONEq(t, `{"type":"object"}`, string(got.Tools[0].InputSchema))
}

func TestGenerate_ToolUse(t *testing.T) {
	srv := newServer(t, http.StatusOK,
		`{"content":[{"type":"text","text":"Let me look."},{"type":"tool_use","id":"toolu_1","name":"read_file","input":{"relative_path":"main.go"}}],"stop_reason":"tool_use"}`,
		nil)
	m := New("sk-ant", srv.URL, "claude-test", 512, srv.Client())

	msg, err := m.Generate(context.Background(), []provider.Message{{Role: provider.RoleUser, Content: "q"}}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Let me look.", msg.Content)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "toolu_1", msg.ToolCalls[0].ID)
	assert.Equal(t, "read_file", msg.ToolCalls[0].Function.Name)
	assert.JSONEq(t, `{"relative_path":"main.go"}`, string(msg.ToolCalls[0].Function.Arguments))
}

func TestToMessages_FoldsToolResultsIntoUserTurn(t *testing.T) {
	system, msgs := toMessages([]provider.Message{
		{Role: provider.RoleSystem, Content: "rules"},
		{Role: provider.RoleUser, Content: "q"},
		{Role: provider.RoleAssistant, ToolCalls: []provider.ToolCall{
			{ID: "a", Function: provider.FunctionCall{Name: "list_dir", Arguments: json.RawMessage(`{"relative_path":"."}`)}},
			{ID: "b", Function: provider.FunctionCall{Name: "find_file"}},
		}},
		{Role: provider.RoleTool, ToolCallID: "a", Content: "{}"},
		{Role: provider.RoleTool, ToolCallID: "b", Content: "[]"},
	})

	assert.Equal(t, "rules", system)
	require.Len(t, msgs, 3)
	assert.Equal(t, "assistant", msgs[1].Role)
	require.Len(t, msgs[1].Content, 2)
	assert.Equal(t, "tool_use", msgs[1].Content[0].Type)
	assert.JSONEq(t, `{}`, string(msgs[1].Content[1].Input))

	assert.Equal(t, "user", msgs[2].Role)
	require.Len(t, msgs[2].Content, 2)
	assert.Equal(t, "tool_result", msgs[2].Content[0].Type)
	assert.Equal(t, "a", msgs[2].Content[0].ToolUseID)
	assert.Equal(t, "b", msgs[2].Content[1].ToolUseID)
}

func TestGenerate_Overloaded_IsRetryable(t *testing.T) {
	srv := newServer(t, 529, `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`, nil)
	m := New("sk-ant", srv.URL, "claude-test", 0, srv.Client())

	_, err := m.Generate(context.Background(), []provider.Message{{Role: provider.RoleUser, Content: "q"}}, nil)

	assert.ErrorIs(t, err, provider.ErrServiceUnavailable)
	assert.True(t, provider.IsRetryable(err))
	assert.Contains(t, err.Error(), "Overloaded")
}

func TestGenerate_EmptyContent(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"content":[],"stop_reason":"max_tokens"}`, nil)
	m := New("sk-ant", srv.URL, "claude-test", 0, srv.Client())

	_, err := m.Generate(context.Background(), []provider.Message{{Role: provider.RoleUser, Content: "q"}}, nil)

	assert.ErrorIs(t, err, provider.ErrContextLengthExceeded)
}
