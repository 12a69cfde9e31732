// Package provider holds the conversation model shared by all LLM backends,
// the provider error taxonomy and provider resolution.
package provider

import (
	"context"
	"encoding/json"

	"github.com/Cyclone1070/repoqa/internal/tool"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of the conversation.
type Message struct {
	Role    Role
	Content string

	// ToolCalls is set on assistant messages that request tool invocations.
	ToolCalls []ToolCall

	// ToolCallID and ToolName are set on tool messages.
	ToolCallID string
	ToolName   string
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID       string
	Function FunctionCall

	// Signature is an opaque token some providers attach to a call and
	// expect back in the history (Gemini thought signatures).
	Signature []byte
}

// FunctionCall names the tool and carries its JSON-encoded arguments.
type FunctionCall struct {
	Name      string
	Arguments json.RawMessage
}

// Model is a handle on one model of one provider.
type Model interface {
	// Generate sends the conversation and the available tools to the model
	// and returns its reply as an assistant message.
	Generate(ctx context.Context, messages []Message, tools []tool.Declaration) (*Message, error)
}
