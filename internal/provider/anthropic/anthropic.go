// Package anthropic implements provider.Model over the Anthropic messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Cyclone1070/repoqa/internal/provider"
	"github.com/Cyclone1070/repoqa/internal/tool"
)

const (
	DefaultBaseURL = "https://api.anthropic.com/v1"
	apiVersion     = "2023-06-01"

	// defaultMaxTokens is sent when none is configured; the API requires one.
	defaultMaxTokens = 8192
)

// Model is a messages API model handle.
type Model struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	http      *http.Client
}

// New creates a Model. An empty baseURL selects DefaultBaseURL.
func New(apiKey, baseURL, model string, maxOutputTokens int, client *http.Client) *Model {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxOutputTokens <= 0 {
		maxOutputTokens = defaultMaxTokens
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Model{apiKey: apiKey, baseURL: baseURL, model: model, maxTokens: maxOutputTokens, http: client}
}

func (m *Model) Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error) {
	system, msgs := toMessages(messages)
	req := messagesRequest{
		Model:     m.model,
		MaxTokens: m.maxTokens,
		System:    system,
		Messages:  msgs,
		Tools:     toTools(tools),
	}

	header := http.Header{}
	header.Set("x-api-key", m.apiKey)
	header.Set("anthropic-version", apiVersion)

	var resp messagesResponse
	if err := provider.PostJSON(ctx, m.http, m.baseURL+"/messages", header, req, &resp); err != nil {
		return nil, err
	}
	return fromResponse(&resp)
}

// toMessages lifts system messages into the system field and folds tool
// results into user turns, merging consecutive turns of the same role.
func toMessages(messages []provider.Message) (string, []message) {
	var system []string
	var out []message

	appendBlocks := func(role string, blocks []contentBlock) {
		if len(blocks) == 0 {
			return
		}
		if n := len(out); n > 0 && out[n-1].Role == role {
			out[n-1].Content = append(out[n-1].Content, blocks...)
			return
		}
		out = append(out, message{Role: role, Content: blocks})
	}

	for _, msg := range messages {
		switch msg.Role {
		case provider.RoleSystem:
			if msg.Content != "" {
				system = append(system, msg.Content)
			}
		case provider.RoleTool:
			appendBlocks("user", []contentBlock{{
				Type:      "tool_result",
				ToolUseID: msg.ToolCallID,
				Content:   msg.Content,
			}})
		case provider.RoleAssistant:
			var blocks []contentBlock
			if msg.Content != "" {
				blocks = append(blocks, contentBlock{Type: "text", Text: msg.Content})
			}
			for _, tc := range msg.ToolCalls {
				input := tc.Function.Arguments
				if len(input) == 0 {
					input = json.RawMessage(`{}`)
				}
				blocks = append(blocks, contentBlock{Type: "tool_use", ID: tc.ID, Name: tc.Function.Name, Input: input})
			}
			appendBlocks("assistant", blocks)
		default:
			if msg.Content != "" {
				appendBlocks("user", []contentBlock{{Type: "text", Text: msg.Content}})
			}
		}
	}
	return strings.Join(system, "\n\n"), out
}

func toTools(decls []tool.Declaration) []toolDef {
	if len(decls) == 0 {
		return nil
	}
	defs := make([]toolDef, 0, len(decls))
	for _, d := range decls {
		params := d.Parameters
		if params == nil {
			params = tool.ObjectSchema()
		}
		raw, _ := json.Marshal(params)
		defs = append(defs, toolDef{Name: d.Name, Description: d.Description, InputSchema: raw})
	}
	return defs
}

func fromResponse(resp *messagesResponse) (*provider.Message, error) {
	if resp.StopReason == "refusal" {
		return nil, &provider.ProviderError{Code: provider.ErrorCodeContentBlocked, Message: "content blocked by safety filters"}
	}

	msg := &provider.Message{Role: provider.RoleAssistant}
	var text strings.Builder
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			text.WriteString(block.Text)
		case "tool_use":
			msg.ToolCalls = append(msg.ToolCalls, provider.ToolCall{
				ID:       block.ID,
				Function: provider.FunctionCall{Name: block.Name, Arguments: block.Input},
			})
		}
	}
	msg.Content = text.String()

	if msg.Content == "" && len(msg.ToolCalls) == 0 {
		if resp.StopReason == "max_tokens" {
			return nil, &provider.ProviderError{Code: provider.ErrorCodeContextLength, Message: "response truncated due to max tokens"}
		}
		return nil, &provider.ProviderError{Code: provider.ErrorCodeEmptyResponse, Message: "no content in response"}
	}
	return msg, nil
}
