// Package openai implements provider.Model over the OpenAI chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Cyclone1070/repoqa/internal/provider"
	"github.com/Cyclone1070/repoqa/internal/tool"
)

const DefaultBaseURL = "https://api.openai.com/v1"

// Model is a chat completions model handle.
type Model struct {
	apiKey          string
	baseURL         string
	model           string
	maxOutputTokens int
	http            *http.Client
}

// New creates a Model. An empty baseURL selects DefaultBaseURL.
func New(apiKey, baseURL, model string, maxOutputTokens int, client *http.Client) *Model {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Model{apiKey: apiKey, baseURL: baseURL, model: model, maxOutputTokens: maxOutputTokens, http: client}
}

func (m *Model) Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error) {
	req := chatRequest{
		Model:               m.model,
		Messages:            toMessages(messages),
		Tools:               toTools(tools),
		MaxCompletionTokens: m.maxOutputTokens,
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+m.apiKey)

	var resp chatResponse
	if err := provider.PostJSON(ctx, m.http, m.baseURL+"/chat/completions", header, req, &resp); err != nil {
		return nil, err
	}
	return fromResponse(&resp)
}

func toMessages(messages []provider.Message) []message {
	out := make([]message, 0, len(messages))
	for _, msg := range messages {
		m := message{
			Role:       string(msg.Role),
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		for _, tc := range msg.ToolCalls {
			args := string(tc.Function.Arguments)
			if args == "" {
				args = "{}"
			}
			m.ToolCalls = append(m.ToolCalls, toolCall{
				ID:       tc.ID,
				Type:     "function",
				Function: functionCall{Name: tc.Function.Name, Arguments: args},
			})
		}
		out = append(out, m)
	}
	return out
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
		defs = append(defs, toolDef{
			Type: "function",
			Function: functionDef{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  raw,
			},
		})
	}
	return defs
}

func fromResponse(resp *chatResponse) (*provider.Message, error) {
	if len(resp.Choices) == 0 {
		return nil, &provider.ProviderError{Code: provider.ErrorCodeEmptyResponse, Message: "no choices in response"}
	}
	c := resp.Choices[0]
	switch c.FinishReason {
	case "content_filter":
		return nil, &provider.ProviderError{Code: provider.ErrorCodeContentBlocked, Message: "content blocked by safety filters"}
	case "length":
		if len(c.Message.ToolCalls) == 0 && c.Message.Content == "" {
			return nil, &provider.ProviderError{Code: provider.ErrorCodeContextLength, Message: "response truncated due to max tokens"}
		}
	}

	msg := &provider.Message{Role: provider.RoleAssistant, Content: c.Message.Content}
	for _, tc := range c.Message.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, provider.ToolCall{
			ID: tc.ID,
			Function: provider.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: json.RawMessage(tc.Function.Arguments),
			},
		})
	}
	return msg, nil
}
