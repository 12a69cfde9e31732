// Package gemini implements provider.Model over the Google Gen AI SDK.
package gemini

import (
	"context"

	"github.com/Cyclone1070/repoqa/internal/provider"
	"github.com/Cyclone1070/repoqa/internal/tool"
)

// GeminiProvider is a Gemini model handle.
type GeminiProvider struct {
	client          GeminiClient
	modelName       string
	maxOutputTokens int32
}

// New creates a new GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string, maxOutputTokens int) *GeminiProvider {
	return &GeminiProvider{
		client:          client,
		modelName:       modelName,
		maxOutputTokens: int32(maxOutputTokens),
	}
}

// Generate sends the conversation to the Gemini API and returns the reply.
func (p *GeminiProvider) Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error) {
	system, contents := toGeminiContents(messages)

	config := toGeminiConfig(system, p.maxOutputTokens)
	if len(tools) > 0 {
		config.Tools = toGeminiTools(tools)
	}

	resp, err := p.client.GenerateContent(ctx, p.modelName, contents, config)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, mapGeminiError(err)
	}

	return fromGeminiResponse(resp)
}
