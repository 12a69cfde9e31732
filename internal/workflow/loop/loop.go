// Package loop alternates model turns and tool calls until the model answers.
package loop

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/repoqa/internal/provider"
	"github.com/Cyclone1070/repoqa/internal/workflow"
)

type Loop struct {
	provider      provider.Model
	tools         toolManager
	events        chan<- workflow.Event
	maxIterations int
}

func NewLoop(provider provider.Model, tools toolManager, events chan<- workflow.Event, maxIterations int) *Loop {
	return &Loop{
		provider:      provider,
		tools:         tools,
		events:        events,
		maxIterations: maxIterations,
	}
}

// Run asks query under the system prompt and returns the model's final answer.
// Tool calls are executed serially in the order the model requested them.
func (l *Loop) Run(ctx context.Context, system, query string) (string, error) {
	messages := make([]provider.Message, 0, 2)
	if system != "" {
		messages = append(messages, provider.Message{Role: provider.RoleSystem, Content: system})
	}
	messages = append(messages, provider.Message{Role: provider.RoleUser, Content: query})

	defer func() {
		if l.events != nil {
			l.events <- workflow.DoneEvent{}
		}
	}()

	for i := 0; i < l.maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if l.events != nil {
			l.events <- workflow.ThinkingEvent{}
		}

		resp, err := l.provider.Generate(ctx, messages, l.tools.Declarations())
		if err != nil {
			return "", fmt.Errorf("provider.Generate: %w", err)
		}

		messages = append(messages, *resp)

		if resp.Content != "" && l.events != nil {
			l.events <- workflow.TextEvent{Text: resp.Content}
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		for _, tc := range resp.ToolCalls {
			toolResp, err := l.tools.Execute(ctx, tc, l.events)
			if err != nil {
				return "", fmt.Errorf("tools.Execute (%s): %w", tc.Function.Name, err)
			}
			messages = append(messages, toolResp)
		}
	}

	return "", fmt.Errorf("max iterations (%d) reached", l.maxIterations)
}
