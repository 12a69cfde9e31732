package toolmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Cyclone1070/repoqa/internal/provider"
	"github.com/Cyclone1070/repoqa/internal/tool"
	"github.com/Cyclone1070/repoqa/internal/workflow"
)

type ToolManager struct {
	caps capabilities
}

func NewToolManager(caps capabilities) *ToolManager {
	return &ToolManager{caps: caps}
}

func (m *ToolManager) Declarations() []tool.Declaration {
	return m.caps.Declarations()
}

// Execute answers one tool call. Unknown tools, malformed arguments and
// failed invocations are reported to the model in the returned message;
// only context cancellation is returned as an error.
func (m *ToolManager) Execute(ctx context.Context, tc provider.ToolCall, events chan<- workflow.Event) (provider.Message, error) {
	name := tc.Function.Name

	c, ok := m.caps.Get(name)
	if !ok {
		declsJSON, _ := json.MarshalIndent(m.caps.Declarations(), "", "  ")
		errMsg := fmt.Sprintf("Error: tool %q does not exist.\n\nAvailable tools:\n%s", name, declsJSON)
		emitRejected(events, name)
		return toolMessage(tc, errMsg), nil
	}

	args, err := parseArguments(tc.Function.Arguments)
	if err != nil {
		declJSON, _ := json.MarshalIndent(c.Declaration(), "", "  ")
		errMsg := fmt.Sprintf("Error: invalid arguments for tool %q: %v\n\nExpected schema:\n%s", name, err, declJSON)
		emitRejected(events, name)
		return toolMessage(tc, errMsg), nil
	}

	if events != nil {
		events <- workflow.ToolStartEvent{
			ToolName:       name,
			RequestDisplay: c.Display(args),
		}
	}

	result, err := c.Invoke(ctx, args)

	if ctxErr := ctx.Err(); ctxErr != nil {
		if events != nil {
			events <- workflow.ToolEndEvent{ToolName: name, Summary: "Cancelled", Failed: true}
		}
		return provider.Message{}, ctxErr
	}

	if err != nil {
		if events != nil {
			events <- workflow.ToolEndEvent{ToolName: name, Summary: firstLine(err.Error()), Failed: true}
		}
		return toolMessage(tc, "Error: "+err.Error()), nil
	}

	if events != nil {
		events <- workflow.ToolEndEvent{ToolName: name, Summary: humanize.Bytes(uint64(len(result)))}
	}
	return toolMessage(tc, result), nil
}

func parseArguments(raw json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func toolMessage(tc provider.ToolCall, content string) provider.Message {
	return provider.Message{
		Role:       provider.RoleTool,
		ToolCallID: tc.ID,
		ToolName:   tc.Function.Name,
		Content:    content,
	}
}

func emitRejected(events chan<- workflow.Event, name string) {
	if events == nil {
		return
	}
	events <- workflow.ToolStartEvent{ToolName: name}
	events <- workflow.ToolEndEvent{ToolName: name, Summary: "Invalid tool request", Failed: true}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
