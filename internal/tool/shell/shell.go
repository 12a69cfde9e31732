// Package shell provides the execute_shell_command tool.
package shell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Cyclone1070/repoqa/internal/tool"
	"github.com/Cyclone1070/repoqa/internal/workspace"
)

// ExecuteShellCommandTool runs a command with the workspace as its sandbox root.
type ExecuteShellCommandTool struct {
	ws       *workspace.Workspace
	executor *executor
	timeout  time.Duration
}

// NewExecuteShellCommandTool binds an ExecuteShellCommandTool to a workspace.
func NewExecuteShellCommandTool(ws *workspace.Workspace) (*ExecuteShellCommandTool, error) {
	if ws == nil {
		return nil, fmt.Errorf("execute_shell_command: workspace is required")
	}
	cfg := ws.Config().Tools
	return &ExecuteShellCommandTool{
		ws:       ws,
		executor: newExecutor(cfg.MaxCommandOutputSize),
		timeout:  time.Duration(cfg.DefaultShellTimeout) * time.Second,
	}, nil
}

func (t *ExecuteShellCommandTool) Doc() string {
	return "Executes a shell command and returns its output. Use it for read-only inspection such as " +
		"git log or running a build. Never execute unsafe commands like rm -rf or commands that " +
		"require interactive input. Returns a JSON object with stdout, stderr and exit_code."
}

func (t *ExecuteShellCommandTool) Input() any {
	return &ExecuteShellCommandRequest{}
}

func (t *ExecuteShellCommandTool) Apply(ctx context.Context, input any) (string, error) {
	req, ok := input.(*ExecuteShellCommandRequest)
	if !ok {
		return "", fmt.Errorf("execute_shell_command: unexpected input %T", input)
	}
	resp, err := t.Run(ctx, req)
	if err != nil {
		return "", err
	}
	return tool.MarshalAnswer(resp, tool.MaxChars(req.MaxAnswerChars, t.ws.Config().Tools.DefaultMaxAnswerChars))
}

// Run executes the command in the requested directory. A timeout is reported
// in the response rather than as an error so the partial output survives.
func (t *ExecuteShellCommandTool) Run(ctx context.Context, req *ExecuteShellCommandRequest) (*ExecuteShellCommandResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	dir, err := t.ws.ResolveDir(req.Cwd)
	if err != nil {
		return nil, err
	}

	res, err := t.executor.RunWithTimeout(ctx, req.Command, dir, req.captureStderr(), t.timeout)
	if err != nil && !errors.Is(err, ErrTimeout) {
		return nil, err
	}

	return &ExecuteShellCommandResponse{
		Stdout:    res.Stdout,
		Stderr:    res.Stderr,
		ExitCode:  res.ExitCode,
		Truncated: res.Truncated,
		TimedOut:  errors.Is(err, ErrTimeout),
	}, nil
}
