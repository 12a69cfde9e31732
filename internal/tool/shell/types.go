package shell

import "strings"

// ExecuteShellCommandRequest is the argument struct of execute_shell_command.
type ExecuteShellCommandRequest struct {
	Command        string `json:"command" jsonschema_description:"The shell command to execute."`
	Cwd            string `json:"cwd,omitempty" jsonschema_description:"The working directory relative to the workspace root. Leave empty to run in the workspace root."`
	CaptureStderr  *bool  `json:"capture_stderr,omitempty" jsonschema_description:"Whether to capture and return stderr output." jsonschema:"default=true"`
	MaxAnswerChars int    `json:"max_answer_chars,omitempty" jsonschema_description:"If the output is longer than this number of characters, no content is returned. Leave unset to use the default." jsonschema:"default=-1"`
}

func (r *ExecuteShellCommandRequest) Validate() error {
	if strings.TrimSpace(r.Command) == "" {
		return ErrCommandRequired
	}
	if r.MaxAnswerChars < -1 {
		return ErrNegativeLimit
	}
	return nil
}

func (r *ExecuteShellCommandRequest) captureStderr() bool {
	return r.CaptureStderr == nil || *r.CaptureStderr
}

func (r *ExecuteShellCommandRequest) String() string {
	if r.Cwd != "" {
		return "Running `" + r.Command + "` in " + r.Cwd
	}
	return "Running `" + r.Command + "`"
}

// ExecuteShellCommandResponse is encoded as the execute_shell_command answer.
type ExecuteShellCommandResponse struct {
	Stdout    string `json:"stdout"`
	Stderr    string `json:"stderr,omitempty"`
	ExitCode  int    `json:"exit_code"`
	Truncated bool   `json:"truncated,omitempty"`
	TimedOut  bool   `json:"timed_out,omitempty"`
}
