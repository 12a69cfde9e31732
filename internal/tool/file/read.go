package file

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Cyclone1070/repoqa/internal/tool"
	"github.com/Cyclone1070/repoqa/internal/tool/textutil"
	"github.com/Cyclone1070/repoqa/internal/workspace"
)

// ReadFileTool reads text files from the workspace.
type ReadFileTool struct {
	ws *workspace.Workspace
}

// NewReadFileTool binds a ReadFileTool to a workspace.
func NewReadFileTool(ws *workspace.Workspace) (*ReadFileTool, error) {
	if ws == nil {
		return nil, fmt.Errorf("read_file: workspace is required")
	}
	return &ReadFileTool{ws: ws}, nil
}

func (t *ReadFileTool) Doc() string {
	return "Reads the given file or a chunk of it. Generally, symbolic operations like searching " +
		"should be preferred to reading entire files. Returns the full text of the file or of the requested line range."
}

func (t *ReadFileTool) Input() any {
	return &ReadFileRequest{}
}

func (t *ReadFileTool) Apply(ctx context.Context, input any) (string, error) {
	req, ok := input.(*ReadFileRequest)
	if !ok {
		return "", fmt.Errorf("read_file: unexpected input %T", input)
	}
	text, err := t.Run(ctx, req)
	if err != nil {
		return "", err
	}
	return tool.LimitAnswer(text, tool.MaxChars(req.MaxAnswerChars, t.ws.Config().Tools.DefaultMaxAnswerChars)), nil
}

// Run reads the requested line range of a file within the workspace.
// It validates the path is within workspace boundaries, enforces the size limit
// and rejects binary content.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *ReadFileTool) Run(ctx context.Context, req *ReadFileRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	abs, err := t.ws.Abs(req.RelativePath)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileMissing, req.RelativePath)
		}
		return "", fmt.Errorf("failed to stat %s: %w", req.RelativePath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, req.RelativePath)
	}

	maxFileSize := t.ws.Config().Tools.MaxFileSize
	if info.Size() > maxFileSize {
		return "", &TooLargeError{Path: req.RelativePath, Size: info.Size(), Limit: maxFileSize}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", req.RelativePath, err)
	}
	if textutil.IsBinary(data) {
		return "", fmt.Errorf("%w: %s", ErrBinaryFile, req.RelativePath)
	}

	if req.StartLine == 0 && req.EndLine <= 0 {
		return string(data), nil
	}

	lines := textutil.SplitLines(string(data))
	if req.StartLine >= len(lines) {
		return "", fmt.Errorf("%w: start_line %d is beyond the end of the file (%d lines)", ErrInvalidRange, req.StartLine, len(lines))
	}
	end := len(lines) - 1
	if req.EndLine > 0 && req.EndLine < end {
		end = req.EndLine
	}
	return strings.Join(lines[req.StartLine:end+1], "\n"), nil
}
