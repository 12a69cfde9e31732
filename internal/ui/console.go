// Package ui prints run progress and the final answer to a terminal or pipe.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Cyclone1070/repoqa/internal/workflow"
)

const (
	ResponseHeader = "=== Agent Response ==="
	ResponseFooter = "======================"
)

// Console writes line-oriented output. It is not safe for concurrent use;
// events are consumed on the goroutine that calls Consume.
type Console struct {
	out      io.Writer
	renderer MarkdownRenderer
}

// NewConsole creates a Console. A nil renderer prints answers verbatim.
func NewConsole(out io.Writer, renderer MarkdownRenderer) *Console {
	return &Console{out: out, renderer: renderer}
}

// Progress prints a status line.
func (c *Console) Progress(format string, args ...any) {
	fmt.Fprintln(c.out, ProgressStyle.Render(fmt.Sprintf(format, args...)))
}

// Answer prints the final answer between the response markers.
func (c *Console) Answer(text string) {
	body := text
	if c.renderer != nil {
		if rendered, err := c.renderer.Render(text); err == nil {
			body = strings.Trim(rendered, "\n")
		}
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, MarkerStyle.Render(ResponseHeader))
	fmt.Fprintln(c.out, body)
	fmt.Fprintln(c.out, MarkerStyle.Render(ResponseFooter))
}

// Error prints a run failure.
func (c *Console) Error(err error) {
	fmt.Fprintf(c.out, "An error occurred: %v\n", err)
}

// Consume prints tool activity until events is closed.
func (c *Console) Consume(events <-chan workflow.Event) {
	for ev := range events {
		c.Handle(ev)
	}
}

// Handle prints one event. Model text is left to Answer.
func (c *Console) Handle(ev workflow.Event) {
	switch e := ev.(type) {
	case workflow.ToolStartEvent:
		line := "→ " + ToolStyle.Render(e.ToolName)
		if e.RequestDisplay != "" {
			line += " " + DetailStyle.Render(e.RequestDisplay)
		}
		fmt.Fprintln(c.out, line)
	case workflow.ToolEndEvent:
		if e.Failed {
			fmt.Fprintln(c.out, "  "+FailedStyle.Render("✘ "+e.Summary))
		} else {
			fmt.Fprintln(c.out, "  "+DoneStyle.Render("✔ "+e.Summary))
		}
	}
}
