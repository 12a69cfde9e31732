// Package main provides the repoqa command: it answers one question about a
// repository by letting a hosted model explore it with read-only tools.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Cyclone1070/repoqa/internal/capability"
	"github.com/Cyclone1070/repoqa/internal/config"
	"github.com/Cyclone1070/repoqa/internal/provider"
	"github.com/Cyclone1070/repoqa/internal/provider/backend"
	"github.com/Cyclone1070/repoqa/internal/tool/registry"
	"github.com/Cyclone1070/repoqa/internal/ui"
	"github.com/Cyclone1070/repoqa/internal/workflow"
	"github.com/Cyclone1070/repoqa/internal/workflow/loop"
	"github.com/Cyclone1070/repoqa/internal/workflow/toolmanager"
	"github.com/Cyclone1070/repoqa/internal/workspace"
)

const answerWidth = 100

type options struct {
	query    string
	provider string
	model    string
	dir      string
	verbose  bool
	raw      bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("repoqa", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.query, "query", "", "question to answer about the repository")
	fs.StringVar(&opts.query, "q", "", "shorthand for --query")
	fs.StringVar(&opts.provider, "provider", "", fmt.Sprintf("model provider (%v)", provider.Supported()))
	fs.StringVar(&opts.provider, "p", "", "shorthand for --provider")
	fs.StringVar(&opts.model, "model", "", "model name, overrides MODEL_NAME and the provider default")
	fs.StringVar(&opts.model, "m", "", "shorthand for --model")
	fs.StringVar(&opts.dir, "dir", "", "repository root (default: current directory)")
	fs.StringVar(&opts.dir, "C", "", "shorthand for --dir")
	fs.BoolVar(&opts.verbose, "verbose", false, "log diagnostics to stderr")
	fs.BoolVar(&opts.raw, "raw", false, "print the answer without markdown rendering")

	err := fs.Parse(args)
	return opts, err
}

func main() {
	if _, err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], provider.OSEnvironment{}, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one query and returns the process exit status. Configuration
// problems exit 1 before any model call; failures during the run are
// reported and exit 0.
func run(ctx context.Context, args []string, env provider.Environment, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var renderer ui.MarkdownRenderer
	if !opts.raw && ui.IsTerminal(stdout) {
		renderer = ui.NewMarkdownRenderer(answerWidth)
	}
	console := ui.NewConsole(stdout, renderer)

	if opts.query == "" {
		fmt.Fprintln(stdout, "Error: Query must be provided via --query argument.")
		return 1
	}

	root := opts.dir
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			fmt.Fprintf(stdout, "Error: failed to get working directory: %v\n", err)
			return 1
		}
	}

	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}

	pcfg, err := provider.Resolve(opts.provider, opts.model, env, cfg.Provider.Default, cfg.Provider.DefaultModels)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	console.Progress("Initializing QA Agent with model: %s (Provider: %s)", pcfg.Model(), pcfg.Provider())
	logger.Debug("provider resolved", "provider", pcfg.Provider(), "model", pcfg.Model(), "credential", pcfg.CredentialVar())

	ws, err := workspace.New(root, cfg)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}

	console.Progress("Loading repository tools...")
	filter := capability.DefaultFilter()
	filter.Disabled = cfg.Tools.Disabled
	caps := capability.Discover(registry.Builtin(), ws, filter, logger)
	console.Progress("Loaded %d tools", caps.Len())
	logger.Debug("tools loaded", "names", caps.Names())

	model, err := backend.New(ctx, pcfg, cfg.Provider)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}

	console.Progress("Agent started. Processing query for provider: %s", pcfg.Provider())

	events := make(chan workflow.Event)
	done := make(chan struct{})
	go func() {
		defer close(done)
		console.Consume(events)
	}()

	agent := loop.NewLoop(model, toolmanager.NewToolManager(caps), events, cfg.Agent.MaxIterations)
	answer, err := agent.Run(ctx, workflow.SystemPrompt, opts.query)
	close(events)
	<-done

	if err != nil {
		console.Error(err)
		return 0
	}
	console.Answer(answer)
	return 0
}
