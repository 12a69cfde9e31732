package search

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Cyclone1070/repoqa/internal/tool"
	"github.com/Cyclone1070/repoqa/internal/tool/textutil"
	"github.com/Cyclone1070/repoqa/internal/workspace"
)

// SearchForPatternTool searches file contents with a regular expression.
type SearchForPatternTool struct {
	ws *workspace.Workspace
}

// NewSearchForPatternTool binds a SearchForPatternTool to a workspace.
func NewSearchForPatternTool(ws *workspace.Workspace) (*SearchForPatternTool, error) {
	if ws == nil {
		return nil, fmt.Errorf("search_for_pattern: workspace is required")
	}
	return &SearchForPatternTool{ws: ws}, nil
}

func (t *SearchForPatternTool) Doc() string {
	return "Offers a flexible search for arbitrary patterns in the codebase, including the possibility " +
		"to search in non-code files. Gitignored files and binary files are skipped. " +
		"Returns a JSON object mapping file paths to lists of matched snippets; match lines are marked with \">\" " +
		"and line numbers are 0-based, as in read_file."
}

func (t *SearchForPatternTool) Input() any {
	return &SearchForPatternRequest{}
}

func (t *SearchForPatternTool) Apply(ctx context.Context, input any) (string, error) {
	req, ok := input.(*SearchForPatternRequest)
	if !ok {
		return "", fmt.Errorf("search_for_pattern: unexpected input %T", input)
	}
	resp, err := t.Run(ctx, req)
	if err != nil {
		return "", err
	}
	return tool.MarshalAnswer(resp, tool.MaxChars(req.MaxAnswerChars, t.ws.Config().Tools.DefaultMaxAnswerChars))
}

// Run collects candidate files below the requested path and scans them concurrently.
// Results are assembled in walk order so the answer is deterministic.
func (t *SearchForPatternTool) Run(ctx context.Context, req *SearchForPatternRequest) (*SearchForPatternResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	re, err := compile(req.SubstringPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	files, err := t.candidates(ctx, req)
	if err != nil {
		return nil, err
	}

	cfg := t.ws.Config().Tools
	results := make([][]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = t.scanFile(rel, re, req, cfg.MaxFileSize, cfg.MaxLineLength)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &SearchForPatternResponse{Matches: make(map[string][]string)}
	total := 0
	for i, snippets := range results {
		if len(snippets) == 0 {
			continue
		}
		if total+len(snippets) > cfg.MaxSearchResults {
			snippets = snippets[:cfg.MaxSearchResults-total]
			resp.Truncated = true
		}
		if len(snippets) > 0 {
			resp.Matches[files[i]] = snippets
		}
		total += len(snippets)
		if resp.Truncated {
			break
		}
	}

	return resp, nil
}

// candidates lists the workspace-relative files the search covers.
func (t *SearchForPatternTool) candidates(ctx context.Context, req *SearchForPatternRequest) ([]string, error) {
	abs, err := t.ws.Abs(req.RelativePath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", workspace.ErrNotExist, req.RelativePath)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", req.RelativePath, err)
	}

	globs := newGlobFilter(req.PathsIncludeGlob, req.PathsExcludeGlob)

	if !info.IsDir() {
		rel, err := t.ws.Rel(abs)
		if err != nil {
			return nil, err
		}
		if !globs.allows(rel) {
			return nil, nil
		}
		return []string{rel}, nil
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != abs {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == abs {
			return nil
		}
		rel, relErr := t.ws.Rel(path)
		if relErr != nil {
			return relErr
		}
		if t.ws.Excluded(rel, d.IsDir(), true) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && globs.allows(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// scanFile returns the formatted snippets of every match in one file.
// Unreadable, oversized and binary files yield no snippets.
func (t *SearchForPatternTool) scanFile(rel string, re *regexp.Regexp, req *SearchForPatternRequest, maxFileSize int64, maxLineLength int) []string {
	abs := filepath.Join(t.ws.Root(), filepath.FromSlash(rel))
	info, err := os.Stat(abs)
	if err != nil || info.Size() > maxFileSize {
		return nil
	}
	data, err := os.ReadFile(abs)
	if err != nil || textutil.IsBinary(data) {
		return nil
	}

	content := string(data)
	lines := textutil.SplitLines(content)
	if len(lines) == 0 {
		return nil
	}
	locs := re.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}

	starts := lineStarts(content)

	snippets := make([]string, 0, len(locs))
	for _, loc := range locs {
		first := lineOf(starts, loc[0])
		last := first
		if loc[1] > loc[0] {
			last = lineOf(starts, loc[1]-1)
		}
		from := max(0, first-req.ContextLinesBefore)
		to := min(len(lines)-1, last+req.ContextLinesAfter)

		var b strings.Builder
		for i := from; i <= to; i++ {
			marker := " "
			if i >= first && i <= last {
				marker = ">"
			}
			if i > from {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%s%4d: %s", marker, i, textutil.TruncateLine(lines[i], maxLineLength))
		}
		snippets = append(snippets, b.String())
	}
	return snippets
}

// lineStarts returns the byte offset at which each line begins.
func lineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineOf returns the 0-based line containing byte offset.
func lineOf(starts []int, offset int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
}
