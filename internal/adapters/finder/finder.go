package finder

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"
)

const (
	KindFind = "find"
	KindWalk = "walk"
)

// Selecting picks the find or walk searcher on every call, so a settings
// reload can switch between them
type Selecting struct {
	kind func() string
	find *FindSearcher
	walk *WalkSearcher
}

// NewSelecting creates a searcher that asks kind which strategy to use
func NewSelecting(kind func() string, runner ports.ProcessRunner) *Selecting {
	return &Selecting{kind: kind, find: NewFindSearcher(runner), walk: NewWalkSearcher()}
}

// FindConfigDirs implements ports.DirectorySearcher
func (s *Selecting) FindConfigDirs(ctx context.Context, root, board, conf string) ([]string, error) {
	if s.kind() == KindWalk {
		return s.walk.FindConfigDirs(ctx, root, board, conf)
	}
	return s.find.FindConfigDirs(ctx, root, board, conf)
}

// FindSearcher implements ports.DirectorySearcher with find(1)
type FindSearcher struct {
	runner ports.ProcessRunner
}

// NewFindSearcher creates a searcher that runs find through runner
func NewFindSearcher(runner ports.ProcessRunner) *FindSearcher {
	return &FindSearcher{runner: runner}
}

// FindConfigDirs runs find . -type d -wholename '*/<board>/configs/<conf>' in root
func (s *FindSearcher) FindConfigDirs(ctx context.Context, root, board, conf string) ([]string, error) {
	res, err := s.runner.Run(ctx, ports.ProcessRequest{
		Command: "find",
		Args:    []string{".", "-type", "d", "-wholename", domain.SearchPattern(board, conf)},
		Dir:     root,
	})
	if err != nil {
		return nil, fmt.Errorf("find failed: %w", err)
	}

	matches := parseLines(res.Stdout)
	// find exits 1 on unreadable subtrees but still reports what it saw
	if len(matches) == 0 && res.ExitCode != 0 {
		return nil, fmt.Errorf("find exited with status %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return matches, nil
}

func parseLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// WalkSearcher implements ports.DirectorySearcher by walking the tree
// in-process. It does not need find(1) on PATH.
type WalkSearcher struct {
	fsys func(root string) fs.FS
}

// NewWalkSearcher creates a searcher over the OS filesystem
func NewWalkSearcher() *WalkSearcher {
	return &WalkSearcher{fsys: os.DirFS}
}

// FindConfigDirs walks root for directories matching **/<board>/configs/<conf>
func (s *WalkSearcher) FindConfigDirs(ctx context.Context, root, board, conf string) ([]string, error) {
	pattern := "**/" + board + "/configs/" + conf
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid search pattern %q", pattern)
	}

	var matches []string
	err := doublestar.GlobWalk(s.fsys(root), pattern, func(path string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			matches = append(matches, "./"+path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(matches)
	return matches, nil
}
