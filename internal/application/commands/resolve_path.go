package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nuttxconf/internal/application"
	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"
)

// ResolvePathResult contains the resolved defconfig for a chosen configuration
type ResolvePathResult struct {
	Board  string
	Conf   string
	Match  string
	Path   string
	Result string
}

// ResolvePathCommand locates the configs/<conf> directory of a chosen board,
// announces the defconfig and hands it to the document opener
type ResolvePathCommand struct {
	searcher  ports.DirectorySearcher
	opener    ports.DocumentOpener
	status    ports.StatusReporter
	logger    *zap.Logger
	Root      string
	Candidate domain.Candidate
	Pipeline  domain.Pipeline
	AwaitOpen bool // wait for the opener and fail the run with its error
}

// NewResolvePathCommand creates a new ResolvePathCommand
func NewResolvePathCommand(
	searcher ports.DirectorySearcher,
	opener ports.DocumentOpener,
	status ports.StatusReporter,
	root string,
	candidate domain.Candidate,
	pipeline domain.Pipeline,
) *ResolvePathCommand {
	return &ResolvePathCommand{
		searcher:  searcher,
		opener:    opener,
		status:    status,
		logger:    zap.NewNop(),
		Root:      root,
		Candidate: candidate,
		Pipeline:  pipeline,
	}
}

// WithLogger sets the logger used for opener failures
func (c *ResolvePathCommand) WithLogger(logger *zap.Logger) *ResolvePathCommand {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Validate checks the candidate is a board:conf pair
func (c *ResolvePathCommand) Validate() error {
	_, _, err := application.ValidateCandidate(c.Candidate)
	return err
}

// Execute runs the resolve path command
func (c *ResolvePathCommand) Execute(ctx context.Context) (*ResolvePathResult, error) {
	board, conf, err := application.ValidateCandidate(c.Candidate)
	if err != nil {
		return nil, err
	}

	matches, err := c.searcher.FindConfigDirs(ctx, c.Root, board, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to search for %s: %w", domain.SearchPattern(board, conf), err)
	}
	if len(matches) != 1 {
		return nil, &application.PathResolutionAmbiguousError{
			Pattern: domain.SearchPattern(board, conf),
			Matches: matches,
		}
	}

	path := domain.ComposeDefconfigPath(c.Root, matches[0])
	if c.status != nil {
		c.status.Writeln(fmt.Sprintf("Configuring for %s", path))
	}

	if err := c.open(ctx, path); err != nil {
		return nil, err
	}

	return &ResolvePathResult{
		Board:  board,
		Conf:   conf,
		Match:  matches[0],
		Path:   path,
		Result: c.Pipeline.FormatResult(c.Candidate),
	}, nil
}

func (c *ResolvePathCommand) open(ctx context.Context, path string) error {
	if c.opener == nil {
		return nil
	}

	if c.AwaitOpen {
		if err := c.opener.OpenFile(ctx, path); err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		return nil
	}

	openCtx := context.WithoutCancel(ctx)
	go func() {
		if err := c.opener.OpenFile(openCtx, path); err != nil {
			c.logger.Warn("failed to open defconfig", zap.String("path", path), zap.Error(err))
		}
	}()
	return nil
}
