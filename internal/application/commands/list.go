package commands

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"nuttxconf/internal/application"
	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"
)

// ListResult contains the raw output of the listing script
type ListResult struct {
	Raw      string
	ExitCode int
}

// ListConfigurationsCommand runs the listing script once in the workspace root
type ListConfigurationsCommand struct {
	runner   ports.ProcessRunner
	logger   *zap.Logger
	Root     string
	Script   string // shell command line, see domain.ExpandScriptCommand
	Pipeline domain.Pipeline
	Timeout  time.Duration // zero waits for the script however long it takes
}

// NewListConfigurationsCommand creates a new ListConfigurationsCommand
func NewListConfigurationsCommand(runner ports.ProcessRunner, root, script string, pipeline domain.Pipeline) *ListConfigurationsCommand {
	return &ListConfigurationsCommand{
		runner:   runner,
		logger:   zap.NewNop(),
		Root:     root,
		Script:   script,
		Pipeline: pipeline,
	}
}

// WithLogger sets the logger used for script diagnostics
func (c *ListConfigurationsCommand) WithLogger(logger *zap.Logger) *ListConfigurationsCommand {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Execute runs the list configurations command
func (c *ListConfigurationsCommand) Execute(ctx context.Context) (*ListResult, error) {
	flag := c.Pipeline.ListFlag()
	unavailable := func(res *ports.ProcessResult, cause error) error {
		e := &application.ListingUnavailableError{Script: c.Script, Flag: flag, Cause: cause}
		if res != nil {
			e.Stderr = res.Stderr
		}
		return e
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	c.logger.Debug("running listing script",
		zap.String("script", c.Script),
		zap.String("flag", flag),
		zap.String("dir", c.Root))

	res, err := c.runner.Run(ctx, ports.ProcessRequest{
		Command: c.Script,
		Args:    []string{flag},
		Dir:     c.Root,
	})
	if err != nil {
		return nil, unavailable(res, err)
	}
	if res == nil || res.PID == 0 || strings.TrimSpace(res.Stdout) == "" {
		return nil, unavailable(res, nil)
	}

	if res.ExitCode != 0 {
		c.logger.Warn("listing script exited non-zero, using its output",
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", strings.TrimSpace(res.Stderr)))
	}

	return &ListResult{Raw: res.Stdout, ExitCode: res.ExitCode}, nil
}
