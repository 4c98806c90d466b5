package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nuttxconf/internal/application"
	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"
)

// Deps are the collaborators a configure run calls through
type Deps struct {
	Settings  ports.SettingsSource
	Workspace ports.WorkspaceProvider
	Runner    ports.ProcessRunner
	Searcher  ports.DirectorySearcher
	Prompter  ports.Prompter
	Opener    ports.DocumentOpener
	Status    ports.StatusReporter
	History   ports.HistoryStore // optional
	Logger    *zap.Logger        // optional
}

// Options tune a configure run
type Options struct {
	LoadingDelay   time.Duration // pause after showing the loading indicator
	ListTimeout    time.Duration // zero means no timeout
	KeepBlankLines bool
	AwaitOpen      bool
}

// ConfigureResult contains the outcome of a complete configure run
type ConfigureResult struct {
	RunID     string
	Pipeline  domain.Pipeline
	Script    string
	Candidate domain.Candidate
	Path      string
	Result    string
}

// ConfigureCommand runs one pipeline end to end:
// resolve script, list, select, resolve path.
type ConfigureCommand struct {
	deps     Deps
	guard    *RunGuard
	Pipeline domain.Pipeline
	Options  Options
}

// NewConfigureCommand creates a new ConfigureCommand. guard may be shared
// between commands to reject overlapping runs of the same pipeline.
func NewConfigureCommand(deps Deps, guard *RunGuard, pipeline domain.Pipeline, opts Options) *ConfigureCommand {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &ConfigureCommand{
		deps:     deps,
		guard:    guard,
		Pipeline: pipeline,
		Options:  opts,
	}
}

// Execute runs the configure command
func (c *ConfigureCommand) Execute(ctx context.Context) (*ConfigureResult, error) {
	if c.guard != nil {
		release, ok := c.guard.TryAcquire(c.Pipeline)
		if !ok {
			return nil, &application.StageError{Pipeline: c.Pipeline, Stage: domain.StageIdle, Err: application.ErrBusy}
		}
		defer release()
	}

	runID := uuid.NewString()
	logger := c.deps.Logger.With(zap.String("run_id", runID), zap.Stringer("pipeline", c.Pipeline))
	fail := func(stage domain.Stage, err error) error {
		logger.Info("configure run failed", zap.Stringer("stage", stage), zap.Error(err))
		return &application.StageError{Pipeline: c.Pipeline, Stage: stage, Err: err}
	}

	script, err := NewResolveScriptCommand(c.deps.Settings, c.deps.Workspace, c.Pipeline).Execute(ctx)
	if err != nil {
		return nil, fail(domain.StageResolving, err)
	}

	raw, err := c.list(ctx, logger, script)
	if err != nil {
		return nil, fail(domain.StageListing, err)
	}

	selectCmd := NewSelectConfigurationCommand(c.deps.Prompter, raw)
	selectCmd.KeepBlankLines = c.Options.KeepBlankLines
	selected, err := selectCmd.Execute(ctx)
	if err != nil {
		return nil, fail(domain.StageSelecting, err)
	}
	logger.Debug("configuration selected", zap.String("candidate", string(selected.Candidate)))

	pathCmd := NewResolvePathCommand(c.deps.Searcher, c.deps.Opener, c.deps.Status,
		script.Root, selected.Candidate, c.Pipeline).WithLogger(logger)
	pathCmd.AwaitOpen = c.Options.AwaitOpen
	resolved, err := pathCmd.Execute(ctx)
	if err != nil {
		return nil, fail(domain.StagePathResolving, err)
	}

	result := &ConfigureResult{
		RunID:     runID,
		Pipeline:  c.Pipeline,
		Script:    script.Script,
		Candidate: selected.Candidate,
		Path:      resolved.Path,
		Result:    resolved.Result,
	}
	c.record(ctx, logger, result)

	logger.Info("configure run done", zap.String("path", result.Path), zap.String("result", result.Result))
	return result, nil
}

// list shows the loading indicator around the listing script.
// The indicator is hidden on every return path.
func (c *ConfigureCommand) list(ctx context.Context, logger *zap.Logger, script *ResolveScriptResult) (raw string, err error) {
	if c.deps.Status != nil {
		c.deps.Status.ShowLoading(c.Pipeline.LoadingMessage())
		defer func() { c.deps.Status.HideLoading(err) }()
	}

	if c.Options.LoadingDelay > 0 {
		timer := time.NewTimer(c.Options.LoadingDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	listCmd := NewListConfigurationsCommand(c.deps.Runner, script.Root, script.Command, c.Pipeline).WithLogger(logger)
	listCmd.Timeout = c.Options.ListTimeout
	res, err := listCmd.Execute(ctx)
	if err != nil {
		return "", err
	}
	return res.Raw, nil
}

func (c *ConfigureCommand) record(ctx context.Context, logger *zap.Logger, res *ConfigureResult) {
	if c.deps.History == nil {
		return
	}
	entry := &domain.HistoryEntry{
		RunID:     res.RunID,
		Pipeline:  res.Pipeline,
		Candidate: res.Candidate,
		Result:    res.Result,
		Path:      res.Path,
		CreatedAt: time.Now(),
	}
	if err := c.deps.History.Record(ctx, entry); err != nil {
		logger.Warn("failed to record history", zap.Error(err))
	}
}

// ListCandidatesCommand runs only the script resolution and listing stages
type ListCandidatesCommand struct {
	deps           Deps
	Pipeline       domain.Pipeline
	Timeout        time.Duration
	KeepBlankLines bool
}

// NewListCandidatesCommand creates a new ListCandidatesCommand
func NewListCandidatesCommand(deps Deps, pipeline domain.Pipeline) *ListCandidatesCommand {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &ListCandidatesCommand{deps: deps, Pipeline: pipeline}
}

// Execute runs the list candidates command
func (c *ListCandidatesCommand) Execute(ctx context.Context) (_ []domain.Candidate, err error) {
	script, err := NewResolveScriptCommand(c.deps.Settings, c.deps.Workspace, c.Pipeline).Execute(ctx)
	if err != nil {
		return nil, &application.StageError{Pipeline: c.Pipeline, Stage: domain.StageResolving, Err: err}
	}

	if c.deps.Status != nil {
		c.deps.Status.ShowLoading(c.Pipeline.LoadingMessage())
		defer func() { c.deps.Status.HideLoading(err) }()
	}

	listCmd := NewListConfigurationsCommand(c.deps.Runner, script.Root, script.Command, c.Pipeline).WithLogger(c.deps.Logger)
	listCmd.Timeout = c.Timeout
	res, err := listCmd.Execute(ctx)
	if err != nil {
		return nil, &application.StageError{Pipeline: c.Pipeline, Stage: domain.StageListing, Err: err}
	}

	if c.KeepBlankLines {
		return domain.ParseListingRaw(res.Raw), nil
	}
	return domain.ParseListing(res.Raw), nil
}
