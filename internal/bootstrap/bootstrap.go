// Package bootstrap assembles the adapters shared by every nuttxconf binary.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nuttxconf/internal/adapters/finder"
	"nuttxconf/internal/adapters/shell"
	"nuttxconf/internal/adapters/sqlite"
	"nuttxconf/internal/adapters/workspace"
	"nuttxconf/internal/application/commands"
	"nuttxconf/internal/config"
)

var errWriter io.Writer = os.Stderr

// Options select the workspace, settings and logging of a process
type Options struct {
	Workspace  string // "" uses NUTTXCONF_WORKSPACE or discovers from the current directory
	ConfigPath string // "" uses NUTTXCONF_CONFIG or <workspace>/.nuttxconf.yaml
	Verbose    bool
	LogFile    string // "" logs to stderr
	NoHistory  bool

	// DefaultLoadingDelay applies when the settings leave loading_delay unset
	DefaultLoadingDelay time.Duration
}

// Env holds the long-lived collaborators of a process
type Env struct {
	Workspace *workspace.Provider
	Settings  *config.Store
	Logger    *zap.Logger
	Runner    *shell.Runner
	Searcher  *finder.Selecting
	History   *sqlite.History // nil when disabled or unavailable
	Guard     *commands.RunGuard

	defaultDelay time.Duration
}

// Load reads .env files, settings and opens history for the workspace
func Load(opts Options) (*Env, error) {
	loadDotEnv(".env")

	ws := resolveWorkspace(opts.Workspace)
	if root := ws.Root(); root != "" {
		loadDotEnv(filepath.Join(root, ".env"))
	}

	logger, err := config.NewLogger(opts.Verbose, opts.LogFile)
	if err != nil {
		return nil, err
	}

	store, err := config.NewStore(config.SettingsPath(opts.ConfigPath, ws.Root()), logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	runner := shell.NewRunner()
	env := &Env{
		Workspace: ws,
		Settings:  store,
		Logger:    logger,
		Runner:    runner,
		Searcher:  finder.NewSelecting(func() string { return store.Current().Searcher }, runner),
		Guard:     commands.NewRunGuard(),

		defaultDelay: opts.DefaultLoadingDelay,
	}

	if !opts.NoHistory && ws.Root() != "" {
		history := sqlite.NewHistory()
		if err := history.Open(ws.Root()); err != nil {
			logger.Warn("history disabled", zap.Error(err))
		} else {
			env.History = history
		}
	}

	logger.Debug("environment loaded",
		zap.String("workspace", ws.Root()),
		zap.Bool("history", env.History != nil))
	return env, nil
}

// resolveWorkspace prefers an explicit path, then NUTTXCONF_WORKSPACE, then
// the NuttX root above the current directory
func resolveWorkspace(explicit string) *workspace.Provider {
	if explicit != "" {
		return workspace.NewProvider(explicit)
	}
	return workspace.Discover(config.WorkspacePath())
}

func loadDotEnv(path string) {
	// Variables already set win over .env files
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(errWriter, "warning: ignoring %s: %v\n", path, err)
	}
}

// Deps returns the collaborators of a configure run. The UI fields
// (Prompter, Opener, Status) are left for the caller.
func (e *Env) Deps() commands.Deps {
	d := commands.Deps{
		Settings:  e.Settings,
		Workspace: e.Workspace,
		Runner:    e.Runner,
		Searcher:  e.Searcher,
		Logger:    e.Logger,
	}
	if e.History != nil {
		d.History = e.History
	}
	return d
}

// RunOptions returns the run options from the current settings
func (e *Env) RunOptions() commands.Options {
	s := e.Settings.Current()
	return commands.Options{
		LoadingDelay:   s.LoadingDelayOr(e.defaultDelay),
		ListTimeout:    s.ListTimeout,
		KeepBlankLines: s.KeepBlankLines,
		AwaitOpen:      s.AwaitOpen,
	}
}

// WatchSettings reloads settings on change until ctx is done
func (e *Env) WatchSettings(ctx context.Context) {
	go func() {
		if err := e.Settings.Watch(ctx); err != nil {
			e.Logger.Warn("settings watcher stopped", zap.Error(err))
		}
	}()
}

// Close releases the history database and flushes logs
func (e *Env) Close() error {
	var err error
	if e.History != nil {
		err = e.History.Close()
	}
	_ = e.Logger.Sync()
	return err
}
