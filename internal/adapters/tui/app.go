package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"nuttxconf/internal/adapters/tui/views"
	"nuttxconf/internal/application/commands"
	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewRun ViewState = iota
	ViewPicker
	ViewHelp
)

// Config wires the App to the rest of the program
type Config struct {
	Deps     commands.Deps // Prompter, Status and Opener are replaced by the bridge
	Guard    *commands.RunGuard
	Pipeline domain.Pipeline
	Options  func() commands.Options
	Editor   ports.EditorOpener // nil leaves the defconfig unopened
}

// App is the main TUI application model
type App struct {
	cfg    Config
	bridge *Bridge
	logger *zap.Logger
	copy   func(string) error

	state    ViewState
	previous ViewState
	run      *views.RunModel
	picker   *views.PickerModel
	help     *views.HelpModel

	pipeline domain.Pipeline
	cancel   context.CancelFunc
	pending  chan choiceReply
	runSeq   int

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(cfg Config, bridge *Bridge) *App {
	logger := cfg.Deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Deps.Prompter = bridge
	cfg.Deps.Status = bridge
	if cfg.Editor != nil {
		cfg.Deps.Opener = bridge
	} else {
		cfg.Deps.Opener = nil
	}

	return &App{
		cfg:      cfg,
		bridge:   bridge,
		logger:   logger,
		copy:     clipboard.WriteAll,
		state:    ViewRun,
		run:      views.NewRunModel(),
		picker:   views.NewPickerModel(),
		help:     views.NewHelpModel(),
		pipeline: cfg.Pipeline,
	}
}

// Result returns the value of the last successful run, "" if none
func (a *App) Result() string {
	return a.run.Result()
}

// Init starts the first run
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.run.Init(), a.startRun())
}

type runFinishedMsg struct {
	seq    int
	result *commands.ConfigureResult
	err    error
}

type recentLoadedMsg struct {
	recent map[string]int64
}

type editorFinishedMsg struct {
	err  error
	done chan error
}

func (a *App) options() commands.Options {
	if a.cfg.Options == nil {
		return commands.Options{}
	}
	return a.cfg.Options()
}

func (a *App) startRun() tea.Cmd {
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.runSeq++
	seq := a.runSeq

	a.state = ViewRun
	a.run.Start(a.pipeline)
	cmd := commands.NewConfigureCommand(a.cfg.Deps, a.cfg.Guard, a.pipeline, a.options())

	return func() tea.Msg {
		res, err := cmd.Execute(ctx)
		return runFinishedMsg{seq: seq, result: res, err: err}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.run.SetSize(msg.Width, msg.Height)
		a.picker.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// Messages from the configure run
	case loadingMsg:
		a.run.SetLoading(msg.message)
		return a, nil

	case loadingDoneMsg:
		a.run.StopLoading()
		return a, nil

	case statusLineMsg:
		a.run.AddLine(msg.line)
		return a, nil

	case chooseRequestMsg:
		a.pending = msg.reply
		a.picker.Open(msg.title, msg.items)
		a.state = ViewPicker
		return a, tea.Batch(a.picker.Init(), a.loadRecent())

	case recentLoadedMsg:
		if a.state == ViewPicker {
			a.picker.SetRecent(msg.recent)
		}
		return a, nil

	case openFileMsg:
		return a, a.openEditor(msg)

	case editorFinishedMsg:
		if msg.err != nil {
			a.logger.Warn("editor exited with error", zap.Error(msg.err))
		}
		msg.done <- msg.err
		return a, nil

	case runFinishedMsg:
		if msg.seq != a.runSeq {
			return a, nil
		}
		a.finishRun(msg)
		return a, nil

	// Picker messages
	case views.ChoiceMadeMsg:
		a.reply(choiceReply{choice: msg.Choice, ok: true})
		return a, nil

	case views.ChoiceCancelledMsg:
		a.reply(choiceReply{})
		return a, nil

	case views.CloseHelpMsg:
		a.state = a.previous
		return a, nil

	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewPicker:
		_, cmd = a.picker.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	default:
		_, cmd = a.run.Update(msg)
	}

	return a, cmd
}

// handleKey processes app-wide keys. The picker owns every key but ctrl+c
// so typing in the filter never triggers an action.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return a.quit(), true
	}
	if a.state != ViewRun {
		return nil, false
	}

	switch {
	case key.Matches(msg, views.RunKeys.Quit):
		return a.quit(), true

	case key.Matches(msg, views.RunKeys.Help):
		a.previous = a.state
		a.state = ViewHelp
		return nil, true

	case key.Matches(msg, views.RunKeys.Copy):
		if a.run.Running() || a.run.Result() == "" {
			return nil, true
		}
		if err := a.copy(a.run.Result()); err != nil {
			a.run.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		} else {
			a.run.SetMessage("Copied "+a.run.Result(), false)
		}
		return nil, true

	case key.Matches(msg, views.RunKeys.Rerun):
		if a.run.Running() {
			return nil, true
		}
		return tea.Batch(a.run.Init(), a.startRun()), true

	case key.Matches(msg, views.RunKeys.Switch):
		if a.run.Running() {
			return nil, true
		}
		if a.pipeline == domain.PipelineStandard {
			a.pipeline = domain.PipelineCustom
		} else {
			a.pipeline = domain.PipelineStandard
		}
		return tea.Batch(a.run.Init(), a.startRun()), true
	}
	return nil, false
}

func (a *App) quit() tea.Cmd {
	a.reply(choiceReply{})
	if a.cancel != nil {
		a.cancel()
	}
	a.bridge.Close()
	return tea.Quit
}

func (a *App) reply(r choiceReply) {
	if a.pending == nil {
		return
	}
	a.pending <- r
	a.pending = nil
	a.state = ViewRun
}

func (a *App) finishRun(msg runFinishedMsg) {
	if a.pending != nil {
		a.reply(choiceReply{})
	}
	a.state = ViewRun
	if msg.err != nil {
		a.run.Finish("", "", msg.err)
		return
	}
	a.run.Finish(msg.result.Result, msg.result.Path, nil)
}

func (a *App) loadRecent() tea.Cmd {
	history := a.cfg.Deps.History
	if history == nil {
		return nil
	}
	pipeline := a.pipeline
	return func() tea.Msg {
		used, err := history.LastUsed(context.Background(), pipeline)
		if err != nil {
			a.logger.Debug("no recent configurations", zap.Error(err))
			return recentLoadedMsg{}
		}
		recent := make(map[string]int64, len(used))
		for c, at := range used {
			recent[string(c)] = at
		}
		return recentLoadedMsg{recent: recent}
	}
}

func (a *App) openEditor(msg openFileMsg) tea.Cmd {
	if a.cfg.Editor == nil {
		msg.done <- errors.New("no editor configured")
		return nil
	}

	cmd, err := a.cfg.Editor.Command(msg.path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err, done: msg.done}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err, done: msg.done}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewPicker:
		return a.picker.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.run.View()
	}
}

// Run starts the full-screen UI and blocks until the user quits. It returns
// the result of the last successful run.
func Run(cfg Config) (string, error) {
	bridge := NewBridge()
	app := NewApp(cfg, bridge)

	p := tea.NewProgram(app, tea.WithAltScreen())
	bridge.Attach(p)
	defer bridge.Close()

	if _, err := p.Run(); err != nil {
		return "", err
	}
	return app.Result(), nil
}
