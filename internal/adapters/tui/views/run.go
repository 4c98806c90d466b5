package views

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"nuttxconf/internal/adapters/tui/styles"
	"nuttxconf/internal/application"
	"nuttxconf/internal/domain"
)

// RunKeyMap defines key bindings available while and after a run
type RunKeyMap struct {
	Copy   key.Binding
	Rerun  key.Binding
	Switch key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var RunKeys = RunKeyMap{
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy result"),
	),
	Rerun: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "run again"),
	),
	Switch: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pipeline"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RunModel shows the progress and outcome of a configure run
type RunModel struct {
	ViewState
	pipeline domain.Pipeline
	spinner  spinner.Model
	loading  string
	lines    []string
	running  bool
	result   string
	path     string
	err      error
}

// NewRunModel creates a new run view model
func NewRunModel() *RunModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Title.UnsetMarginBottom()
	return &RunModel{spinner: s}
}

// Init starts the spinner
func (m *RunModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Start resets the view for a new run of pipeline
func (m *RunModel) Start(pipeline domain.Pipeline) {
	m.pipeline = pipeline
	m.loading = ""
	m.lines = nil
	m.running = true
	m.result = ""
	m.path = ""
	m.err = nil
	m.ClearMessage()
}

// SetLoading shows the loading indicator with message
func (m *RunModel) SetLoading(message string) {
	m.loading = message
}

// StopLoading hides the loading indicator
func (m *RunModel) StopLoading() {
	m.loading = ""
}

// AddLine appends a status line
func (m *RunModel) AddLine(line string) {
	m.lines = append(m.lines, line)
}

// Finish records the outcome of the run
func (m *RunModel) Finish(result, path string, err error) {
	m.running = false
	m.loading = ""
	m.result = result
	m.path = path
	m.err = err
}

// Running reports whether a run is in progress
func (m *RunModel) Running() bool {
	return m.running
}

// Result returns the value produced by the last successful run
func (m *RunModel) Result() string {
	return m.result
}

// Loading returns the current loading message, "" when hidden
func (m *RunModel) Loading() string {
	return m.loading
}

// Update handles messages for the run view
func (m *RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the run view
func (m *RunModel) View() string {
	v := NewViewBuilder().Title("NuttX configure  " + styles.PipelineBadge(m.pipeline))

	if m.loading != "" {
		v.Line(m.spinner.View() + " " + m.loading).BlankLine()
	}
	for _, line := range m.lines {
		v.Muted(line)
	}
	if len(m.lines) > 0 {
		v.BlankLine()
	}

	switch {
	case m.running:
	case m.err != nil:
		v.Line(renderRunError(m.err)).BlankLine()
	case m.result != "":
		v.Line(RenderLabelValue("Result", styles.Success.Render(m.result)))
		v.Line(RenderLabelValue("Defconfig", m.path)).BlankLine()
	}

	v.Message(m.Message, m.MessageErr)

	copyKey := RunKeys.Copy
	copyKey.SetEnabled(!m.running && m.result != "")
	rerun := RunKeys.Rerun
	rerun.SetEnabled(!m.running)
	switchKey := RunKeys.Switch
	switchKey.SetEnabled(!m.running)
	v.Help(copyKey, rerun, switchKey, RunKeys.Help, RunKeys.Quit)

	return v.String()
}

func renderRunError(err error) string {
	if errors.Is(err, application.ErrSelectionCancelled) {
		return styles.MutedText.Render(application.ErrSelectionCancelled.Error())
	}
	stage := application.FailedStage(err)
	if stage == domain.StageIdle {
		return styles.ErrorMsg.Render(err.Error())
	}
	return styles.ErrorMsg.Render(fmt.Sprintf("%s failed: %s", stage, err))
}
