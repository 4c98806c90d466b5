package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"nuttxconf/internal/adapters/tui/views"
	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"
)

// Picker implements ports.Prompter with a one-shot inline picker, for
// callers that are not running the full-screen App
type Picker struct {
	history  ports.HistoryStore
	pipeline domain.Pipeline
	input    io.Reader
	output   io.Writer
}

// PickerOption configures the Picker
type PickerOption func(*Picker)

// WithHistory marks configurations previously chosen in pipeline
func WithHistory(history ports.HistoryStore, pipeline domain.Pipeline) PickerOption {
	return func(p *Picker) {
		p.history = history
		p.pipeline = pipeline
	}
}

// WithIO sets the terminal the picker reads from and draws on
func WithIO(in io.Reader, out io.Writer) PickerOption {
	return func(p *Picker) {
		p.input = in
		p.output = out
	}
}

// NewPicker creates a new inline picker
func NewPicker(opts ...PickerOption) *Picker {
	p := &Picker{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// pickerModel adapts views.PickerModel into a standalone program
type pickerModel struct {
	picker *views.PickerModel
	choice string
	ok     bool
}

func (m *pickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case views.ChoiceMadeMsg:
		m.choice, m.ok = msg.Choice, true
		return m, tea.Quit
	case views.ChoiceCancelledMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	_, cmd := m.picker.Update(msg)
	return m, cmd
}

func (m *pickerModel) View() string {
	if m.ok {
		return ""
	}
	return m.picker.View()
}

// Choose runs the picker until the user chooses or cancels
func (p *Picker) Choose(ctx context.Context, title string, items []string) (string, bool, error) {
	view := views.NewPickerModel()
	view.Open(title, items)
	if recent := p.recent(ctx); recent != nil {
		view.SetRecent(recent)
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.input != nil {
		opts = append(opts, tea.WithInput(p.input))
	}
	if p.output != nil {
		opts = append(opts, tea.WithOutput(p.output))
	}

	model := &pickerModel{picker: view}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", false, err
	}
	return model.choice, model.ok, nil
}

func (p *Picker) recent(ctx context.Context) map[string]int64 {
	if p.history == nil {
		return nil
	}
	used, err := p.history.LastUsed(ctx, p.pipeline)
	if err != nil {
		return nil
	}
	recent := make(map[string]int64, len(used))
	for c, at := range used {
		recent[string(c)] = at
	}
	return recent
}
