package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nuttxconf/internal/adapters/tui/styles"
)

// PickerKeyMap defines key bindings for the configuration picker
type PickerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Select   key.Binding
	Cancel   key.Binding
}

var PickerKeys = PickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "next page"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// pickerChrome is the number of rows used around the list
const pickerChrome = 12

// PickerModel lets the user filter and choose one of the listed configurations
type PickerModel struct {
	ViewState
	title    string
	items    []string
	recent   map[string]int64
	filtered []int // indices into items, in listing order
	input    textinput.Model
	pager    *Paginator
}

// NewPickerModel creates a new picker view model
func NewPickerModel() *PickerModel {
	input := textinput.New()
	input.Placeholder = "Filter configurations..."
	input.Prompt = "/ "

	return &PickerModel{
		input: input,
		pager: NewPaginator(10),
	}
}

// Init initializes the picker view
func (m *PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Open replaces the offered items and clears the filter
func (m *PickerModel) Open(title string, items []string) {
	m.title = title
	m.items = items
	m.recent = nil
	m.input.SetValue("")
	m.input.Focus()
	m.pager.Reset()
	m.refilter()
}

// SetRecent marks previously chosen items. The cursor moves to the most
// recent one while the filter is empty and the user has not moved yet.
func (m *PickerModel) SetRecent(recent map[string]int64) {
	m.recent = recent
	if m.input.Value() != "" || m.pager.Cursor() != 0 {
		return
	}
	best, bestAt := -1, int64(0)
	for pos, idx := range m.filtered {
		if at, ok := recent[m.items[idx]]; ok && at > bestAt {
			best, bestAt = pos, at
		}
	}
	if best >= 0 {
		m.pager.SetCursor(best)
	}
}

// Selected returns the item under the cursor
func (m *PickerModel) Selected() (string, bool) {
	if len(m.filtered) == 0 {
		return "", false
	}
	return m.items[m.filtered[m.pager.Cursor()]], true
}

// Update handles messages for the picker view
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PickerKeys.Cancel):
			return m, func() tea.Msg {
				return ChoiceCancelledMsg{}
			}

		case key.Matches(msg, PickerKeys.Up):
			m.pager.CursorUp()
			return m, nil

		case key.Matches(msg, PickerKeys.Down):
			m.pager.CursorDown()
			return m, nil

		case key.Matches(msg, PickerKeys.PrevPage):
			m.pager.PrevPage()
			return m, nil

		case key.Matches(msg, PickerKeys.NextPage):
			m.pager.NextPage()
			return m, nil

		case key.Matches(msg, PickerKeys.Select):
			choice, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return ChoiceMadeMsg{Choice: choice}
			}
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

func (m *PickerModel) refilter() {
	m.filtered = FilterItems(m.items, m.input.Value())
	m.pager.SetTotal(len(m.filtered))
	m.pager.SetCursor(0)
}

// FilterItems returns the indices of items containing every whitespace
// separated term of query, case-insensitively, in their original order
func FilterItems(items []string, query string) []int {
	terms := filterTerms(query)
	out := make([]int, 0, len(items))
	for i, item := range items {
		lower := strings.ToLower(item)
		ok := true
		for _, t := range terms {
			if !strings.Contains(lower, t) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func filterTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// View renders the picker view
func (m *PickerModel) View() string {
	v := NewViewBuilder().Title(m.title)
	v.Line(styles.InputFocused.Render(m.input.View())).BlankLine()

	if len(m.filtered) == 0 {
		if len(m.items) == 0 {
			v.Muted("The listing script reported no configurations")
		} else {
			v.Muted("No configuration matches the filter")
		}
	} else {
		v.Subtitle(fmt.Sprintf("%d of %d configurations", len(m.filtered), len(m.items)))

		terms := filterTerms(m.input.Value())
		start, end := m.pager.VisibleRange()
		for pos := start; pos < end; pos++ {
			v.Line(m.renderRow(m.items[m.filtered[pos]], terms, pos == m.pager.Cursor()))
		}

		if m.pager.TotalPages() > 1 {
			v.BlankLine().Muted(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
		}
	}

	v.BlankLine().Help(PickerKeys.Up, PickerKeys.Down, PickerKeys.NextPage, PickerKeys.Select, PickerKeys.Cancel)
	return v.String()
}

func (m *PickerModel) renderRow(item string, terms []string, selected bool) string {
	mark := styles.NotRecent
	if _, ok := m.recent[item]; ok {
		mark = styles.Recent.String()
	}

	if selected {
		text := item
		if strings.TrimSpace(text) == "" {
			text = "(blank line)"
		}
		return styles.Cursor + mark + styles.CandidateSelected.Render(text)
	}
	return "  " + mark + RenderCandidate(item, terms)
}

// SetSize updates the view dimensions
func (m *PickerModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.input.Width = max(width-10, 20)
	m.pager.SetPageSize(max(height-pickerChrome, 5))
}
