package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"nuttxconf/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return CloseHelpMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("nuttxconf Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Pick a NuttX board configuration and open its defconfig"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Picker"))
	b.WriteString("\n")
	b.WriteString(helpLine("type", "Filter by board or config name"))
	b.WriteString(helpLine("↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("PgUp / PgDn", "Previous/next page"))
	b.WriteString(helpLine("Enter", "Choose configuration"))
	b.WriteString(helpLine("Esc", "Cancel"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("After a run"))
	b.WriteString("\n")
	b.WriteString(helpLine("y", "Copy result to clipboard"))
	b.WriteString(helpLine("r", "Run again"))
	b.WriteString(helpLine("Tab", "Switch standard/custom and run"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Pipelines"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  standard : configure.sh -L  →  board:conf"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  custom   : custom script -l →  BOARDCONFIG=board:conf"))
	b.WriteString("\n")
	b.WriteString(styles.Recent.String())
	b.WriteString(styles.MutedText.Render("marks configurations chosen before in this workspace"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
