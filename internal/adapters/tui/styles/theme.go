package styles

import (
	"github.com/charmbracelet/lipgloss"

	"nuttxconf/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Pipeline colors
	PipelineStandard = lipgloss.Color("#6366F1") // Indigo
	PipelineCustom   = lipgloss.Color("#F97316") // Orange

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Candidate list styles
	Board = lipgloss.NewStyle().
		Bold(true)

	Conf = lipgloss.NewStyle().
		Foreground(Secondary)

	Separator = lipgloss.NewStyle().
			Foreground(Muted)

	CandidateSelected = lipgloss.NewStyle().
				Background(Primary).
				Foreground(White).
				Bold(true)

	Recent = lipgloss.NewStyle().
		Foreground(Warning).
		SetString("★ ")

	NotRecent = "  "
	Cursor    = "▶ "

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Search
	SearchMatch = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// PipelineColor returns the color for a pipeline
func PipelineColor(p domain.Pipeline) lipgloss.Color {
	switch p {
	case domain.PipelineStandard:
		return PipelineStandard
	case domain.PipelineCustom:
		return PipelineCustom
	default:
		return Primary
	}
}

// PipelineBadge renders the pipeline name as a colored tag
func PipelineBadge(p domain.Pipeline) string {
	return lipgloss.NewStyle().
		Background(PipelineColor(p)).
		Foreground(White).
		Padding(0, 1).
		Render(p.String())
}
