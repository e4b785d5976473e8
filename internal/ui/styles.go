package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Amber   = lipgloss.Color("#d97706")
	Emerald = lipgloss.Color("#10b981")
	Red     = lipgloss.Color("#dc2626")
	Zinc    = lipgloss.Color("#71717a")
	White   = lipgloss.Color("#fafafa")
)

// Styles holds every style the live calculator renders with
type Styles struct {
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Panel     lipgloss.Style
	Footer    lipgloss.Style
}

// DefaultStyles returns the dark amber theme
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(Amber).
			Foreground(White).
			Padding(0, 2).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(Zinc).
			Padding(0, 2),

		ActiveTab: lipgloss.NewStyle().
			Foreground(Amber).
			Padding(0, 2).
			Bold(true).
			Underline(true),

		Title: lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true).
			MarginBottom(1),

		Label: lipgloss.NewStyle().
			Foreground(Zinc).
			Width(16),

		Value: lipgloss.NewStyle().
			Foreground(White),

		Selected: lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(Zinc),

		Success: lipgloss.NewStyle().
			Foreground(Emerald).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Zinc).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(Zinc).
			Padding(0, 1),
	}
}
