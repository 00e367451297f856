package components

import "github.com/charmbracelet/lipgloss"

// Styles is the subset of the theme that components and views render with.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Success  lipgloss.Style
	Selected lipgloss.Style

	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowAlt lipgloss.Style
	Border      lipgloss.Style
}

// DefaultStyles returns green-on-black styles for use without a theme.
func DefaultStyles() Styles {
	primary := lipgloss.Color("#7BC950")
	secondary := lipgloss.Color("#4E8A3E")
	accent := lipgloss.Color("#B5E61D")

	return Styles{
		Title:       lipgloss.NewStyle().Foreground(accent).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(primary),
		Label:       lipgloss.NewStyle().Foreground(secondary),
		Value:       lipgloss.NewStyle().Foreground(primary),
		Accent:      lipgloss.NewStyle().Foreground(accent),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("#2F5526")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00")),
		Success:     lipgloss.NewStyle().Foreground(primary).Bold(true),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(primary),
		TableHeader: lipgloss.NewStyle().Foreground(accent).Bold(true),
		TableRow:    lipgloss.NewStyle().Foreground(primary),
		TableRowAlt: lipgloss.NewStyle().Foreground(secondary),
		Border:      lipgloss.NewStyle().Foreground(secondary),
	}
}
