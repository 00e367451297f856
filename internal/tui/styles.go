// Package tui provides the terminal user interface for the weekly planner.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plansemanal/plansemanal/internal/config"
	"github.com/plansemanal/plansemanal/internal/tui/components"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	AccentColor    lipgloss.Color
	MutedColor     lipgloss.Color
	ErrorColor     lipgloss.Color
	WarningColor   lipgloss.Color
	SuccessColor   lipgloss.Color

	Base      lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style

	Alert     lipgloss.Style
	AlertWarn lipgloss.Style

	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowAlt lipgloss.Style

	StatusDivider lipgloss.Style
}

type palette struct {
	primary, secondary, accent, background, muted string
	errorColor, warning, success                  string
}

var palettes = map[config.ColorScheme]palette{
	config.ColorSchemeHuerta: {
		primary: "#7BC950", secondary: "#4E8A3E", accent: "#B5E61D", background: "#000000",
		muted: "#2F5526", errorColor: "#FF4444", warning: "#FFAA00", success: "#7BC950",
	},
	config.ColorSchemeTomate: {
		primary: "#FF6347", secondary: "#C0472F", accent: "#FFB38A", background: "#000000",
		muted: "#6B2E22", errorColor: "#FF2222", warning: "#FFD166", success: "#8FD694",
	},
	config.ColorSchemeMono: {
		primary: "#FFFFFF", secondary: "#AAAAAA", accent: "#FFFFFF", background: "#000000",
		muted: "#666666", errorColor: "#FF4444", warning: "#FFAA00", success: "#FFFFFF",
	},
}

// NewTheme creates a theme for the configured color scheme. Unknown schemes
// fall back to huerta.
func NewTheme(scheme config.ColorScheme) *Theme {
	p, ok := palettes[scheme]
	if !ok {
		p = palettes[config.ColorSchemeHuerta]
	}
	return buildTheme(p)
}

func buildTheme(p palette) *Theme {
	primary := lipgloss.Color(p.primary)
	secondary := lipgloss.Color(p.secondary)
	accent := lipgloss.Color(p.accent)
	background := lipgloss.Color(p.background)
	muted := lipgloss.Color(p.muted)

	t := &Theme{
		PrimaryColor:   primary,
		SecondaryColor: secondary,
		AccentColor:    accent,
		MutedColor:     muted,
		ErrorColor:     lipgloss.Color(p.errorColor),
		WarningColor:   lipgloss.Color(p.warning),
		SuccessColor:   lipgloss.Color(p.success),
	}

	t.Base = lipgloss.NewStyle().Foreground(primary)
	t.Primary = lipgloss.NewStyle().Foreground(primary)
	t.Secondary = lipgloss.NewStyle().Foreground(secondary)
	t.Accent = lipgloss.NewStyle().Foreground(accent)
	t.Error = lipgloss.NewStyle().Foreground(t.ErrorColor)
	t.Warning = lipgloss.NewStyle().Foreground(t.WarningColor)
	t.Success = lipgloss.NewStyle().Foreground(t.SuccessColor).Bold(true)
	t.Muted = lipgloss.NewStyle().Foreground(muted)

	t.Header = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true).
		Padding(0, 1)

	t.Footer = lipgloss.NewStyle().
		Foreground(secondary).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true)

	t.Label = lipgloss.NewStyle().Foreground(secondary)
	t.Value = lipgloss.NewStyle().Foreground(primary)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondary).
		Padding(0, 1)

	t.Selected = lipgloss.NewStyle().
		Foreground(background).
		Background(primary).
		Bold(true)

	t.Alert = lipgloss.NewStyle().Foreground(primary).Bold(true)
	t.AlertWarn = lipgloss.NewStyle().Foreground(t.WarningColor).Bold(true)

	t.TableHeader = lipgloss.NewStyle().Foreground(accent).Bold(true)
	t.TableRow = lipgloss.NewStyle().Foreground(primary)
	t.TableRowAlt = lipgloss.NewStyle().Foreground(secondary)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(muted).
		SetString(" │ ")

	return t
}

// Components returns the styles handed to views and components.
func (t *Theme) Components() components.Styles {
	return components.Styles{
		Title:       t.Title,
		Subtitle:    t.Subtitle,
		Label:       t.Label,
		Value:       t.Value,
		Accent:      t.Accent,
		Muted:       t.Muted,
		Error:       t.Error,
		Warning:     t.Warning,
		Success:     t.Success,
		Selected:    t.Selected,
		TableHeader: t.TableHeader,
		TableRow:    t.TableRow,
		TableRowAlt: t.TableRowAlt,
		Border:      t.Secondary,
	}
}

const (
	BoxHorizontal       = "─"
	BoxDoubleHorizontal = "═"
)

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	return t.Secondary.Render(strings.Repeat(BoxHorizontal, max(width, 0)))
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	return t.Primary.Render(strings.Repeat(BoxDoubleHorizontal, max(width, 0)))
}
