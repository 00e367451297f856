package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColumnSpec defines a column with proportional or fixed width.
type ColumnSpec struct {
	// MinWidth is the absolute minimum width.
	MinWidth int
	// Weight is the proportional share of remaining width.
	Weight float64
	// Fixed is a fixed width (overrides Weight if > 0).
	Fixed int
	// Priority determines drop order when the terminal is narrow (lower = dropped first).
	Priority int
}

// CalculateColumnWidths distributes availableWidth among columns. When the
// columns do not fit, the lowest-priority ones are hidden (width 0) until
// they do or one column is left. separator is the width of each column gap.
func CalculateColumnWidths(specs []ColumnSpec, availableWidth int, separator int) []int {
	widths := make([]int, len(specs))
	visible := make([]bool, len(specs))
	totalFixed := 0
	totalWeight := 0.0
	visibleCount := len(specs)

	for i, spec := range specs {
		visible[i] = true
		if spec.Fixed > 0 {
			totalFixed += spec.Fixed
		} else {
			totalWeight += spec.Weight
			totalFixed += spec.MinWidth
		}
	}

	remaining := func() int {
		gaps := 0
		if visibleCount > 1 {
			gaps = (visibleCount - 1) * separator
		}
		// 2 for row padding
		return availableWidth - totalFixed - gaps - 2
	}

	for remaining() < 0 && visibleCount > 1 {
		lowest := -1
		for i, spec := range specs {
			if visible[i] && (lowest == -1 || spec.Priority < specs[lowest].Priority) {
				lowest = i
			}
		}
		visible[lowest] = false
		visibleCount--
		if specs[lowest].Fixed > 0 {
			totalFixed -= specs[lowest].Fixed
		} else {
			totalWeight -= specs[lowest].Weight
			totalFixed -= specs[lowest].MinWidth
		}
	}

	extra := max(remaining(), 0)

	for i, spec := range specs {
		switch {
		case !visible[i]:
			widths[i] = 0
		case spec.Fixed > 0:
			widths[i] = spec.Fixed
		case totalWeight > 0:
			widths[i] = spec.MinWidth + int(float64(extra)*spec.Weight/totalWeight)
		default:
			widths[i] = spec.MinWidth
		}
	}

	return widths
}

// ProgressBar renders value/total as a bar of the given width.
func ProgressBar(s Styles, value, total float64, width int) string {
	if total <= 0 {
		total = 1
	}
	ratio := min(max(value/total, 0), 1)

	barWidth := max(width-2, 4)
	filled := int(ratio * float64(barWidth))
	bar := "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"

	if ratio >= 1 {
		return s.Success.Render(bar)
	}
	return s.Accent.Render(bar)
}

// Truncate shortens s to fit within maxWidth, adding an ellipsis if needed.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return Fit(s, maxWidth, lipgloss.Left)
}

// PadRight pads s to the given width with spaces.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
