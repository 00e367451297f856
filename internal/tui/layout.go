package tui

// MaxContentWidth is the maximum width for content display.
const MaxContentWidth = 120

// chromeLines is the number of lines taken by the header, alert bar and footer.
const chromeLines = 6

// ContentWidth returns the usable content width, capped between min and max.
func ContentWidth(termWidth, minWidth, maxWidth int) int {
	w := max(termWidth, minWidth)
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	return w
}

// ContentHeight returns the usable content height after subtracting chrome.
func ContentHeight(termHeight int) int {
	return max(termHeight-chromeLines, 5)
}
