package app

// LayoutMode represents the display width category for responsive layout.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // <40 chars: status bar shows the user only
	LayoutMedium                   // 40-79: user and sign-in age
	LayoutWide                     // 80+: everything including key hints
)

// GetLayoutMode returns the appropriate layout mode for the given terminal width.
func GetLayoutMode(width int) LayoutMode {
	switch {
	case width < 40:
		return LayoutNarrow
	case width < 80:
		return LayoutMedium
	default:
		return LayoutWide
	}
}

// MenuBarHeight returns the height of the menu bar (always 1 row).
func MenuBarHeight() int {
	return 1
}

// StatusBarHeight returns the height of the status bar (always 1 row).
func StatusBarHeight() int {
	return 1
}

// ContentHeight returns the rows left for the content region after the menu
// bar, the log console and the status bar.
func ContentHeight(totalHeight, consoleHeight int) int {
	h := totalHeight - MenuBarHeight() - consoleHeight - StatusBarHeight()
	if h < 0 {
		return 0
	}
	return h
}
