package theme

import "github.com/charmbracelet/lipgloss"

// Ayu color palette. AdaptiveColor for light/dark terminal support.
var (
	ColorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}

	colorBar = lipgloss.AdaptiveColor{Light: "#e7e8e9", Dark: "#1f2430"}
)

// Semantic text styles.
var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

// Menu bar styles.
var (
	MenuBarStyle = lipgloss.NewStyle().
			Background(colorBar)

	MenuActiveStyle = lipgloss.NewStyle().
			Background(colorBar).
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	MenuInactiveStyle = lipgloss.NewStyle().
				Background(colorBar).
				Foreground(ColorMuted).
				Padding(0, 1)

	MenuDisabledStyle = lipgloss.NewStyle().
				Background(colorBar).
				Foreground(ColorMuted).
				Faint(true).
				Padding(0, 1)
)

// Dropdown styles for an open menu section.
var (
	DropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted)

	DropdownRowStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	DropdownActiveRowStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Padding(0, 1)
)

// StatusBarStyle for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Background(colorBar).
	Foreground(ColorMuted).
	Padding(0, 1)

// Log console styles.
var (
	ConsoleBarStyle = lipgloss.NewStyle().
			Background(colorBar).
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	ConsoleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Dialog styles, shared by the sign-in gate and notices.
var (
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	DialogTitleStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(10)
)

// Pane styles.
var (
	PaneHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
)
