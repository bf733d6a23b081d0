package theme

// Notice severity icons.
var (
	IconInfo    = AccentStyle.Render("●")
	IconWarning = WarnStyle.Render("▲")
	IconError   = FailStyle.Render("✖")
	IconWindow  = MutedStyle.Render("□")
)

// Lock state icons for the status bar.
var (
	IconLocked   = WarnStyle.Render("◐")
	IconUnlocked = PassStyle.Render("●")
)
