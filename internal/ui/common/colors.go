package common

import "github.com/charmbracelet/lipgloss"

// Tokyo Night-inspired color palette
var (
	// Base palette
	ColorBackground = lipgloss.Color("#1a1b26") // Dark blue-gray
	ColorForeground = lipgloss.Color("#a9b1d6") // Soft lavender-white
	ColorMuted      = lipgloss.Color("#565f89") // Dimmed text
	ColorBorder     = lipgloss.Color("#292e42") // Subtle borders

	// Semantic colors
	ColorPrimary = lipgloss.Color("#7aa2f7") // Blue - focus, thumbs
	ColorSuccess = lipgloss.Color("#9ece6a")
	ColorWarning = lipgloss.Color("#e0af68")
	ColorError   = lipgloss.Color("#f7768e")
	ColorInfo    = lipgloss.Color("#7dcfff")

	// Surface colors for layering
	ColorSurface1 = lipgloss.Color("#1f2335")
	ColorSurface2 = lipgloss.Color("#24283b")

	// Selection/highlight
	ColorSelection = lipgloss.Color("#33467c") // Selected rows
	ColorHighlight = lipgloss.Color("#3d59a1") // Drag rectangle
)
