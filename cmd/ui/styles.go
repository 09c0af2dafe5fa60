package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorGreenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	ColorRedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	ColorYellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	ColorBlueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF")).Bold(true)
	ColorCyanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
	ColorGrayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	MissingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")).Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5F5FFF"))

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Underline(true)
)

// Icons
const (
	IconCheck   = "✓"
	IconMissing = "✗"
	IconCommit  = "⊚"
	IconWarning = "!"
)

func Green(s string) string {
	return ColorGreenStyle.Render(s)
}

func Red(s string) string {
	return ColorRedStyle.Render(s)
}

func Yellow(s string) string {
	return ColorYellowStyle.Render(s)
}

func Blue(s string) string {
	return ColorBlueStyle.Render(s)
}

func Cyan(s string) string {
	return ColorCyanStyle.Render(s)
}

func Gray(s string) string {
	return ColorGrayStyle.Render(s)
}

func Header(text string) string {
	return HeaderStyle.Render(text)
}

func Section(text string) string {
	return SectionStyle.Render(text)
}
