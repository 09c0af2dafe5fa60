package ui

import (
	"fmt"
	"strings"
)

// SuccessMessage creates a success message with a checkmark icon
func SuccessMessage(message string, details ...string) string {
	var parts []string
	parts = append(parts, Green(IconCheck), Green(message))

	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}

	return strings.Join(parts, " ")
}

// ErrorLine renders the line printed for a failed command.
func ErrorLine(message string) string {
	return Red("ERROR: " + message)
}

// WarningMessage formats a warning message in yellow
func WarningMessage(message string) string {
	return Yellow(IconWarning + " " + message)
}

// FormatMissing formats a tracked file that is absent from the working directory
func FormatMissing(path string) string {
	return fmt.Sprintf("  %s  %s", MissingStyle.Render(IconMissing), MissingStyle.Render(path))
}

// CommitLine renders a one-line commit summary.
func CommitLine(shortID, message string) string {
	return fmt.Sprintf("%s %s %s", Yellow(IconCommit), Yellow(shortID), firstLine(message))
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	s = firstLine(s)
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
