package commands

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	statusOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusError = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	muted       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const (
	symbolOK    = "✓"
	symbolError = "✗"
)

// RenderError renders an error line with a red cross.
func RenderError(msg string) string {
	return statusError.Render(symbolError) + " " + msg
}

func renderOK(msg string) string {
	return statusOK.Render(symbolOK) + " " + msg
}
