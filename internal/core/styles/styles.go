// Package styles provides lipgloss styles for human readable CLI output.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night palette.
var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorMuted   = lipgloss.Color("#565f89")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")
	colorError   = lipgloss.Color("#f7768e")
)

// Styles holds the styles used by task listings. Styles are bound to the
// writer they were created for, so output to a file or pipe carries no
// escape sequences.
type Styles struct {
	Header    lipgloss.Style
	Index     lipgloss.Style
	Pending   lipgloss.Style
	Completed lipgloss.Style
	Removed   lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
}

// New returns styles that detect color support from w.
func New(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)

	return Styles{
		Header:    r.NewStyle().Bold(true).Foreground(colorPrimary),
		Index:     r.NewStyle().Foreground(colorMuted).Width(4).Align(lipgloss.Right),
		Pending:   r.NewStyle().Foreground(colorWarning),
		Completed: r.NewStyle().Foreground(colorSuccess).Strikethrough(true),
		Removed:   r.NewStyle().Foreground(colorMuted),
		Muted:     r.NewStyle().Foreground(colorMuted),
		Error:     r.NewStyle().Foreground(colorError),
	}
}
