package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles colours interactive output. Bound to a writer so output that is
// not a terminal gets plain text.
type Styles struct {
	Title   lipgloss.Style
	Marker  lipgloss.Style
	Default lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:   r.NewStyle().Bold(true),
		Marker:  r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Default: r.NewStyle().Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
