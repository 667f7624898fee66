package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used by commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Code    lipgloss.Style
	Hint    lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
}

// NewStyles builds styles bound to w. Without color every style renders
// its input unchanged.
func NewStyles(w io.Writer, color bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	if !color {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		Header1: lr.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12")),
		Header2: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Path:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Code:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Hint:    lr.NewStyle().Foreground(lipgloss.Color("6")),
		Error:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("12")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("10")),
	}
}
