package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles, symbols and the panel border.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Selected, Help lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	SymOK, SymFail, Bullet string
}

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

// NewTheme builds the named theme on r (the default renderer when nil).
// Unknown names fall back to classic.
func NewTheme(name string, r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	style := r.NewStyle

	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:        "neon",
			Title:       style().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       style().Foreground(lipgloss.Color("8")),
			Accent:      style().Foreground(lipgloss.Color("14")),
			Success:     style().Foreground(lipgloss.Color("10")),
			Error:       style().Foreground(lipgloss.Color("9")).Bold(true),
			Selected:    style().Bold(true).Foreground(lipgloss.Color("13")),
			Help:        style().Faint(true),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
			SymOK:       "✔", SymFail: "✖", Bullet: "•",
		}
	case "mono":
		return Theme{
			Name:        "mono",
			Title:       style().Bold(true),
			Muted:       style(),
			Accent:      style(),
			Success:     style(),
			Error:       style(),
			Selected:    style().Reverse(true),
			Help:        style(),
			Border:      lipgloss.ASCIIBorder(),
			BorderColor: lipgloss.NoColor{},
			SymOK:       "ok", SymFail: "x", Bullet: "-",
		}
	default:
		return Theme{
			Name:        "classic",
			Title:       style().Bold(true),
			Muted:       style().Faint(true),
			Accent:      style().Foreground(lipgloss.Color("12")),
			Success:     style().Foreground(lipgloss.Color("42")),
			Error:       style().Foreground(lipgloss.Color("9")).Bold(true),
			Selected:    style().Bold(true).Reverse(true),
			Help:        style().Faint(true),
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.Color("8"),
			SymOK:       "✔", SymFail: "✖", Bullet: "•",
		}
	}
}
