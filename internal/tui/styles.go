package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/ui"
)

type styles struct {
	title, muted, accent, err, selected, help lipgloss.Style
	label, focused                            lipgloss.Style
	frame                                     lipgloss.Style
	bullet                                    string
}

func newStyles(t ui.Theme) styles {
	return styles{
		title:    t.Title,
		muted:    t.Muted,
		accent:   t.Accent,
		err:      t.Error,
		selected: t.Selected,
		help:     t.Help,
		label:    t.Muted,
		focused:  t.Accent.Bold(true),
		frame: lipgloss.NewStyle().
			Border(t.Border).
			BorderForeground(t.BorderColor).
			Padding(0, 1),
		bullet: t.Bullet,
	}
}
