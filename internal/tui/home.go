package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/guard"
)

func (m Model) updateHome(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Login):
		return m.navigate(guard.Login)
	case key.Matches(msg, keys.Todos):
		return m.navigate(guard.Todos)
	case key.Matches(msg, keys.Logout):
		if m.session.LoggedIn() {
			m.session.Logout()
			m.flash = "Logged out"
		}
	}
	return m, nil
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Tada") + "\n\n")
	b.WriteString("A tiny todo list that remembers you.\n\n")
	if u, ok := m.session.User(); ok {
		b.WriteString("Signed in as " + m.styles.accent.Render(u.Name) + "\n\n")
		b.WriteString(m.styles.help.Render(helpLine(keys.Todos, keys.Logout, keys.Quit)))
	} else {
		b.WriteString(m.styles.muted.Render("You are not signed in.") + "\n\n")
		b.WriteString(m.styles.help.Render(helpLine(keys.Login, keys.Quit)))
	}
	return b.String()
}
