package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/guard"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/validate"
)

func newLoginForm() form {
	return newForm(func(v []string) error {
		_, err := validate.Login(validate.LoginInput{Name: v[0], Email: v[1]})
		return err
	},
		[3]string{"Name", "name", "Ann"},
		[3]string{"Email", "email", "ann@example.com"},
	)
}

func (m Model) updateLogin(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		return m.navigate(guard.Home)
	case key.Matches(msg, keys.Next):
		return m, m.login.setFocus((m.login.focus + 1) % len(m.login.inputs))
	case key.Matches(msg, keys.Prev):
		return m, m.login.setFocus((m.login.focus + len(m.login.inputs) - 1) % len(m.login.inputs))
	case key.Matches(msg, keys.Submit):
		if !m.login.submit() {
			return m, nil
		}
		v := m.login.values()
		m.session.Login(model.User{Name: v[0], Email: v[1]})
		m.logger.Info("logged in", slog.String("operation", "Login"), slog.String("email", v[1]))
		m.login.reset()
		m.login.setFocus(0)
		return m, nil
	}
	return m, m.login.update(msg)
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Login") + "\n\n")
	b.WriteString(m.login.view(m.styles))
	b.WriteString("\n" + m.styles.help.Render(helpLine(keys.Next, keys.Submit, keys.Back)))
	return b.String()
}
