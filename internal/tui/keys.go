package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Login  key.Binding
	Todos  key.Binding
	Logout key.Binding
	Quit   key.Binding

	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Back   key.Binding

	SignOut key.Binding
	Delete  key.Binding

	ForceQuit key.Binding
}

var keys = keyMap{
	Login:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
	Todos:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "todos")),
	Logout: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),

	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),

	SignOut: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "logout")),
	Delete:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d/x", "delete")),

	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// helpLine renders bindings as "key desc · key desc".
func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " · "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
