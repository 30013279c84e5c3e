package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/validate"
)

// form is a column of labelled text inputs with per-field errors. Once a
// submit has failed, every edit re-validates.
type form struct {
	labels []string
	fields []string
	inputs []textinput.Model
	focus  int

	errs      map[string]string
	submitted bool
	check     func(values []string) error
}

func newForm(check func([]string) error, specs ...[3]string) form {
	f := form{check: check}
	for _, s := range specs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = s[2]
		ti.CharLimit = 200
		f.labels = append(f.labels, s[0])
		f.fields = append(f.fields, s[1])
		f.inputs = append(f.inputs, ti)
	}
	return f
}

// values returns the trimmed input values. Validation and saving both read
// them, so what is checked is what is stored.
func (f form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

// setFocus focuses input i; i outside the inputs blurs all of them.
func (f *form) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f form) focused() bool {
	return f.focus >= 0 && f.focus < len(f.inputs)
}

// update forwards msg to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if !f.focused() {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.submitted {
		f.validate()
	}
	return cmd
}

// validate records field errors and reports whether the form is valid.
func (f *form) validate() bool {
	err := f.check(f.values())
	if err == nil {
		f.errs = nil
		return true
	}
	var verr *validate.Error
	if errors.As(err, &verr) {
		f.errs = verr.Map()
	} else {
		f.errs = map[string]string{"": err.Error()}
	}
	return false
}

// submit validates and marks the form as submitted on failure.
func (f *form) submit() bool {
	if f.validate() {
		return true
	}
	f.submitted = true
	return false
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.errs = nil
	f.submitted = false
}

func (f form) view(s styles) string {
	out := ""
	for i, in := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			out += s.focused.Render(label) + "\n"
		} else {
			out += s.label.Render(label) + "\n"
		}
		out += in.View() + "\n"
		if msg := f.errs[f.fields[i]]; msg != "" {
			out += s.err.Render(msg) + "\n"
		}
	}
	return out
}
