// Package ui renders one-shot CLI output: status lines and framed panels.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes themed output. Colors are only emitted when out is a
// terminal.
type Printer struct {
	out, errOut io.Writer
	renderer    *lipgloss.Renderer
	theme       Theme
}

// NewPrinter returns a printer for out (results) and errOut (failures).
func NewPrinter(out, errOut io.Writer, theme string) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:      out,
		errOut:   errOut,
		renderer: r,
		theme:    NewTheme(theme, r),
	}
}

// Theme returns the printer's theme.
func (p *Printer) Theme() Theme { return p.theme }

func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.out, p.theme.Success.Render(p.theme.SymOK+" "+msg))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.errOut, p.theme.Error.Render(p.theme.SymFail+" "+msg))
}

// Info prints a plain muted line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, p.theme.Muted.Render(msg))
}

// Panel draws lines in a bordered box under an optional title.
func (p *Printer) Panel(title string, lines []string) {
	body := strings.Join(lines, "\n")
	if title != "" {
		body = p.theme.Title.Render(title) + "\n" + body
	}
	box := p.renderer.NewStyle().
		Border(p.theme.Border).
		BorderForeground(p.theme.BorderColor).
		Padding(0, 1)
	fmt.Fprintln(p.out, box.Render(body))
}
