package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	label    string
	limit    int
	password bool
}

// form is a column of labelled text inputs with one focused input.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int

	submitting bool
	errMsg     string
}

func newForm(fields ...formField) form {
	f := form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}

	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = strings.ToLower(field.label)
		in.CharLimit = field.limit
		in.Width = 40
		if field.password {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		f.labels[i] = field.label
		f.inputs[i] = in
	}
	f.inputs[0].Focus()

	return f
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.inputs[f.focus].Blur()
	f.focus = 0
	f.inputs[0].Focus()
	f.submitting = false
	f.errMsg = ""
}

func (f *form) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// updateInput forwards msg to the focused input.
func (f *form) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view(submitLabel string) string {
	var b strings.Builder

	width := 0
	for _, l := range f.labels {
		if len(l) > width {
			width = len(l)
		}
	}

	for i, l := range f.labels {
		b.WriteString(fmt.Sprintf("%-*s │ [%s]\n", width, l, f.inputs[i].View()))
	}

	if f.submitting {
		b.WriteString("\n[" + submitLabel + "...]\n")
	} else {
		b.WriteString("\n[" + submitLabel + "]\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(renderError(f.errMsg))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
