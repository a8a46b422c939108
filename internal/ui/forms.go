package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nzaccagnino/notely/internal/binding"
)

// textWidget is implemented by *textinput.Model and *textarea.Model.
type textWidget interface {
	Value() string
	SetValue(string)
}

// pull stores the widget's text after an edit.
func pull(w textWidget, b *binding.Binding[string]) {
	b.Set(w.Value())
}

// push shows a value that was changed outside the widget.
func push(w textWidget, b *binding.Binding[string]) {
	if v := b.Value(); w.Value() != v {
		w.SetValue(v)
	}
}

type formField struct {
	label string
	input textinput.Model
	value *binding.Binding[string]
}

// form is a column of single-line inputs, each bound to its own value.
type form struct {
	fields []*formField
	focus  int
}

func (f *form) add(label, placeholder string, secret bool) *binding.Binding[string] {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	if len(f.fields) == 0 {
		ti.Focus()
	}

	field := &formField{label: label, input: ti, value: binding.New("")}
	f.fields = append(f.fields, field)
	return field.value
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	field := f.fields[f.focus]
	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	pull(&field.input, field.value)
	return cmd
}

// next moves focus to the following field and reports whether focus was on
// the last one.
func (f *form) next() bool {
	last := f.focus == len(f.fields)-1
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + 1) % len(f.fields)
	f.fields[f.focus].input.Focus()
	return last
}

func (f *form) refresh() {
	for _, field := range f.fields {
		push(&field.input, field.value)
	}
}

func (f *form) reset() {
	for _, field := range f.fields {
		field.value.Set("")
		field.input.Blur()
	}
	f.refresh()
	f.focus = 0
	f.fields[0].input.Focus()
}

func (f *form) view(width int) string {
	var b strings.Builder
	for i, field := range f.fields {
		label := LabelStyle.Render(field.label)
		if i == f.focus {
			label = FocusedLabelStyle.Render(field.label)
		}
		field.input.Width = width
		b.WriteString(label + "\n" + field.input.View() + "\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// noteForm is the add-note route: a title line and a free-text body.
type noteForm struct {
	title      textinput.Model
	body       textarea.Model
	titleValue *binding.Binding[string]
	bodyValue  *binding.Binding[string]
	onBody     bool
}

func newNoteForm(titlePlaceholder, bodyPlaceholder string) *noteForm {
	ti := textinput.New()
	ti.Placeholder = titlePlaceholder
	ti.CharLimit = 256
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = bodyPlaceholder
	ta.ShowLineNumbers = false

	return &noteForm{
		title:      ti,
		body:       ta,
		titleValue: binding.New(""),
		bodyValue:  binding.New(""),
	}
}

func (f *noteForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.onBody {
		f.body, cmd = f.body.Update(msg)
		pull(&f.body, f.bodyValue)
		return cmd
	}
	f.title, cmd = f.title.Update(msg)
	pull(&f.title, f.titleValue)
	return cmd
}

func (f *noteForm) toggle() {
	f.onBody = !f.onBody
	if f.onBody {
		f.title.Blur()
		f.body.Focus()
		return
	}
	f.body.Blur()
	f.title.Focus()
}

func (f *noteForm) reset() {
	f.titleValue.Set("")
	f.bodyValue.Set("")
	push(&f.title, f.titleValue)
	push(&f.body, f.bodyValue)
	if f.onBody {
		f.toggle()
	}
}

func (f *noteForm) resize(width, height int) {
	f.title.Width = width
	f.body.SetWidth(width)
	f.body.SetHeight(max(height, 3))
}

func (f *noteForm) view(titleLabel, bodyLabel string) string {
	tl, bl := FocusedLabelStyle.Render(titleLabel), LabelStyle.Render(bodyLabel)
	if f.onBody {
		tl, bl = LabelStyle.Render(titleLabel), FocusedLabelStyle.Render(bodyLabel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, tl, f.title.View(), "", bl, f.body.View())
}
