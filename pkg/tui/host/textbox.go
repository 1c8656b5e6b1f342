package host

import (
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/ledger/pkg/binding"
)

// TextBox is a labelled single line editor.
type TextBox struct {
	Label string

	input   textinput.Model
	enabled bool
	onInput handlers[func(string)]
}

var (
	_ binding.TextControl = (*TextBox)(nil)
	_ Widget              = (*TextBox)(nil)
)

func NewTextBox(label, placeholder string) *TextBox {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	return &TextBox{Label: label, input: ti, enabled: true}
}

func (t *TextBox) Enabled() bool { return t.enabled }

func (t *TextBox) SetEnabled(enabled bool) {
	t.enabled = enabled
	if !enabled {
		t.input.Blur()
	}
}

func (t *TextBox) Text() string { return t.input.Value() }

// SetText replaces the contents without raising input events.
func (t *TextBox) SetText(text string) {
	t.input.SetValue(text)
}

// Selection reports the caret as an empty range; the editor has no
// multi-character selection.
func (t *TextBox) Selection() (int, int) {
	pos := t.input.Position()
	return pos, pos
}

func (t *TextBox) SetSelection(_, end int) {
	t.input.SetCursor(end)
}

// Input replaces the contents as if the user typed them, as for a paste.
func (t *TextBox) Input(text string) {
	if !t.enabled || text == t.input.Value() {
		return
	}
	t.input.SetValue(text)
	value := t.input.Value()
	t.onInput.each(func(fn func(string)) { fn(value) })
}

func (t *TextBox) OnInput(fn func(string)) func() {
	return t.onInput.add(fn)
}

func (t *TextBox) SetWidth(width int) {
	t.input.SetWidth(width)
}

func (t *TextBox) Focus() tea.Cmd {
	if !t.enabled {
		return nil
	}
	return t.input.Focus()
}

func (t *TextBox) Blur() { t.input.Blur() }

func (t *TextBox) Focused() bool { return t.input.Focused() }

// Update feeds msg to the editor and raises an input event when the text
// changed.
func (t *TextBox) Update(msg tea.Msg) tea.Cmd {
	if !t.enabled || !t.input.Focused() {
		return nil
	}
	prev := t.input.Value()
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	if value := t.input.Value(); value != prev {
		t.onInput.each(func(fn func(string)) { fn(value) })
	}
	return cmd
}

func (t *TextBox) View() string {
	return renderLabel(t.Label, t.Focused(), t.enabled) + t.input.View()
}
