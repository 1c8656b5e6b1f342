package host

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/ledger/pkg/binding"
)

// Button raises an activation on enter, or on its shortcut key from anywhere
// on the screen.
type Button struct {
	Label    string
	Shortcut string

	enabled    bool
	focused    bool
	onActivate handlers[func()]
}

var (
	_ binding.Activator = (*Button)(nil)
	_ Widget            = (*Button)(nil)
)

func NewButton(label, shortcut string) *Button {
	return &Button{Label: label, Shortcut: shortcut, enabled: true}
}

func (b *Button) Enabled() bool           { return b.enabled }
func (b *Button) SetEnabled(enabled bool) { b.enabled = enabled }

func (b *Button) OnActivate(fn func()) func() {
	return b.onActivate.add(fn)
}

// Press activates the button unless it is disabled.
func (b *Button) Press() {
	if !b.enabled {
		return
	}
	b.onActivate.each(func(fn func()) { fn() })
}

func (b *Button) Focus() tea.Cmd {
	b.focused = true
	return nil
}

func (b *Button) Blur()         { b.focused = false }
func (b *Button) Focused() bool { return b.focused }

func (b *Button) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok && b.focused && key.String() == "enter" {
		b.Press()
	}
	return nil
}

func (b *Button) View() string {
	text := "[ " + b.Label + " ]"
	if b.Shortcut != "" {
		text = "[ " + b.Label + " (" + b.Shortcut + ") ]"
	}
	switch {
	case !b.enabled:
		return disabledStyle.Render(text)
	case b.focused:
		return focusedStyle.Render(text)
	default:
		return text
	}
}
