package host

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/ledger/pkg/binding"
)

// CheckBox toggles with space or x.
type CheckBox struct {
	Label string

	checked  bool
	enabled  bool
	focused  bool
	onToggle handlers[func(bool)]
}

var (
	_ binding.ToggleControl = (*CheckBox)(nil)
	_ Widget                = (*CheckBox)(nil)
)

func NewCheckBox(label string) *CheckBox {
	return &CheckBox{Label: label, enabled: true}
}

func (c *CheckBox) Enabled() bool           { return c.enabled }
func (c *CheckBox) SetEnabled(enabled bool) { c.enabled = enabled }
func (c *CheckBox) Checked() bool           { return c.checked }

// SetChecked changes the state without raising a toggle event.
func (c *CheckBox) SetChecked(checked bool) { c.checked = checked }

func (c *CheckBox) OnToggle(fn func(bool)) func() {
	return c.onToggle.add(fn)
}

// Toggle flips the state as if the user pressed space.
func (c *CheckBox) Toggle() {
	if !c.enabled {
		return
	}
	c.checked = !c.checked
	checked := c.checked
	c.onToggle.each(func(fn func(bool)) { fn(checked) })
}

func (c *CheckBox) Focus() tea.Cmd {
	c.focused = true
	return nil
}

func (c *CheckBox) Blur()         { c.focused = false }
func (c *CheckBox) Focused() bool { return c.focused }

func (c *CheckBox) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok && c.focused {
		switch key.String() {
		case "space", " ", "x":
			c.Toggle()
		}
	}
	return nil
}

func (c *CheckBox) View() string {
	box := "[ ]"
	if c.checked {
		box = "[x]"
	}
	return renderLabel(c.Label, c.focused, c.enabled) + box
}
