package host

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/ledger/pkg/binding"
)

// Choice is a scrolling list with a single selection. Like most toolkits it
// reports programmatic Select calls through OnSelect as well as user moves.
type Choice struct {
	Label  string
	Height int
	Width  int

	adapter  binding.Adapter
	selected int
	offset   int
	enabled  bool
	focused  bool
	onSelect handlers[func(int)]
}

var (
	_ binding.ChoiceControl = (*Choice)(nil)
	_ Widget                = (*Choice)(nil)
)

// NewChoice creates an empty list showing at most height rows.
func NewChoice(label string, height int) *Choice {
	if height < 1 {
		height = 1
	}
	return &Choice{Label: label, Height: height, selected: -1, enabled: true}
}

func (c *Choice) Enabled() bool           { return c.enabled }
func (c *Choice) SetEnabled(enabled bool) { c.enabled = enabled }

func (c *Choice) Adapter() binding.Adapter { return c.adapter }

func (c *Choice) SetAdapter(a binding.Adapter) {
	c.adapter = a
	c.Refresh()
}

// Refresh re-reads the adapter, keeping the selection and scroll position
// where they are still valid.
func (c *Choice) Refresh() {
	n := c.len()
	if c.selected >= n {
		c.selected = n - 1
	}
	c.scrollTo(c.selected)
}

func (c *Choice) SelectedIndex() int { return c.selected }

func (c *Choice) Select(position int) {
	if position < -1 || position >= c.len() {
		return
	}
	c.selected = position
	c.scrollTo(position)
	c.onSelect.each(func(fn func(int)) { fn(position) })
}

func (c *Choice) OnSelect(fn func(int)) func() {
	return c.onSelect.add(fn)
}

func (c *Choice) Focus() tea.Cmd {
	c.focused = true
	return nil
}

func (c *Choice) Blur()         { c.focused = false }
func (c *Choice) Focused() bool { return c.focused }

func (c *Choice) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !c.focused || !c.enabled || c.len() == 0 {
		return nil
	}
	switch key.String() {
	case "up", "k":
		c.move(-1)
	case "down", "j":
		c.move(1)
	case "home", "g":
		c.Select(0)
	case "end", "G":
		c.Select(c.len() - 1)
	}
	return nil
}

func (c *Choice) View() string {
	var b strings.Builder
	if label := renderLabel(c.Label, c.focused, c.enabled); label != "" {
		b.WriteString(label)
		b.WriteString("\n")
	}
	end := min(c.offset+c.Height, c.len())
	for i := c.offset; i < end; i++ {
		text := c.adapter.Label(i)
		if c.Width > 2 {
			text = truncate.StringWithTail(text, uint(c.Width-2), "…")
		}
		if i == c.selected {
			b.WriteString(selectedStyle.Render("> " + text))
		} else {
			b.WriteString("  " + text)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if c.len() == 0 {
		b.WriteString(disabledStyle.Render("  (empty)"))
	}
	return b.String()
}

func (c *Choice) move(delta int) {
	next := c.selected + delta
	if c.selected < 0 {
		next = 0
	}
	if next < 0 || next >= c.len() {
		return
	}
	c.Select(next)
}

func (c *Choice) scrollTo(position int) {
	if position < 0 {
		c.offset = min(c.offset, max(c.len()-c.Height, 0))
		return
	}
	if position < c.offset {
		c.offset = position
	}
	if position >= c.offset+c.Height {
		c.offset = position - c.Height + 1
	}
}

func (c *Choice) len() int {
	if c.adapter == nil {
		return 0
	}
	return c.adapter.Len()
}
