// Package host implements the binding control contract on top of Bubble Tea
// so view-models can drive a terminal screen.
package host

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Widget is a focusable control that takes part in a screen's update loop.
type Widget interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
}

var (
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	focusedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// handlers is a small listener registry; unsubscribing clears a slot.
type handlers[F any] struct {
	slots []*F
}

func (h *handlers[F]) add(fn F) func() {
	slot := &fn
	h.slots = append(h.slots, slot)
	return func() {
		for i, s := range h.slots {
			if s == slot {
				h.slots = append(h.slots[:i], h.slots[i+1:]...)
				return
			}
		}
	}
}

func (h *handlers[F]) each(call func(F)) {
	for _, slot := range append([]*F(nil), h.slots...) {
		call(*slot)
	}
}

func (h *handlers[F]) len() int {
	return len(h.slots)
}

func renderLabel(label string, focused, enabled bool) string {
	if label == "" {
		return ""
	}
	switch {
	case !enabled:
		return disabledStyle.Render(label) + " "
	case focused:
		return focusedStyle.Render(label) + " "
	default:
		return labelStyle.Render(label) + " "
	}
}
