package host

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/ledger/pkg/binding"
)

// Label is read-only text.
type Label struct {
	Caption string
	Style   lipgloss.Style
	Width   int

	text string
}

var _ binding.Display = (*Label)(nil)

func NewLabel(caption string, style lipgloss.Style) *Label {
	return &Label{Caption: caption, Style: style}
}

func (l *Label) Text() string        { return l.text }
func (l *Label) SetText(text string) { l.text = text }

func (l *Label) View() string {
	text := l.text
	if l.Width > 0 {
		text = truncate.StringWithTail(text, uint(l.Width), "…")
	}
	return renderLabel(l.Caption, false, true) + l.Style.Render(text)
}
