package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	accent   = hex("#ff87d7")
	muted    = hex("#626262")
	income   = hex("#5fd787")
	expense  = hex("#ff5f5f")
	neutral  = hex("#bcbcbc")
	fallback = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
)

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return c
}

// Theme centralizes Lip Gloss styles for the ledger screen.
type Theme struct {
	Footer FooterTheme
	Panel  PanelTheme
	Amount AmountTheme
}

// FooterTheme groups styles used by the status line and key help.
type FooterTheme struct {
	Help     lipgloss.Style
	Status   lipgloss.Style
	PageInfo lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame   lipgloss.Style
	Focused lipgloss.Style
	Title   lipgloss.Style
}

// AmountTheme colours money by sign.
type AmountTheme struct {
	Positive lipgloss.Style
	Negative lipgloss.Style
	Zero     lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)

	return Theme{
		Footer: FooterTheme{
			Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			PageInfo: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Panel: PanelTheme{
			Frame:   frame,
			Focused: frame.BorderForeground(accent),
			Title:   lipgloss.NewStyle().Bold(true),
		},
		Amount: AmountTheme{
			Positive: lipgloss.NewStyle().Foreground(income),
			Negative: lipgloss.NewStyle().Foreground(expense),
			Zero:     lipgloss.NewStyle().Foreground(neutral),
		},
	}
}

// Money picks the amount style for a value with the given sign.
func (t Theme) Money(sign int) lipgloss.Style {
	switch {
	case sign < 0:
		return t.Amount.Negative
	case sign > 0:
		return t.Amount.Positive
	default:
		return t.Amount.Zero
	}
}
