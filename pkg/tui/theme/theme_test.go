package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
)

func TestMoneyPicksStyleBySign(t *testing.T) {
	th := Default()
	cases := map[int]lipgloss.Style{
		-3: th.Amount.Negative,
		0:  th.Amount.Zero,
		7:  th.Amount.Positive,
	}
	for sign, want := range cases {
		if got := th.Money(sign).GetForeground(); got != want.GetForeground() {
			t.Errorf("sign %d: unexpected colour %v", sign, got)
		}
	}
}

func TestPaletteParses(t *testing.T) {
	for _, c := range []any{accent, muted, income, expense, neutral} {
		if c == fallback {
			t.Fatalf("palette colour fell back to grey")
		}
	}
}
