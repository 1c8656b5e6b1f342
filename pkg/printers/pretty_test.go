package printers

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"tableflip.dev/ledger/pkg/transaction"
	"tableflip.dev/ledger/pkg/viewmodel"
)

func plain(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestTransactionsTable(t *testing.T) {
	plain(t)
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	rent := transaction.New(day, "Landlord", "Rent", decimal.RequireFromString("-900"))
	rent.Cleared = true
	pay := transaction.New(day, "Employer", "", decimal.RequireFromString("2500"))

	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Transactions(rent, pay)

	out := buf.String()
	for _, want := range []string{"2024-03-05", "Landlord", "-900.00", "Uncategorized", "2500.00", "*"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, rent.ID.String()) {
		t.Fatalf("ids should be hidden by default")
	}

	buf.Reset()
	pp.ShowID = true
	pp.Transactions(rent)
	if !strings.Contains(buf.String(), rent.ID.String()) {
		t.Fatalf("expected id column:\n%s", buf.String())
	}
}

func TestEmptyTransactions(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Transactions()
	if strings.TrimSpace(buf.String()) != "none" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestCategoriesAndBalance(t *testing.T) {
	plain(t)
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	txs := []*transaction.Transaction{
		transaction.New(day, "Grocer", "Food/Groceries", decimal.RequireFromString("-40.10")),
		transaction.New(day, "Diner", "Food/Out", decimal.RequireFromString("-12")),
	}

	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Categories(viewmodel.BuildCategoryTree(txs))
	pp.Balance(transaction.Balance(txs))

	out := buf.String()
	for _, want := range []string{"Food", "  Groceries", "-52.10", "Balance -52.10"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTitleWithCount(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.TitleWithCount("March", 1)
	pp.TitleWithCount("April", 2)
	if got := buf.String(); got != "March - 1 transaction\nApril - 2 transactions\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNoColorEnvironment(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })
	color.NoColor = false
	t.Setenv("NO_COLOR", "1")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	defer f.Close()
	if Terminal(f) {
		t.Fatalf("a regular file is not a terminal")
	}
	DisableColorUnlessTerminal(f)
	if !color.NoColor {
		t.Fatalf("expected colour to be disabled")
	}
}
