package add

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/ledger/pkg/printers"
	"tableflip.dev/ledger/pkg/store"
	"tableflip.dev/ledger/pkg/transaction"
)

func TestAddStoresAndPrints(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })
	p, err := store.Load(store.StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	var buf bytes.Buffer
	a := Add{
		Payee:       "Cafe",
		Category:    "Food/Out",
		Amount:      "-4,20",
		Cleared:     true,
		Now:         func() time.Time { return time.Date(2024, 3, 10, 15, 0, 0, 0, time.Local) },
		Persistence: p,
		Printer:     &printers.PrettyPrint{Out: &buf},
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}

	stored, err := p.Get(a.Added.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Amount.StringFixed(2) != "-4.20" || !stored.Cleared || stored.Date.Format(transaction.DateLayout) != "2024-03-10" {
		t.Fatalf("unexpected stored transaction %+v", stored)
	}
	if out := buf.String(); !strings.Contains(out, "Cafe") || !strings.Contains(out, "Balance -4.20") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	p, _ := store.Load(store.StaticConfig{Path: t.TempDir()})
	cases := map[string]Add{
		"amount":  {Payee: "Cafe", Amount: "four"},
		"date":    {Payee: "Cafe", Amount: "4", Date: "10/03/2024"},
		"payee":   {Amount: "4"},
		"missing": {Payee: "Cafe"},
	}
	for name, a := range cases {
		a.Persistence = p
		a.Quiet = true
		if err := a.Do(context.Background()); !errors.Is(err, transaction.ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
	if got := len(p.List(context.Background())); got != 0 {
		t.Fatalf("nothing should be stored, got %d", got)
	}
}
