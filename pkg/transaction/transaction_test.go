package transaction

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNewTrimsAndValidates(t *testing.T) {
	tx := New(time.Date(2024, 3, 9, 17, 45, 0, 0, time.Local), "  Grocer ", "", decimal.RequireFromString("-12.5"))
	if tx.ID == uuid.Nil {
		t.Fatalf("expected an id")
	}
	if tx.Payee != "Grocer" {
		t.Fatalf("unexpected payee %q", tx.Payee)
	}
	if !tx.Date.Equal(day("2024-03-09")) {
		t.Fatalf("expected date truncated to the day, got %s", tx.Date)
	}
	if tx.CategoryName() != Uncategorized {
		t.Fatalf("unexpected category %q", tx.CategoryName())
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	tests := map[string]func(*Transaction){
		"payee":  func(tx *Transaction) { tx.Payee = " " },
		"amount": func(tx *Transaction) { tx.Amount = decimal.Zero },
		"date":   func(tx *Transaction) { tx.Date = time.Time{} },
		"id":     func(tx *Transaction) { tx.ID = uuid.Nil },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			bad := *tx
			mutate(&bad)
			if err := bad.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tx := New(day("2024-03-09"), "Corner Grocer", "Food", decimal.RequireFromString("-12.50"))
	tx.Note = "weekly shop"
	for _, filter := range []string{"", "grocer", "FOOD", "weekly", "2024-03", "-12.50"} {
		if !tx.Matches(filter) {
			t.Errorf("expected %q to match", filter)
		}
	}
	if tx.Matches("rent") {
		t.Errorf("rent should not match")
	}
}

func TestSortCategoriesBalance(t *testing.T) {
	older := New(day("2024-03-01"), "Landlord", "Rent", decimal.RequireFromString("-900"))
	newer := New(day("2024-03-09"), "Grocer", "Food", decimal.RequireFromString("-12.50"))
	income := New(day("2024-03-09"), "Employer", "", decimal.RequireFromString("2500"))
	income.Created.Time = newer.Created.Add(time.Second)

	txs := []*Transaction{older, newer, income}
	Sort(txs)
	if txs[0] != income || txs[1] != newer || txs[2] != older {
		t.Fatalf("unexpected order %v", txs)
	}
	if got := strings.Join(Categories(txs), ","); got != "Food,Rent,Uncategorized" {
		t.Fatalf("unexpected categories %q", got)
	}
	if got := Balance(txs).StringFixed(2); got != "1587.50" {
		t.Fatalf("unexpected balance %s", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := map[string]string{
		"12.34":  "12.34",
		"12,34":  "12.34",
		" -7,5 ": "-7.5",
		"1.005":  "1.01",
		"100":    "100",
	}
	for in, want := range tests {
		got, err := ParseAmount(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("parse %q: got %s want %s", in, got, want)
		}
	}
	for _, in := range []string{"", "abc", "1,2,3"} {
		if _, err := ParseAmount(in); !errors.Is(err, ErrInvalid) {
			t.Errorf("parse %q: expected ErrInvalid, got %v", in, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	today := func() time.Time { return time.Date(2024, 5, 1, 13, 0, 0, 0, time.Local) }
	got, err := ParseDate("", today)
	if err != nil || !got.Equal(day("2024-05-01")) {
		t.Fatalf("empty date should be today, got %s %v", got, err)
	}
	got, err = ParseDate("2024-02-29", today)
	if err != nil || !got.Equal(day("2024-02-29")) {
		t.Fatalf("unexpected date %s %v", got, err)
	}
	if _, err := ParseDate("29/02/2024", today); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestJSONKeepsFields(t *testing.T) {
	tx := New(day("2024-03-09"), "Grocer", "Food", decimal.RequireFromString("-12.50"))
	tx.Cleared = true
	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Transaction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != tx.ID || !back.Amount.Equal(tx.Amount) || !back.Cleared || !back.Created.Equal(tx.Created.Time) {
		t.Fatalf("round trip lost fields: %+v", back)
	}

	var empty Timestamp
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil || !empty.IsZero() {
		t.Fatalf("empty timestamp should decode to zero, got %v %v", empty, err)
	}
}
