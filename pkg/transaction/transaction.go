package transaction

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is how transaction dates are shown and typed.
const DateLayout = "2006-01-02"

// Uncategorized is used when a transaction has no category.
const Uncategorized = "Uncategorized"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid transaction")

// Transaction is a single ledger line. Negative amounts are expenses.
type Transaction struct {
	ID       uuid.UUID       `json:"id"`
	Date     time.Time       `json:"date"`
	Payee    string          `json:"payee"`
	Category string          `json:"category,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Cleared  bool            `json:"cleared,omitempty"`
	Note     string          `json:"note,omitempty"`
	Created  Timestamp       `json:"created"`
}

func New(date time.Time, payee, category string, amount decimal.Decimal) *Transaction {
	return &Transaction{
		ID:       uuid.New(),
		Date:     Day(date),
		Payee:    strings.TrimSpace(payee),
		Category: strings.TrimSpace(category),
		Amount:   amount,
		Created:  Timestamp{Time: time.Now()},
	}
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Validate reports the first problem that would stop t from being stored.
func (t *Transaction) Validate() error {
	switch {
	case t == nil:
		return fmt.Errorf("%w: nil", ErrInvalid)
	case t.ID == uuid.Nil:
		return fmt.Errorf("%w: missing id", ErrInvalid)
	case strings.TrimSpace(t.Payee) == "":
		return fmt.Errorf("%w: payee required", ErrInvalid)
	case t.Date.IsZero():
		return fmt.Errorf("%w: date required", ErrInvalid)
	case t.Amount.IsZero():
		return fmt.Errorf("%w: amount must not be zero", ErrInvalid)
	}
	return nil
}

// CategoryName returns the category, or Uncategorized when empty.
func (t *Transaction) CategoryName() string {
	if t.Category == "" {
		return Uncategorized
	}
	return t.Category
}

func (t *Transaction) Row() (string, string, string, string) {
	return t.Date.Format(DateLayout), t.Payee, t.CategoryName(), t.Amount.StringFixed(2)
}

// Matches reports whether filter appears, case-insensitively, in the payee,
// category, note, date or amount.
func (t *Transaction) Matches(filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return true
	}
	for _, field := range []string{t.Payee, t.CategoryName(), t.Note, t.Date.Format(DateLayout), t.Amount.StringFixed(2)} {
		if strings.Contains(strings.ToLower(field), filter) {
			return true
		}
	}
	return false
}

func (t *Transaction) String() string {
	mark := " "
	if t.Cleared {
		mark = "*"
	}
	date, payee, category, amount := t.Row()
	return fmt.Sprintf("%s %s  %s  [%s]  %s", date, mark, payee, category, amount)
}

// Compare orders transactions newest first, then by creation time.
func Compare(a, b *Transaction) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return b.Created.Compare(a.Created.Time)
}

// Sort orders txs with Compare.
func Sort(txs []*Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return Compare(txs[i], txs[j]) < 0
	})
}

// Categories lists the distinct category names in txs, sorted.
func Categories(txs []*Transaction) []string {
	seen := make(map[string]struct{})
	for _, t := range txs {
		seen[t.CategoryName()] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Balance sums the amounts of txs.
func Balance(txs []*Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.Amount)
	}
	return total
}
