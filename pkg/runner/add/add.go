package add

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/ledger/pkg/printers"
	"tableflip.dev/ledger/pkg/store"
	"tableflip.dev/ledger/pkg/transaction"
)

type Add struct {
	Date     string
	Payee    string
	Category string
	Amount   string
	Cleared  bool
	Note     string

	// Quiet skips printing, for callers that render the result themselves.
	Quiet bool
	Now   func() time.Time

	Persistence store.Persistence
	Printer     *printers.PrettyPrint

	// Added is set once Do has stored the transaction.
	Added *transaction.Transaction
}

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	now := n.Now
	if now == nil {
		now = time.Now
	}

	date, err := transaction.ParseDate(n.Date, now)
	if err != nil {
		return err
	}
	amount, err := transaction.ParseAmount(n.Amount)
	if err != nil {
		return err
	}

	tx := transaction.New(date, n.Payee, n.Category, amount)
	tx.Cleared = n.Cleared
	tx.Note = strings.TrimSpace(n.Note)
	if err := n.Persistence.Store(tx); err != nil {
		return err
	}
	n.Added = tx

	if n.Quiet {
		return nil
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.Title(tx.CategoryName())
	pp.Transactions(tx)
	pp.Balance(transaction.Balance(n.Persistence.List(ctx)))
	return nil
}
