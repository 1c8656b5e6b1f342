package list

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"tableflip.dev/ledger/pkg/paged"
	"tableflip.dev/ledger/pkg/printers"
	"tableflip.dev/ledger/pkg/store"
	"tableflip.dev/ledger/pkg/transaction"
	"tableflip.dev/ledger/pkg/viewmodel"
)

// List prints one page of transactions, newest first, through the same
// paged collection the interactive screen uses.
type List struct {
	Category string
	Filter   string
	// Page is one based; out of range pages clamp to the nearest page.
	Page     int
	PageSize int
	Tree     bool
	// Since drops transactions dated before it, when set.
	Since time.Time

	Persistence store.Persistence
	Printer     *printers.PrettyPrint
}

// Result is the page List selected.
type Result struct {
	Page         int                        `json:"page"`
	Pages        int                        `json:"pages"`
	Matched      int                        `json:"matched"`
	Total        int                        `json:"total"`
	Balance      string                     `json:"balance"`
	Transactions []*transaction.Transaction `json:"transactions"`
}

// Select loads and pages without printing.
func (n *List) Select(ctx context.Context) (*Result, []*transaction.Transaction, error) {
	if n.Persistence == nil {
		return nil, nil, errors.New("can not list, no persistence")
	}
	all := n.Persistence.List(ctx)
	if !n.Since.IsZero() {
		all = slices.DeleteFunc(all, func(tx *transaction.Transaction) bool {
			return tx.Date.Before(n.Since)
		})
	}

	items := paged.New(n.PageSize,
		paged.WithComparer(transaction.Compare),
		paged.WithPredicate(viewmodel.CategoryPredicate(n.Category)),
		paged.WithEqual(viewmodel.SameTransaction),
	)
	defer items.Dispose()
	items.ReplaceAll(all)
	items.SetFilterText(n.Filter)
	items.GoToPage(n.Page - 1)

	visible := items.VisibleItems()
	if visible == nil {
		visible = []*transaction.Transaction{}
	}
	return &Result{
		Page:         items.CurrentPage() + 1,
		Pages:        items.PageCount(),
		Matched:      items.FilteredCount(),
		Total:        items.TotalCount(),
		Balance:      transaction.Balance(all).StringFixed(2),
		Transactions: visible,
	}, all, nil
}

func (n *List) Do(ctx context.Context) error {
	res, all, err := n.Select(ctx)
	if err != nil {
		return err
	}

	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	title := "Transactions"
	if n.Category != "" && n.Category != viewmodel.AllCategories {
		title = n.Category
	}
	pp.TitleWithCount(title, res.Matched)
	pp.Transactions(res.Transactions...)
	if res.Pages > 1 {
		_, _ = fmt.Fprintf(pp.Writer(), "page %d of %d\n\n", res.Page, res.Pages)
	}
	if n.Tree {
		pp.Categories(viewmodel.BuildCategoryTree(all))
	}
	pp.Balance(transaction.Balance(all))
	return nil
}
