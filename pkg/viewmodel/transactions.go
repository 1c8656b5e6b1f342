// Package viewmodel holds the observable state behind the ledger screens.
package viewmodel

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tableflip.dev/ledger/pkg/observable"
	"tableflip.dev/ledger/pkg/paged"
	"tableflip.dev/ledger/pkg/scheduler"
	"tableflip.dev/ledger/pkg/store"
	"tableflip.dev/ledger/pkg/transaction"
)

// AllCategories is the picker entry that turns the category filter off.
const AllCategories = "All"

// Draft is the transaction being typed into the add form.
type Draft struct {
	Date     time.Time
	Payee    string
	Category string
	Amount   decimal.Decimal
	Cleared  bool
	Note     string
}

// Option customises a Transactions view-model.
type Option func(*Transactions)

func WithLogger(log zerolog.Logger) Option {
	return func(vm *Transactions) { vm.log = log }
}

// WithClock replaces time.Now for new drafts.
func WithClock(now func() time.Time) Option {
	return func(vm *Transactions) { vm.now = now }
}

// WithRunner replaces the goroutine used for background loads.
func WithRunner(run func(func())) Option {
	return func(vm *Transactions) { vm.run = run }
}

// Transactions is the view-model of the main screen. Exported fields are
// read by bindings on the UI goroutine; writes go through the setters and
// commands so every change is announced.
type Transactions struct {
	observable.Notifier

	Filter     string
	Category   string
	Categories *observable.List[string]
	Draft      *Draft
	Selected   *transaction.Transaction
	Status     string
	PageInfo   string
	Balance    decimal.Decimal
	Items      *paged.Collection[*transaction.Transaction]

	Add      *observable.RelayCommand
	Delete   *observable.RelayCommand
	NextPage *observable.RelayCommand
	PrevPage *observable.RelayCommand
	Reload   *observable.RelayCommand

	store  store.Persistence
	sched  scheduler.Scheduler
	log    zerolog.Logger
	now    func() time.Time
	run    func(func())
	ctx    context.Context
	unsubs []func()
}

// New creates the view-model. Nothing is loaded until Start or Load.
func New(p store.Persistence, sched scheduler.Scheduler, pageSize int, opts ...Option) *Transactions {
	vm := &Transactions{
		Category:   AllCategories,
		Categories: observable.NewList(AllCategories),
		Balance:    decimal.Zero,
		store:      p,
		sched:      sched,
		log:        zerolog.Nop(),
		now:        time.Now,
		run:        func(fn func()) { go fn() },
		ctx:        context.Background(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.Draft = vm.newDraft()
	vm.Items = paged.New(pageSize,
		paged.WithComparer(transaction.Compare),
		paged.WithPredicate(CategoryPredicate(AllCategories)),
		paged.WithEqual(SameTransaction),
	)

	vm.Add = observable.NewCommand(vm.addDraft, vm.canAdd)
	vm.Delete = observable.NewCommand(vm.deleteSelected, func() bool { return vm.Selected != nil })
	vm.NextPage = observable.NewCommand(func() { vm.Items.LoadNextPage() }, vm.Items.HasMorePages)
	vm.PrevPage = observable.NewCommand(func() { vm.Items.LoadPreviousPage() }, vm.Items.HasPreviousPages)
	vm.Reload = observable.NewCommand(func() {
		ctx := vm.ctx
		vm.run(func() {
			if err := vm.Load(ctx); err != nil {
				vm.log.Debug().Err(err).Msg("reload abandoned")
			}
		})
	}, nil)

	vm.unsubs = append(vm.unsubs,
		vm.Items.Subscribe(func(observable.Change[*transaction.Transaction]) {
			scheduler.Invoke(vm.sched, vm.pageChanged)
		}),
		vm.SubscribePropertyChanged(vm.onPropertyChanged),
	)
	vm.pageChanged()
	return vm
}

// SameTransaction compares transactions by id.
func SameTransaction(a, b *transaction.Transaction) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// Start loads in the background and reloads whenever the store changes on
// disk, until ctx is done.
func (vm *Transactions) Start(ctx context.Context) {
	vm.ctx = ctx
	events, err := vm.store.Watch(ctx)
	if err != nil {
		vm.log.Warn().Err(err).Msg("watching store, changes from other processes will not show")
	}
	vm.run(func() { vm.Load(ctx) })
	if events == nil {
		return
	}
	go func() {
		for ev := range events {
			vm.log.Debug().Stringer("event", ev.Type).Msg("store changed")
			vm.Load(ctx)
		}
	}()
}

// Load reads every transaction and replaces the collection, keeping the
// current page when it still exists. Safe to call from any goroutine.
func (vm *Transactions) Load(ctx context.Context) error {
	txs := vm.store.List(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	page := vm.Items.CurrentPage()
	vm.Items.ReplaceAll(txs)
	if page > 0 {
		vm.Items.GoToPage(page)
	}

	balance := transaction.Balance(txs)
	categories := transaction.Categories(txs)
	scheduler.Invoke(vm.sched, func() {
		vm.setCategories(categories)
		vm.Balance = balance
		vm.Notify("Balance")
		vm.setStatus(fmt.Sprintf("loaded %d transactions", len(txs)))
	})
	return nil
}

// SetFilter narrows the list to transactions matching text.
func (vm *Transactions) SetFilter(text string) {
	if text == vm.Filter {
		return
	}
	vm.Filter = text
	vm.Items.SetFilterText(text)
	vm.Notify("Filter")
}

// SetCategory restricts the list to category and its subcategories.
func (vm *Transactions) SetCategory(category string) {
	if category == "" {
		category = AllCategories
	}
	if category == vm.Category {
		return
	}
	vm.Category = category
	vm.Items.SetFilterPredicate(CategoryPredicate(category))
	vm.Notify("Category")
}

// Close detaches the view-model from its collection.
func (vm *Transactions) Close() {
	for _, unsub := range vm.unsubs {
		unsub()
	}
	vm.unsubs = nil
	vm.Items.Dispose()
}

func (vm *Transactions) newDraft() *Draft {
	return &Draft{Date: transaction.Day(vm.now()), Amount: decimal.Zero}
}

func (vm *Transactions) canAdd() bool {
	d := vm.Draft
	return d != nil && strings.TrimSpace(d.Payee) != "" && !d.Amount.IsZero() && !d.Date.IsZero()
}

func (vm *Transactions) addDraft() {
	d := vm.Draft
	tx := transaction.New(d.Date, d.Payee, d.Category, d.Amount)
	tx.Cleared = d.Cleared
	tx.Note = strings.TrimSpace(d.Note)
	if err := vm.store.Store(tx); err != nil {
		vm.fail("add", err)
		return
	}
	vm.Items.Add(tx)
	vm.Balance = vm.Balance.Add(tx.Amount)
	vm.Notify("Balance")
	vm.addCategory(tx.CategoryName())

	vm.Draft = vm.newDraft()
	vm.Notify("Draft")
	vm.setStatus(fmt.Sprintf("added %s %s", tx.Payee, tx.Amount.StringFixed(2)))
}

func (vm *Transactions) deleteSelected() {
	tx := vm.Selected
	if tx == nil {
		return
	}
	if err := vm.store.Delete(tx); err != nil {
		vm.fail("delete", err)
		return
	}
	vm.Items.Remove(tx)
	vm.Balance = vm.Balance.Sub(tx.Amount)
	vm.Notify("Balance")
	vm.Selected = nil
	vm.Notify("Selected")
	vm.setStatus(fmt.Sprintf("deleted %s", tx.Payee))
}

func (vm *Transactions) fail(action string, err error) {
	vm.log.Error().Err(err).Str("action", action).Msg("command failed")
	vm.setStatus(fmt.Sprintf("%s: %v", action, err))
}

func (vm *Transactions) setStatus(status string) {
	vm.Status = status
	vm.Notify("Status")
}

func (vm *Transactions) pageChanged() {
	info := fmt.Sprintf("page %d/%d, %d of %d", vm.Items.CurrentPage()+1, vm.Items.PageCount(), vm.Items.FilteredCount(), vm.Items.TotalCount())
	if info != vm.PageInfo {
		vm.PageInfo = info
		vm.Notify("PageInfo")
	}
	vm.NextPage.RaiseCanExecuteChanged()
	vm.PrevPage.RaiseCanExecuteChanged()
}

func (vm *Transactions) onPropertyChanged(evt observable.PropertyChanged) {
	if evt.All() || evt.Name == "Draft" || strings.HasPrefix(evt.Name, "Draft.") {
		vm.Add.RaiseCanExecuteChanged()
	}
	if evt.Affects("Selected") {
		vm.Delete.RaiseCanExecuteChanged()
	}
}

func (vm *Transactions) setCategories(names []string) {
	list := append([]string{AllCategories}, names...)
	if current := vm.Categories.Snapshot(); slices.Equal(current, list) {
		return
	}
	vm.Categories.Set(list)
}

func (vm *Transactions) addCategory(name string) {
	current := vm.Categories.Snapshot()
	if observable.IndexOf(current, name, nil) >= 0 {
		return
	}
	names := append(current[1:], name)
	sort.Strings(names)
	vm.Categories.Set(append([]string{AllCategories}, names...))
}

// CategoryPredicate keeps transactions filed under category, or any category
// for AllCategories, that also match the filter text.
func CategoryPredicate(category string) paged.Predicate[*transaction.Transaction] {
	if category == "" {
		category = AllCategories
	}
	return func(tx *transaction.Transaction, filter string) bool {
		if category != AllCategories {
			name := cleanCategory(tx.CategoryName())
			if name != category && !strings.HasPrefix(name, category+"/") {
				return false
			}
		}
		return tx.Matches(filter)
	}
}
