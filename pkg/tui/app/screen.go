// Package teaui hosts the Bubble Tea program for the ledger screen.
package teaui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tableflip.dev/ledger/pkg/binding"
	"tableflip.dev/ledger/pkg/observable"
	"tableflip.dev/ledger/pkg/store"
	"tableflip.dev/ledger/pkg/transaction"
	"tableflip.dev/ledger/pkg/tui/host"
	"tableflip.dev/ledger/pkg/tui/theme"
	"tableflip.dev/ledger/pkg/viewmodel"
)

type vmSet = binding.Set[*viewmodel.Transactions]

// Options tune the screen.
type Options struct {
	PageSize int
	// Debounce delays filter writes while the user is typing.
	Debounce time.Duration
	Log      zerolog.Logger
}

// Model is the root Bubble Tea model. Every control is driven by a binding
// against the view-model; the model itself only routes keys and lays out.
type Model struct {
	vm    *viewmodel.Transactions
	sched *host.Scheduler
	set   *vmSet
	ctx   context.Context
	log   zerolog.Logger
	theme theme.Theme

	filter   *host.TextBox
	category *host.Choice
	list     *host.Choice

	date          *host.TextBox
	payee         *host.TextBox
	draftCategory *host.TextBox
	amount        *host.TextBox
	note          *host.TextBox
	cleared       *host.CheckBox

	add    *host.Button
	del    *host.Button
	prev   *host.Button
	next   *host.Button
	reload *host.Button

	status   *host.Label
	pageInfo *host.Label
	balance  *host.Label

	widgets []host.Widget
	buttons []*host.Button
	focus   int

	termWidth  int
	termHeight int
	closed     bool
}

// New builds the screen and its bindings. Nothing is shown until Init
// applies them.
func New(ctx context.Context, vm *viewmodel.Transactions, sched *host.Scheduler, opts Options) (*Model, error) {
	m := &Model{
		vm:    vm,
		sched: sched,
		set:   binding.NewSet(vm, sched, opts.Log),
		ctx:   ctx,
		log:   opts.Log,
		theme: theme.Default(),

		filter:   host.NewTextBox("Filter", "payee, category or note"),
		category: host.NewChoice("Category", 8),
		list:     host.NewChoice("Transactions", max(opts.PageSize, 1)),

		date:          host.NewTextBox("Date", transaction.DateLayout),
		payee:         host.NewTextBox("Payee", "who"),
		draftCategory: host.NewTextBox("Category", "food/groceries"),
		amount:        host.NewTextBox("Amount", "-12,50"),
		note:          host.NewTextBox("Note", ""),
		cleared:       host.NewCheckBox("Cleared"),

		add:    host.NewButton("Add", "ctrl+s"),
		del:    host.NewButton("Delete", "ctrl+d"),
		prev:   host.NewButton("Prev", "pgup"),
		next:   host.NewButton("Next", "pgdown"),
		reload: host.NewButton("Reload", "ctrl+r"),
	}
	t := m.theme
	m.status = host.NewLabel("", t.Footer.Status)
	m.pageInfo = host.NewLabel("", t.Footer.PageInfo)
	m.balance = host.NewLabel("Balance", lipgloss.NewStyle())

	m.widgets = []host.Widget{
		m.filter, m.category, m.list,
		m.date, m.payee, m.draftCategory, m.amount, m.note, m.cleared,
		m.add, m.del, m.prev, m.next, m.reload,
	}
	m.buttons = []*host.Button{m.add, m.del, m.prev, m.next, m.reload}

	if err := m.bind(opts.Debounce); err != nil {
		m.set.Dispose()
		return nil, err
	}
	return m, nil
}

func (m *Model) bind(debounce time.Duration) error {
	set := m.set
	var errs []error
	check := func(_ any, err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	check(binding.Bind(set, m.filter,
		binding.Func("Filter", func(vm *viewmodel.Transactions) string { return vm.Filter }, (*viewmodel.Transactions).SetFilter),
		binding.WithMode(binding.TwoWay), binding.WithDebounce(debounce)))

	check(binding.BindSelector(set, m.category,
		func(vm *viewmodel.Transactions) observable.Sequence[string] { return vm.Categories },
		binding.Func("Category", func(vm *viewmodel.Transactions) string { return vm.Category }, (*viewmodel.Transactions).SetCategory),
		binding.WithMode(binding.TwoWay), binding.WithItemsProperty("Categories")))

	selected, err := binding.Compile[*viewmodel.Transactions, *transaction.Transaction]("Selected")
	if err != nil {
		return err
	}
	check(binding.BindSelector(set, m.list,
		func(vm *viewmodel.Transactions) observable.Sequence[*transaction.Transaction] { return vm.Items },
		binding.Notifying(selected),
		binding.WithMode(binding.TwoWay),
		binding.WithDisplay(func(tx *transaction.Transaction) string { return tx.String() }),
		binding.WithEqual(viewmodel.SameTransaction)))

	check(bindDraft(set, m.date, "Draft.Date", binding.Converter[time.Time]{
		Format: func(d time.Time) string {
			if d.IsZero() {
				return ""
			}
			return d.Format(transaction.DateLayout)
		},
		Parse: func(s string) (time.Time, error) { return transaction.ParseDate(s, time.Now) },
	}))
	check(bindDraft[string](set, m.payee, "Draft.Payee"))
	check(bindDraft[string](set, m.draftCategory, "Draft.Category"))
	check(bindDraft(set, m.amount, "Draft.Amount", binding.Converter[decimal.Decimal]{
		Format: func(d decimal.Decimal) string {
			if d.IsZero() {
				return ""
			}
			return d.StringFixed(2)
		},
		Parse: func(s string) (decimal.Decimal, error) {
			if strings.TrimSpace(s) == "" {
				return decimal.Zero, nil
			}
			return transaction.ParseAmount(s)
		},
	}))
	check(bindDraft[string](set, m.note, "Draft.Note"))
	check(bindDraft[bool](set, m.cleared, "Draft.Cleared"))

	check(binding.BindCommand(set, m.add, m.vm.Add, binding.WithName("Add")))
	check(binding.BindCommand(set, m.del, m.vm.Delete, binding.WithName("Delete")))
	check(binding.BindCommand(set, m.prev, m.vm.PrevPage, binding.WithName("PrevPage")))
	check(binding.BindCommand(set, m.next, m.vm.NextPage, binding.WithName("NextPage")))
	check(binding.BindCommand(set, m.reload, m.vm.Reload, binding.WithName("Reload")))

	check(binding.BindPath[*viewmodel.Transactions, string](set, m.status, "Status"))
	check(binding.BindPath[*viewmodel.Transactions, string](set, m.pageInfo, "PageInfo"))
	check(binding.BindPath[*viewmodel.Transactions, decimal.Decimal](set, m.balance, "Balance",
		binding.WithConverter(binding.Converter[decimal.Decimal]{
			Format: func(d decimal.Decimal) string { return d.StringFixed(2) },
			Parse:  transaction.ParseAmount,
		})))

	return errors.Join(errs...)
}

// bindDraft binds a draft field two ways. Compiled accessors are silent, so
// writes are wrapped to announce the field.
func bindDraft[V any](set *vmSet, ctl any, path string, conv ...binding.Converter[V]) (*binding.Binding[*viewmodel.Transactions, V], error) {
	acc, err := binding.Compile[*viewmodel.Transactions, V](path)
	if err != nil {
		return nil, err
	}
	opts := []binding.Option{binding.WithMode(binding.TwoWay)}
	for _, c := range conv {
		opts = append(opts, binding.WithConverter(c))
	}
	return binding.Bind(set, ctl, binding.Notifying(acc), opts...)
}

// Init claims the update goroutine for the scheduler, applies the bindings
// and starts loading.
func (m *Model) Init() tea.Cmd {
	m.sched.Bind()
	m.set.Apply()
	m.vm.Start(m.ctx)
	m.sched.Drain()
	return m.setFocus(0)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.sched.Drain()
	if m.sched.Handle(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case tea.KeyPressMsg:
		return m, m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "ctrl+c", "esc":
		m.shutdown()
		return tea.Quit
	case "tab":
		return m.setFocus(m.focus + 1)
	case "shift+tab":
		return m.setFocus(m.focus - 1)
	default:
		for _, b := range m.buttons {
			if b.Shortcut == key {
				b.Press()
				return nil
			}
		}
	}
	return m.widgets[m.focus].Update(msg)
}

// setFocus moves focus to widget i, wrapping around.
func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.widgets)
	i = ((i % n) + n) % n
	m.widgets[m.focus].Blur()
	m.focus = i
	return m.widgets[i].Focus()
}

// shutdown releases the bindings before the view-model so no binding sees
// a closed collection.
func (m *Model) shutdown() {
	if m.closed {
		return
	}
	m.closed = true
	m.set.Dispose()
	m.vm.Close()
	m.sched.Stop()
}

func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	left := min(max(m.termWidth/4, 16), 32)
	right := max(m.termWidth-left-6, 20)
	m.category.Width = left - 4
	m.list.Width = right - 4
	m.status.Width = m.termWidth - 2
	m.filter.SetWidth(right - 12)
	for _, box := range []*host.TextBox{m.date, m.payee, m.draftCategory, m.amount, m.note} {
		box.SetWidth(max(right/3, 10))
	}
}

func (m *Model) View() string {
	t := m.theme
	m.balance.Style = t.Money(m.vm.Balance.Sign())

	left := m.panel(m.category.Focused(), m.category.View())
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.filter.View(),
		m.list.View(),
		m.pageInfo.View(),
	)
	right := m.panel(m.filter.Focused() || m.list.Focused(), body)

	form := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.date.View(), "  ", m.payee.View()),
		lipgloss.JoinHorizontal(lipgloss.Top, m.draftCategory.View(), "  ", m.amount.View()),
		lipgloss.JoinHorizontal(lipgloss.Top, m.note.View(), "  ", m.cleared.View()),
	)

	var buttons []string
	for _, b := range m.buttons {
		buttons = append(buttons, b.View())
	}

	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right),
		m.panel(m.formFocused(), form),
		strings.Join(buttons, " ") + "   " + m.balance.View(),
		m.status.View(),
		t.Footer.Help.Render("tab focus • enter select • ctrl+s add • ctrl+d delete • pgup/pgdown page • esc quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) panel(focused bool, content string) string {
	if focused {
		return m.theme.Panel.Focused.Render(content)
	}
	return m.theme.Panel.Frame.Render(content)
}

func (m *Model) formFocused() bool {
	for _, w := range []host.Widget{m.date, m.payee, m.draftCategory, m.amount, m.note, m.cleared} {
		if w.Focused() {
			return true
		}
	}
	return false
}

// Run launches the interactive program over p until the user quits.
func Run(ctx context.Context, p store.Persistence, opts Options) error {
	sched := host.NewScheduler()
	vm := viewmodel.New(p, sched, opts.PageSize, viewmodel.WithLogger(opts.Log))
	m, err := New(ctx, vm, sched, opts)
	if err != nil {
		vm.Close()
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	sched.Attach(program)
	_, err = program.Run()
	m.shutdown()
	return err
}
