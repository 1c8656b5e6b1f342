package binding

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tableflip.dev/ledger/pkg/observable"
	"tableflip.dev/ledger/pkg/scheduler"
)

type draft struct {
	Payee  string
	Amount decimal.Decimal
}

type testVM struct {
	observable.Notifier

	Payee    string
	Amount   decimal.Decimal
	Date     time.Time
	Cleared  bool
	Count    int
	Limit    *int
	Category string
	Draft    *draft
	Tags     []string
	Options  observable.Sequence[string]

	writes map[string]int
}

func newTestVM() *testVM {
	return &testVM{writes: map[string]int{}}
}

// prop builds an accessor whose setter records the write and notifies.
func prop[V any](name string, field func(*testVM) *V) Accessor[*testVM, V] {
	return Func(name,
		func(vm *testVM) V { return *field(vm) },
		func(vm *testVM, v V) {
			*field(vm) = v
			vm.writes[name]++
			vm.Notify(name)
		})
}

func readOnly[V any](name string, field func(*testVM) *V) Accessor[*testVM, V] {
	return Func[*testVM, V](name, func(vm *testVM) V { return *field(vm) }, nil)
}

type slot[F any] struct {
	fn   F
	live bool
}

type listeners[F any] struct {
	slots []slot[F]
}

func (l *listeners[F]) add(fn F) func() {
	l.slots = append(l.slots, slot[F]{fn: fn, live: true})
	idx := len(l.slots) - 1
	return func() {
		l.slots[idx].live = false
	}
}

func (l *listeners[F]) live() []F {
	var out []F
	for _, s := range l.slots {
		if s.live {
			out = append(out, s.fn)
		}
	}
	return out
}

func (l *listeners[F]) count() int {
	return len(l.live())
}

type fakeText struct {
	text       string
	start, end int
	enabled    bool
	setCalls   int
	input      listeners[func(string)]
	failUnsub  bool
}

func (f *fakeText) Enabled() bool          { return f.enabled }
func (f *fakeText) SetEnabled(enabled bool) { f.enabled = enabled }
func (f *fakeText) Text() string           { return f.text }
func (f *fakeText) SetText(text string) {
	f.text = text
	f.setCalls++
}
func (f *fakeText) Selection() (int, int) { return f.start, f.end }
func (f *fakeText) SetSelection(start, end int) {
	f.start, f.end = start, end
}
func (f *fakeText) OnInput(fn func(string)) func() {
	unsub := f.input.add(fn)
	if f.failUnsub {
		return func() { panic("host refused to unsubscribe") }
	}
	return unsub
}

// Type simulates the user replacing the field contents.
func (f *fakeText) Type(text string) {
	f.text = text
	f.start, f.end = len([]rune(text)), len([]rune(text))
	for _, fn := range f.input.live() {
		fn(text)
	}
}

type fakeToggle struct {
	checked bool
	enabled bool
	toggle  listeners[func(bool)]
}

func (f *fakeToggle) Enabled() bool          { return f.enabled }
func (f *fakeToggle) SetEnabled(enabled bool) { f.enabled = enabled }
func (f *fakeToggle) Checked() bool          { return f.checked }
func (f *fakeToggle) SetChecked(checked bool) { f.checked = checked }
func (f *fakeToggle) OnToggle(fn func(bool)) func() {
	return f.toggle.add(fn)
}
func (f *fakeToggle) Click() {
	f.checked = !f.checked
	for _, fn := range f.toggle.live() {
		fn(f.checked)
	}
}

type fakeLabel struct {
	text string
}

func (f *fakeLabel) Text() string        { return f.text }
func (f *fakeLabel) SetText(text string) { f.text = text }

// fakeChoice echoes programmatic Select calls through OnSelect, like hosts
// that cannot tell user and code changes apart.
type fakeChoice struct {
	enabled     bool
	adapter     Adapter
	selected    int
	setAdapters int
	refreshes   int
	selects     listeners[func(int)]
}

func newFakeChoice() *fakeChoice {
	return &fakeChoice{selected: -1}
}

func (f *fakeChoice) Enabled() bool          { return f.enabled }
func (f *fakeChoice) SetEnabled(enabled bool) { f.enabled = enabled }
func (f *fakeChoice) Adapter() Adapter       { return f.adapter }
func (f *fakeChoice) SetAdapter(a Adapter) {
	f.adapter = a
	f.setAdapters++
}
func (f *fakeChoice) Refresh()           { f.refreshes++ }
func (f *fakeChoice) SelectedIndex() int { return f.selected }
func (f *fakeChoice) Select(position int) {
	f.selected = position
	for _, fn := range f.selects.live() {
		fn(position)
	}
}
func (f *fakeChoice) OnSelect(fn func(int)) func() {
	return f.selects.add(fn)
}

// Pick simulates the user choosing a position.
func (f *fakeChoice) Pick(position int) {
	f.Select(position)
}

func (f *fakeChoice) labels() []string {
	if f.adapter == nil {
		return nil
	}
	out := make([]string, f.adapter.Len())
	for i := range out {
		out[i] = f.adapter.Label(i)
	}
	return out
}

type fakeButton struct {
	enabled  bool
	activate listeners[func()]
}

func (f *fakeButton) Enabled() bool          { return f.enabled }
func (f *fakeButton) SetEnabled(enabled bool) { f.enabled = enabled }
func (f *fakeButton) OnActivate(fn func()) func() {
	return f.activate.add(fn)
}
func (f *fakeButton) Press() {
	for _, fn := range f.activate.live() {
		fn()
	}
}

func testLogger(buf *bytes.Buffer) zerolog.Logger {
	return zerolog.New(buf)
}

func mustBind[V any](t *testing.T, vm *testVM, ctl any, acc Accessor[*testVM, V], sched scheduler.Scheduler, opts ...Option) *Binding[*testVM, V] {
	t.Helper()
	b, err := New(vm, ctl, acc, sched, opts...)
	if err != nil {
		t.Fatalf("bind %s: %v", acc.Name, err)
	}
	return b
}
