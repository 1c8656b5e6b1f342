// Package binding keeps abstract UI controls synchronized with the
// properties and commands of an observable view-model.
//
// A screen creates a Set over its view-model, registers property, command
// and selector bindings through it, and calls Apply once the controls exist.
// Dispose releases every subscription exactly once. Constructors report
// configuration mistakes as errors matching ErrConfiguration; input that
// fails to convert is logged and dropped, never returned.
package binding

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/ledger/pkg/observable"
	"tableflip.dev/ledger/pkg/scheduler"
)

// Binder is the lifecycle every binding shares.
type Binder interface {
	Property() string
	Apply()
	Dispose()
}

type state int

const (
	unapplied state = iota
	applied
	disposed
)

func (s state) String() string {
	switch s {
	case unapplied:
		return "unapplied"
	case applied:
		return "applied"
	default:
		return "disposed"
	}
}

// Binding synchronizes one view-model property with one control.
type Binding[S observable.Object, V any] struct {
	vm       S
	acc      Accessor[S, V]
	strategy strategy[V]
	mode     Mode
	debounce time.Duration
	sched    scheduler.Scheduler
	log      zerolog.Logger

	state state
	subs  subscriptions
	// writing is set while this binding writes into the view-model; echoes
	// of that write are not pushed back.
	writing bool
}

var _ Binder = (*Binding[*observable.Notifier, string])(nil)

// New binds ctl to the property acc describes. ctl must implement
// TextControl, ToggleControl or Display; the matching strategy is fixed here.
// All configuration errors are reported now, never at push time.
func New[S observable.Object, V any](vm S, ctl any, acc Accessor[S, V], sched scheduler.Scheduler, opts ...Option) (*Binding[S, V], error) {
	o := buildOptions(opts)
	name := acc.Name
	if name == "" {
		return nil, configErrorf("", "accessor has no property name")
	}
	if acc.Get == nil {
		return nil, configErrorf(name, "accessor has no getter")
	}
	if sched == nil {
		return nil, configErrorf(name, "nil scheduler")
	}
	if o.mode.Writes() && acc.ReadOnly() {
		return nil, configErrorf(name, "%s binding requires a writable property", o.mode)
	}
	if o.debounce < 0 {
		return nil, configErrorf(name, "negative debounce %s", o.debounce)
	}

	conv, err := converterOption[V](name, o.converter)
	if err != nil {
		return nil, err
	}
	strat, err := newStrategy[V](name, ctl, conv)
	if err != nil {
		return nil, err
	}
	if o.mode.Writes() && !strat.acceptsInput() {
		return nil, configErrorf(name, "%s binding needs a control that accepts input, got %T", o.mode, ctl)
	}

	return &Binding[S, V]{
		vm:       vm,
		acc:      acc,
		strategy: strat,
		mode:     o.mode,
		debounce: o.debounce,
		sched:    sched,
		log:      o.log.With().Str("property", name).Logger(),
	}, nil
}

func converterOption[V any](name string, raw any) (Converter[V], error) {
	if raw != nil {
		c, ok := raw.(Converter[V])
		if !ok {
			return Converter[V]{}, configErrorf(name, "converter is %T, want Converter for the property type", raw)
		}
		if c.Format == nil || c.Parse == nil {
			return Converter[V]{}, configErrorf(name, "converter needs Format and Parse")
		}
		return c, nil
	}
	c, ok := DefaultConverter[V]()
	if !ok {
		var zero V
		return Converter[V]{}, configErrorf(name, "no default converter for %T; use WithConverter", zero)
	}
	return c, nil
}

// Property implements Binder.
func (b *Binding[S, V]) Property() string {
	return b.acc.Name
}

// Mode returns the binding direction.
func (b *Binding[S, V]) Mode() Mode {
	return b.mode
}

// Apply pushes the current value (unless the mode is Source) and starts
// listening. It must run on the UI goroutine. Only the first call has an
// effect, and a disposed binding never applies.
func (b *Binding[S, V]) Apply() {
	if b.state != unapplied {
		return
	}
	b.state = applied

	if b.mode.Pushes() {
		b.push()
		b.subs.add("property-changed", b.vm.SubscribePropertyChanged(b.onPropertyChanged))
	}
	if b.mode.Writes() {
		b.subs.add("control-input", b.strategy.listen(b.onInput))
	}
}

// Dispose cancels any pending debounced write and releases every
// subscription. It is safe to call more than once.
func (b *Binding[S, V]) Dispose() {
	if b.state == disposed {
		return
	}
	b.state = disposed
	b.sched.Cancel(b)
	b.subs.releaseAll(b.log)
}

// Refresh pushes the current view-model value again.
func (b *Binding[S, V]) Refresh() {
	if b.state != applied || !b.mode.Pushes() {
		return
	}
	b.push()
}

func (b *Binding[S, V]) onPropertyChanged(evt observable.PropertyChanged) {
	if !affects(evt, b.acc.Name) {
		return
	}
	scheduler.Invoke(b.sched, func() {
		if b.state != applied || b.writing {
			return
		}
		b.push()
	})
}

func (b *Binding[S, V]) push() {
	b.strategy.push(b.acc.Get(b.vm))
}

func (b *Binding[S, V]) onInput(raw string, parse func() (V, error)) {
	if b.debounce > 0 {
		b.sched.Debounce(b, b.debounce, func() { b.commit(raw, parse) })
		return
	}
	scheduler.Invoke(b.sched, func() { b.commit(raw, parse) })
}

func (b *Binding[S, V]) commit(raw string, parse func() (V, error)) {
	if b.state != applied {
		return
	}
	value, err := parse()
	if err != nil {
		b.log.Warn().Err(err).Str("input", raw).Msg("dropping input that does not convert")
		return
	}
	b.writing = true
	defer func() { b.writing = false }()
	b.acc.Set(b.vm, value)
}

// affects reports whether evt invalidates name. A change of a parent path
// ("Draft") invalidates its members ("Draft.Amount").
func affects(evt observable.PropertyChanged, name string) bool {
	if evt.Affects(name) {
		return true
	}
	return strings.HasPrefix(name, evt.Name+".")
}
