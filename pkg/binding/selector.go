package binding

import (
	"fmt"

	"github.com/rs/zerolog"

	"tableflip.dev/ledger/pkg/observable"
	"tableflip.dev/ledger/pkg/scheduler"
)

// SelectorBinding keeps a choice control's options in sync with an items
// source on the view-model and its selection in sync with a scalar property.
//
// Selection lookups always run against currentItems, the last materialized
// snapshot of the items source, never against the live source.
type SelectorBinding[S observable.Object, T any] struct {
	vm            S
	ctl           ChoiceControl
	items         func(S) observable.Sequence[T]
	itemsProperty string
	selected      Accessor[S, T]
	factory       AdapterFactory[T]
	display       func(T) string
	equal         func(a, b T) bool
	mode          Mode
	sched         scheduler.Scheduler
	log           zerolog.Logger

	state        state
	subs         subscriptions
	currentItems []T
	labels       *StringAdapter

	source      observable.Collection[T]
	sourceUnsub func()

	isUpdatingSelection bool
}

var _ Binder = (*SelectorBinding[*observable.Notifier, string])(nil)

// NewSelector binds ctl's options to items and its selection to selected.
// Use WithItemsProperty to re-evaluate items when a view-model property
// changes; observable sources returned by items are followed automatically.
func NewSelector[S observable.Object, T any](vm S, ctl ChoiceControl, items func(S) observable.Sequence[T], selected Accessor[S, T], sched scheduler.Scheduler, opts ...Option) (*SelectorBinding[S, T], error) {
	o := buildOptions(opts)
	name := selected.Name
	switch {
	case name == "":
		return nil, configErrorf("", "selected accessor has no property name")
	case ctl == nil:
		return nil, configErrorf(name, "nil control")
	case items == nil:
		return nil, configErrorf(name, "nil items getter")
	case selected.Get == nil:
		return nil, configErrorf(name, "selected accessor has no getter")
	case sched == nil:
		return nil, configErrorf(name, "nil scheduler")
	case o.mode.Writes() && selected.ReadOnly():
		return nil, configErrorf(name, "%s binding requires a writable selection", o.mode)
	}

	b := &SelectorBinding[S, T]{
		vm:            vm,
		ctl:           ctl,
		items:         items,
		itemsProperty: o.itemsProperty,
		selected:      selected,
		display:       func(item T) string { return fmt.Sprint(item) },
		equal:         observable.Equal[T],
		mode:          o.mode,
		sched:         sched,
		log:           o.log.With().Str("property", name).Logger(),
	}
	if o.display != nil {
		fn, ok := o.display.(func(T) string)
		if !ok {
			return nil, configErrorf(name, "display is %T, want func of the item type", o.display)
		}
		b.display = fn
	}
	if o.equal != nil {
		fn, ok := o.equal.(func(a, b T) bool)
		if !ok {
			return nil, configErrorf(name, "equal is %T, want func of the item type", o.equal)
		}
		b.equal = fn
	}
	if o.factory != nil {
		fn, ok := o.factory.(AdapterFactory[T])
		if !ok {
			return nil, configErrorf(name, "adapter factory is %T, want AdapterFactory of the item type", o.factory)
		}
		b.factory = fn
	}
	return b, nil
}

// Property implements Binder.
func (b *SelectorBinding[S, T]) Property() string {
	return b.selected.Name
}

// Items returns a copy of the current snapshot.
func (b *SelectorBinding[S, T]) Items() []T {
	return append([]T(nil), b.currentItems...)
}

// Apply populates the control and starts listening.
func (b *SelectorBinding[S, T]) Apply() {
	if b.state != unapplied {
		return
	}
	b.state = applied

	b.refreshItemsSource()
	if b.mode.Pushes() {
		b.updateSelection()
	}
	b.subs.add("property-changed", b.vm.SubscribePropertyChanged(b.onPropertyChanged))
	if b.mode.Writes() {
		b.subs.add("selection-changed", b.ctl.OnSelect(b.onControlSelect))
	}
}

// Dispose detaches from the items source, the view-model and the control.
func (b *SelectorBinding[S, T]) Dispose() {
	if b.state == disposed {
		return
	}
	b.state = disposed
	b.detachSource()
	b.subs.releaseAll(b.log)
}

func (b *SelectorBinding[S, T]) onPropertyChanged(evt observable.PropertyChanged) {
	itemsChanged := evt.All() || (b.itemsProperty != "" && affects(evt, b.itemsProperty))
	selectionChanged := affects(evt, b.selected.Name)
	if !itemsChanged && !selectionChanged {
		return
	}
	scheduler.Invoke(b.sched, func() {
		if b.state != applied {
			return
		}
		if itemsChanged {
			b.refreshItemsSource()
		}
		if b.mode.Pushes() {
			b.updateSelection()
		}
	})
}

// refreshItemsSource re-evaluates the items getter, materializes a snapshot
// and rebuilds the adapter. A previously followed source is detached first.
func (b *SelectorBinding[S, T]) refreshItemsSource() {
	b.detachSource()

	seq := b.items(b.vm)
	var snapshot []T
	if seq != nil {
		snapshot = seq.Snapshot()
	}
	b.currentItems = snapshot

	if coll, ok := seq.(observable.Collection[T]); ok {
		b.attachSource(coll)
	}
	b.rebuildAdapter()
}

func (b *SelectorBinding[S, T]) rebuildAdapter() {
	if b.factory != nil {
		b.ctl.SetAdapter(b.factory(b.ctl, b.Items()))
		return
	}
	labels := b.labelsFor(b.currentItems)
	if b.labels == nil {
		b.labels = NewStringAdapter(labels)
		b.ctl.SetAdapter(b.labels)
		return
	}
	b.labels.Reset(labels)
	b.ctl.Refresh()
}

func (b *SelectorBinding[S, T]) attachSource(coll observable.Collection[T]) {
	b.source = coll
	b.sourceUnsub = coll.Subscribe(func(c observable.Change[T]) {
		scheduler.Invoke(b.sched, func() {
			b.onSourceChanged(coll, c)
		})
	})
}

func (b *SelectorBinding[S, T]) detachSource() {
	if b.sourceUnsub == nil {
		b.source = nil
		return
	}
	unsub := b.sourceUnsub
	b.sourceUnsub = nil
	b.source = nil
	if err := safeCall(unsub); err != nil {
		b.log.Error().Err(err).Str("listener", "items-source").Msg("release subscription")
	}
}

// onSourceChanged handles a change announced by a live items source. With
// the default adapter the labels are patched in place; a factory adapter is
// rebuilt.
func (b *SelectorBinding[S, T]) onSourceChanged(coll observable.Collection[T], c observable.Change[T]) {
	if b.state != applied || b.source != coll {
		return
	}
	snapshot := coll.Snapshot()
	previous := len(b.currentItems)
	b.currentItems = snapshot

	if b.factory != nil {
		b.rebuildAdapter()
	} else {
		b.patchLabels(c, previous, snapshot)
		b.ctl.Refresh()
	}
	if b.mode.Pushes() {
		b.updateSelection()
	}
}

func (b *SelectorBinding[S, T]) patchLabels(c observable.Change[T], previous int, snapshot []T) {
	inRange := c.Index >= 0 && c.Index < len(snapshot)
	switch {
	case c.Type == observable.ChangeAdd && inRange && len(snapshot) == previous+1:
		b.labels.Insert(c.Index, b.display(snapshot[c.Index]))
	case c.Type == observable.ChangeRemove && c.Index >= 0 && c.Index <= len(snapshot) && len(snapshot) == previous-1:
		b.labels.RemoveAt(c.Index)
	case c.Type == observable.ChangeUpdate && inRange && len(snapshot) == previous:
		b.labels.SetLabel(c.Index, b.display(snapshot[c.Index]))
	default:
		b.labels.Reset(b.labelsFor(snapshot))
	}
}

func (b *SelectorBinding[S, T]) labelsFor(items []T) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = b.display(item)
	}
	return labels
}

// updateSelection selects the snapshot position equal to the view-model's
// selected value. A value missing from the snapshot leaves the control's
// selection alone.
func (b *SelectorBinding[S, T]) updateSelection() {
	idx := observable.IndexOf(b.currentItems, b.selected.Get(b.vm), b.equal)
	if idx < 0 || b.ctl.SelectedIndex() == idx {
		return
	}
	b.isUpdatingSelection = true
	defer func() { b.isUpdatingSelection = false }()
	b.ctl.Select(idx)
}

func (b *SelectorBinding[S, T]) onControlSelect(position int) {
	if b.isUpdatingSelection {
		return
	}
	scheduler.Invoke(b.sched, func() {
		if b.state != applied || b.isUpdatingSelection {
			return
		}
		if position < 0 || position >= len(b.currentItems) {
			return
		}
		b.selected.Set(b.vm, b.currentItems[position])
	})
}
