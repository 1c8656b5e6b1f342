package binding

import (
	"github.com/rs/zerolog"

	"tableflip.dev/ledger/pkg/observable"
	"tableflip.dev/ledger/pkg/scheduler"
)

// Set owns every binding created for one screen and applies and disposes
// them as a unit.
type Set[S observable.Object] struct {
	vm    S
	sched scheduler.Scheduler
	log   zerolog.Logger

	binders  []Binder
	applied  bool
	disposed bool
}

// NewSet creates an empty set over vm.
func NewSet[S observable.Object](vm S, sched scheduler.Scheduler, log zerolog.Logger) *Set[S] {
	return &Set[S]{vm: vm, sched: sched, log: log}
}

// ViewModel returns the view-model the set binds against.
func (s *Set[S]) ViewModel() S {
	return s.vm
}

// Scheduler returns the scheduler shared by the set's bindings.
func (s *Set[S]) Scheduler() scheduler.Scheduler {
	return s.sched
}

// Len returns the number of registered bindings.
func (s *Set[S]) Len() int {
	return len(s.binders)
}

// Applied reports whether Apply has run and Dispose has not.
func (s *Set[S]) Applied() bool {
	return s.applied && !s.disposed
}

// Add registers b. A binding added after Apply is applied immediately; one
// added after Dispose is disposed immediately.
func (s *Set[S]) Add(b Binder) {
	if b == nil {
		return
	}
	if s.disposed {
		s.dispose(b)
		return
	}
	s.binders = append(s.binders, b)
	if s.applied {
		b.Apply()
	}
}

// Apply applies every binding. Calls after the first, or after Dispose, do
// nothing.
func (s *Set[S]) Apply() {
	if s.applied || s.disposed {
		return
	}
	s.applied = true
	for _, b := range s.binders {
		b.Apply()
	}
}

// Dispose disposes every binding whether or not Apply ran. A binding that
// panics while disposing is logged and the rest are still disposed.
func (s *Set[S]) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	binders := s.binders
	s.binders = nil
	for i := len(binders) - 1; i >= 0; i-- {
		s.dispose(binders[i])
	}
}

func (s *Set[S]) dispose(b Binder) {
	if err := safeCall(b.Dispose); err != nil {
		s.log.Error().Err(err).Str("listener", b.Property()).Msg("dispose binding")
	}
}

func (s *Set[S]) withDefaults(opts []Option) []Option {
	return append([]Option{WithLogger(s.log)}, opts...)
}

// Bind creates a property binding through set and registers it.
func Bind[S observable.Object, V any](set *Set[S], ctl any, acc Accessor[S, V], opts ...Option) (*Binding[S, V], error) {
	b, err := New(set.vm, ctl, acc, set.sched, set.withDefaults(opts)...)
	if err != nil {
		return nil, err
	}
	set.Add(b)
	return b, nil
}

// BindPath compiles path against S and binds it.
func BindPath[S observable.Object, V any](set *Set[S], ctl any, path string, opts ...Option) (*Binding[S, V], error) {
	acc, err := Compile[S, V](path)
	if err != nil {
		return nil, err
	}
	return Bind(set, ctl, acc, opts...)
}

// BindCommand creates a command binding through set and registers it.
func BindCommand[S observable.Object](set *Set[S], ctl Activator, cmd observable.Command, opts ...Option) (*CommandBinding, error) {
	b, err := NewCommand(ctl, cmd, set.sched, set.withDefaults(opts)...)
	if err != nil {
		return nil, err
	}
	set.Add(b)
	return b, nil
}

// BindSelector creates a selector binding through set and registers it.
func BindSelector[S observable.Object, T any](set *Set[S], ctl ChoiceControl, items func(S) observable.Sequence[T], selected Accessor[S, T], opts ...Option) (*SelectorBinding[S, T], error) {
	b, err := NewSelector(set.vm, ctl, items, selected, set.sched, set.withDefaults(opts)...)
	if err != nil {
		return nil, err
	}
	set.Add(b)
	return b, nil
}
