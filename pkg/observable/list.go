package observable

import "sync"

// ChangeType describes a modification to an observable sequence.
type ChangeType int

const (
	// ChangeAdd means Item was inserted at Index.
	ChangeAdd ChangeType = iota
	// ChangeUpdate means the item at Index was replaced (Old -> Item).
	ChangeUpdate
	// ChangeRemove means Old was removed from Index.
	ChangeRemove
	// ChangeReset means consumers should re-read the whole sequence.
	ChangeReset
)

func (c ChangeType) String() string {
	switch c {
	case ChangeAdd:
		return "add"
	case ChangeUpdate:
		return "update"
	case ChangeRemove:
		return "remove"
	case ChangeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes a single modification. Index, Item and Old are only
// meaningful for the granular change types.
type Change[T any] struct {
	Type  ChangeType
	Index int
	Item  T
	Old   T
}

// Sequence is an enumerable items source. Snapshot must return a slice the
// caller may keep; later mutations of the source must not show through it.
type Sequence[T any] interface {
	Snapshot() []T
}

// Collection is a Sequence that also announces its own changes.
type Collection[T any] interface {
	Sequence[T]
	Subscribe(fn func(Change[T])) (unsubscribe func())
}

// Slice adapts a plain slice to Sequence.
type Slice[T any] []T

// Snapshot implements Sequence.
func (s Slice[T]) Snapshot() []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// List is a goroutine-safe observable list. Listeners run after the list
// lock has been released so they may read or mutate the list again.
type List[T any] struct {
	mu        sync.Mutex
	items     []T
	listeners Listeners[func(Change[T])]
}

var _ Collection[int] = (*List[int])(nil)

// NewList creates a list seeded with items.
func NewList[T any](items ...T) *List[T] {
	l := &List[T]{}
	l.items = append(l.items, items...)
	return l
}

// Snapshot implements Sequence.
func (l *List[T]) Snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// At returns the item at index i, or the zero value if out of bounds.
func (l *List[T]) At(i int) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero
	}
	return l.items[i]
}

// Set replaces all items.
func (l *List[T]) Set(items []T) {
	l.mu.Lock()
	l.items = append(l.items[:0:0], items...)
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeReset})
}

// Add appends an item.
func (l *List[T]) Add(item T) {
	l.mu.Lock()
	idx := len(l.items)
	l.items = append(l.items, item)
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeAdd, Index: idx, Item: item})
}

// Insert inserts an item at index i, clamped to the list bounds.
func (l *List[T]) Insert(i int, item T) {
	l.mu.Lock()
	if i < 0 {
		i = 0
	}
	if i > len(l.items) {
		i = len(l.items)
	}
	var zero T
	l.items = append(l.items, zero)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = item
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeAdd, Index: i, Item: item})
}

// RemoveAt removes the item at index i. It reports whether anything was
// removed.
func (l *List[T]) RemoveAt(i int) bool {
	l.mu.Lock()
	if i < 0 || i >= len(l.items) {
		l.mu.Unlock()
		return false
	}
	old := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeRemove, Index: i, Old: old})
	return true
}

// Replace swaps the item at index i.
func (l *List[T]) Replace(i int, item T) bool {
	l.mu.Lock()
	if i < 0 || i >= len(l.items) {
		l.mu.Unlock()
		return false
	}
	old := l.items[i]
	l.items[i] = item
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeUpdate, Index: i, Item: item, Old: old})
	return true
}

// Clear removes all items.
func (l *List[T]) Clear() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeReset})
}

// Subscribe implements Collection.
func (l *List[T]) Subscribe(fn func(Change[T])) func() {
	return l.listeners.Add(fn)
}

func (l *List[T]) notify(c Change[T]) {
	for _, fn := range l.listeners.Snapshot() {
		fn(c)
	}
}
