package observable

import (
	"slices"
	"sync"
)

// Listeners is a goroutine-safe registry of callbacks of type F. Callbacks
// are returned in subscription order, and removing one frees its entry.
// The zero value is ready to use.
type Listeners[F any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []listener[F]
}

type listener[F any] struct {
	id uint64
	fn F
}

// Add registers fn and returns a func that removes it. Calling the returned
// func more than once is harmless.
func (l *Listeners[F]) Add(fn F) (remove func()) {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listener[F]{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *Listeners[F]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = slices.DeleteFunc(l.entries, func(e listener[F]) bool { return e.id == id })
}

// Snapshot copies the registered callbacks so they can be invoked without
// holding any lock.
func (l *Listeners[F]) Snapshot() []F {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]F, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.fn
	}
	return out
}

// Len returns the number of registered callbacks.
func (l *Listeners[F]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear removes every callback.
func (l *Listeners[F]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
