// Package paged holds a filtered, sorted collection that only materializes
// the page currently on screen.
package paged

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"tableflip.dev/ledger/pkg/observable"
)

// Predicate decides whether item is visible under the given filter text.
type Predicate[T any] func(item T, filter string) bool

// Comparer orders two items, returning a negative number when a sorts first.
type Comparer[T any] func(a, b T) int

// Option configures a Collection.
type Option[T any] func(*Collection[T])

// WithPredicate sets the initial filter predicate.
func WithPredicate[T any](p Predicate[T]) Option[T] {
	return func(c *Collection[T]) { c.predicate = p }
}

// WithComparer sets the initial sort order.
func WithComparer[T any](cmp Comparer[T]) Option[T] {
	return func(c *Collection[T]) { c.comparer = cmp }
}

// WithEqual sets the equality Remove and Update use to locate items.
func WithEqual[T any](eq func(a, b T) bool) Option[T] {
	return func(c *Collection[T]) {
		if eq != nil {
			c.equal = eq
		}
	}
}

// Collection is safe for use from any goroutine. Every mutation runs under a
// single lock and listeners are notified after it is released, so a listener
// may call back into the collection.
type Collection[T any] struct {
	mu sync.Mutex

	all      []T
	filtered []T
	visible  []T

	pageSize    int
	currentPage int
	filterText  string
	predicate   Predicate[T]
	comparer    Comparer[T]
	equal       func(a, b T) bool

	listeners observable.Listeners[func(observable.Change[T])]
	disposed  bool
}

var _ observable.Collection[int] = (*Collection[int])(nil)

// New creates an empty collection. pageSize is coerced to at least 1.
func New[T any](pageSize int, opts ...Option[T]) *Collection[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	c := &Collection[T]{
		pageSize: pageSize,
		equal:    observable.Equal[T],
	}
	for _, opt := range opts {
		opt(c)
	}
	c.recompute()
	return c
}

// ReplaceAll swaps the backing items for items and returns to the first page.
func (c *Collection[T]) ReplaceAll(items []T) {
	c.mutate(func() bool {
		c.all = append(c.all[:0:0], items...)
		c.currentPage = 0
		c.recompute()
		return true
	})
}

// Add appends item. The visible page is only recomputed when item passes the
// current filter.
func (c *Collection[T]) Add(item T) {
	c.mutate(func() bool {
		c.all = append(c.all, item)
		if !c.matches(item) {
			return false
		}
		c.recompute()
		return true
	})
}

// Remove deletes the first item equal to item. It reports whether one was
// found.
func (c *Collection[T]) Remove(item T) bool {
	return c.mutate(func() bool {
		idx := observable.IndexOf(c.all, item, c.equal)
		if idx < 0 {
			return false
		}
		c.all = slices.Delete(c.all, idx, idx+1)
		c.recompute()
		return true
	})
}

// Update replaces the first item equal to old with updated. It reports
// whether old was found.
func (c *Collection[T]) Update(old, updated T) bool {
	return c.mutate(func() bool {
		idx := observable.IndexOf(c.all, old, c.equal)
		if idx < 0 {
			return false
		}
		c.all[idx] = updated
		c.recompute()
		return true
	})
}

// LoadNextPage moves forward one page. It returns false on the last page.
func (c *Collection[T]) LoadNextPage() bool {
	return c.mutate(func() bool {
		return c.moveTo(c.currentPage + 1)
	})
}

// LoadPreviousPage moves back one page. It returns false on the first page.
func (c *Collection[T]) LoadPreviousPage() bool {
	return c.mutate(func() bool {
		return c.moveTo(c.currentPage - 1)
	})
}

// GoToPage jumps to page (zero based), clamped to the valid range. It returns
// false when the clamped page is the current one.
func (c *Collection[T]) GoToPage(page int) bool {
	return c.mutate(func() bool {
		return c.moveTo(clamp(page, 0, c.lastPage()))
	})
}

// SetFilterPredicate replaces the predicate and returns to the first page.
func (c *Collection[T]) SetFilterPredicate(p Predicate[T]) {
	c.mutate(func() bool {
		c.predicate = p
		c.currentPage = 0
		c.recompute()
		return true
	})
}

// SetSortComparer replaces the sort order and returns to the first page. A
// nil comparer keeps insertion order.
func (c *Collection[T]) SetSortComparer(cmp Comparer[T]) {
	c.mutate(func() bool {
		c.comparer = cmp
		c.currentPage = 0
		c.recompute()
		return true
	})
}

// SetFilterText replaces the filter text and returns to the first page.
func (c *Collection[T]) SetFilterText(text string) {
	c.mutate(func() bool {
		c.filterText = text
		c.currentPage = 0
		c.recompute()
		return true
	})
}

// Refresh re-applies filter and sort without leaving the current page, for
// items whose filtered state changed in place.
func (c *Collection[T]) Refresh() {
	c.mutate(func() bool {
		c.recompute()
		return true
	})
}

// Clear removes every item.
func (c *Collection[T]) Clear() {
	c.mutate(func() bool {
		c.all = nil
		c.currentPage = 0
		c.recompute()
		return true
	})
}

// Dispose clears the collection and detaches every listener. Later
// mutations are ignored.
func (c *Collection[T]) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
	c.all, c.filtered, c.visible = nil, nil, nil
	c.currentPage = 0
	c.listeners.Clear()
}

// Subscribe implements observable.Collection. Every change is announced as a
// reset of the visible page.
func (c *Collection[T]) Subscribe(fn func(observable.Change[T])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return func() {}
	}
	return c.listeners.Add(fn)
}

// Snapshot implements observable.Sequence with the visible items.
func (c *Collection[T]) Snapshot() []T {
	return c.VisibleItems()
}

// VisibleItems returns a copy of the current page.
func (c *Collection[T]) VisibleItems() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.visible...)
}

// CurrentPage returns the zero-based page on screen.
func (c *Collection[T]) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage
}

// PageCount is at least 1, even when nothing passes the filter.
func (c *Collection[T]) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPage() + 1
}

// PageSize returns the number of items per page.
func (c *Collection[T]) PageSize() int {
	return c.pageSize
}

// FilteredCount returns the number of items passing the filter.
func (c *Collection[T]) FilteredCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.filtered)
}

// TotalCount returns the number of items, filtered or not.
func (c *Collection[T]) TotalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.all)
}

// FilterText returns the current filter text.
func (c *Collection[T]) FilterText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filterText
}

// HasMorePages reports whether a page follows the current one.
func (c *Collection[T]) HasMorePages() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage < c.lastPage()
}

// HasPreviousPages reports whether a page precedes the current one.
func (c *Collection[T]) HasPreviousPages() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage > 0
}

// mutate runs fn under the lock and, when fn reports a change, notifies
// listeners once the lock is released. A panic in fn still releases the lock.
func (c *Collection[T]) mutate(fn func() bool) bool {
	changed, listeners := c.locked(fn)
	for _, l := range listeners {
		l(observable.Change[T]{Type: observable.ChangeReset})
	}
	return changed
}

func (c *Collection[T]) locked(fn func() bool) (bool, []func(observable.Change[T])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return false, nil
	}
	if !fn() {
		return false, nil
	}
	return true, c.listeners.Snapshot()
}

// recompute rebuilds the filtered set and the visible page. Callers hold mu.
func (c *Collection[T]) recompute() {
	filtered := make([]T, 0, len(c.all))
	for _, item := range c.all {
		if c.matches(item) {
			filtered = append(filtered, item)
		}
	}
	if c.comparer != nil {
		slices.SortStableFunc(filtered, c.comparer)
	}
	c.filtered = filtered
	c.currentPage = clamp(c.currentPage, 0, c.lastPage())
	c.slice()
}

func (c *Collection[T]) slice() {
	start := c.currentPage * c.pageSize
	end := min(start+c.pageSize, len(c.filtered))
	if start >= end {
		c.visible = nil
		return
	}
	c.visible = append([]T(nil), c.filtered[start:end]...)
}

func (c *Collection[T]) moveTo(page int) bool {
	if page < 0 || page > c.lastPage() || page == c.currentPage {
		return false
	}
	c.currentPage = page
	c.slice()
	return true
}

func (c *Collection[T]) lastPage() int {
	if len(c.filtered) == 0 {
		return 0
	}
	return (len(c.filtered) - 1) / c.pageSize
}

func (c *Collection[T]) matches(item T) bool {
	if c.predicate != nil {
		return c.predicate(item, c.filterText)
	}
	if c.filterText == "" {
		return true
	}
	return strings.Contains(strings.ToLower(fmt.Sprint(item)), strings.ToLower(c.filterText))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
