package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler for tests. Nothing runs until the test
// calls Flush or Advance; time only moves through Advance.
type Manual struct {
	// OffThread makes OnUIThread report false so Invoke posts instead of
	// running inline.
	OffThread bool

	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	queue  []func()
	timers map[any]manualTimer
}

type manualTimer struct {
	due time.Duration
	seq uint64
	fn  func()
}

var _ Scheduler = (*Manual)(nil)

// NewManual returns a Manual scheduler that claims to be on the UI goroutine.
func NewManual() *Manual {
	return &Manual{timers: make(map[any]manualTimer)}
}

// OnUIThread implements Scheduler.
func (m *Manual) OnUIThread() bool {
	return !m.OffThread
}

// Post implements Scheduler.
func (m *Manual) Post(fn func()) {
	m.mu.Lock()
	m.queue = append(m.queue, fn)
	m.mu.Unlock()
}

// Debounce implements Scheduler.
func (m *Manual) Debounce(key any, delay time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timers == nil {
		m.timers = make(map[any]manualTimer)
	}
	m.seq++
	m.timers[key] = manualTimer{due: m.now + delay, seq: m.seq, fn: fn}
}

// Cancel implements Scheduler.
func (m *Manual) Cancel(key any) {
	m.mu.Lock()
	delete(m.timers, key)
	m.mu.Unlock()
}

// Flush runs posted functions, including ones posted while flushing.
func (m *Manual) Flush() {
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.mu.Unlock()
			return
		}
		batch := m.queue
		m.queue = nil
		m.mu.Unlock()
		for _, fn := range batch {
			fn()
		}
	}
}

// Advance moves the virtual clock forward, fires every debounced call that
// became due (earliest first) and flushes the post queue.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []manualTimer
	for key, timer := range m.timers {
		if timer.due <= m.now {
			due = append(due, timer)
			delete(m.timers, key)
		}
	}
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, timer := range due {
		timer.fn()
	}
	m.Flush()
}

// Pending returns the number of queued posts plus pending debounced calls.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue) + len(m.timers)
}
