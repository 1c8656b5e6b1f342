package scheduler

import (
	"context"
	"sync"
	"time"
)

// Loop is a Scheduler backed by a dedicated goroutine. Run owns the goroutine
// and executes posted functions in order until the context is cancelled or
// Stop is called.
type Loop struct {
	affinity Affinity

	mu      sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}
	done    chan struct{}

	debounce Debouncer
}

var _ Scheduler = (*Loop)(nil)

// NewLoop creates a loop that is not yet running.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Run binds the calling goroutine as the UI goroutine and drains posted work
// until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	l.affinity.Bind()
	defer l.affinity.Release()

	for {
		l.drain()
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case <-l.wake:
		}
	}
}

// Stop ends Run and cancels all pending debounced calls. Posts after Stop are
// dropped.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	l.queue = nil
	close(l.done)
	l.mu.Unlock()
	l.debounce.CancelAll()
}

// OnUIThread implements Scheduler.
func (l *Loop) OnUIThread() bool {
	return l.affinity.Held()
}

// Post implements Scheduler.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Debounce implements Scheduler.
func (l *Loop) Debounce(key any, delay time.Duration, fn func()) {
	l.debounce.Schedule(key, delay, fn, l.Post)
}

// Cancel implements Scheduler.
func (l *Loop) Cancel(key any) {
	l.debounce.Cancel(key)
}

func (l *Loop) drain() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 || l.stopped {
			l.mu.Unlock()
			return
		}
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
	}
}
