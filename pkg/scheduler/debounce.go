package scheduler

import (
	"sync"
	"time"
)

// Debouncer keeps at most one pending call per key. Each scheduled call gets
// a generation number; a call only runs if its generation is still current
// when it reaches the UI goroutine, so a Cancel that races a firing timer
// still wins.
type Debouncer struct {
	mu      sync.Mutex
	seq     uint64
	pending map[any]*pendingCall
}

type pendingCall struct {
	gen   uint64
	timer *time.Timer
}

// Schedule runs fn through post once delay has passed without another
// Schedule or Cancel for key.
func (d *Debouncer) Schedule(key any, delay time.Duration, fn func(), post func(func())) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		d.pending = make(map[any]*pendingCall)
	}
	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}
	d.seq++
	gen := d.seq
	call := &pendingCall{gen: gen}
	call.timer = time.AfterFunc(delay, func() {
		post(func() {
			if d.claim(key, gen) {
				fn()
			}
		})
	})
	d.pending[key] = call
}

// claim removes the pending entry for key if it still belongs to gen.
func (d *Debouncer) claim(key any, gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	call, ok := d.pending[key]
	if !ok || call.gen != gen {
		return false
	}
	delete(d.pending, key)
	return true
}

// Cancel drops the pending call for key, if any.
func (d *Debouncer) Cancel(key any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if call, ok := d.pending[key]; ok {
		call.timer.Stop()
		delete(d.pending, key)
	}
}

// CancelAll drops every pending call.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, call := range d.pending {
		call.timer.Stop()
		delete(d.pending, key)
	}
}

// Len returns the number of pending calls.
func (d *Debouncer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
