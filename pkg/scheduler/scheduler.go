// Package scheduler decouples bindings from any particular UI-thread API.
//
// A Scheduler answers two questions for the binding runtime: how to get a
// function onto the UI goroutine, and how to debounce a function so that only
// the most recent call for a key survives a quiet period.
package scheduler

import "time"

// Scheduler marshals work onto a single logical UI goroutine.
type Scheduler interface {
	// OnUIThread reports whether the caller is running on the UI goroutine.
	OnUIThread() bool
	// Post queues fn to run on the UI goroutine.
	Post(fn func())
	// Debounce runs fn on the UI goroutine once delay has elapsed without
	// another Debounce call for the same key. A newer call cancels the
	// pending one.
	Debounce(key any, delay time.Duration, fn func())
	// Cancel drops any pending debounced call for key.
	Cancel(key any)
}

// Invoke runs fn immediately when already on the UI goroutine, otherwise it
// posts it.
func Invoke(s Scheduler, fn func()) {
	if s.OnUIThread() {
		fn()
		return
	}
	s.Post(fn)
}
