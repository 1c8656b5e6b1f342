package host

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/ledger/pkg/scheduler"
)

// Scheduler treats the Bubble Tea update goroutine as the UI goroutine.
// Work posted from elsewhere travels to the program as a message; the screen
// passes every message through Handle and calls Drain after each update.
type Scheduler struct {
	affinity scheduler.Affinity
	debounce scheduler.Debouncer

	mu      sync.Mutex
	send    func(tea.Msg)
	local   []func()
	stopped bool
}

var _ scheduler.Scheduler = (*Scheduler)(nil)

type runMsg struct {
	fn func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Attach routes posts from other goroutines through p.
func (s *Scheduler) Attach(p *tea.Program) {
	s.AttachFunc(p.Send)
}

// AttachFunc is Attach for anything that can deliver messages.
func (s *Scheduler) AttachFunc(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	s.mu.Unlock()
}

// Bind claims the calling goroutine, which must be the one running the
// program's Init and Update.
func (s *Scheduler) Bind() {
	s.affinity.Bind()
}

// OnUIThread implements scheduler.Scheduler.
func (s *Scheduler) OnUIThread() bool {
	return s.affinity.Held()
}

// Post implements scheduler.Scheduler. Calls from the update goroutine, and
// calls made before a program is attached, wait for the next Drain.
func (s *Scheduler) Post(fn func()) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	send := s.send
	if send == nil || s.affinity.Held() {
		s.local = append(s.local, fn)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	send(runMsg{fn: fn})
}

// Debounce implements scheduler.Scheduler.
func (s *Scheduler) Debounce(key any, delay time.Duration, fn func()) {
	s.debounce.Schedule(key, delay, fn, s.Post)
}

// Cancel implements scheduler.Scheduler.
func (s *Scheduler) Cancel(key any) {
	s.debounce.Cancel(key)
}

// Handle runs msg if it carries posted work and reports whether it did.
func (s *Scheduler) Handle(msg tea.Msg) bool {
	run, ok := msg.(runMsg)
	if !ok {
		return false
	}
	if s.isStopped() {
		return true
	}
	run.fn()
	return true
}

// Drain runs work queued locally, including work queued while draining.
func (s *Scheduler) Drain() {
	for {
		s.mu.Lock()
		if len(s.local) == 0 || s.stopped {
			s.mu.Unlock()
			return
		}
		batch := s.local
		s.local = nil
		s.mu.Unlock()
		for _, fn := range batch {
			fn()
		}
	}
}

// Stop drops queued work and pending debounced calls.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.local = nil
	s.mu.Unlock()
	s.debounce.CancelAll()
}

func (s *Scheduler) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
