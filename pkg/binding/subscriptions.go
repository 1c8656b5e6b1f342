package binding

import (
	"fmt"

	"github.com/rs/zerolog"
)

// subscriptions owns the release functions of one binding. Releasing runs in
// reverse order and a failing release does not stop the rest.
type subscriptions struct {
	entries []subscription
}

type subscription struct {
	name    string
	release func()
}

func (s *subscriptions) add(name string, release func()) {
	if release == nil {
		return
	}
	s.entries = append(s.entries, subscription{name: name, release: release})
}

func (s *subscriptions) releaseAll(log zerolog.Logger) {
	entries := s.entries
	s.entries = nil
	for i := len(entries) - 1; i >= 0; i-- {
		if err := safeCall(entries[i].release); err != nil {
			log.Error().Err(err).Str("listener", entries[i].name).Msg("release subscription")
		}
	}
}

func (s *subscriptions) len() int {
	return len(s.entries)
}

// safeCall runs fn and turns a panic into an error.
func safeCall(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}
