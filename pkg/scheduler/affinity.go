package scheduler

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
)

// Affinity remembers which goroutine owns the UI loop.
type Affinity struct {
	owner atomic.Uint64
}

// Bind claims the calling goroutine as the UI goroutine.
func (a *Affinity) Bind() {
	a.owner.Store(goroutineID())
}

// Release forgets the owning goroutine.
func (a *Affinity) Release() {
	a.owner.Store(0)
}

// Held reports whether the calling goroutine is the bound one.
func (a *Affinity) Held() bool {
	owner := a.owner.Load()
	return owner != 0 && owner == goroutineID()
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID parses the id out of the first line of the current stack,
// which always reads "goroutine N [state]:".
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
