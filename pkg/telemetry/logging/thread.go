package logging

import (
	"sync"
	"sync/atomic"
)

// ThreadRegistry hands out small, progressive numbers to OS threads the first
// time each one logs. The number is stable for that thread's lifetime.
type ThreadRegistry struct {
	slots sync.Map // OS thread id -> int
	last  atomic.Int64

	// threadID is swapped in tests; it defaults to the OS thread id.
	threadID func() int
}

// NewThreadRegistry creates an empty registry.
func NewThreadRegistry() *ThreadRegistry {
	return &ThreadRegistry{threadID: currentThreadID}
}

// Current returns the slot of the calling goroutine's OS thread, assigning
// the next one on first use.
func (r *ThreadRegistry) Current() int {
	tid := r.threadID()
	if slot, ok := r.slots.Load(tid); ok {
		return slot.(int)
	}
	next := int(r.last.Add(1))
	slot, loaded := r.slots.LoadOrStore(tid, next)
	if loaded {
		return slot.(int)
	}
	return next
}

// Count returns how many threads have been numbered so far.
func (r *ThreadRegistry) Count() int {
	return int(r.last.Load())
}
