package logging

import "sync"

// Queue is the process-wide log line buffer. Any number of producers may
// Append concurrently; exactly one consumer calls DrainOrWait.
//
// The lock is held only for the append or the batch swap, never across I/O.
type Queue struct {
	mu      sync.Mutex
	ready   *sync.Cond
	lines   []string
	closing bool
}

// NewQueue creates an empty, open queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.ready = sync.NewCond(&q.mu)
	return q
}

// Append adds a line and wakes the consumer if it is waiting.
// Lines appended after Close are still delivered if the consumer has not
// yet observed an empty, closed queue.
func (q *Queue) Append(line string) {
	q.mu.Lock()
	q.lines = append(q.lines, line)
	q.mu.Unlock()
	q.ready.Signal()
}

// DrainOrWait removes and returns the whole pending batch. If the queue is
// empty it blocks until a line is appended or the queue is closed. An empty
// result means the queue is closed and fully drained.
//
// spare is recycled as the queue's next backing array so a steady-state
// consumer does not allocate; pass the previous batch (or nil).
func (q *Queue) DrainOrWait(spare []string) []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.lines) == 0 && !q.closing {
		q.ready.Wait()
	}

	batch := q.lines
	clear(spare)
	q.lines = spare[:0]
	return batch
}

// Close marks the queue as closing and wakes the consumer. It is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closing = true
	q.mu.Unlock()
	q.ready.Broadcast()
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closing
}

// Len returns the number of lines waiting to be drained.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lines)
}
