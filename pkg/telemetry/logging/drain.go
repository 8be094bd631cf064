package logging

import "io"

// DrainObserver receives drain statistics. The metrics collector implements it.
type DrainObserver interface {
	// BatchDrained is called once per non-empty batch.
	BatchDrained(size int)

	// LineDropped is called when the sink rejects a line.
	LineDropped()
}

type nopDrainObserver struct{}

func (nopDrainObserver) BatchDrained(int) {}
func (nopDrainObserver) LineDropped()     {}

// Drain is the single consumer of a Queue. It writes every line to the sink
// in batch order and stops once the queue is closed and empty.
type Drain struct {
	queue *Queue
	sink  io.Writer
	obs   DrainObserver
}

// NewDrain creates a drain writing lines from q to sink. obs may be nil.
func NewDrain(q *Queue, sink io.Writer, obs DrainObserver) *Drain {
	if obs == nil {
		obs = nopDrainObserver{}
	}
	return &Drain{queue: q, sink: sink, obs: obs}
}

// Run drains the queue until it is closed and empty, returning the number of
// lines written. It blocks the calling goroutine; callers that must keep the
// drain off the worker pool lock it to its own OS thread first.
//
// A sink write failure drops that line only.
func (d *Drain) Run() int {
	var (
		batch   []string
		written int
	)
	for {
		batch = d.queue.DrainOrWait(batch)
		if len(batch) == 0 {
			return written
		}
		d.obs.BatchDrained(len(batch))
		for _, line := range batch {
			if _, err := io.WriteString(d.sink, line); err != nil {
				d.obs.LineDropped()
				continue
			}
			written++
		}
	}
}
