package logging

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingObserver struct {
	batches atomic.Int64
	lines   atomic.Int64
	dropped atomic.Int64
}

func (o *countingObserver) BatchDrained(size int) {
	o.batches.Add(1)
	o.lines.Add(int64(size))
}

func (o *countingObserver) LineDropped() {
	o.dropped.Add(1)
}

// flakyWriter fails every other write.
type flakyWriter struct {
	buf   bytes.Buffer
	calls int
}

func (w *flakyWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls%2 == 0 {
		return 0, errors.New("sink unavailable")
	}
	return w.buf.Write(p)
}

func TestDrain_WritesEverythingThenStops(t *testing.T) {
	q := NewQueue()
	q.Append("one\n")
	q.Append("two\n")
	q.Append("three\n")
	q.Close()

	var sink bytes.Buffer
	obs := &countingObserver{}
	written := NewDrain(q, &sink, obs).Run()

	if written != 3 {
		t.Errorf("expected 3 lines written, got %d", written)
	}
	if sink.String() != "one\ntwo\nthree\n" {
		t.Errorf("unexpected sink contents %q", sink.String())
	}
	if obs.lines.Load() != 3 {
		t.Errorf("expected observer to see 3 lines, got %d", obs.lines.Load())
	}
}

func TestDrain_SinkFailureDropsLineAndContinues(t *testing.T) {
	q := NewQueue()
	for _, l := range []string{"a\n", "b\n", "c\n", "d\n"} {
		q.Append(l)
	}
	q.Close()

	sink := &flakyWriter{}
	obs := &countingObserver{}
	written := NewDrain(q, sink, obs).Run()

	if written != 2 {
		t.Errorf("expected 2 lines written, got %d", written)
	}
	if obs.dropped.Load() != 2 {
		t.Errorf("expected 2 dropped lines, got %d", obs.dropped.Load())
	}
	if sink.buf.String() != "a\nc\n" {
		t.Errorf("unexpected sink contents %q", sink.buf.String())
	}
}

func TestDrain_ConcurrentProducers(t *testing.T) {
	const producers, perProd = 8, 200

	q := NewQueue()
	var sink bytes.Buffer

	result := make(chan int, 1)
	go func() {
		result <- NewDrain(q, &sink, nil).Run()
	}()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProd; i++ {
				q.Append("line\n")
			}
		}()
	}
	wg.Wait()
	q.Close()

	select {
	case n := <-result:
		if n != producers*perProd {
			t.Errorf("expected %d lines, got %d", producers*perProd, n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("drain did not finish after Close")
	}

	if got := strings.Count(sink.String(), "line\n"); got != producers*perProd {
		t.Errorf("expected %d lines in sink, got %d", producers*perProd, got)
	}
}

func TestDrain_ReturnsOnCloseWithoutLines(t *testing.T) {
	q := NewQueue()

	result := make(chan int, 1)
	go func() {
		result <- NewDrain(q, &bytes.Buffer{}, nil).Run()
	}()

	q.Close()

	select {
	case n := <-result:
		if n != 0 {
			t.Errorf("expected 0 lines, got %d", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("drain did not return after Close")
	}
}
