package server

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
)

// Task is a unit of work scheduled on the runtime. A returned error is
// logged and does not affect other tasks.
type Task func(ctx context.Context) error

// FatalHandler is called after a task panics. The default re-panics, which
// terminates the process.
type FatalHandler func(task string, recovered any)

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithFatalHandler replaces the handler invoked when a task panics.
func WithFatalHandler(h FatalHandler) RuntimeOption {
	return func(r *Runtime) {
		if h != nil {
			r.fatal = h
		}
	}
}

// Runtime multiplexes tasks onto a fixed pool of worker threads. Tasks are
// goroutines; they suspend at network I/O and may resume on any worker.
type Runtime struct {
	workers int
	logger  *slog.Logger
	fatal   FatalHandler

	ctx    context.Context
	cancel context.CancelFunc

	active   atomic.Int64
	stopOnce sync.Once
}

// NewRuntime sizes the worker pool and returns a runtime ready to accept
// tasks. workers <= 0 selects the number of CPUs.
func NewRuntime(workers int, logger *slog.Logger, opts ...RuntimeOption) *Runtime {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	runtime.GOMAXPROCS(workers)

	ctx, cancel := context.WithCancel(context.Background())
	r := &Runtime{
		workers: workers,
		logger:  logger,
		fatal:   func(_ string, v any) { panic(v) },
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Workers returns the size of the worker pool.
func (r *Runtime) Workers() int {
	return r.workers
}

// Context is cancelled when the runtime stops.
func (r *Runtime) Context() context.Context {
	return r.ctx
}

// Spawn schedules task without blocking the caller.
func (r *Runtime) Spawn(name string, task Task) {
	r.active.Add(1)
	go r.run(name, task)
}

func (r *Runtime) run(name string, task Task) {
	defer r.active.Add(-1)
	defer func() {
		if v := recover(); v != nil {
			r.logger.Error(fmt.Sprintf("task %s panicked: %v", name, v))
			r.fatal(name, v)
		}
	}()

	if err := task(r.ctx); err != nil {
		r.logger.Error(fmt.Sprintf("task %s failed: %v", name, err))
	}
}

// Run blocks until Stop is called.
func (r *Runtime) Run() error {
	<-r.ctx.Done()
	return nil
}

// Stop cancels the runtime context and unblocks Run. Tasks still running
// are neither cancelled nor awaited. Safe to call more than once.
func (r *Runtime) Stop() {
	r.stopOnce.Do(r.cancel)
}

// Active returns the number of live tasks.
func (r *Runtime) Active() int64 {
	return r.active.Load()
}
