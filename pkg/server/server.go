package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Options configures a Server.
type Options struct {
	Endpoints []Endpoint
	Responder Responder
	Logger    *slog.Logger
	Observer  Observer
}

// Server runs one Listener per endpoint on a shared Runtime. All listeners
// draw connection ids from the same counter.
type Server struct {
	rt     *Runtime
	opts   Options
	ids    ConnCounter
	logger *slog.Logger

	mu        sync.Mutex
	listeners []*Listener
	wg        sync.WaitGroup
	serving   atomic.Int32
}

// New creates a server scheduling its tasks on rt.
func New(rt *Runtime, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Server{rt: rt, opts: opts, logger: opts.Logger}
}

// Start binds every endpoint and spawns its accept loop. An endpoint that
// fails to bind is logged and skipped; the others keep going. Start returns
// the number of listeners bound.
func (s *Server) Start(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	bound := 0
	for _, ep := range s.opts.Endpoints {
		l, err := Listen(ctx, ep, s.rt, &s.ids, s.opts.Responder, s.logger, s.opts.Observer)
		if err != nil {
			continue
		}
		s.listeners = append(s.listeners, l)
		s.serving.Add(1)
		s.wg.Add(1)
		s.rt.Spawn("listener "+l.Endpoint().String(), func(ctx context.Context) error {
			defer s.wg.Done()
			defer s.serving.Add(-1)
			return l.Serve(ctx)
		})
		bound++
	}
	return bound
}

// Addrs returns the addresses of the bound listeners.
func (s *Server) Addrs() []net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	addrs := make([]net.Addr, 0, len(s.listeners))
	for _, l := range s.listeners {
		addrs = append(addrs, l.Addr())
	}
	return addrs
}

// Serving returns the number of listeners still accepting.
func (s *Server) Serving() int {
	return int(s.serving.Load())
}

// Accepted returns the number of connections accepted so far.
func (s *Server) Accepted() uint64 {
	return s.ids.Issued()
}

// Wait blocks until every listener task has returned or timeout elapses.
// In-flight connections are not waited for.
func (s *Server) Wait(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	if timeout <= 0 {
		<-done
		return nil
	}
	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("listeners did not stop within %s", timeout)
	}
}
