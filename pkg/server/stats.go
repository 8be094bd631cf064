package server

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// StatsReporter periodically logs a one-line summary of server activity.
type StatsReporter struct {
	server   *Server
	rt       *Runtime
	queued   func() int
	logger   *slog.Logger
	schedule string

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewStatsReporter validates schedule (standard cron syntax or a
// descriptor such as "@every 1m") and returns a stopped reporter. queued
// reports the number of log lines waiting to be written.
func NewStatsReporter(schedule string, s *Server, rt *Runtime, queued func() int, logger *slog.Logger) (*StatsReporter, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid stats schedule %q: %w", schedule, err)
	}
	if queued == nil {
		queued = func() int { return 0 }
	}
	return &StatsReporter{
		server:   s,
		rt:       rt,
		queued:   queued,
		logger:   logger,
		schedule: schedule,
		cron:     cron.New(),
	}, nil
}

// Start begins reporting on the schedule.
func (r *StatsReporter) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}
	if _, err := r.cron.AddFunc(r.schedule, r.Report); err != nil {
		return fmt.Errorf("failed to schedule stats: %w", err)
	}
	r.cron.Start()
	r.running = true
	return nil
}

// Report logs the current summary immediately.
func (r *StatsReporter) Report() {
	r.logger.Info(fmt.Sprintf("stats: accepted=%d active_tasks=%d queued_lines=%d",
		r.server.Accepted(), r.rt.Active(), r.queued()))
}

// Stop halts the schedule and waits for a running report to finish.
func (r *StatsReporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		<-r.cron.Stop().Done()
		r.running = false
	}
}
