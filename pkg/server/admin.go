package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"mercator-hq/callisto/pkg/telemetry/health"
)

// AdminOptions configures the admin HTTP listener.
type AdminOptions struct {
	Address     string
	MetricsPath string
	Metrics     http.Handler
	Checker     *health.Checker
	Build       health.BuildInfo
}

// Admin serves metrics, health, readiness and version over HTTP on a
// separate address from the request endpoints.
type Admin struct {
	srv    *http.Server
	ln     net.Listener
	logger *slog.Logger
}

// ListenAdmin binds the admin address and prepares its routes.
func ListenAdmin(ctx context.Context, opts AdminOptions, logger *slog.Logger) (*Admin, error) {
	mux := http.NewServeMux()
	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle(path, opts.Metrics)
	}
	checker := opts.Checker
	if checker == nil {
		checker = health.New(0)
	}
	health.Mount(mux, checker, opts.Build)

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", opts.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to bind admin listener %s: %w", opts.Address, err)
	}
	logger.Info(fmt.Sprintf("admin starts on %s", ln.Addr()))

	return &Admin{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:     ln,
		logger: logger,
	}, nil
}

// Addr returns the bound admin address.
func (a *Admin) Addr() net.Addr {
	return a.ln.Addr()
}

// Serve handles admin requests until ctx is cancelled.
func (a *Admin) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = a.srv.Shutdown(shutdownCtx)
	})
	defer stop()

	err := a.srv.Serve(a.ln)
	if errors.Is(err, http.ErrServerClosed) {
		a.logger.Info(fmt.Sprintf("admin on %s stopped", a.ln.Addr()))
		return nil
	}
	return err
}

// RegisterReadiness adds the listener and log drain checks to checker.
func RegisterReadiness(checker *health.Checker, s *Server, logClosed func() bool) {
	checker.Register("listeners", func(context.Context) error {
		if s.Serving() == 0 {
			return errors.New("no listener is accepting")
		}
		return nil
	})
	checker.Register("log_drain", func(context.Context) error {
		if logClosed != nil && logClosed() {
			return errors.New("log queue is closed")
		}
		return nil
	})
}
