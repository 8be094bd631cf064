package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogFormat represents the output format for log lines.
type LogFormat string

const (
	// FormatText renders "[thread N] connection M: message key=value" lines.
	FormatText LogFormat = "text"
	// FormatJSON renders one JSON object per line.
	FormatJSON LogFormat = "json"
)

// Config contains configuration for a logging Context.
type Config struct {
	// Level is the minimum log level ("debug", "info", "warn", "error")
	Level string

	// Format is the line format ("text", "json")
	Format string
}

// Context owns the process-wide log pipeline: one Queue, one thread
// registry and the slog.Logger that feeds them. Build exactly one per
// process (or one per test) and pass it to every component that logs.
type Context struct {
	queue   *Queue
	threads *ThreadRegistry
	logger  *slog.Logger
}

// New creates a logging Context with the given configuration.
func New(cfg Config) (*Context, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	q := NewQueue()
	threads := NewThreadRegistry()

	return &Context{
		queue:   q,
		threads: threads,
		logger:  slog.New(NewQueueHandler(q, threads, level, format)),
	}, nil
}

// Logger returns the logger whose records end up in the queue.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// ForConn returns a logger whose lines carry the "connection N: " prefix.
func (c *Context) ForConn(id uint64) *slog.Logger {
	return c.logger.With(slog.Uint64(ConnKey, id))
}

// Queue returns the context's log queue.
func (c *Context) Queue() *Queue {
	return c.queue
}

// Threads returns the context's thread registry.
func (c *Context) Threads() *ThreadRegistry {
	return c.threads
}

// NewDrain creates the single consumer for this context's queue.
func (c *Context) NewDrain(sink io.Writer, obs DrainObserver) *Drain {
	return NewDrain(c.queue, sink, obs)
}

// Close marks the queue as closing. The drain exits once it has written
// everything already queued.
func (c *Context) Close() {
	c.queue.Close()
}

// OpenSink resolves an output setting to a writer: "stdout" (or empty),
// "stderr", or a file path opened for appending. The returned closer is a
// no-op for the standard streams.
func OpenSink(output string) (io.Writer, func() error, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, func() error { return nil }, nil
	case "stderr":
		return os.Stderr, func() error { return nil }, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output %q: %w", output, err)
	}
	return f, f.Close, nil
}

// parseLevel parses a log level string into slog.Level.
func parseLevel(levelStr string) (slog.Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", levelStr)
	}
}

// parseFormat parses a log format string into LogFormat.
func parseFormat(formatStr string) (LogFormat, error) {
	switch strings.ToLower(formatStr) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format: %s", formatStr)
	}
}
