package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// ConnKey is the attribute key carrying a connection id. The handler turns it
// into the "connection N: " line prefix instead of a key=value pair.
const ConnKey = "conn"

// QueueHandler is a slog.Handler that renders each record into a single log
// line and appends it to a Queue. It never performs I/O itself.
type QueueHandler struct {
	queue   *Queue
	threads *ThreadRegistry
	level   slog.Leveler
	format  LogFormat

	conn   uint64
	attrs  []slog.Attr
	prefix string
}

// NewQueueHandler creates a handler appending to q and numbering threads via
// threads. Records below level are discarded.
func NewQueueHandler(q *Queue, threads *ThreadRegistry, level slog.Leveler, format LogFormat) *QueueHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	if format == "" {
		format = FormatText
	}
	return &QueueHandler{queue: q, threads: threads, level: level, format: format}
}

// Enabled implements slog.Handler.
func (h *QueueHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *QueueHandler) Handle(_ context.Context, r slog.Record) error {
	conn := h.conn
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		if id, ok := h.connAttr(a); ok {
			conn = id
			return true
		}
		attrs = append(attrs, h.qualify(a))
		return true
	})

	thread := h.threads.Current()

	var line string
	if h.format == FormatJSON {
		line = renderJSON(r, thread, conn, attrs)
	} else {
		line = renderText(r.Message, thread, conn, attrs)
	}
	h.queue.Append(line)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *QueueHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		if id, ok := h.connAttr(a); ok {
			h2.conn = id
			continue
		}
		h2.attrs = append(h2.attrs, h.qualify(a))
	}
	return h2
}

// WithGroup implements slog.Handler. Groups become dotted key prefixes.
func (h *QueueHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.prefix = h.prefix + name + "."
	return h2
}

func (h *QueueHandler) clone() *QueueHandler {
	h2 := *h
	h2.attrs = append([]slog.Attr(nil), h.attrs...)
	return &h2
}

func (h *QueueHandler) connAttr(a slog.Attr) (uint64, bool) {
	if h.prefix != "" || a.Key != ConnKey {
		return 0, false
	}
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindUint64:
		return v.Uint64(), true
	case slog.KindInt64:
		if n := v.Int64(); n > 0 {
			return uint64(n), true
		}
	}
	return 0, false
}

func (h *QueueHandler) qualify(a slog.Attr) slog.Attr {
	if h.prefix == "" {
		return a
	}
	return slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
}

func renderText(msg string, thread int, conn uint64, attrs []slog.Attr) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[thread %d] ", thread)
	if conn != 0 {
		fmt.Fprintf(&b, "connection %d: ", conn)
	}
	b.WriteString(msg)
	for _, a := range attrs {
		writeTextAttr(&b, "", a)
	}
	b.WriteByte('\n')
	return b.String()
}

func writeTextAttr(b *strings.Builder, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			writeTextAttr(b, prefix+a.Key+".", ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(quoteIfNeeded(textValue(v)))
}

func textValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
	}
	return v.String()
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " =\"\t\r\n") {
		return strconv.Quote(s)
	}
	return s
}

func renderJSON(r slog.Record, thread int, conn uint64, attrs []slog.Attr) string {
	fields := map[string]any{
		"time":   r.Time.UTC().Format(time.RFC3339Nano),
		"level":  r.Level.String(),
		"thread": thread,
		"msg":    r.Message,
	}
	if conn != 0 {
		fields["connection"] = conn
	}
	for _, a := range attrs {
		addJSONAttr(fields, "", a)
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return renderText(r.Message, thread, conn, attrs)
	}
	return string(data) + "\n"
}

func addJSONAttr(fields map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			addJSONAttr(fields, prefix+a.Key+".", ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	switch v.Kind() {
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			fields[prefix+a.Key] = err.Error()
			return
		}
		fields[prefix+a.Key] = v.Any()
	case slog.KindTime:
		fields[prefix+a.Key] = v.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		fields[prefix+a.Key] = v.Duration().String()
	default:
		fields[prefix+a.Key] = v.Any()
	}
}
