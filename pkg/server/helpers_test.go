package server

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"mercator-hq/callisto/pkg/telemetry/logging"
	"mercator-hq/callisto/pkg/wire"
)

func newTestLogging(t *testing.T) *logging.Context {
	t.Helper()
	lc, err := logging.New(logging.Config{Level: "debug"})
	if err != nil {
		t.Fatalf("failed to create logging context: %v", err)
	}
	return lc
}

// collectLines closes the queue and returns every line logged so far.
func collectLines(lc *logging.Context) []string {
	lc.Close()
	var lines []string
	for {
		batch := lc.Queue().DrainOrWait(nil)
		if len(batch) == 0 {
			return lines
		}
		lines = append(lines, batch...)
	}
}

func linesContaining(lines []string, substr string) []string {
	var out []string
	for _, l := range lines {
		if strings.Contains(l, substr) {
			out = append(out, l)
		}
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedResponder answers every request with the same bytes.
type fixedResponder struct {
	resp []byte

	mu   sync.Mutex
	reqs []wire.Request
}

func (r *fixedResponder) Respond(req wire.Request) []byte {
	r.mu.Lock()
	r.reqs = append(r.reqs, req)
	r.mu.Unlock()
	return r.resp
}

// stubConn replays scripted reads and records writes. Once reads run out
// it returns readErr, or a zero-byte read when readErr is nil.
type stubConn struct {
	reads    [][]byte
	readErr  error
	maxWrite int
	writeErr error

	written bytes.Buffer
	writes  int
	closed  bool
}

func (c *stubConn) Read(p []byte) (int, error) {
	if len(c.reads) > 0 {
		n := copy(p, c.reads[0])
		c.reads = c.reads[1:]
		return n, nil
	}
	if c.readErr != nil {
		return 0, c.readErr
	}
	return 0, nil
}

func (c *stubConn) Write(p []byte) (int, error) {
	c.writes++
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	if c.maxWrite > 0 && len(p) > c.maxWrite {
		p = p[:c.maxWrite]
	}
	return c.written.Write(p)
}

func (c *stubConn) Close() error {
	c.closed = true
	return nil
}

// recordingObserver counts observer callbacks.
type recordingObserver struct {
	mu        sync.Mutex
	accepted  map[string]int
	failed    int
	closed    map[string]int
	read      int
	written   int
	responses map[string]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		accepted:  make(map[string]int),
		closed:    make(map[string]int),
		responses: make(map[string]int),
	}
}

func (o *recordingObserver) ConnectionAccepted(ep string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.accepted[ep]++
}

func (o *recordingObserver) AcceptFailed(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed++
}

func (o *recordingObserver) ConnectionClosed(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed[reason]++
}

func (o *recordingObserver) BytesRead(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.read += n
}

func (o *recordingObserver) BytesWritten(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.written += n
}

func (o *recordingObserver) ResponseSent(status string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.responses[status]++
}
