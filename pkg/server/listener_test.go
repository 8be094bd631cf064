package server

import (
	"context"
	"io"
	"net"
	"sync"
	"syscall"
	"testing"
	"time"
)

// failingListener returns EMFILE from the first failures calls to Accept,
// then passes through to the wrapped listener.
type failingListener struct {
	net.Listener

	mu       sync.Mutex
	failures int
}

func (l *failingListener) Accept() (net.Conn, error) {
	l.mu.Lock()
	if l.failures > 0 {
		l.failures--
		l.mu.Unlock()
		return nil, &net.OpError{Op: "accept", Net: "tcp", Err: syscall.EMFILE}
	}
	l.mu.Unlock()
	return l.Listener.Accept()
}

func TestListener_AcceptErrorsAreRetried(t *testing.T) {
	lc := newTestLogging(t)
	rt := NewRuntime(2, lc.Logger())
	defer rt.Stop()

	var ids ConnCounter
	obs := newRecordingObserver()
	resp := &fixedResponder{resp: []byte("ok")}

	l, err := Listen(context.Background(), loopback(), rt, &ids, resp, lc.Logger(), obs)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	l.ln = &failingListener{Listener: l.ln, failures: 3}

	served := make(chan error, 1)
	go func() { served <- l.Serve(rt.Context()) }()

	conn, err := net.DialTimeout("tcp", l.Addr().String(), 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))
	if _, err := io.WriteString(conn, "GET / HTTP/1.1\r\n\r\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	buf := make([]byte, 2)
	if _, err := io.ReadFull(conn, buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	conn.Close()
	if string(buf) != "ok" {
		t.Errorf("expected reply %q, got %q", "ok", buf)
	}

	if ids.Issued() != 1 {
		t.Errorf("expected the served client to get id 1, got %d issued", ids.Issued())
	}
	obs.mu.Lock()
	failed := obs.failed
	obs.mu.Unlock()
	if failed != 3 {
		t.Errorf("expected 3 failed accepts observed, got %d", failed)
	}

	rt.Stop()
	select {
	case err := <-served:
		if err != nil {
			t.Errorf("Serve() returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Stop")
	}

	lines := collectLines(lc)
	if n := len(linesContaining(lines, "] accept error: accept tcp: too many open files (24)\n")); n != 3 {
		t.Errorf("expected 3 accept error lines, got %d in %v", n, lines)
	}
	if len(linesContaining(lines, "] connection 1: accepted on port ")) != 1 {
		t.Errorf("expected connection 1 to be accepted, got %v", lines)
	}
}
