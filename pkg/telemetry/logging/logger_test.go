package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid text config",
			config:  Config{Level: "info", Format: "text"},
			wantErr: false,
		},
		{
			name:    "valid json config",
			config:  Config{Level: "debug", Format: "json"},
			wantErr: false,
		},
		{
			name:    "defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			config:  Config{Level: "invalid", Format: "text"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  Config{Level: "info", Format: "console"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if lc.Logger() == nil || lc.Queue() == nil || lc.Threads() == nil {
				t.Error("expected fully initialised context")
			}
		})
	}
}

func TestContext_EndToEndThroughDrain(t *testing.T) {
	lc, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var sink strings.Builder
	done := make(chan int, 1)
	go func() {
		done <- lc.NewDrain(&sink, nil).Run()
	}()

	lc.Logger().Info("server starts on 127.0.0.1:8888")
	lc.ForConn(1).Info("accepted on port 8888 from 127.0.0.1")
	lc.Close()

	if n := <-done; n != 2 {
		t.Fatalf("expected 2 lines written, got %d", n)
	}

	out := sink.String()
	if !strings.Contains(out, "] server starts on 127.0.0.1:8888\n") {
		t.Errorf("missing start line in %q", out)
	}
	if !strings.Contains(out, "] connection 1: accepted on port 8888 from 127.0.0.1\n") {
		t.Errorf("missing accept line in %q", out)
	}
	if !strings.HasPrefix(out, "[thread ") {
		t.Errorf("expected thread prefix, got %q", out)
	}
}

func TestOpenSink(t *testing.T) {
	w, closeFn, err := OpenSink("")
	if err != nil || w != os.Stdout {
		t.Errorf("expected stdout for empty output, got %v (%v)", w, err)
	}
	_ = closeFn()

	w, closeFn, err = OpenSink("stderr")
	if err != nil || w != os.Stderr {
		t.Errorf("expected stderr, got %v (%v)", w, err)
	}
	_ = closeFn()

	path := filepath.Join(t.TempDir(), "callisto.log")
	w, closeFn, err = OpenSink(path)
	if err != nil {
		t.Fatalf("OpenSink(%q) error = %v", path, err)
	}
	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "hello\n" {
		t.Errorf("unexpected file contents %q", data)
	}
}

func TestOpenSink_BadPath(t *testing.T) {
	_, _, err := OpenSink(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}
