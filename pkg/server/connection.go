package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"syscall"

	"mercator-hq/callisto/pkg/wire"
)

// readBufferSize bounds a request. One read is one request: a request line
// split across reads, or longer than the buffer, is not reassembled.
const readBufferSize = 1024

// Responder produces the complete response bytes for a parsed request.
type Responder interface {
	Respond(req wire.Request) []byte
}

// State is the position of a connection in its serve loop.
type State int

const (
	StateReading State = iota
	StateParsed
	StateWriting
	StateClosedPeer
	StateClosedError
)

func (s State) String() string {
	switch s {
	case StateReading:
		return "reading"
	case StateParsed:
		return "parsed"
	case StateWriting:
		return "writing"
	case StateClosedPeer:
		return "closed_peer"
	case StateClosedError:
		return "closed_error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// connection serves one accepted socket until the peer goes away or an
// I/O error occurs. It owns the socket and closes it on exit.
type connection struct {
	rwc       io.ReadWriteCloser
	responder Responder
	logger    *slog.Logger
	obs       Observer
	state     State
}

func newConnection(rwc io.ReadWriteCloser, responder Responder, logger *slog.Logger, obs Observer) *connection {
	if obs == nil {
		obs = nopObserver{}
	}
	return &connection{rwc: rwc, responder: responder, logger: logger, obs: obs}
}

// serve runs the read/respond loop and returns the terminal state.
func (c *connection) serve() State {
	defer func() {
		_ = c.rwc.Close()
		reason := ReasonError
		if c.state == StateClosedPeer {
			reason = ReasonPeer
		}
		c.obs.ConnectionClosed(reason)
	}()

	buf := make([]byte, readBufferSize)
	for {
		c.state = StateReading
		n, err := c.rwc.Read(buf)
		if n > 0 {
			c.obs.BytesRead(n)
			if !c.handle(buf[:n]) {
				return c.state
			}
		}
		if err != nil {
			return c.readFailed(err)
		}
		if n == 0 {
			return c.peerClosed()
		}
	}
}

// handle answers one request. It reports false when the connection must end.
func (c *connection) handle(raw []byte) bool {
	req := wire.ParseRequestLine(raw)
	c.state = StateParsed
	c.logger.Info(fmt.Sprintf("received: %s %s %s", req.Method, req.Target, req.Proto))

	resp := c.responder.Respond(req)

	c.state = StateWriting
	written, err := writeFull(c.rwc, resp)
	if err != nil {
		c.state = StateClosedError
		c.logger.Info(fmt.Sprintf("send error: %v (%d)", err, errnoOf(err)))
		return false
	}
	c.obs.BytesWritten(written)
	c.obs.ResponseSent(statusCode(resp))
	c.logger.Info(fmt.Sprintf("%d bytes written", written))
	return true
}

func (c *connection) readFailed(err error) State {
	if errors.Is(err, io.EOF) || errors.Is(err, syscall.ECONNRESET) {
		return c.peerClosed()
	}
	c.state = StateClosedError
	c.logger.Info(fmt.Sprintf("recv error: %v (%d)", err, errnoOf(err)))
	return c.state
}

func (c *connection) peerClosed() State {
	c.state = StateClosedPeer
	c.logger.Info("closed")
	return c.state
}

// writeFull writes all of p, retrying after short writes.
func writeFull(w io.Writer, p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := w.Write(p[written:])
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}

// errnoOf returns the OS error code carried by err, or 0.
func errnoOf(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 0
}

// statusCode extracts the status code from an encoded status line.
func statusCode(resp []byte) string {
	_, rest, ok := bytes.Cut(resp, []byte(" "))
	if !ok {
		return "unknown"
	}
	code, _, _ := bytes.Cut(rest, []byte(" "))
	if len(code) == 0 {
		return "unknown"
	}
	return string(code)
}
