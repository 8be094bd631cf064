package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"mercator-hq/callisto/pkg/telemetry/logging"
)

// Accept backoff bounds.
const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

// Endpoint is an address and port to listen on.
type Endpoint struct {
	Address string
	Port    int
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Address, strconv.Itoa(e.Port))
}

// Listener accepts connections on one endpoint and spawns a handler task
// for each of them.
type Listener struct {
	endpoint Endpoint
	ln       net.Listener
	rt       *Runtime
	ids      *ConnCounter
	resp     Responder
	logger   *slog.Logger
	obs      Observer
}

// Listen binds ep. The returned listener does not accept until Serve.
func Listen(ctx context.Context, ep Endpoint, rt *Runtime, ids *ConnCounter, resp Responder, logger *slog.Logger, obs Observer) (*Listener, error) {
	if obs == nil {
		obs = nopObserver{}
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", ep.String())
	if err != nil {
		logger.Error(fmt.Sprintf("server on %s error: %v", ep, err))
		return nil, fmt.Errorf("failed to bind %s: %w", ep, err)
	}

	// Report the port actually bound when 0 was requested.
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		ep.Port = addr.Port
	}
	logger.Info(fmt.Sprintf("server starts on %s", ep))

	return &Listener{
		endpoint: ep,
		ln:       ln,
		rt:       rt,
		ids:      ids,
		resp:     resp,
		logger:   logger,
		obs:      obs,
	}, nil
}

// Endpoint returns the bound endpoint.
func (l *Listener) Endpoint() Endpoint {
	return l.endpoint
}

// Addr returns the bound network address.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Serve runs the accept loop until ctx is cancelled. Accept errors are
// logged and retried with backoff.
func (l *Listener) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = l.ln.Close() })
	defer stop()
	defer func() { _ = l.ln.Close() }()

	name := l.endpoint.String()
	backoff := time.Duration(0)
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				l.logger.Info(fmt.Sprintf("server on %s stopped", name))
				return nil
			}
			l.obs.AcceptFailed(name)
			l.logger.Info(fmt.Sprintf("accept error: %v (%d)", err, errnoOf(err)))

			if backoff == 0 {
				backoff = minAcceptBackoff
			} else {
				backoff = min(backoff*2, maxAcceptBackoff)
			}
			select {
			case <-ctx.Done():
			case <-time.After(backoff):
			}
			continue
		}
		backoff = 0

		id := l.ids.Next()
		l.obs.ConnectionAccepted(name)
		connLogger := l.logger.With(slog.Uint64(logging.ConnKey, id))
		connLogger.Info(fmt.Sprintf("accepted on port %d from %s", l.endpoint.Port, peerIP(conn.RemoteAddr())))

		c := newConnection(conn, l.resp, connLogger, l.obs)
		l.rt.Spawn("connection", func(context.Context) error {
			c.serve()
			return nil
		})
	}
}

func peerIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
