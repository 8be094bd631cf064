// Package server accepts TCP connections on one or more endpoints and
// answers each request line with a complete response.
//
// # Architecture
//
// A Runtime sizes the worker pool (GOMAXPROCS) and runs every unit of work
// as a Task. The Server spawns one Listener task per endpoint; each accepted
// socket becomes its own connection task, so a slow peer only parks its
// own goroutine on the netpoller and never a worker thread.
//
// All listeners of a Server share one ConnCounter, so connection ids are
// unique and increasing across endpoints.
//
// # Basic Usage
//
//	rt := server.NewRuntime(cfg.Server.Workers, logger)
//	srv := server.New(rt, server.Options{
//	    Endpoints: endpoints,
//	    Responder: pages.NewBuilder(nil),
//	    Logger:    logger,
//	})
//	srv.Start(rt.Context())
//	rt.Run() // blocks until rt.Stop
//
// The callisto binary does not call Run: its main goroutine blocks on the
// log drain, then on Server.Wait.
//
// # Shutdown
//
// Runtime.Stop cancels the runtime context: listeners close their sockets,
// log "server on <addr> stopped" and return. Connections already being
// served are not interrupted or awaited. Server.Wait bounds how long the
// caller waits for the listeners.
//
// # Limitations
//
// A connection treats each read of up to 1024 bytes as one request. Request
// lines longer than that, or split across TCP segments, are not reassembled.
package server
