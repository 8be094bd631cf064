// Package logging provides the process-wide log pipeline for Callisto.
//
// # Overview
//
// Producers (listener and connection goroutines) log through a *slog.Logger
// whose handler renders each record into one line and appends it to a
// Queue. A single Drain takes whole batches off the queue and writes them to
// the output sink, so no producer ever waits on I/O:
//
//	producers --slog--> QueueHandler --Append--> Queue --DrainOrWait--> Drain --> sink
//
// # Usage
//
//	lc, err := logging.New(logging.Config{Level: "info", Format: "text"})
//	if err != nil {
//	    return err
//	}
//
//	lc.Logger().Info("server starts on 127.0.0.1:8888")
//	lc.ForConn(7).Info("closed")
//
//	// On a dedicated OS thread:
//	runtime.LockOSThread()
//	lc.NewDrain(os.Stdout, nil).Run() // returns after lc.Close() and a final flush
//
// # Line format
//
// Text lines look like:
//
//	[thread 3] connection 12: received: GET / HTTP/1.1
//
// The thread number is a small integer handed out per OS thread on first use.
// The connection prefix appears when the record (or logger) carries the
// ConnKey attribute.
//
// # Guarantees
//
// Every line appended before Close is observed is written before the drain
// returns. Lines from one goroutine keep their order; lines from different
// goroutines interleave arbitrarily. A failing sink drops lines, it never
// stops the drain.
package logging
