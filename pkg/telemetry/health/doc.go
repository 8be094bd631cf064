// Package health serves liveness, readiness and version endpoints on the
// admin listener.
//
// Readiness is the conjunction of named checks registered on a Checker:
//
//	checker := health.New(2 * time.Second)
//	checker.Register("listeners", func(ctx context.Context) error {
//	    if srv.Serving() == 0 {
//	        return errors.New("no listener is accepting")
//	    }
//	    return nil
//	})
//	health.Mount(mux, checker, health.BuildInfo{Version: version})
//
// Checks run concurrently, each bounded by the checker timeout. A check that
// fails or times out turns the overall status to "degraded" and /ready to 503.
package health
