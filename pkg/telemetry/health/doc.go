// Package health serves liveness, readiness and version endpoints for the
// long-running poll command.
//
// Readiness aggregates named checks. The poll command registers one for the
// Jikan client (unhealthy after repeated upstream failures), one for the
// cache backend and one for the poller itself:
//
//	checker := health.New(2 * time.Second)
//	checker.Register("jikan", func(ctx context.Context) error {
//	    if !client.IsHealthy() {
//	        return errors.New("upstream failing")
//	    }
//	    return nil
//	})
//
//	mux := http.NewServeMux()
//	health.Mount(mux, checker, health.VersionInfo{Version: Version})
//
// /ready answers 503 while any check fails.
package health
