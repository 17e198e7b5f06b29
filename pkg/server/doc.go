// Package server runs the admin HTTP server of the poll command.
//
// The server hosts whatever handler it is given, typically a mux with the
// health probes and the Prometheus endpoint, behind request logging and
// panic recovery:
//
//	mux := http.NewServeMux()
//	health.Mount(mux, checker, info)
//	mux.Handle("/metrics", collector.Handler())
//
//	srv := server.New(server.Config{Address: "127.0.0.1:9090"}, mux, logger)
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Shutdown(context.Background())
package server
