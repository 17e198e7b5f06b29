// Package logging provides structured logging for the Jikan client and CLI.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON and text output
//   - Context-aware logging with request IDs and endpoint names
//   - A level that can be changed at runtime (config reload)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//
//	ctx, _ = logging.EnsureRequestID(ctx)
//	ctx = logging.WithEndpoint(ctx, "anime")
//	logger.InfoContext(ctx, "request complete", "status", 200)
//	// {"level":"INFO","msg":"request complete","request_id":"...","endpoint":"anime","status":200}
//
// Logs are written to stderr by default so that command output on stdout
// stays machine readable.
package logging
