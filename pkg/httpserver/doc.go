// Package httpserver provides a small wrapper around net/http that adds
// graceful shutdown, env-driven server timeouts, health-check handlers, and
// structured logging via slog.
//
// Run blocks until the supplied context is cancelled or an interrupt/TERM
// signal is received, then shuts the server down within ShutdownTimeout.
// Listen errors are wrapped with ErrStart and shutdown errors with
// ErrShutdown so callers can inspect them with errors.Is.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthCheckHandler(log))
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
