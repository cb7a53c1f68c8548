package httpserver

import "log/slog"

// Option configures the HTTP server.
type Option func(*Server)

// WithLogger supplies an external slog.Logger instance.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}
