// Package logger builds slog loggers configured from the environment, with
// optional context extractors that attach request-scoped attributes (org id,
// request id) to every record.
package logger
