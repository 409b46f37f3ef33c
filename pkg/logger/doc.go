// Package logger builds configured log/slog loggers: JSON or text
// output, level from the environment, static attributes per service.
package logger
