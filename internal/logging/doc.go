// Package logging constructs the slog loggers used across redbreast.
// It maps configuration to a console or JSON handler and optionally tees
// output into a log file under the configured log directory.
package logging
