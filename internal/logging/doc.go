// Package logging constructs the process-wide slog logger and provides typed
// attribute helpers so call sites stay terse. Handlers support JSON for
// machine consumption and text for interactive use; output can fan out to
// stdout/stderr and a log file under the configured log directory.
package logging
