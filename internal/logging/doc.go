// Package logging provides structured logging for hokage.
//
// This package wraps Go's log/slog to write JSON logs to a file next to the
// organizer's configuration, so the terminal dashboard never interleaves log
// lines with its rendered frames.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("teams loaded", "count", 42)
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	opLogger := logger.WithOperation("reassign_domain").WithTeam("t-17")
//	opLogger.Warn("rolled back", "error", err)
//
// Output:
//
//	{"time":"...","level":"WARN","msg":"rolled back","operation":"reassign_domain","team_id":"t-17","error":"..."}
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] to capture it.
package logging
