package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CreateLogger builds the logger used by the cli commands. Messages always go
// to stderr; if a log filepath is provided they are also written to that file.
// The returned closer is nil unless a log file handle was opened.
func CreateLogger(loglevel string, logFilePath string) (*slog.Logger, io.Closer, error) {
	// we can set the log level based on user input
	curr_log_level := &slog.LevelVar{}

	switch loglevel {
	case "debug":
		curr_log_level.Set(slog.LevelDebug)
	case "info":
		curr_log_level.Set(slog.LevelInfo)
	case "warn":
		curr_log_level.Set(slog.LevelWarn)
	default:
		return nil, nil, fmt.Errorf("did not recognize the logging level of %s", loglevel)
	}

	opts := &slog.HandlerOptions{
		Level: curr_log_level,
	}

	if logFilePath == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil, nil
	}

	log_fh, file_err := os.Create(logFilePath)
	if file_err != nil {
		return nil, nil, fmt.Errorf("unable to create the logging file %s: %w", logFilePath, file_err)
	}

	combined := slog.New(slog.NewTextHandler(io.MultiWriter(os.Stderr, log_fh), opts))
	return combined, log_fh, nil
}
