// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gnames/gnvmr/pkg/config"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "gnvmr.log"

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init initializes the global slog logger with the given configuration.
// Creates log file in logDir if destination is "file". The log file is
// appended to, so that all phases of a working directory end up in
// one place.
// A log file opened by a previous Init is closed once the new default
// logger is in place.
func Init(logDir string, cfg config.LogConfig) error {
	writer, err := destination(logDir, cfg.Destination)
	if err != nil {
		return err
	}
	slog.SetDefault(New(writer, cfg))

	mu.Lock()
	defer mu.Unlock()
	prev := logFile
	logFile, _ = writer.(*os.File)
	if logFile == os.Stdout || logFile == os.Stderr {
		logFile = nil
	}
	if prev != nil {
		return prev.Close()
	}
	return nil
}

// Close closes the log file opened by Init, if any. The default logger
// is reset to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	err := logFile.Close()
	logFile = nil
	return err
}

// New creates a logger writing to w with the format and level from cfg.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text", "tint":
		// tint is rendered as text for now
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

func destination(logDir, dest string) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		file, err := os.OpenFile(
			logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644,
		)
		if err != nil {
			return nil, CreateLogFileError(logPath, err)
		}
		return file, nil
	default:
		return os.Stderr, nil
	}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
