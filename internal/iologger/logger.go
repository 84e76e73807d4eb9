// Package iologger provides slog-based logging initialization and
// configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/barcraft/bardb/pkg/config"
	"github.com/barcraft/bardb/pkg/logger"
)

// Init initializes the global slog logger with the given configuration.
// Creates a log file in logDir if destination is "file".
// If append is true, appends to the existing log file; otherwise creates
// a fresh file.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	var writer io.Writer

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, "bardb.log")
		var file *os.File
		var err error

		if append {
			file, err = os.OpenFile(
				logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		} else {
			file, err = os.Create(logPath)
		}

		if err != nil {
			return CreateLogFileError(logPath, err)
		}
		writer = file
	default:
		writer = os.Stderr
	}

	slog.SetDefault(logger.New(writer, &cfg))
	return nil
}
