// Package logging provides a structured logger writing JSON lines to
// rotated files, and a reader over those files. The logger is an
// explicitly constructed, ownership-scoped handle, not a process-wide
// singleton: callers create one, pass it to the components that need it,
// and Close it on shutdown to flush the file sink.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a scoped logging handle over a rotated file sink.
type Logger struct {
	*logrus.Logger

	writer *rotatingWriter
	dir    string
}

// New creates the log directory if needed and returns a configured Logger.
func New(cfg Config) (*Logger, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %s: %w", cfg.Dir, err)
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	writer, err := newRotatingWriter(cfg.Dir, cfg.FilePrefix, cfg.Rotation == RotationDaily, cfg.RetentionDays)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	writers := []io.Writer{writer}
	if cfg.ConsoleOutput {
		writers = append(writers, os.Stderr)
	}

	log := logrus.New()
	log.SetOutput(io.MultiWriter(writers...))
	log.SetLevel(level)

	if cfg.JSONFormat {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}

	return &Logger{Logger: log, writer: writer, dir: cfg.Dir}, nil
}

// Dir returns the directory log files are written to.
func (l *Logger) Dir() string {
	return l.dir
}

// Close flushes and closes the file sink. The handle must not be used
// afterwards.
func (l *Logger) Close() error {
	return l.writer.Close()
}
