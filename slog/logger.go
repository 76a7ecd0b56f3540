// Package slog provides logging decorators for artex services and the
// process logger that persists log lines to disk.
package slog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fwojciec/artex"
)

// Logger is a process logger whose records are also appended to a file.
type Logger struct {
	*slog.Logger
	file *os.File
}

// NewLogger returns a text logger writing to w and, when path is not
// empty, appending the same records to the file at path. The file and its
// directory are created if missing.
func NewLogger(w io.Writer, path string, level slog.Level) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	if path == "" {
		return &Logger{Logger: slog.New(slog.NewTextHandler(w, opts))}, nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, artex.Errorf(artex.EINTERNAL, "failed to create log directory: %v", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, artex.Errorf(artex.EINTERNAL, "failed to open log file: %v", err)
	}

	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.MultiWriter(w, f), opts)),
		file:   f,
	}, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
