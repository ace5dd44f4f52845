// Package logging builds the charmbracelet/log loggers used across the app.
// Interactive sessions own the terminal, so they log to a rotating file;
// headless commands log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a logger.
type Options struct {
	Level  string // debug, info, warn, error
	Prefix string

	// File, when set, sends output to a rotating log file instead of Writer.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	Writer io.Writer // defaults to os.Stderr
}

// Logger wraps a charmbracelet logger and the file sink it owns, if any.
type Logger struct {
	*log.Logger
	sink io.Closer
}

// New creates a logger from options.
func New(opts Options) (*Logger, error) {
	level, err := log.ParseLevel(opts.Level)
	if opts.Level == "" {
		level, err = log.InfoLevel, nil
	}
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var (
		w    io.Writer = opts.Writer
		sink io.Closer
	)
	if w == nil {
		w = os.Stderr
	}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("logging: cannot create log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 5), // MB
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 14), // days
		}
		w, sink = lj, lj
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	if opts.File != "" {
		l.SetFormatter(log.LogfmtFormatter)
	}

	return &Logger{Logger: l, sink: sink}, nil
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard)}
}

// Close flushes and closes the file sink, if any.
func (l *Logger) Close() error {
	if l.sink == nil {
		return nil
	}
	return l.sink.Close()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
