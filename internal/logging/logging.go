// Package logging writes the demo's log to a rotating file. The TUI owns the
// terminal, so nothing is printed to stdout.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options mirrors the [log] config section.
type Options struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger records form activity.
type Logger struct {
	logger *log.Logger
	file   *lumberjack.Logger
}

// New opens a rotating logger at opts.Path, creating its directory.
func New(opts Options) (*Logger, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB, // megabytes
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays, // days
		Compress:   true,
	}
	return &Logger{logger: log.New(file, "", log.LstdFlags), file: file}, nil
}

func (l *Logger) Printf(format string, args ...any) { l.logger.Printf(format, args...) }

func (l *Logger) Opened(controlID string) { l.logger.Printf("open: %s", controlID) }

func (l *Logger) Closed(controlID string) { l.logger.Printf("close: %s", controlID) }

func (l *Logger) Changed(controlID, value string) {
	l.logger.Printf("change: %s = %q", controlID, value)
}

func (l *Logger) Cleared(controlID string) { l.logger.Printf("clear: %s", controlID) }

func (l *Logger) Close() error { return l.file.Close() }
