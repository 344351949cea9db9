// Package logging provides the zerolog logger shared by shoplens packages.
//
// The TUI owns the terminal, so logs never go to stdout or stderr. Until Init
// is called every event is discarded; Init points the logger at a file.
//
//	closer, err := logging.Init(logging.Config{Level: "debug", File: path})
//	defer closer.Close()
//
//	logging.Info().Str("path", p).Msg("csv uploaded")
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error, disabled.
	Level string
	// Format is json (default) or console.
	Format string
	// File receives log output. Empty keeps Output.
	File string
	// Output is used when File is empty. Nil discards.
	Output io.Writer
}

var (
	log zerolog.Logger = zerolog.Nop()
	mu  sync.RWMutex
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init configures the global logger. The returned closer releases the log
// file, if one was opened. It is safe to call more than once.
func Init(cfg Config) (io.Closer, error) {
	var (
		out    io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	if cfg.Output != nil {
		out = cfg.Output
	}
	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closer = file
	}

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: true}
	}

	zerolog.TimeFieldFormat = time.RFC3339

	mu.Lock()
	log = zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
	mu.Unlock()
	return closer, nil
}

// ParseLevel converts a level name to a zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// ValidLevel reports whether level names a level ParseLevel understands.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
		return true
	}
	return false
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug() *zerolog.Event { l := Logger(); return l.Debug() }
func Info() *zerolog.Event  { l := Logger(); return l.Info() }
func Warn() *zerolog.Event  { l := Logger(); return l.Warn() }
func Error() *zerolog.Event { l := Logger(); return l.Error() }
