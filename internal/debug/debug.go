// Package debug provides debug logging infrastructure for moncollect.
// Logging is only enabled when --debug is passed or debug: true is configured.
// Logs are written as zerolog JSON lines to ~/.moncollect/debug.log,
// truncated on each launch.
package debug

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

const (
	// LogFileName is the name of the debug log file.
	LogFileName = "debug.log"
	// LogDirName is the name of the directory containing the log file.
	LogDirName = ".moncollect"
)

// Options controls Init.
type Options struct {
	Enabled bool
	// Level is a zerolog level name; empty means debug.
	Level string
	// Output overrides the log file. Used by tests.
	Output io.Writer
}

var (
	mu      sync.RWMutex
	enabled bool
	logger  = zerolog.Nop()
	logFile *os.File

	// getLogPath is a function variable to allow overriding in tests.
	getLogPath = defaultGetLogPath
)

// Init initializes the debug logging system.
// If opts.Enabled is false, all logging operations become no-ops.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	enabled = opts.Enabled
	if !opts.Enabled {
		logger = zerolog.Nop()
		return nil
	}

	level := zerolog.DebugLevel
	if name := strings.TrimSpace(opts.Level); name != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(name))
		if err != nil {
			enabled = false
			return fmt.Errorf("parse log level %q: %w", name, err)
		}
		level = parsed
	}

	out := opts.Output
	if out == nil {
		f, err := openLogFile()
		if err != nil {
			enabled = false
			return err
		}
		logFile = f
		out = f
	}

	logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	logger.Info().Str("started_at", time.Now().Format(time.RFC3339)).Msg("moncollect debug log started")

	return nil
}

func openLogFile() (*os.File, error) {
	logPath, err := getLogPath()
	if err != nil {
		return nil, fmt.Errorf("determine log path: %w", err)
	}

	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	//nolint:gosec // G304: Log path is computed from user home, not user input
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Close closes the debug log file if open and disables logging.
// Safe to call even if logging is disabled.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = zerolog.Nop()
	enabled = false
}

// Logger returns the current logger. A disabled logger discards everything.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// WithComponent returns a child logger tagged with the component name.
func WithComponent(component string) zerolog.Logger {
	l := Logger()
	return l.With().Str("component", component).Logger()
}

// Logf writes a formatted debug message if debug logging is enabled.
// Arguments are handled in the manner of fmt.Printf.
func Logf(format string, v ...any) {
	l := Logger()
	l.Debug().Msgf(format, v...)
}

// Enabled returns whether debug logging is currently enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath returns the path to the debug log file.
func GetLogPath() (string, error) {
	return getLogPath()
}
