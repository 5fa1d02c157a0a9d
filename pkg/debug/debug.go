// Package debug provides conditional debug logging for quire.
//
// Debug logging is enabled by setting the QUIRE_DEBUG environment variable
// or passing --debug:
//
//	QUIRE_DEBUG=1 quire book.yaml
//
// Messages go to stderr unless SetOutput points them at a file. The reader
// always redirects to a file because the terminal belongs to the TUI.
// When disabled (default), all debug functions are no-ops.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.Mutex
	enabled bool
	logger  *zap.SugaredLogger
	sink    *os.File
)

func init() {
	if os.Getenv("QUIRE_DEBUG") != "" {
		enabled = true
		logger = newLogger(zapcore.Lock(os.Stderr))
	}
}

func newLogger(ws zapcore.WriteSyncer) *zap.SugaredLogger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), ws, zap.DebugLevel)
	return zap.New(core).Named("quire").Sugar()
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e && logger == nil {
		logger = newLogger(zapcore.Lock(os.Stderr))
	}
}

// SetOutput redirects debug output to the file at path, appending.
func SetOutput(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating debug log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if sink != nil {
		_ = sink.Close()
	}
	sink = f
	logger = newLogger(zapcore.AddSync(f))
	return nil
}

// Close flushes and releases the debug sink, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		_ = logger.Sync()
	}
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	logger = newLogger(zapcore.Lock(os.Stderr))
	return err
}

func current() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return nil
	}
	return logger
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if l := current(); l != nil {
		l.Debugf(format, args...)
	}
}

// Logw writes a structured debug message with key/value pairs.
func Logw(msg string, keysAndValues ...any) {
	if l := current(); l != nil {
		l.Debugw(msg, keysAndValues...)
	}
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if l := current(); l != nil {
		l.Debugw(name+" took", "elapsed", d)
	}
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}
