package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	file    *os.File
	mu      sync.Mutex
	enabled bool
	logger  = zerolog.Nop()
)

// Enable starts debug logging to ~/.config/turnlight/debug.log
func Enable() error {
	homeDir, _ := os.UserHomeDir()
	dir := filepath.Join(homeDir, ".config", "turnlight")

	// Ensure directory exists
	os.MkdirAll(dir, 0755)

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if enabled {
		f.Close()
		return nil
	}
	file = f
	enableLocked(f)
	return nil
}

// EnableTo logs to w instead of the default file (used by tests and the
// bring-up tool, which logs to stderr)
func EnableTo(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	enableLocked(w)
}

func enableLocked(w io.Writer) {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000", NoColor: true}
	logger = zerolog.New(out).With().Timestamp().Logger()
	enabled = true
	logger.Info().Str("category", "debug").Msg("=== Debug logging started ===")
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
	logger = zerolog.Nop()
}

// Enabled reports whether logging is on
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Debug().Str("category", category).Msg(fmt.Sprintf(format, args...))
}

// Error logs err with a message
func Error(category string, err error, msg string) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Error().Str("category", category).Err(err).Msg(msg)
}

// LogEvery logs only every N calls (use for high-frequency events)
var counters = make(map[string]int)

func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
