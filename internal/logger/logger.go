// Package logger provides structured logging for hubdeck components.
// While the TUI is running, output goes to a bounded ring buffer that the
// dashboard's log page renders; nothing is ever written to the terminal
// directly, which would corrupt the alternate screen.
package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(io.Discard)

// Init routes the global logger into the given ring buffer and sets the
// level: debug enables everything, verbose enables info, otherwise warnings
// and up.
func Init(ring *Ring, debug, verbose bool) {
	output := zerolog.ConsoleWriter{
		Out:        &ringWriter{ring: ring},
		TimeFormat: time.Kitchen,
		NoColor:    true,
	}

	log = zerolog.New(output).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else if verbose {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Debug logs a debug message.
func Debug() *zerolog.Event {
	return log.Debug()
}

// Info logs an info message.
func Info() *zerolog.Event {
	return log.Info()
}

// Warn logs a warning message.
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error logs an error message.
func Error() *zerolog.Event {
	return log.Error()
}

// ringWriter pushes each formatted console line into the ring buffer.
// Console lines look like "3:04PM INF message key=value"; the level token
// is lifted out so the log page can color entries per level.
type ringWriter struct {
	ring *Ring
}

func (w *ringWriter) Write(p []byte) (int, error) {
	line := strings.TrimSpace(string(p))
	if line == "" {
		return len(p), nil
	}

	level := "INF"
	message := line
	if fields := strings.SplitN(line, " ", 3); len(fields) >= 2 && isLevelToken(fields[1]) {
		level = fields[1]
		if len(fields) == 3 {
			message = fields[2]
		} else {
			message = ""
		}
	}

	w.ring.Push(level, message)
	return len(p), nil
}

func isLevelToken(s string) bool {
	switch s {
	case "TRC", "DBG", "INF", "WRN", "ERR", "FTL", "PNC":
		return true
	}
	return false
}
