// Package log is ledge's debug logger. Entries carry a level and a category,
// go to the file opened by tea.LogToFile, and are published on a broker so
// the in-app log overlay can stream them. Nothing is logged until
// InitWithTeaLog runs, which cmd does for --debug or LEDGE_DEBUG.
package log

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/ledge/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel reads a level name such as "warn", ignoring case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelDebug, fmt.Errorf("unknown log level %q", s)
}

// Category groups related log messages.
type Category string

const (
	CatConfig  Category = "config"  // Configuration loading/saving
	CatUI      Category = "ui"      // UI component updates
	CatToolbar Category = "toolbar" // Contribution registry, merge and isolation
	CatPlugin  Category = "plugin"  // Plugin lifecycle
	CatStore   Category = "store"   // Message store operations
	CatWatcher Category = "watcher" // File watcher events
	CatCache   Category = "cache"   // Cache operations
)

type logger struct {
	mu       sync.Mutex
	out      io.WriteCloser
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	stateMu       sync.RWMutex
	defaultLogger *logger
)

func current() *logger {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return defaultLogger
}

// InitWithTeaLog starts logging to path through tea.LogToFile. The returned
// cleanup closes the file and ends log subscriptions.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	l := &logger{
		out:      f,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}

	stateMu.Lock()
	defaultLogger = l
	stateMu.Unlock()

	return func() {
		stateMu.Lock()
		if defaultLogger == l {
			defaultLogger = nil
		}
		stateMu.Unlock()
		l.broker.Close()
		_ = l.out.Close()
	}, nil
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel {
		return
	}

	entry := format(time.Now(), level, cat, msg, fields)
	_, _ = io.WriteString(l.out, entry)
	l.broker.Publish(pubsub.CreatedEvent, entry)
}

// format renders one line:
//
//	2025-12-06T10:45:00 [ERROR] [toolbar] Contribution failed id=clock error="boom now"
func format(at time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	b.WriteString(at.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)

	for i := 0; i < len(fields); i += 2 {
		b.WriteByte(' ')
		fmt.Fprint(&b, fields[i])
		b.WriteByte('=')
		if i+1 == len(fields) {
			b.WriteString("<missing>")
			break
		}
		b.WriteString(formatValue(fields[i+1]))
	}
	b.WriteByte('\n')
	return b.String()
}

func formatValue(v any) string {
	var s string
	switch v := v.(type) {
	case error:
		s = v.Error()
	case string:
		s = v
	default:
		s = fmt.Sprint(v)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// LogEvent is a pubsub event containing a log entry.
type LogEvent = pubsub.Event[string]

// LogListener wraps a continuous listener for log events.
type LogListener = pubsub.ContinuousListener[string]

// NewListener subscribes to log entries until ctx is cancelled. It returns
// nil when logging was never started.
func NewListener(ctx context.Context) *LogListener {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewContinuousListener(ctx, l.broker)
}
