package log

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func initTestLogger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := InitWithTeaLog(path, "ledge")
	require.NoError(t, err)
	t.Cleanup(func() {
		cleanup()
		defaultLogger = nil
	})
	return path
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestLog_WritesFormattedEntry(t *testing.T) {
	path := initTestLogger(t)

	Info(CatToolbar, "Registered contribution", "id", "clock", "position", -1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [toolbar] Registered contribution id=clock position=-1")
}

func TestLog_OddFieldCount(t *testing.T) {
	path := initTestLogger(t)

	Warn(CatPlugin, "orphan", "key")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "key=<missing>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	path := initTestLogger(t)
	SetMinLevel(LevelWarn)

	Debug(CatUI, "hidden")
	Error(CatUI, "shown")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "hidden")
	require.Contains(t, string(data), "shown")
}

func TestLog_DisabledWritesNothing(t *testing.T) {
	path := initTestLogger(t)
	SetEnabled(false)

	ErrorErr(CatStore, "nope", os.ErrNotExist)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "nope")
}

func TestLog_NoLoggerIsSafe(t *testing.T) {
	defaultLogger = nil
	require.NotPanics(t, func() {
		Debug(CatConfig, "no logger")
		ErrorErr(CatConfig, "no logger", nil)
	})
	require.Nil(t, NewListener(context.Background()))
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	initTestLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatCache, "cache flushed")

	msg := listener.Listen()()
	event, ok := msg.(LogEvent)
	require.True(t, ok, "expected LogEvent, got %T", msg)
	require.Contains(t, event.Payload, "cache flushed")
	require.WithinDuration(t, time.Now(), event.Timestamp, 5*time.Second)
}

func TestFormat_QuotesValuesWithSpaces(t *testing.T) {
	at := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)

	got := format(at, LevelError, CatToolbar, "Contribution failed",
		[]any{"id", "clock", "error", errors.New("boom now"), "title", ""})

	require.Equal(t,
		`2025-12-06T10:45:00 [ERROR] [toolbar] Contribution failed id=clock error="boom now" title=""`+"\n",
		got)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"Warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.ErrorContains(t, err, `unknown log level "loud"`)
}
