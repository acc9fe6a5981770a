package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dexopt/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Golden(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("some message") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("some warning") },
			goldenName: "warn_basic",
		},
		{
			name:       "multiline info",
			log:        func(l *logger.Logger) { l.Info("line1\nline2") },
			goldenName: "info_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorStandard(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(errors.New("plain failure"))
	assert.Equal(t, "✗ Error: plain failure\n", buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	root := errors.New("exit status 3")
	err := zerr.With(zerr.Wrap(root, "external compiler failed"), "exit_code", 3)
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, "Error: external compiler failed")
	assert.Contains(t, out, "exit_code=3")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ exit status 3")
}

func TestLogger_ErrorWrappedStdlib(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := fmt.Errorf("outer: %w", zerr.New("inner"))
	lg.Error(err)

	assert.Equal(t, "✗ Error: outer: inner\n", buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.With(zerr.New("artifact missing"), "path", "/data/oat/arm64/a.odex"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Contains(t, record["error"], "artifact missing")
	assert.Equal(t, "/data/oat/arm64/a.odex", record["path"])
}

func TestLogger_SetOutputKeepsJSONMode(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
}

func TestCollectErrorEntries(t *testing.T) {
	err := zerr.Wrap(zerr.Wrap(errors.New("root"), "middle"), "outer")

	entries := logger.CollectErrorEntries(err)
	require.Len(t, entries, 3)
	assert.Equal(t, "outer", logger.EntryMessage(entries[0]))
	assert.Equal(t, "middle", logger.EntryMessage(entries[1]))
	assert.Equal(t, "root", logger.EntryMessage(entries[2]))
	assert.Empty(t, logger.EntryMetadata(entries[2]))
}

func TestFormatErrorEntries_Multiline(t *testing.T) {
	entries := logger.CollectErrorEntries(errors.New("first\nsecond"))
	assert.Equal(t, "Error: first\n       second", logger.FormatErrorEntries(entries))
}
