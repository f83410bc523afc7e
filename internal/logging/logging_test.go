package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPoster struct {
	tags     []string
	messages []map[string]any
	err      error
}

func (p *recordingPoster) Post(tag string, message interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.tags = append(p.tags, tag)
	p.messages = append(p.messages, message.(map[string]any))
	return nil
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestFluentWriter_TagsByLevel(t *testing.T) {
	poster := &recordingPoster{}
	logger := slog.New(slog.NewJSONHandler(NewFluentWriter(poster), &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("inventory loaded", "count", 4)
	logger.Error("publish failed")

	require.Len(t, poster.tags, 2)
	assert.Equal(t, []string{"info", "error"}, poster.tags)
	assert.Equal(t, "inventory loaded", poster.messages[0]["msg"])
	assert.Equal(t, float64(4), poster.messages[0]["count"])
}

func TestFluentWriter_Errors(t *testing.T) {
	w := NewFluentWriter(&recordingPoster{})
	_, err := w.Write([]byte("not json"))
	assert.Error(t, err)

	w = NewFluentWriter(&recordingPoster{err: errors.New("connection refused")})
	_, err = w.Write([]byte(`{"level":"INFO","msg":"x"}`))
	assert.Error(t, err)
}

func TestFanout_RespectsLevels(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := fanout{
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	logger := slog.New(h).With("component", "test")

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	logger.Debug("only debug sink")

	assert.Contains(t, debugBuf.String(), "only debug sink")
	assert.Contains(t, debugBuf.String(), `"component":"test"`)
	assert.Empty(t, errorBuf.String())
}

func TestNew_WritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "homelist.log")
	logger, cleanup, err := New(Options{Level: "info", Format: "text", File: path})
	require.NoError(t, err)

	logger.Info("hello", "key", "value")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestNew_BadFilePath(t *testing.T) {
	_, _, err := New(Options{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}
