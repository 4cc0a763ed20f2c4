package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "json", &buf)

	logger.Debug("Hidden")
	logger.Info("Sync completed", "applied", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Sync completed", entry["msg"])
	assert.Equal(t, float64(3), entry["applied"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New("warn", "text", &buf).Warn("Rate limit exceeded", "user_id", "u1")

	assert.Contains(t, buf.String(), "msg=\"Rate limit exceeded\"")
	assert.Contains(t, buf.String(), "user_id=u1")
}
