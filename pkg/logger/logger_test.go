package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelDebug, FormatJSON)

	log.Info("match run complete", Fields{"run_id": "abc", "pool_size": 12})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "match run complete", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, float64(12), entry["pool_size"])
	assert.NotEmpty(t, entry["time"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, FormatJSON)

	log.Debug("dropped", nil)
	log.Info("dropped", nil)
	assert.Zero(t, buf.Len())

	log.Warn("kept", nil)
	assert.NotZero(t, buf.Len())
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelDebug, FormatJSON).With(Fields{"component": "directory"})

	log.Info("cache miss", Fields{"key": "directory:all"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "directory", entry["component"])
	assert.Equal(t, "directory:all", entry["key"])
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelDebug, FormatText)

	log.Error("fetch failed", Fields{"attempt": 3})

	out := buf.String()
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "fetch failed")
	assert.Contains(t, out, "attempt=3")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
}

func TestContextPropagation(t *testing.T) {
	log := New(&bytes.Buffer{}, LevelDebug, FormatJSON)
	ctx := IntoContext(context.Background(), log)

	assert.Same(t, log, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}
