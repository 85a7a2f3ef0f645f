package mongo

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	l.Info(2, "command started", "commandName", "insert", "requestId", 7, "dangling")
	entry := decode(t, &buf)
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "insert", entry["commandName"])
	assert.EqualValues(t, 7, entry["requestId"])
	assert.Contains(t, entry, "dangling")

	buf.Reset()
	l.Info(3, "ignored")
	assert.Zero(t, buf.Len())
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(zerolog.New(&buf))

	l.Error(errors.New("timeout"), "connection failed", "address", "db:27017")
	entry := decode(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "timeout", entry["error"])
	assert.Equal(t, "db:27017", entry["address"])
}

func TestConfig_Enabled(t *testing.T) {
	var nilCfg *Config
	assert.False(t, nilCfg.Enabled())
	assert.False(t, DefaultConfig().Enabled())
	cfg := DefaultConfig()
	cfg.URI = "mongodb://db:27017"
	assert.True(t, cfg.Enabled())
}
