package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{in: "debug", want: DebugLevel},
		{in: " WARN ", want: Level(zerolog.WarnLevel)},
		{in: "trace", want: Level(zerolog.TraceLevel)},
		{in: "", want: InfoLevel},
		{in: "loud", want: InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSetupWriter_JSONAboveDebug(t *testing.T) {
	defer SetupWriter(InfoLevel, &bytes.Buffer{})

	var buf bytes.Buffer
	SetupWriter(InfoLevel, &buf)
	log.Debug().Msg("hidden")
	log.Info().Str("domain", "test").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "test", entry["domain"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "caller")
}

func TestSetupWriter_ConsoleAtDebug(t *testing.T) {
	defer SetupWriter(InfoLevel, &bytes.Buffer{})

	var buf bytes.Buffer
	SetupWriter(DebugLevel, &buf)
	log.Debug().Msg("visible")

	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), `"message"`)
}
