package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestInitLogger_WritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger("recurrent-payments", "info", &buf)

	logger.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "recurrent-payments", entry["service"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestInitLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger("svc", "error", &buf)

	logger.Info().Msg("dropped")

	assert.Zero(t, buf.Len())
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := WithContext(InitLogger("svc", "debug", &buf), map[string]any{"client_id": 10})

	logger.Debug().Msg("ctx")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.EqualValues(t, 10, entry["client_id"])
}
