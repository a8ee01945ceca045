package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	var buf bytes.Buffer
	logger, err := setup(&buf, "warn", "PROD")
	require.NoError(t, err)

	logger.Info().Msg("dropped")
	logger.Warn().Str("client_id", "web").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "web", entry["client_id"])
	require.Equal(t, "kept", entry["message"])
}

func TestSetupConsole(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	var buf bytes.Buffer
	logger, err := setup(&buf, "debug", "dev")
	require.NoError(t, err)

	logger.Debug().Msg("hello")
	require.Contains(t, buf.String(), "hello")
	require.False(t, json.Valid(buf.Bytes()))
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := setup(&bytes.Buffer{}, "chatty", "DEV")
	require.Error(t, err)
}
