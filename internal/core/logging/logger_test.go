package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := Component("test-component")
	logger.Info().Ctx(WithCommand(context.Background(), "ls")).Msg("test message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-component", entry["cmp"])
	assert.Equal(t, "test message", entry["message"])
	assert.Equal(t, "ls", entry["command"])
}
