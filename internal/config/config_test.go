package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairroomgo/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(8085), cfg.HttpServerPort)
	assert.Equal(t, 4, cfg.RoomCodeLength)
	assert.Equal(t, int64(512), cfg.WsReadLimit)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "9090")
	t.Setenv("ROOM_CODE_LENGTH", "6")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(9090), cfg.HttpServerPort)
	assert.Equal(t, 6, cfg.RoomCodeLength)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "80")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}
