package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5350", cfg.Port)
	assert.Equal(t, "Austin", cfg.DefaultCity)
	assert.Equal(t, "TX", cfg.DefaultState)
	assert.Equal(t, "https://api.rentcast.io/v1", cfg.RentCast.BaseURL)
	assert.Equal(t, 500, cfg.RentCast.MaxLimit)
	assert.Equal(t, "deepseek-chat", cfg.DeepSeek.Model)
	assert.Equal(t, 16, cfg.Ingest.QueueSize)
	assert.Equal(t, 60, cfg.RefreshMinutes)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DEFAULT_CITY", "Round Rock")
	t.Setenv("REFRESH_MINUTES", "15")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Round Rock", cfg.DefaultCity)
	assert.Equal(t, 15, cfg.RefreshMinutes)
}
