package config

import (
	"testing"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIConfig_NeedsOnlyKey(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg := NewAPIConfig()

	assert.Equal(t, "test-key", cfg.API.Key)
	assert.Equal(t, "https://api.freecurrencyapi.com/v1", cfg.API.URL)
	assert.Equal(t, "USD", cfg.API.Base)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
}

func TestConfig_StorageRequiredForFullConfig(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	err := cleanenv.ReadEnv(&Config{})

	require.Error(t, err)
}
