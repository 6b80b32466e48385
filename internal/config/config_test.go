package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()

	// Empty directory: no config file, defaults only.
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, 0.25, cfg.Water.ContainerLiters)
	assert.Equal(t, 9, cfg.Water.FallbackContainers)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.AI.Model)
}

func TestLoadConfigFromFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	content := []byte(`
server:
  address: ":9090"
  environment: "production"
jwt:
  secret: "test-secret"
  expiration: "30m"
water:
  container_liters: 0.5
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, "30m0s", cfg.JWT.Expiration.String())
	assert.Equal(t, 0.5, cfg.Water.ContainerLiters)
}
