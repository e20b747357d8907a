package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"feedpress/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[feeds]
path = "my-feeds.json"

[server]
enabled = true
port = "9090"
max_items = 25
cache_ttl = "30m"

[log]
level = "debug"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "my-feeds.json", cfg.Feeds.Path)
	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 25, cfg.Server.MaxItems)
	assert.Equal(t, 30*time.Minute, cfg.ServerCacheTTL())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "feeds.opml", cfg.Feeds.Path)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 50, cfg.Server.MaxItems)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := config.Load(writeConfig(t, "[server]\ncache_ttl = \"soon\"\n"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "[log]\nlevel = \"loud\"\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/config.toml")
	assert.Error(t, err)
}
