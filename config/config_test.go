package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("RESOLVER_CONFIG", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 0, cfg.MaxQueue)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Equal(t, 30*time.Second, cfg.SocketTimeout)
	assert.False(t, cfg.CancelOnTimeout)
	assert.Equal(t, "yt-dlp", cfg.YtDlpPath)
	assert.Equal(t, 10, cfg.RateLimit)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("RESOLVER_CONFIG", "")
	t.Setenv("WORKERS", "8")
	t.Setenv("REQUEST_TIMEOUT", "90s")
	t.Setenv("CANCEL_ON_TIMEOUT", "true")
	t.Setenv("API_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.CancelOnTimeout)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestLoadConfigBareDurationsAreSeconds(t *testing.T) {
	t.Setenv("RESOLVER_CONFIG", "")
	t.Setenv("REQUEST_TIMEOUT", "60")
	t.Setenv("RETRY_DELAY", "0.5")
	t.Setenv("SOCKET_TIMEOUT", "2m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 2*time.Minute, cfg.SocketTimeout)
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("RESOLVER_CONFIG", "")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "REQUEST_TIMEOUT")
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("WORKERS: 2\nMAX_QUEUE: 16\nREQUEST_TIMEOUT: 45\n"), 0o644))
	t.Setenv("RESOLVER_CONFIG", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 16, cfg.MaxQueue)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Setenv("RESOLVER_CONFIG", "")
	t.Setenv("WORKERS", "0")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "WORKERS")
}
