package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MustLoad_Defaults(t *testing.T) {
	cfg := MustLoad()

	require.NotNil(t, cfg.HttpClientSettings)
	require.NotNil(t, cfg.CacheSettings)
	require.NotNil(t, cfg.TelemetrySettings)
	assert.Equal(t, 10*time.Second, cfg.HttpClientSettings.RobotsRequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.HttpClientSettings.PageRequestTimeout)
	assert.Equal(t, "bots-checker", cfg.ServiceName)
	assert.Empty(t, cfg.CacheSettings.Servers)
	assert.False(t, cfg.TelemetrySettings.Enabled)
}

func Test_MustLoad_EnvOverride(t *testing.T) {
	t.Setenv("HTTP_CLIENT_PAGE_REQUEST_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := MustLoad()

	assert.Equal(t, 5*time.Second, cfg.HttpClientSettings.PageRequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}
