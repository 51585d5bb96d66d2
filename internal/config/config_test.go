package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "owm-test-key"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "")
	t.Setenv("OPENWEATHERMAP_API_KEY_FILE", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("TRUST_PROXY_HEADERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "static", cfg.SiteStaticDir)
	assert.Empty(t, cfg.SiteMenuFile)
	assert.Equal(t, ":8081", cfg.WeatherHTTPAddr)
	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 1000, cfg.APIDailyLimit)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 1000, cfg.CacheSize)
	assert.Equal(t, "data", cfg.UsageDataDir)
	assert.True(t, cfg.GeoIPEnabled)
	assert.Equal(t, 3*time.Second, cfg.GeoIPTimeout)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "weather-api-usage", cfg.KafkaUsageTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("SITE_STATIC_DIR", "/srv/www")
	t.Setenv("SITE_MENU_FILE", "/etc/site/menu.toml")
	t.Setenv("WEATHER_HTTP_ADDR", ":9091")
	t.Setenv("OPENWEATHERMAP_API_KEY", "  "+testAPIKey+"\n")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("API_DAILY_LIMIT", "50")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("CACHE_SIZE", "10")
	t.Setenv("USAGE_DATA_DIR", "/var/lib/weather")
	t.Setenv("GEOIP_ENABLED", "false")
	t.Setenv("GEOIP_TIMEOUT", "1s")
	t.Setenv("TRUST_PROXY_HEADERS", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_USAGE_TOPIC", "usage")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/srv/www", cfg.SiteStaticDir)
	assert.Equal(t, "/etc/site/menu.toml", cfg.SiteMenuFile)
	assert.Equal(t, ":9091", cfg.WeatherHTTPAddr)
	assert.Equal(t, testAPIKey, cfg.OpenWeatherAPIKey)
	assert.Equal(t, 2*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 50, cfg.APIDailyLimit)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.CacheSize)
	assert.Equal(t, "/var/lib/weather", cfg.UsageDataDir)
	assert.False(t, cfg.GeoIPEnabled)
	assert.Equal(t, time.Second, cfg.GeoIPTimeout)
	assert.True(t, cfg.TrustProxyHeaders)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "usage", cfg.KafkaUsageTopic)
}

func TestLoad_APIKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apikey.txt")
	require.NoError(t, os.WriteFile(path, []byte(testAPIKey+"\n"), 0o600))
	t.Setenv("OPENWEATHERMAP_API_KEY", "ignored")
	t.Setenv("OPENWEATHERMAP_API_KEY_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, testAPIKey, cfg.OpenWeatherAPIKey)
}

func TestLoad_MissingAPIKeyFile(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY_FILE", filepath.Join(t.TempDir(), "missing.txt"))
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENWEATHERMAP_API_KEY_FILE")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidDurations(t *testing.T) {
	for _, key := range []string{"UPSTREAM_TIMEOUT", "GEOIP_TIMEOUT", "CACHE_TTL"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "-1s")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_InvalidIntegers(t *testing.T) {
	tests := map[string]string{
		"API_DAILY_LIMIT": "0",
		"CACHE_SIZE":      "lots",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
