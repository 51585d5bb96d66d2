package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds settings for the site and weather services, populated from
// environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Homepage configuration.
	SiteStaticDir string
	SiteMenuFile  string

	// Weather Alert Pro configuration.
	WeatherHTTPAddr   string
	OpenWeatherAPIKey string
	UpstreamTimeout   time.Duration
	APIDailyLimit     int
	CacheTTL          time.Duration
	CacheSize         int
	UsageDataDir      string
	GeoIPEnabled      bool
	GeoIPTimeout      time.Duration
	// TrustProxyHeaders takes the client address from X-Forwarded-For. Only
	// enable it behind a proxy that overwrites the header.
	TrustProxyHeaders bool

	// Usage event publishing. Disabled when no brokers are configured.
	KafkaBrokers    []string
	KafkaUsageTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := parsePositiveDuration("UPSTREAM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	geoIPTimeout, err := parsePositiveDuration("GEOIP_TIMEOUT", "3s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parsePositiveDuration("CACHE_TTL", "15m")
	if err != nil {
		return nil, err
	}

	dailyLimit, err := parsePositiveInt("API_DAILY_LIMIT", 1000)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	apiKey, err := loadAPIKey()
	if err != nil {
		return nil, err
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SiteStaticDir: sharedcfg.EnvOrDefault("SITE_STATIC_DIR", "static"),
		SiteMenuFile:  os.Getenv("SITE_MENU_FILE"),

		WeatherHTTPAddr:   sharedcfg.EnvOrDefault("WEATHER_HTTP_ADDR", ":8081"),
		OpenWeatherAPIKey: apiKey,
		UpstreamTimeout:   upstreamTimeout,
		APIDailyLimit:     dailyLimit,
		CacheTTL:          cacheTTL,
		CacheSize:         cacheSize,
		UsageDataDir:      sharedcfg.EnvOrDefault("USAGE_DATA_DIR", "data"),
		GeoIPEnabled:      os.Getenv("GEOIP_ENABLED") != "false",
		GeoIPTimeout:      geoIPTimeout,
		TrustProxyHeaders: os.Getenv("TRUST_PROXY_HEADERS") == "true",

		KafkaBrokers:    brokers,
		KafkaUsageTopic: sharedcfg.EnvOrDefault("KAFKA_USAGE_TOPIC", "weather-api-usage"),
	}

	if cfg.SiteStaticDir == "" {
		return nil, errors.New("SITE_STATIC_DIR is required")
	}
	if cfg.UsageDataDir == "" {
		return nil, errors.New("USAGE_DATA_DIR is required")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaUsageTopic == "" {
		return nil, errors.New("KAFKA_USAGE_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// loadAPIKey prefers OPENWEATHERMAP_API_KEY_FILE over OPENWEATHERMAP_API_KEY.
// A missing key is not an error; the weather service reports it per request.
func loadAPIKey() (string, error) {
	if path := os.Getenv("OPENWEATHERMAP_API_KEY_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("invalid OPENWEATHERMAP_API_KEY_FILE: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return strings.TrimSpace(os.Getenv("OPENWEATHERMAP_API_KEY")), nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
