package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// OpenWeatherAPIKey authorizes forward/reverse geocoding. Optional:
	// without it, forward geocoding errors and the reverse chain skips
	// to the next tier.
	OpenWeatherAPIKey string

	// KakaoAPIKey authorizes the primary reverse geocoding tier.
	KakaoAPIKey string

	// HTTPTimeout bounds each outbound API call.
	HTTPTimeout time.Duration

	// DataFile is where the favorites list and settings persist.
	DataFile string

	// CacheStaleAfter is how long a cached snapshot counts as fresh.
	CacheStaleAfter time.Duration

	// RefreshInterval controls how often favorites are re-fetched.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.KakaoAPIKey = os.Getenv("KAKAO_API_KEY")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Snapshots count as fresh for 5 minutes, matching how often the
	// dashboard is willing to re-fetch the same coordinate.
	stale, err := getenvDuration("CACHE_STALE_AFTER", "5m")
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_STALE_AFTER: %w", err)
	}
	cfg.CacheStaleAfter = stale

	refresh, err := getenvDuration("REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.DataFile = getenvDefault("DATA_FILE", "weather-pocket.json")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}
