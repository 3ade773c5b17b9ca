package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Catalog sources
const (
	CatalogDataDragon = "ddragon"
	CatalogStatic     = "static"
)

// Config is the server configuration, read from the environment
type Config struct {
	// Server
	Port     int
	LogLevel slog.Level

	// Session storage
	StorageType string
	RedisURL    string

	// Catalog
	CatalogSource        string
	DataDragonURL        string
	DataDragonVersion    string
	CommunityDragonURL   string
	CommunityDragonPatch string

	// Optional data overrides
	AliasesPath  string
	MessagesPath string

	// Preferences
	PreferenceCapacity int
	PreferenceTTL      time.Duration

	// Cleanup
	SessionMaxAge    time.Duration
	SweepInterval    time.Duration
	InactiveUserDays int
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnvInt("PORT", 8080),
		StorageType:          strings.ToLower(getEnv("STORAGE_TYPE", StorageMemory)),
		RedisURL:             getEnv("REDIS_URL", ""),
		CatalogSource:        strings.ToLower(getEnv("CATALOG_SOURCE", CatalogDataDragon)),
		DataDragonURL:        getEnv("DDRAGON_URL", "https://ddragon.leagueoflegends.com"),
		DataDragonVersion:    getEnv("DDRAGON_VERSION", ""),
		CommunityDragonURL:   getEnv("CDRAGON_URL", "https://cdn.communitydragon.org"),
		CommunityDragonPatch: getEnv("CDRAGON_PATCH", "latest"),
		AliasesPath:          getEnv("ALIASES_PATH", ""),
		MessagesPath:         getEnv("MESSAGES_PATH", ""),
		PreferenceCapacity:   getEnvInt("PREFERENCE_CAPACITY", 1000),
		PreferenceTTL:        time.Duration(getEnvInt("PREFERENCE_TTL_HOURS", 24)) * time.Hour,
		SessionMaxAge:        time.Duration(getEnvInt("SESSION_MAX_AGE_HOURS", 24)) * time.Hour,
		SweepInterval:        time.Duration(getEnvInt("SWEEP_INTERVAL_MINUTES", 30)) * time.Minute,
		InactiveUserDays:     getEnvInt("INACTIVE_USER_DAYS", 30),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch cfg.StorageType {
	case StorageMemory:
	case StorageRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when STORAGE_TYPE=%s", StorageRedis)
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_TYPE %q: must be %q or %q", cfg.StorageType, StorageMemory, StorageRedis)
	}

	switch cfg.CatalogSource {
	case CatalogDataDragon, CatalogStatic:
	default:
		return nil, fmt.Errorf("invalid CATALOG_SOURCE %q: must be %q or %q", cfg.CatalogSource, CatalogDataDragon, CatalogStatic)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Port)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
