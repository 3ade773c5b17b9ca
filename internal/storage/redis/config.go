package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// SessionTTL bounds how long an abandoned session lingers; 0 disables expiry
	SessionTTL time.Duration

	// ScanCount is the COUNT hint used when iterating session keys
	ScanCount int64
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		SessionTTL:   48 * time.Hour,
		ScanCount:    100,
	}
}
