package utils

import (
	"os"
	"strconv"
	"time"
)

// Typed environment lookups. A variable that is unset or fails to
// parse yields the default; configuration mistakes degrade to known
// values instead of failing startup.

func GetEnvAsString(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func GetEnvAsBool(key string, defaultVal bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultVal
	}
	return parsed
}

func GetEnvAsInt(key string, defaultVal int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// GetEnvAsDuration parses values in time.ParseDuration notation, e.g.
// "30m" or "24h".
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultVal
	}
	return parsed
}
