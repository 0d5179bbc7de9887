package utils

import (
	"os"
	"time"
)

// SafeEnv returns the environment variable value for key, or fallback if empty.
func SafeEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

// DurationEnv parses the environment variable as a time.Duration, returning
// fallback when unset or malformed.
func DurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
