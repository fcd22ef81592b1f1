package util

import (
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns the environment variable value or fallback when it is empty.
func EnvOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// EnvDuration parses the variable as a time.Duration, returning fallback
// when it is unset or malformed.
func EnvDuration(key string, fallback time.Duration) time.Duration {
	raw := EnvOrDefault(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// SplitList splits a comma separated value, dropping empty items.
func SplitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
