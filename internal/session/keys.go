package session

import (
	"strings"
	"time"
)

// Namespace is the cache key prefix for the application.
const Namespace = "azquote"

// DefaultTTL applies when configuration supplies no session TTL.
const DefaultTTL = 30 * time.Minute

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// Key returns the cache key for a conversation session.
func Key(sessionID string) string {
	return formatKey("session", sessionID)
}

// TTLFromSeconds converts a configured TTL (in seconds) into a duration,
// falling back to the package default for zero and clamping negatives.
func TTLFromSeconds(seconds int) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return DefaultTTL
	}
	return time.Duration(seconds) * time.Second
}
