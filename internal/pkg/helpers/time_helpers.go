package helpers

import (
	"time"

	"github.com/okandemir/librarium/internal/pkg/logger"
)

// DateLayout is the wire format for bare dates in request bodies.
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		logger.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a YYYY-MM-DD string into a UTC time
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// Today truncates t to its calendar date in UTC
func Today(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
