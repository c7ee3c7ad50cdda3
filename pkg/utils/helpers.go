package utils

import (
	"strings"
	"time"

	"github.com/guregu/null/v5"
	"github.com/spf13/cast"
)

// ParseDuration safely parses duration string like "5m", falling back to def.
func ParseDuration(d string, def time.Duration) time.Duration {
	if d == "" {
		return def
	}
	duration, err := time.ParseDuration(d)
	if err != nil || duration <= 0 {
		return def
	}
	return duration
}

// ParseNullFloat parses a numeric cell. An empty cell is a missing value, not
// zero.
func ParseNullFloat(s string) (null.Float, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Float{}, nil
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return null.Float{}, err
	}
	return null.FloatFrom(f), nil
}
