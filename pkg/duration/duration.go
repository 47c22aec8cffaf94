// Package duration parses ISO-8601 duration strings as returned by the
// YouTube Data API (e.g. "PT3M25S") into time.Duration values.
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidDuration is returned when the input is not an ISO-8601 duration.
var ErrInvalidDuration = errors.New("invalid ISO-8601 duration")

// iso8601Regex matches the date and time components YouTube actually emits.
// Years and months never appear in video durations, days occasionally do.
var iso8601Regex = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// Parse converts an ISO-8601 duration string into a time.Duration.
// The result is exact to the second; all comparisons downstream happen on
// time.Duration so there is a single normalized unit throughout.
func Parse(s string) (time.Duration, error) {
	matches := iso8601Regex.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	// "P" alone carries no components.
	if matches[1] == "" && matches[2] == "" && matches[3] == "" && matches[4] == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	var total time.Duration
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	for i, unit := range units {
		part := matches[i+1]
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		total += time.Duration(n) * unit
	}

	return total, nil
}
