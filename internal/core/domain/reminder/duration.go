package reminder

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var durationTokenRe = regexp.MustCompile(`(\d+)([hms])`)

var durationUnits = map[string]time.Duration{
	"h": time.Hour,
	"m": time.Minute,
	"s": time.Second,
}

// ParseDuration sums every "<integer><h|m|s>" token found in value, e.g. "2h30m".
// Anything between tokens is ignored. A zero total is reported as ErrInvalidDuration.
func ParseDuration(value string) (time.Duration, error) {
	var total time.Duration
	for _, match := range durationTokenRe.FindAllStringSubmatch(value, -1) {
		n, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return 0, ErrInvalidDuration
		}
		unit := durationUnits[match[2]]
		if n > int64(math.MaxInt64/unit) {
			return 0, ErrInvalidDuration
		}
		part := time.Duration(n) * unit
		if total > math.MaxInt64-part {
			return 0, ErrInvalidDuration
		}
		total += part
	}
	if total <= 0 {
		return 0, ErrInvalidDuration
	}
	return total, nil
}

// FormatDuration renders d as "2h 30m 5s", skipping zero parts.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	minutes := (d % time.Hour) / time.Minute
	seconds := (d % time.Minute) / time.Second

	parts := make([]string, 0, 3)
	if hours > 0 {
		parts = append(parts, strconv.FormatInt(int64(hours), 10)+"h")
	}
	if minutes > 0 {
		parts = append(parts, strconv.FormatInt(int64(minutes), 10)+"m")
	}
	if seconds > 0 {
		parts = append(parts, strconv.FormatInt(int64(seconds), 10)+"s")
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}
