package confit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/thiagogjt/confit/ir"
)

// byteUnits maps size suffixes to their multiplier. Binary multiples
// throughout: "10K" and "10KiB" both mean 10240.
var byteUnits = map[string]int64{
	"":    1,
	"b":   1,
	"byte": 1, "bytes": 1,
	"k": 1 << 10, "kb": 1 << 10, "kib": 1 << 10,
	"kilobyte": 1 << 10, "kilobytes": 1 << 10,
	"m": 1 << 20, "mb": 1 << 20, "mib": 1 << 20,
	"megabyte": 1 << 20, "megabytes": 1 << 20,
	"g": 1 << 30, "gb": 1 << 30, "gib": 1 << 30,
	"gigabyte": 1 << 30, "gigabytes": 1 << 30,
	"t": 1 << 40, "tb": 1 << 40, "tib": 1 << 40,
	"terabyte": 1 << 40, "terabytes": 1 << 40,
	"p": 1 << 50, "pb": 1 << 50, "pib": 1 << 50,
	"petabyte": 1 << 50, "petabytes": 1 << 50,
}

// ParseBytes parses a memory size such as "10K", "2.5GiB", or "512".
// Suffixes are case-insensitive and may be separated from the number
// by whitespace.
func ParseBytes(s string) (int64, error) {
	num, unit := splitUnit(s)
	mult, ok := byteUnits[strings.ToLower(unit)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown size unit %q in %q", ir.ErrBadValue, unit, s)
	}
	if i, err := strconv.ParseInt(num, 10, 64); err == nil {
		if i != 0 && math.Abs(float64(i)) > float64(math.MaxInt64)/float64(mult) {
			return 0, fmt.Errorf("%w: size %q overflows", ir.ErrBadValue, s)
		}
		return i * mult, nil
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a size", ir.ErrBadValue, s)
	}
	return int64(f * float64(mult)), nil
}

var durationUnits = map[string]time.Duration{
	"ns": time.Nanosecond, "nano": time.Nanosecond, "nanos": time.Nanosecond,
	"nanosecond": time.Nanosecond, "nanoseconds": time.Nanosecond,
	"us": time.Microsecond, "µs": time.Microsecond,
	"micro": time.Microsecond, "micros": time.Microsecond,
	"microsecond": time.Microsecond, "microseconds": time.Microsecond,
	"ms": time.Millisecond, "milli": time.Millisecond, "millis": time.Millisecond,
	"millisecond": time.Millisecond, "milliseconds": time.Millisecond,
	"s": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
}

// ParseDuration parses a duration such as "250ms", "2 hours", or "10".
// A bare number is a count of milliseconds.
func ParseDuration(s string) (time.Duration, error) {
	num, unit := splitUnit(s)
	var base time.Duration
	if unit == "" {
		base = time.Millisecond
	} else {
		var ok bool
		base, ok = durationUnits[unit]
		if !ok {
			return 0, fmt.Errorf("%w: unknown duration unit %q in %q", ir.ErrBadValue, unit, s)
		}
	}
	if i, err := strconv.ParseInt(num, 10, 64); err == nil {
		return time.Duration(i) * base, nil
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a duration", ir.ErrBadValue, s)
	}
	return time.Duration(f * float64(base)), nil
}

// splitUnit splits "2.5GiB" or "2 hours" into the numeric prefix and
// the trailing unit word.
func splitUnit(s string) (num, unit string) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' ||
			c == 'e' || c == 'E' {
			// 'e' only continues the number when an exponent follows
			if (c == 'e' || c == 'E') &&
				!(i+1 < len(s) && (s[i+1] >= '0' && s[i+1] <= '9' || s[i+1] == '-' || s[i+1] == '+')) {
				break
			}
			i++
			continue
		}
		break
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i:])
}
