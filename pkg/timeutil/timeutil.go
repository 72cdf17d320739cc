// Package timeutil provides timezone utilities for mentor availability matching.
// Participants and mentors state their timezones in loose formats ("GMT+1",
// "UTC-05:30", "Europe/Berlin"); this package normalizes them to UTC offsets
// and decides whether two zones are close enough for live sessions.
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseOffset parses a timezone string into a UTC offset.
// Accepted formats:
//   - "UTC", "GMT", "Z"                      -> 0
//   - "GMT+1", "UTC-5", "GMT+05:30", "+03:00"
//   - IANA names ("Europe/Berlin", "Asia/Almaty") via the system tz database;
//     the current offset is used, which is close enough for session planning.
//
// Returns (0, false) for empty or unparseable input.
func ParseOffset(zone string) (time.Duration, bool) {
	z := strings.TrimSpace(zone)
	if z == "" {
		return 0, false
	}

	upper := strings.ToUpper(z)
	if upper == "UTC" || upper == "GMT" || upper == "Z" {
		return 0, true
	}

	// Strip a "GMT"/"UTC" prefix: "GMT+1" -> "+1".
	for _, prefix := range []string{"GMT", "UTC"} {
		if strings.HasPrefix(upper, prefix) {
			if d, ok := parseNumericOffset(upper[len(prefix):]); ok {
				return d, true
			}
			return 0, false
		}
	}

	if d, ok := parseNumericOffset(upper); ok {
		return d, true
	}

	// IANA zone name fallback.
	loc, err := time.LoadLocation(z)
	if err != nil {
		return 0, false
	}
	_, offsetSec := time.Now().In(loc).Zone()
	return time.Duration(offsetSec) * time.Second, true
}

// parseNumericOffset parses "+1", "-05", "+05:30", "-0530".
func parseNumericOffset(s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}

	sign := time.Duration(1)
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	default:
		return 0, false
	}
	if s == "" {
		return 0, false
	}

	hoursPart := s
	minutesPart := "0"
	if i := strings.IndexByte(s, ':'); i >= 0 {
		hoursPart, minutesPart = s[:i], s[i+1:]
	} else if len(s) == 4 {
		// Compact form "0530".
		hoursPart, minutesPart = s[:2], s[2:]
	}

	hours, err := strconv.Atoi(hoursPart)
	if err != nil || hours < 0 || hours > 14 {
		return 0, false
	}
	minutes, err := strconv.Atoi(minutesPart)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}

	return sign * (time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute), true
}

// OffsetDistance returns the absolute difference between two UTC offsets.
func OffsetDistance(a, b time.Duration) time.Duration {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d
}

// ZonesCompatible reports whether two timezone strings are within tolerance
// of each other. The second return value is false when either zone is empty
// or unparseable - the caller decides how to score unknown compatibility.
func ZonesCompatible(a, b string, tolerance time.Duration) (compatible bool, known bool) {
	offA, okA := ParseOffset(a)
	if !okA {
		return false, false
	}
	offB, okB := ParseOffset(b)
	if !okB {
		return false, false
	}
	return OffsetDistance(offA, offB) <= tolerance, true
}

// FormatOffset renders a UTC offset in "UTC+05:30" form.
func FormatOffset(offset time.Duration) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hours := int(offset / time.Hour)
	minutes := int((offset % time.Hour) / time.Minute)
	return fmt.Sprintf("UTC%s%02d:%02d", sign, hours, minutes)
}
