package present

import (
	"fmt"
	"time"
)

const (
	noDate      = "No date available"
	unknownTime = "Unknown time"
)

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return noDate
	}
	return t.Format("January 2, 2006")
}

// FormatTimeAgo renders the age of t relative to now, e.g. "3 hours ago".
func FormatTimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return unknownTime
	}

	secs := int64(now.Sub(t) / time.Second)

	const (
		minute = 60
		hour   = minute * 60
		day    = hour * 24
	)

	switch {
	case secs < minute:
		return fmt.Sprintf("%d seconds ago", secs)
	case secs < hour:
		return plural(secs/minute, "minute")
	case secs < day:
		return plural(secs/hour, "hour")
	default:
		return plural(secs/day, "day")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Truncate keeps the first n runes of s and marks the cut with "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n < 0 {
		n = 0
	}
	return string(runes[:n]) + "..."
}
