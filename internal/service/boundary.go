package service

import (
	"strconv"
	"strings"
	"time"
)

// ResetBoundary returns the most recent occurrence of the daily token
// reset time ("HH:MM") on or before now. If now is earlier than today's
// reset time, the boundary is yesterday's. Malformed reset times fall
// back to midnight.
func ResetBoundary(tokenResetTime string, now time.Time) time.Time {
	hour, minute := parseClock(tokenResetTime)
	boundary := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if now.Before(boundary) {
		boundary = boundary.AddDate(0, 0, -1)
	}
	return boundary
}

// StartOfDay truncates a timestamp to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseClock(value string) (int, int) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0
	}
	return hour, minute
}
