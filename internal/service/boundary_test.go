package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResetBoundary_AfterResetTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	boundary := ResetBoundary("06:00", now)

	assert.Equal(t, time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC), boundary)
}

func TestResetBoundary_BeforeResetTime(t *testing.T) {
	// 05:59 is still the previous queue day when the reset is 06:00.
	now := time.Date(2025, 3, 10, 5, 59, 0, 0, time.UTC)

	boundary := ResetBoundary("06:00", now)

	assert.Equal(t, time.Date(2025, 3, 9, 6, 0, 0, 0, time.UTC), boundary)
}

func TestResetBoundary_ExactlyAtResetTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

	boundary := ResetBoundary("06:00", now)

	assert.Equal(t, time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC), boundary)
}

func TestResetBoundary_MalformedFallsBackToMidnight(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	for _, value := range []string{"", "garbage", "25:00", "06:61", "6"} {
		boundary := ResetBoundary(value, now)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), boundary, "reset time %q", value)
	}
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 10, 23, 59, 59, 123, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
}
