package service

import (
	"fmt"
	"math"
	"time"
)

// FormatTime renders seconds as MM:SS. Minutes and seconds are truncated, never rounded,
// and minutes past 99 simply widen the field.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	minutes := int(seconds / 60)
	secs := int(math.Mod(seconds, 60))

	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatDuration renders d as MM:SS.
func FormatDuration(d time.Duration) string {
	return FormatTime(d.Seconds())
}
