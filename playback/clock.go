package playback

import (
	"fmt"
	"math"
)

// Clock mirrors the playback position and duration for display.
type Clock struct {
	Current  float64
	Duration float64
}

// CurrentText returns the position formatted as H:MM:SS.
func (c Clock) CurrentText() string {
	return FormatTime(c.Current)
}

// DurationText returns the duration formatted as H:MM:SS.
func (c Clock) DurationText() string {
	return FormatTime(c.Duration)
}

// Progress returns the watched fraction in the 0..1 range.
func (c Clock) Progress() float64 {
	if c.Duration <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, c.Current/c.Duration))
}

// FormatTime renders seconds as H:MM:SS. Negative, NaN and infinite inputs render as zero.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
