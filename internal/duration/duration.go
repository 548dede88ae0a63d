// Package duration formats minute counts for display and derives durations
// from time-of-day pairs. None of the functions return errors: malformed input
// degrades to zero minutes.
package duration

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ZeroLabel is the rendering of an empty or negative duration.
const ZeroLabel = "0 min"

// clockLayouts are the accepted time-of-day formats, tried in order.
var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04PM",
	"3:04 PM",
	"3:04pm",
	"3:04 pm",
}

// Format renders minutes as "1 heure 30 min", "2 heures", "45 min".
func Format(minutes int) string {
	if minutes <= 0 {
		return ZeroLabel
	}

	hours := minutes / 60
	rest := minutes % 60

	parts := make([]string, 0, 2)
	if hours > 0 {
		unit := "heures"
		if hours == 1 {
			unit = "heure"
		}
		parts = append(parts, fmt.Sprintf("%d %s", hours, unit))
	}
	if rest > 0 {
		parts = append(parts, fmt.Sprintf("%d min", rest))
	}
	return strings.Join(parts, " ")
}

// FormatSigned renders minutes with a leading "+" or "-". Zero has no sign.
func FormatSigned(minutes int) string {
	switch {
	case minutes > 0:
		return "+" + Format(minutes)
	case minutes < 0:
		return "-" + Format(-minutes)
	default:
		return ZeroLabel
	}
}

// ParseClock parses a time of day and returns its offset from midnight.
func ParseClock(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		// time.Parse places every layout on the same synthetic date (0000-01-01),
		// so the offset is directly comparable across formats.
		return time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second, true
	}
	return 0, false
}

// FormatClock renders an offset from midnight as "15:04", or "15:04:05" when
// it has seconds. Both forms sort chronologically as text.
func FormatClock(offset time.Duration) string {
	offset = offset.Truncate(time.Second)
	h := int(offset / time.Hour)
	m := int(offset % time.Hour / time.Minute)
	sec := int(offset % time.Minute / time.Second)
	if sec != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// CanonicalClock rewrites a parsable time of day in FormatClock form and
// returns anything else unchanged.
func CanonicalClock(value string) string {
	offset, ok := ParseClock(value)
	if !ok {
		return value
	}
	return FormatClock(offset)
}

// MinutesFromRange returns the minutes between two times of day, rounded to
// the nearest minute. It returns 0 when either value cannot be parsed or when
// end is not after start.
func MinutesFromRange(start, end string) int {
	from, ok := ParseClock(start)
	if !ok {
		return 0
	}
	to, ok := ParseClock(end)
	if !ok {
		return 0
	}
	if to <= from {
		return 0
	}
	return int(math.Round((to - from).Seconds() / 60))
}
