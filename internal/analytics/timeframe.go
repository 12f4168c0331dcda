package analytics

import (
	"fmt"
	"strings"
	"time"
)

// TimeFrame is a preset reporting window ending today.
type TimeFrame string

const (
	Last7Days  TimeFrame = "7d"
	Last30Days TimeFrame = "30d"
	Last90Days TimeFrame = "90d"
	LastYear   TimeFrame = "1y"
	AllTime    TimeFrame = "all"
)

// ParseTimeFrame normalizes a user-supplied range name.
func ParseTimeFrame(value string) (TimeFrame, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "7d", "week":
		return Last7Days, nil
	case "30d", "month":
		return Last30Days, nil
	case "90d", "quarter":
		return Last90Days, nil
	case "1y", "year":
		return LastYear, nil
	case "all":
		return AllTime, nil
	default:
		return "", fmt.Errorf("unknown range %q (expected 7d, 30d, 90d, 1y, or all)", value)
	}
}

// Range resolves the frame to concrete bounds: the start is clamped to
// midnight and the end to the last instant of today. AllTime reaches back
// ten years.
func (f TimeFrame) Range(now time.Time) (time.Time, time.Time) {
	var start time.Time
	switch f {
	case Last7Days:
		start = now.AddDate(0, 0, -7)
	case Last30Days:
		start = now.AddDate(0, 0, -30)
	case Last90Days:
		start = now.AddDate(0, 0, -90)
	case LastYear:
		start = now.AddDate(-1, 0, 0)
	default:
		start = now.AddDate(-10, 0, 0)
	}
	return startOfDay(start), endOfDay(now)
}

// CustomRange parses explicit YYYY-MM-DD bounds with the same day clamping
// as the presets. The start must not follow the end.
func CustomRange(from, to string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(from), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse range start: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(to), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse range end: %w", err)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("range start %s is after end %s", from, to)
	}
	return startOfDay(start), endOfDay(end), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
