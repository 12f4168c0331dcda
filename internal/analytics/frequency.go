package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"clio/internal/collection"
)

// Frequency selects the bucket granularity for grouped play stats.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// ParseFrequency normalizes a user-supplied grouping name.
func ParseFrequency(value string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	default:
		return "", fmt.Errorf("unknown grouping %q (expected daily, weekly, or monthly)", value)
	}
}

// weekStart returns the Monday of t's week. Sunday belongs to the week that
// started six days earlier.
func weekStart(t time.Time) time.Time {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1-offset)
}

// BucketKey renders the bucket identifier for an instant. Keys use unpadded
// components: "2024-3-5" daily, the Monday of the week for weekly, and
// "2024-3" monthly.
func BucketKey(t time.Time, freq Frequency) string {
	switch freq {
	case Weekly:
		monday := weekStart(t)
		return fmt.Sprintf("%d-%d-%d", monday.Year(), int(monday.Month()), monday.Day())
	case Monthly:
		return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
	default:
		return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
	}
}

// ParseBucketKey inverts BucketKey. Monthly keys map to the first of the
// month.
func ParseBucketKey(key string, freq Frequency) (time.Time, error) {
	parts := strings.Split(key, "-")
	wantParts := 3
	if freq == Monthly {
		wantParts = 2
	}
	if len(parts) != wantParts {
		return time.Time{}, fmt.Errorf("malformed %s bucket key %q", freq, key)
	}

	numbers := make([]int, len(parts))
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, fmt.Errorf("malformed bucket key %q: %w", key, err)
		}
		numbers[i] = value
	}

	day := 1
	if freq != Monthly {
		day = numbers[2]
	}
	return time.Date(numbers[0], time.Month(numbers[1]), day, 0, 0, 0, 0, time.Local), nil
}

// BucketRange returns the bucket seed instants from start through end
// inclusive, stepping a day, a week, or a month.
func BucketRange(start, end time.Time, freq Frequency) []time.Time {
	var seeds []time.Time
	for current := start; !current.After(end); {
		seeds = append(seeds, current)
		switch freq {
		case Weekly:
			current = current.AddDate(0, 0, 7)
		case Monthly:
			current = current.AddDate(0, 1, 0)
		default:
			current = current.AddDate(0, 0, 1)
		}
	}
	return seeds
}

// Bucket is one point of a grouped series.
type Bucket struct {
	Key   string    `json:"key"`
	Start time.Time `json:"start"`
	Value float64   `json:"value"`
}

// GroupByFrequency buckets plays between start and end. Buckets across the
// whole range are pre-seeded at zero so quiet stretches still appear, and
// plays with invalid timestamps are skipped. value extracts each play's
// contribution; use CountOf or MinutesOf.
func GroupByFrequency(plays []collection.PlayEvent, start, end time.Time, freq Frequency, value func(collection.PlayEvent) float64) []Bucket {
	totals := make(map[string]float64)
	for _, seed := range BucketRange(start, end, freq) {
		totals[BucketKey(seed, freq)] = 0
	}

	for _, play := range plays {
		if !play.PlayedAt.Valid() {
			continue
		}
		at := play.PlayedAt.Time
		if at.Before(start) || at.After(end) {
			continue
		}
		totals[BucketKey(at, freq)] += value(play)
	}

	buckets := make([]Bucket, 0, len(totals))
	for key, total := range totals {
		seed, err := ParseBucketKey(key, freq)
		if err != nil {
			continue
		}
		buckets = append(buckets, Bucket{Key: key, Start: seed, Value: total})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets
}

// CountOf values every play as one.
func CountOf(collection.PlayEvent) float64 { return 1 }

// MinutesOf values a play by its release's listening minutes.
func MinutesOf(play collection.PlayEvent) float64 {
	return DurationMinutes(play.Release)
}
