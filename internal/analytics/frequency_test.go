package analytics_test

import (
	"testing"
	"time"

	"clio/internal/analytics"
	"clio/internal/collection"
)

func playOn(t time.Time, rel *collection.Release) collection.PlayEvent {
	return collection.PlayEvent{PlayedAt: collection.NewTimestamp(t), Release: rel}
}

func TestParseFrequency(t *testing.T) {
	for input, want := range map[string]analytics.Frequency{
		"daily":   analytics.Daily,
		"Week":    analytics.Weekly,
		" month ": analytics.Monthly,
	} {
		got, err := analytics.ParseFrequency(input)
		if err != nil || got != want {
			t.Fatalf("ParseFrequency(%q) = %v, %v", input, got, err)
		}
	}
	if _, err := analytics.ParseFrequency("hourly"); err == nil {
		t.Fatal("expected error for unknown grouping")
	}
}

func TestBucketKeyUnpadded(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	if got := analytics.BucketKey(at, analytics.Daily); got != "2024-3-5" {
		t.Fatalf("daily key = %q", got)
	}
	if got := analytics.BucketKey(at, analytics.Monthly); got != "2024-3" {
		t.Fatalf("monthly key = %q", got)
	}
}

func TestBucketKeyWeeklyMonday(t *testing.T) {
	// 2024-03-05 is a Tuesday; its week starts Monday 2024-03-04.
	tuesday := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	if got := analytics.BucketKey(tuesday, analytics.Weekly); got != "2024-3-4" {
		t.Fatalf("weekly key for Tuesday = %q", got)
	}
	// Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	if got := analytics.BucketKey(sunday, analytics.Weekly); got != "2024-3-4" {
		t.Fatalf("weekly key for Sunday = %q", got)
	}
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if got := analytics.BucketKey(monday, analytics.Weekly); got != "2024-3-11" {
		t.Fatalf("weekly key for Monday = %q", got)
	}
}

func TestParseBucketKeyRoundTrip(t *testing.T) {
	got, err := analytics.ParseBucketKey("2024-3-5", analytics.Daily)
	if err != nil {
		t.Fatalf("ParseBucketKey: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 5 {
		t.Fatalf("parsed %v", got)
	}

	got, err = analytics.ParseBucketKey("2024-11", analytics.Monthly)
	if err != nil {
		t.Fatalf("ParseBucketKey monthly: %v", err)
	}
	if got.Month() != time.November || got.Day() != 1 {
		t.Fatalf("monthly keys should parse to the first of the month, got %v", got)
	}

	if _, err := analytics.ParseBucketKey("2024-3", analytics.Daily); err == nil {
		t.Fatal("expected error for short daily key")
	}
	if _, err := analytics.ParseBucketKey("2024-x-1", analytics.Daily); err == nil {
		t.Fatal("expected error for non-numeric key")
	}
}

func TestBucketRange(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if got := analytics.BucketRange(start, end, analytics.Daily); len(got) != 4 {
		t.Fatalf("daily range length = %d, want 4", len(got))
	}
	if got := analytics.BucketRange(start, end.AddDate(0, 0, 10), analytics.Weekly); len(got) != 2 {
		t.Fatalf("weekly range length = %d, want 2", len(got))
	}
	monthly := analytics.BucketRange(start, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), analytics.Monthly)
	if len(monthly) != 4 {
		t.Fatalf("monthly range length = %d, want 4", len(monthly))
	}
	if got := analytics.BucketRange(end, start, analytics.Daily); len(got) != 0 {
		t.Fatalf("inverted range should be empty, got %d seeds", len(got))
	}
}

func TestGroupByFrequencySeedsEmptyBuckets(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 5, 23, 59, 59, 0, time.Local)
	plays := []collection.PlayEvent{
		playOn(time.Date(2024, 3, 1, 20, 0, 0, 0, time.Local), nil),
		playOn(time.Date(2024, 3, 1, 22, 0, 0, 0, time.Local), nil),
		playOn(time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local), nil),
		playOn(time.Date(2024, 2, 28, 9, 0, 0, 0, time.Local), nil), // outside range
		{}, // invalid timestamp
	}

	buckets := analytics.GroupByFrequency(plays, start, end, analytics.Daily, analytics.CountOf)
	if len(buckets) != 5 {
		t.Fatalf("expected 5 daily buckets, got %d", len(buckets))
	}
	want := map[string]float64{
		"2024-3-1": 2,
		"2024-3-2": 0,
		"2024-3-3": 0,
		"2024-3-4": 1,
		"2024-3-5": 0,
	}
	for _, bucket := range buckets {
		if bucket.Value != want[bucket.Key] {
			t.Fatalf("bucket %s = %v, want %v", bucket.Key, bucket.Value, want[bucket.Key])
		}
	}
	for i := 1; i < len(buckets); i++ {
		if !buckets[i-1].Start.Before(buckets[i].Start) {
			t.Fatalf("buckets out of order: %s before %s", buckets[i-1].Key, buckets[i].Key)
		}
	}
}

func TestGroupByFrequencyMinutes(t *testing.T) {
	seconds := 2520 // 42 minutes
	timed := &collection.Release{ID: "rel-1", PlayDuration: &seconds}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 1, 23, 59, 59, 0, time.Local)
	plays := []collection.PlayEvent{
		playOn(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local), timed),
		playOn(time.Date(2024, 3, 1, 21, 0, 0, 0, time.Local), nil), // fallback 40
	}

	buckets := analytics.GroupByFrequency(plays, start, end, analytics.Daily, analytics.MinutesOf)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].Value != 82 {
		t.Fatalf("minutes bucket = %v, want 82", buckets[0].Value)
	}
}
