package status_test

import (
	"math"
	"testing"
	"time"

	"clio/internal/collection"
	"clio/internal/status"
)

func timePtr(t time.Time) *time.Time { return &t }

func playAt(t time.Time) collection.PlayEvent {
	return collection.PlayEvent{PlayedAt: collection.NewTimestamp(t)}
}

func TestCleanlinessScoreNeverCleaned(t *testing.T) {
	if got := status.CleanlinessScore(nil, 0); got != 100 {
		t.Fatalf("never cleaned score = %v, want 100", got)
	}
}

func TestCleanlinessScoreScalesWithPlays(t *testing.T) {
	cleaned := timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	if got := status.CleanlinessScore(cleaned, 0); got != 0 {
		t.Fatalf("0 plays score = %v, want 0", got)
	}
	got := status.CleanlinessScore(cleaned, 3)
	want := 3.0 / 5.01 * 100
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("3 plays score = %v, want %v", got, want)
	}
	if got := status.CleanlinessScore(cleaned, 6); got != 100 {
		t.Fatalf("6 plays score = %v, want capped 100", got)
	}
}

func TestPlaysSinceCleaningIgnoresSameActionPlay(t *testing.T) {
	cleaned := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	plays := []collection.PlayEvent{
		playAt(cleaned.Add(-time.Hour)),              // before cleaning
		playAt(cleaned),                              // logged by the same action
		playAt(cleaned.Add(500 * time.Microsecond)), // within the epsilon
		playAt(cleaned.Add(time.Hour)),
		playAt(cleaned.Add(2 * time.Hour)),
		{}, // invalid timestamp
	}

	if got := status.PlaysSinceCleaning(plays, &cleaned); got != 2 {
		t.Fatalf("plays since cleaning = %d, want 2", got)
	}
	if got := status.PlaysSinceCleaning(plays, nil); got != 5 {
		t.Fatalf("plays with no cleaning = %d, want 5", got)
	}
}

func TestPlayRecencyScoreSteps(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		age  time.Duration
		want float64
	}{
		{0, 100},
		{7 * 24 * time.Hour, 100},
		{8 * 24 * time.Hour, 80},
		{30 * 24 * time.Hour, 80},
		{31 * 24 * time.Hour, 60},
		{90 * 24 * time.Hour, 60},
		{91 * 24 * time.Hour, 40},
		{180 * 24 * time.Hour, 40},
		{181 * 24 * time.Hour, 20},
		{365 * 24 * time.Hour, 20},
		{366 * 24 * time.Hour, 0},
	}
	for _, tc := range cases {
		last := now.Add(-tc.age)
		if got := status.PlayRecencyScore(&last, now); got != tc.want {
			t.Fatalf("recency at age %v = %v, want %v", tc.age, got, tc.want)
		}
	}
	if got := status.PlayRecencyScore(nil, now); got != 0 {
		t.Fatalf("recency with no plays = %v, want 0", got)
	}
}

func TestLastPlaySkipsInvalidRows(t *testing.T) {
	newest := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	plays := []collection.PlayEvent{
		playAt(newest.Add(-48 * time.Hour)),
		{},
		playAt(newest),
		playAt(newest.Add(-24 * time.Hour)),
	}
	got := status.LastPlay(plays)
	if got == nil || !got.Equal(newest) {
		t.Fatalf("LastPlay = %v, want %v", got, newest)
	}
	if status.LastPlay(nil) != nil {
		t.Fatal("LastPlay on empty history should be nil")
	}
}

func TestForReleaseNeverPlayed(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	report := status.ForRelease(collection.Release{ID: "rel-1", Title: "Aja"}, now)

	if report.Recency.Label != "Never played" {
		t.Fatalf("recency label = %q", report.Recency.Label)
	}
	if report.Recency.Score != 0 {
		t.Fatalf("recency score = %v", report.Recency.Score)
	}
	if report.Cleanliness.Score != 100 {
		t.Fatalf("cleanliness score = %v, want 100 for never cleaned", report.Cleanliness.Score)
	}
	if report.Cleanliness.Label != "Needs cleaning" {
		t.Fatalf("cleanliness label = %q", report.Cleanliness.Label)
	}
}

func TestForReleaseFreshlyCleanedAndPlayed(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rel := collection.Release{
		ID:    "rel-2",
		Title: "Aja",
		PlayHistory: []collection.PlayEvent{
			playAt(now.Add(-24 * time.Hour)),
		},
		CleaningHistory: []collection.CleaningEvent{
			{CleanedAt: collection.NewTimestamp(now.Add(-23 * time.Hour))},
		},
	}
	report := status.ForRelease(rel, now)
	if report.PlaysSinceCleaning != 0 {
		t.Fatalf("plays since cleaning = %d, want 0", report.PlaysSinceCleaning)
	}
	if report.Cleanliness.Score != 0 || report.Cleanliness.Label != "Recently cleaned" {
		t.Fatalf("cleanliness = %+v", report.Cleanliness)
	}
	if report.Recency.Score != 100 || report.Recency.Label != "Played this week" {
		t.Fatalf("recency = %+v", report.Recency)
	}
}
