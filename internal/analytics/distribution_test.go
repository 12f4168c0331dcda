package analytics_test

import (
	"strings"
	"testing"
	"time"

	"clio/internal/analytics"
	"clio/internal/collection"
)

func TestDurationMinutes(t *testing.T) {
	seconds := 2490
	rel := &collection.Release{PlayDuration: &seconds}
	if got := analytics.DurationMinutes(rel); got != 42 {
		t.Fatalf("DurationMinutes = %v, want rounded 42", got)
	}
	zero := 0
	for _, r := range []*collection.Release{nil, {}, {PlayDuration: &zero}} {
		if got := analytics.DurationMinutes(r); got != 40 {
			t.Fatalf("DurationMinutes fallback = %v, want 40", got)
		}
	}
}

func TestDistributeByArtistSkipsProducers(t *testing.T) {
	produced := &collection.Release{Artists: []collection.Artist{
		{Name: "Quincy Jones", Role: "Producer"},
		{Name: "Michael Jackson"},
	}}
	now := time.Now()
	plays := []collection.PlayEvent{
		playOn(now, produced),
		playOn(now, nil),
	}
	slices := analytics.Distribute(plays, analytics.ByArtist)
	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}
	if slices[0].Label != "Michael Jackson" || slices[0].Count != 1 {
		t.Fatalf("first slice = %+v", slices[0])
	}
	if slices[1].Label != "Unknown" {
		t.Fatalf("second slice = %+v", slices[1])
	}
}

func TestDistributeByGenreCountsEachTag(t *testing.T) {
	jazzFunk := &collection.Release{Genres: []string{"Jazz", "Funk"}}
	jazz := &collection.Release{Genres: []string{"Jazz"}}
	now := time.Now()
	plays := []collection.PlayEvent{
		playOn(now, jazzFunk),
		playOn(now, jazz),
	}
	slices := analytics.Distribute(plays, analytics.ByGenre)
	byLabel := map[string]analytics.Slice{}
	for _, s := range slices {
		byLabel[s.Label] = s
	}
	if byLabel["Jazz"].Count != 2 || byLabel["Funk"].Count != 1 {
		t.Fatalf("genre counts = %+v", byLabel)
	}
}

func TestTopByCountAndMinutes(t *testing.T) {
	longSeconds := 3600
	long := &collection.Release{Title: "Long", PlayDuration: &longSeconds}
	short := &collection.Release{Title: "Short"}
	now := time.Now()
	plays := []collection.PlayEvent{
		playOn(now, short),
		playOn(now, short),
		playOn(now, long),
	}

	slices := analytics.Distribute(plays, analytics.ByRelease)

	byCount := analytics.TopByCount(slices, 0)
	if byCount[0].Label != "Short" || byCount[0].Count != 2 {
		t.Fatalf("TopByCount first = %+v", byCount[0])
	}
	byMinutes := analytics.TopByMinutes(slices, 0)
	if byMinutes[0].Label != "Short" || byMinutes[0].Minutes != 80 {
		t.Fatalf("TopByMinutes first = %+v", byMinutes[0])
	}

	top1 := analytics.TopByCount(slices, 1)
	if len(top1) != 1 {
		t.Fatalf("TopByCount(1) length = %d", len(top1))
	}
	if got := analytics.TopByCount(slices, -1); len(got) != 2 {
		t.Fatalf("TopByCount(-1) should keep all slices, got %d", len(got))
	}
}

func TestColorize(t *testing.T) {
	slices := make([]analytics.Slice, 14)
	colored := analytics.Colorize(slices)
	for i, s := range colored {
		if s.Color == "" {
			t.Fatalf("slice %d missing color", i)
		}
	}
	if !strings.HasPrefix(colored[13].Color, "hsla(") {
		t.Fatalf("generated color = %q", colored[13].Color)
	}
}
