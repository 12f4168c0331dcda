package status_test

import (
	"testing"

	"clio/internal/status"
)

func TestCleanlinessBands(t *testing.T) {
	cases := []struct {
		score float64
		color string
		label string
	}{
		{0, "#35a173", "Recently cleaned"},
		{19.9, "#35a173", "Recently cleaned"},
		{20, "#59c48c", "Clean"},
		{39.9, "#59c48c", "Clean"},
		{40, "#80d6aa", "May need cleaning soon"},
		{60, "#f59e0b", "Due for cleaning"},
		{80, "#e9493e", "Needs cleaning"},
		{100, "#e9493e", "Needs cleaning"},
	}
	for _, tc := range cases {
		if got := status.CleanlinessColor(tc.score); got != tc.color {
			t.Fatalf("CleanlinessColor(%v) = %q, want %q", tc.score, got, tc.color)
		}
		if got := status.CleanlinessLabel(tc.score); got != tc.label {
			t.Fatalf("CleanlinessLabel(%v) = %q, want %q", tc.score, got, tc.label)
		}
	}
}

func TestRecencyColorInvertsRamp(t *testing.T) {
	cases := []struct {
		score float64
		color string
	}{
		{100, "#35a173"},
		{80, "#35a173"},
		{60, "#59c48c"},
		{40, "#80d6aa"},
		{20, "#f59e0b"},
		{0, "#e9493e"},
	}
	for _, tc := range cases {
		if got := status.RecencyColor(tc.score); got != tc.color {
			t.Fatalf("RecencyColor(%v) = %q, want %q", tc.score, got, tc.color)
		}
	}
}

func TestRecencyLabels(t *testing.T) {
	cases := []struct {
		score float64
		label string
	}{
		{100, "Played this week"},
		{80, "Played this month"},
		{60, "Played in the last 3 months"},
		{40, "Played in the last 6 months"},
		{20, "Played this year"},
		{0, "Not played recently"},
	}
	for _, tc := range cases {
		if got := status.RecencyLabel(tc.score); got != tc.label {
			t.Fatalf("RecencyLabel(%v) = %q, want %q", tc.score, got, tc.label)
		}
	}
}
