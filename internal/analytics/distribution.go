package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"clio/internal/collection"
)

// fallbackMinutes stands in for releases without a measured runtime; a
// typical LP side pair runs about 40 minutes.
const fallbackMinutes = 40

// DurationMinutes converts a release's measured runtime (seconds) to whole
// minutes, falling back to fallbackMinutes when no usable runtime exists.
func DurationMinutes(rel *collection.Release) float64 {
	if rel != nil && rel.PlayDuration != nil && *rel.PlayDuration > 0 {
		return math.Round(float64(*rel.PlayDuration) / 60)
	}
	return fallbackMinutes
}

// Dimension selects how plays are broken down in a distribution.
type Dimension string

const (
	ByArtist  Dimension = "artist"
	ByGenre   Dimension = "genre"
	ByRelease Dimension = "release"
)

// ParseDimension normalizes a user-supplied dimension name.
func ParseDimension(value string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "artist", "artists":
		return ByArtist, nil
	case "genre", "genres":
		return ByGenre, nil
	case "release", "releases", "album", "albums":
		return ByRelease, nil
	default:
		return "", fmt.Errorf("unknown dimension %q (expected artist, genre, or release)", value)
	}
}

// Slice is one label of a distribution with its play count and minutes.
type Slice struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Minutes float64 `json:"minutes"`
	Color   string  `json:"color,omitempty"`
}

// labelsFor returns the distribution labels one play contributes to. A play
// contributes once per genre tag under ByGenre and exactly once otherwise.
func labelsFor(play collection.PlayEvent, dim Dimension) []string {
	rel := play.Release
	switch dim {
	case ByGenre:
		if rel == nil || len(rel.Genres) == 0 {
			return []string{"Unknown"}
		}
		return rel.Genres
	case ByRelease:
		if rel == nil || rel.Title == "" {
			return []string{"Unknown"}
		}
		return []string{rel.Title}
	default:
		if rel == nil {
			return []string{"Unknown"}
		}
		return []string{rel.PrimaryArtist()}
	}
}

// Distribute accumulates plays into labeled slices for the given dimension,
// in first-seen order. Sort with TopByCount or TopByMinutes before display.
func Distribute(plays []collection.PlayEvent, dim Dimension) []Slice {
	index := make(map[string]int)
	var slices []Slice
	for _, play := range plays {
		minutes := DurationMinutes(play.Release)
		for _, label := range labelsFor(play, dim) {
			i, ok := index[label]
			if !ok {
				i = len(slices)
				index[label] = i
				slices = append(slices, Slice{Label: label})
			}
			slices[i].Count++
			slices[i].Minutes += minutes
		}
	}
	return slices
}

// TopByCount returns the slices sorted by descending play count, keeping the
// first n. n <= 0 keeps everything. Ties keep their accumulation order.
func TopByCount(slices []Slice, n int) []Slice {
	sorted := make([]Slice, len(slices))
	copy(sorted, slices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	return truncate(sorted, n)
}

// TopByMinutes returns the slices sorted by descending listening minutes,
// keeping the first n. n <= 0 keeps everything.
func TopByMinutes(slices []Slice, n int) []Slice {
	sorted := make([]Slice, len(slices))
	copy(sorted, slices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Minutes > sorted[j].Minutes
	})
	return truncate(sorted, n)
}

func truncate(slices []Slice, n int) []Slice {
	if n > 0 && n < len(slices) {
		return slices[:n]
	}
	return slices
}
