package status

import (
	"time"

	"clio/internal/collection"
)

// playBudget is the number of plays that takes a freshly cleaned record all
// the way back to a cleanliness score of 100.
const playBudget = 5.01

// cleaningEpsilon absorbs rows where a play and its cleaning were logged in
// the same action and share (nearly) the same timestamp.
const cleaningEpsilon = time.Millisecond

// CleanlinessScore returns 0..100 where higher means dirtier. A release that
// was never cleaned scores 100.
func CleanlinessScore(lastCleaned *time.Time, playsSinceCleaning int) float64 {
	if lastCleaned == nil {
		return 100
	}
	score := float64(playsSinceCleaning) / playBudget * 100
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// PlaysSinceCleaning counts plays logged strictly after the last cleaning.
// Plays within cleaningEpsilon of the cleaning are treated as part of the
// same log-play-and-clean action and do not count. With no cleaning on
// record every valid play counts.
func PlaysSinceCleaning(plays []collection.PlayEvent, lastCleaned *time.Time) int {
	count := 0
	var cutoff time.Time
	if lastCleaned != nil {
		cutoff = lastCleaned.Add(cleaningEpsilon)
	}
	for _, play := range plays {
		if !play.PlayedAt.Valid() {
			continue
		}
		if lastCleaned == nil || play.PlayedAt.After(cutoff) {
			count++
		}
	}
	return count
}

// PlayRecencyScore returns 0..100 where higher means played more recently.
// The score decays in steps at 7, 30, 90, 180, and 365 days; a release that
// was never played scores 0.
func PlayRecencyScore(lastPlayed *time.Time, now time.Time) float64 {
	if lastPlayed == nil {
		return 0
	}
	days := now.Sub(*lastPlayed).Hours() / 24
	switch {
	case days <= 7:
		return 100
	case days <= 30:
		return 80
	case days <= 90:
		return 60
	case days <= 180:
		return 40
	case days <= 365:
		return 20
	default:
		return 0
	}
}

// LastPlay returns the most recent valid play time, or nil.
func LastPlay(plays []collection.PlayEvent) *time.Time {
	var latest *time.Time
	for _, play := range plays {
		if !play.PlayedAt.Valid() {
			continue
		}
		instant := play.PlayedAt.Time
		if latest == nil || instant.After(*latest) {
			latest = &instant
		}
	}
	return latest
}

// LastCleaning returns the most recent valid cleaning time, or nil.
func LastCleaning(cleanings []collection.CleaningEvent) *time.Time {
	var latest *time.Time
	for _, cleaning := range cleanings {
		if !cleaning.CleanedAt.Valid() {
			continue
		}
		instant := cleaning.CleanedAt.Time
		if latest == nil || instant.After(*latest) {
			latest = &instant
		}
	}
	return latest
}

// Metric bundles a score with its display label and color.
type Metric struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// Report is the full upkeep summary for one release.
type Report struct {
	ReleaseID          string     `json:"releaseId"`
	Title              string     `json:"title"`
	Artist             string     `json:"artist"`
	LastPlayed         *time.Time `json:"lastPlayed"`
	LastCleaned        *time.Time `json:"lastCleaned"`
	PlaysSinceCleaning int        `json:"playsSinceCleaning"`
	Cleanliness        Metric     `json:"cleanliness"`
	Recency            Metric     `json:"recency"`
}

// ForRelease computes the upkeep report for one release at the given instant.
func ForRelease(rel collection.Release, now time.Time) Report {
	lastPlayed := LastPlay(rel.PlayHistory)
	lastCleaned := LastCleaning(rel.CleaningHistory)
	plays := PlaysSinceCleaning(rel.PlayHistory, lastCleaned)

	cleanScore := CleanlinessScore(lastCleaned, plays)
	recencyScore := PlayRecencyScore(lastPlayed, now)

	recencyLabel := RecencyLabel(recencyScore)
	if lastPlayed == nil {
		recencyLabel = "Never played"
	}

	return Report{
		ReleaseID:          rel.ID,
		Title:              rel.Title,
		Artist:             rel.PrimaryArtist(),
		LastPlayed:         lastPlayed,
		LastCleaned:        lastCleaned,
		PlaysSinceCleaning: plays,
		Cleanliness: Metric{
			Score: cleanScore,
			Label: CleanlinessLabel(cleanScore),
			Color: CleanlinessColor(cleanScore),
		},
		Recency: Metric{
			Score: recencyScore,
			Label: recencyLabel,
			Color: RecencyColor(recencyScore),
		},
	}
}
