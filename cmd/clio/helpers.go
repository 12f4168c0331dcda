package main

import (
	"fmt"
	"strings"
	"time"

	"clio/internal/analytics"
	"clio/internal/collection"
	"clio/internal/config"
	"clio/internal/search"
	"clio/internal/services"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatTimestamp(ts collection.Timestamp) string {
	return formatTime(ts.Ptr())
}

// parseAtFlag reads a --at value; empty means now.
func parseAtFlag(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (try 2006-01-02 or 2006-01-02 15:04)", value)
}

// resolveRelease finds one release by exact ID or by fuzzy title search.
// Ambiguous queries fail with the candidate titles so the user can narrow
// down.
func resolveRelease(store *collection.Store, matcher *search.Matcher, arg string) (collection.Release, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return collection.Release{}, services.Wrap(services.ErrValidation, "cli", "resolve release", "release ID or title is required", nil)
	}
	if rel, ok := store.Release(arg); ok {
		return rel, nil
	}

	matches := matcher.Releases(store.Snapshot().Releases, arg)
	switch len(matches) {
	case 0:
		return collection.Release{}, services.Wrap(services.ErrNotFound, "cli", "resolve release", fmt.Sprintf("no release matches %q", arg), nil)
	case 1:
		return matches[0], nil
	}

	// An unambiguous best hit (exact title) still wins.
	if strings.EqualFold(matches[0].Title, arg) && !strings.EqualFold(matches[1].Title, arg) {
		return matches[0], nil
	}
	titles := make([]string, 0, 5)
	for i, rel := range matches {
		if i == 5 {
			titles = append(titles, "...")
			break
		}
		titles = append(titles, fmt.Sprintf("%s (%s)", rel.Title, rel.ID))
	}
	return collection.Release{}, services.Wrap(services.ErrValidation, "cli", "resolve release",
		fmt.Sprintf("%q matches several releases: %s", arg, strings.Join(titles, ", ")), nil)
}

// resolveStylus interprets a --stylus value: "active" picks the active
// stylus, anything else must be a stylus ID.
func resolveStylus(store *collection.Store, arg string) (*string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, nil
	}
	if strings.EqualFold(arg, "active") {
		st, ok := store.Snapshot().ActiveStylus()
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "cli", "resolve stylus", "no stylus is marked active", nil)
		}
		id := st.ID
		return &id, nil
	}
	st, ok := store.Stylus(arg)
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "cli", "resolve stylus", fmt.Sprintf("no stylus with ID %q", arg), nil)
	}
	id := st.ID
	return &id, nil
}

// resolveRange turns --range or --from/--to flags into concrete bounds,
// falling back to the configured default range.
func resolveRange(cfg *config.Config, rangeFlag, fromFlag, toFlag string, now time.Time) (time.Time, time.Time, error) {
	fromFlag = strings.TrimSpace(fromFlag)
	toFlag = strings.TrimSpace(toFlag)
	if fromFlag != "" || toFlag != "" {
		if fromFlag == "" || toFlag == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("--from and --to must be used together")
		}
		return analytics.CustomRange(fromFlag, toFlag)
	}

	value := strings.TrimSpace(rangeFlag)
	if value == "" {
		value = cfg.Analytics.DefaultRange
	}
	frame, err := analytics.ParseTimeFrame(value)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := frame.Range(now)
	return start, end, nil
}

// filterPlays keeps plays inside [start, end] with valid timestamps.
func filterPlays(plays []collection.PlayEvent, start, end time.Time) []collection.PlayEvent {
	var kept []collection.PlayEvent
	for _, play := range plays {
		if !play.PlayedAt.Valid() {
			continue
		}
		at := play.PlayedAt.Time
		if at.Before(start) || at.After(end) {
			continue
		}
		kept = append(kept, play)
	}
	return kept
}
