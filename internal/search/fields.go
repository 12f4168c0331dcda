package search

import "clio/internal/collection"

// Field weights mirror the relative importance of each attribute when
// searching: titles dominate, artist names follow, descriptive tags trail.
const (
	weightTitle  = 2.0
	weightArtist = 1.5
	weightGenre  = 1.0
	weightLabel  = 0.8
	weightStylus = 1.0
	weightNotes  = 0.5
)

// ReleaseFields exposes a release's searchable texts.
func ReleaseFields(rel collection.Release) []Field {
	fields := []Field{{Text: rel.Title, Weight: weightTitle}}
	for _, artist := range rel.Artists {
		fields = append(fields, Field{Text: artist.Name, Weight: weightArtist})
	}
	for _, genre := range rel.Genres {
		fields = append(fields, Field{Text: genre, Weight: weightGenre})
	}
	for _, label := range rel.Labels {
		fields = append(fields, Field{Text: label.Name, Weight: weightLabel})
	}
	return fields
}

// PlayFields exposes a play event's searchable texts, reaching through to
// the release when it is resolved.
func PlayFields(play collection.PlayEvent) []Field {
	var fields []Field
	if play.Release != nil {
		fields = append(fields, Field{Text: play.Release.Title, Weight: weightTitle})
		for _, artist := range play.Release.Artists {
			fields = append(fields, Field{Text: artist.Name, Weight: weightArtist})
		}
	}
	if play.Stylus != nil {
		fields = append(fields, Field{Text: play.Stylus.Name, Weight: weightStylus})
	}
	fields = append(fields, Field{Text: play.Notes, Weight: weightNotes})
	return fields
}

// Releases filters and ranks releases against the query. Blank queries
// return the input unchanged.
func (m *Matcher) Releases(items []collection.Release, query string) []collection.Release {
	indices, ok := m.rank(query, len(items), func(i int) []Field {
		return ReleaseFields(items[i])
	})
	if !ok {
		return items
	}
	out := make([]collection.Release, len(indices))
	for i, idx := range indices {
		out[i] = items[idx]
	}
	return out
}

// Plays filters and ranks play events against the query. Blank queries
// return the input unchanged.
func (m *Matcher) Plays(items []collection.PlayEvent, query string) []collection.PlayEvent {
	indices, ok := m.rank(query, len(items), func(i int) []Field {
		return PlayFields(items[i])
	})
	if !ok {
		return items
	}
	out := make([]collection.PlayEvent, len(indices))
	for i, idx := range indices {
		out[i] = items[idx]
	}
	return out
}
