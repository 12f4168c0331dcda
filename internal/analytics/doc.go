// Package analytics aggregates play history for the stats views.
//
// Plays are grouped into daily, weekly, or monthly buckets keyed by compact
// date strings, with empty buckets pre-seeded across the requested range so
// charts render gaps as zeros. Distribution breaks the same plays down by
// artist, genre, or release with both play counts and listening minutes, and
// the palette helpers hand out stable chart colors. Everything here is pure;
// the clock and the date range come from the caller.
package analytics
