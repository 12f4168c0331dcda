package collection_test

import (
	"testing"
	"time"

	"clio/internal/collection"
)

func sampleSnapshot() collection.Snapshot {
	stylusID := "st-1"
	return collection.Snapshot{
		Releases: []collection.Release{
			{ID: "rel-1", Title: "Kind of Blue", Artists: []collection.Artist{{Name: "Miles Davis"}}},
			{ID: "rel-2", Title: "Blue Train", Artists: []collection.Artist{{Name: "John Coltrane"}}},
		},
		Styluses: []collection.Stylus{
			{ID: "st-1", Name: "2M Blue", Active: true},
			{ID: "st-2", Name: "2M Red"},
		},
		PlayHistory: []collection.PlayEvent{
			{ID: "play-1", ReleaseID: "rel-1", StylusID: &stylusID, PlayedAt: collection.NewTimestamp(time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC))},
			{ID: "play-2", ReleaseID: "rel-2", PlayedAt: collection.NewTimestamp(time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC))},
		},
		LastSynced: collection.NewTimestamp(time.Date(2024, 3, 2, 21, 0, 0, 0, time.UTC)),
	}
}

func TestStoreReplaceAndLookups(t *testing.T) {
	store := collection.NewStore()
	store.Replace(sampleSnapshot())

	rel, ok := store.Release("rel-2")
	if !ok || rel.Title != "Blue Train" {
		t.Fatalf("Release lookup = %v %v", rel, ok)
	}
	if _, ok := store.Release("missing"); ok {
		t.Fatal("expected lookup miss for unknown release")
	}
	st, ok := store.Stylus("st-1")
	if !ok || st.Name != "2M Blue" {
		t.Fatalf("Stylus lookup = %v %v", st, ok)
	}

	replacement := sampleSnapshot()
	replacement.Releases = replacement.Releases[:1]
	store.Replace(replacement)
	if _, ok := store.Release("rel-2"); ok {
		t.Fatal("expected rel-2 to disappear after replace")
	}
}

func TestStorePlaysResolvesReferences(t *testing.T) {
	store := collection.NewStore()
	store.Replace(sampleSnapshot())

	plays := store.Plays()
	if len(plays) != 2 {
		t.Fatalf("expected 2 plays, got %d", len(plays))
	}
	if plays[0].Release == nil || plays[0].Release.Title != "Kind of Blue" {
		t.Fatalf("play-1 release not resolved: %+v", plays[0].Release)
	}
	if plays[0].Stylus == nil || plays[0].Stylus.Name != "2M Blue" {
		t.Fatalf("play-1 stylus not resolved: %+v", plays[0].Stylus)
	}
	if plays[1].Stylus != nil {
		t.Fatal("play-2 has no stylus and should stay nil")
	}
}

func TestSnapshotActiveStylus(t *testing.T) {
	snap := sampleSnapshot()
	st, ok := snap.ActiveStylus()
	if !ok || st.ID != "st-1" {
		t.Fatalf("ActiveStylus = %v %v", st, ok)
	}
	snap.Styluses[0].Active = false
	if _, ok := snap.ActiveStylus(); ok {
		t.Fatal("expected no active stylus")
	}
}

func TestPrimaryArtistSkipsProducers(t *testing.T) {
	rel := collection.Release{Artists: []collection.Artist{
		{Name: "Rick Rubin", Role: "Producer"},
		{Name: "Johnny Cash"},
	}}
	if got := rel.PrimaryArtist(); got != "Johnny Cash" {
		t.Fatalf("PrimaryArtist = %q", got)
	}
	if got := (collection.Release{}).PrimaryArtist(); got != "Unknown" {
		t.Fatalf("PrimaryArtist on empty release = %q", got)
	}
}
