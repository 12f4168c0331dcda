package collection

import "sync"

// Store holds the most recent collection snapshot. Reads return value copies
// of the current snapshot; Replace swaps the whole snapshot under the lock so
// readers never observe a partially-applied refresh.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace installs snap as the current snapshot.
func (s *Store) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Release looks up a release by ID.
func (s *Store) Release(id string) (Release, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rel := range s.snap.Releases {
		if rel.ID == id {
			return rel, true
		}
	}
	return Release{}, false
}

// Stylus looks up a stylus by ID.
func (s *Store) Stylus(id string) (Stylus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.snap.Styluses {
		if st.ID == id {
			return st, true
		}
	}
	return Stylus{}, false
}

// Plays returns the flattened play history with Release and Stylus pointers
// resolved against the snapshot for rows the server left bare.
func (s *Store) Plays() []PlayEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	releases := make(map[string]*Release, len(s.snap.Releases))
	for i := range s.snap.Releases {
		releases[s.snap.Releases[i].ID] = &s.snap.Releases[i]
	}
	styluses := make(map[string]*Stylus, len(s.snap.Styluses))
	for i := range s.snap.Styluses {
		styluses[s.snap.Styluses[i].ID] = &s.snap.Styluses[i]
	}

	plays := make([]PlayEvent, len(s.snap.PlayHistory))
	copy(plays, s.snap.PlayHistory)
	for i := range plays {
		if plays[i].Release == nil {
			plays[i].Release = releases[plays[i].ReleaseID]
		}
		if plays[i].Stylus == nil && plays[i].StylusID != nil {
			plays[i].Stylus = styluses[*plays[i].StylusID]
		}
	}
	return plays
}
