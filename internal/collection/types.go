package collection

// Artist is a single credited artist on a release.
type Artist struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Label is a record label credit on a release.
type Label struct {
	Name      string `json:"name"`
	CatalogNo string `json:"catno,omitempty"`
}

// Format describes the physical format of a release (LP, 7", etc).
type Format struct {
	Name         string   `json:"name"`
	Quantity     int      `json:"qty,omitempty"`
	Descriptions []string `json:"descriptions,omitempty"`
}

// Track is a single track on a release.
type Track struct {
	Position string `json:"position,omitempty"`
	Title    string `json:"title"`
	Duration string `json:"duration,omitempty"`
}

// Release is a vinyl release in the collection together with its per-release
// play and cleaning history. PlayDuration is the measured runtime in seconds
// and is nil when the server could not determine one.
type Release struct {
	ID           string   `json:"id"`
	FolderID     int64    `json:"folderId,omitempty"`
	Title        string   `json:"title"`
	Year         *int     `json:"year,omitempty"`
	Thumb        string   `json:"thumb,omitempty"`
	CoverImage   string   `json:"coverImage,omitempty"`
	PlayDuration *int     `json:"playDuration,omitempty"`
	Artists      []Artist `json:"artists,omitempty"`
	Labels       []Label  `json:"labels,omitempty"`
	Genres       []string `json:"genres,omitempty"`
	Styles       []string `json:"styles,omitempty"`
	Formats      []Format `json:"formats,omitempty"`
	Tracks       []Track  `json:"tracks,omitempty"`

	PlayHistory     []PlayEvent     `json:"playHistory,omitempty"`
	CleaningHistory []CleaningEvent `json:"cleaningHistory,omitempty"`
}

// PlayEvent records a single listening session. Release and Stylus are
// populated in the snapshot's flattened play history; inside a Release's own
// PlayHistory the server omits them.
type PlayEvent struct {
	ID        string    `json:"id"`
	ReleaseID string    `json:"releaseId"`
	StylusID  *string   `json:"stylusId,omitempty"`
	PlayedAt  Timestamp `json:"playedAt"`
	Notes     string    `json:"notes,omitempty"`

	Release *Release `json:"release,omitempty"`
	Stylus  *Stylus  `json:"stylus,omitempty"`
}

// CleaningEvent records a record cleaning.
type CleaningEvent struct {
	ID        string    `json:"id"`
	ReleaseID string    `json:"releaseId"`
	CleanedAt Timestamp `json:"cleanedAt"`
	Notes     string    `json:"notes,omitempty"`
}

// Stylus is a cartridge/stylus owned by the user. ExpectedLifespan is in
// hours of play time.
type Stylus struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Manufacturer     string     `json:"manufacturer,omitempty"`
	ExpectedLifespan int        `json:"expectedLifespan,omitempty"`
	PurchaseDate     *Timestamp `json:"purchaseDate,omitempty"`
	Active           bool       `json:"active"`
	Primary          bool       `json:"primary"`
	Owned            bool       `json:"owned"`
	BaseModel        bool       `json:"baseModel"`
}

// Folder is a user-defined grouping of releases on the server.
type Folder struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Snapshot is the full collection payload the server returns from reads and
// from every successful mutation. Mutations always carry the refreshed state
// so clients replace their copy wholesale instead of patching it.
type Snapshot struct {
	Folders     []Folder    `json:"folders,omitempty"`
	Releases    []Release   `json:"releases"`
	Styluses    []Stylus    `json:"styluses"`
	PlayHistory []PlayEvent `json:"playHistory"`
	LastSynced  Timestamp   `json:"lastSync"`
	IsSyncing   bool        `json:"isSyncing"`
}

// ActiveStylus returns the stylus flagged active, if any.
func (s Snapshot) ActiveStylus() (Stylus, bool) {
	for _, st := range s.Styluses {
		if st.Active {
			return st, true
		}
	}
	return Stylus{}, false
}

// PrimaryArtist returns the first credited artist that is not a producer
// credit, or "Unknown" when the release carries no usable credit.
func (r Release) PrimaryArtist() string {
	for _, artist := range r.Artists {
		if artist.Role == "Producer" {
			continue
		}
		if artist.Name != "" {
			return artist.Name
		}
	}
	return "Unknown"
}
