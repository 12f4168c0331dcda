package collection

import (
	"bytes"
	"strings"
	"time"
)

// Timestamp wraps time.Time with tolerant JSON decoding. The server emits
// RFC 3339, but historical rows carry bare dates and space-separated
// datetimes; anything unparseable decodes to the zero time rather than
// failing the whole payload.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp decodes value using the tolerant layout list. Unparseable
// input yields a zero Timestamp.
func ParseTimestamp(value string) Timestamp {
	value = strings.TrimSpace(value)
	if value == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return Timestamp{Time: parsed}
		}
	}
	return Timestamp{}
}

// Valid reports whether the timestamp holds a real instant.
func (t Timestamp) Valid() bool {
	return !t.IsZero()
}

// Ptr returns the wrapped time, or nil for the zero value.
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	instant := t.Time
	return &instant
}

// UnmarshalJSON accepts RFC 3339 strings plus the legacy layouts above.
// null, empty strings, and garbage all decode to the zero value.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if data[0] != '"' || data[len(data)-1] != '"' || len(data) < 2 {
		t.Time = time.Time{}
		return nil
	}
	*t = ParseTimestamp(string(data[1 : len(data)-1]))
	return nil
}

// MarshalJSON emits RFC 3339, or null for the zero value.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}
