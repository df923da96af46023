// ABOUTME: Data models for the mobile directory
// ABOUTME: Defines Contact, AddRequest, SearchFilter, ResultSet and the fallback state list
package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Contact is one directory row as the backend returns it.
type Contact struct {
	Number    string     `json:"number"`
	Place     string     `json:"place"`
	District  string     `json:"district"`
	State     string     `json:"state"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
}

// Label renders a contact the way every surface lists it.
func (c Contact) Label() string {
	return c.Number + " — " + c.Place + ", " + c.District + ", " + c.State
}

// Timestamp accepts the handful of layouts a backend is likely to emit.
// Unknown layouts decode to the zero time rather than failing the whole row.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil //nolint:nilerr // Non-string timestamps are ignored
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Entry is the structured add payload.
type Entry struct {
	Number   string `json:"number"`
	Place    string `json:"place"`
	District string `json:"district"`
	State    string `json:"state"`
}

// AddRequest holds exactly one of the two add payload shapes.
type AddRequest struct {
	entry *Entry
	text  *string
}

// NewEntryRequest wraps a structured entry.
func NewEntryRequest(e Entry) AddRequest {
	return AddRequest{entry: &e}
}

// NewTextRequest wraps a free-text line. The text is kept verbatim.
func NewTextRequest(text string) AddRequest {
	return AddRequest{text: &text}
}

func (r AddRequest) Entry() (Entry, bool) {
	if r.entry == nil {
		return Entry{}, false
	}
	return *r.entry, true
}

func (r AddRequest) Text() (string, bool) {
	if r.text == nil {
		return "", false
	}
	return *r.text, true
}

func (r AddRequest) IsFreeText() bool {
	return r.text != nil
}

func (r AddRequest) MarshalJSON() ([]byte, error) {
	if r.text != nil {
		return json.Marshal(struct {
			Text string `json:"text"`
		}{Text: *r.text})
	}
	if r.entry != nil {
		return json.Marshal(r.entry)
	}
	return []byte("{}"), nil
}

// SearchFilter is a sparse place/district/state criterion.
type SearchFilter struct {
	Place    string `json:"place,omitempty"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
}

// Trimmed returns the filter with surrounding whitespace removed from every field.
func (f SearchFilter) Trimmed() SearchFilter {
	return SearchFilter{
		Place:    strings.TrimSpace(f.Place),
		District: strings.TrimSpace(f.District),
		State:    strings.TrimSpace(f.State),
	}
}

// IsEmpty reports whether the filter selects every contact.
func (f SearchFilter) IsEmpty() bool {
	return f.Trimmed() == SearchFilter{}
}

// ResultSet is the outcome of one search. A nil *ResultSet means no search has run.
type ResultSet struct {
	Filter   SearchFilter
	Contacts []Contact
}

func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Contacts)
}

// fallbackStates is used whenever the backend state list cannot be loaded.
var fallbackStates = []string{
	"Tamil Nadu",
	"Kerala",
	"Karnataka",
	"Andhra Pradesh",
	"Telangana",
}

// FallbackStates returns a fresh copy of the fixed state list.
func FallbackStates() []string {
	out := make([]string, len(fallbackStates))
	copy(out, fallbackStates)
	return out
}
