// Package entry defines the credential record shape shared by the engine,
// search, and password-quality analysis (spec §3).
package entry

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is a single credential record.
//
// Invariants: ID is unique within a vault, Title is trimmed-non-empty, and
// UpdatedAt is never before CreatedAt.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	URL       string    `json:"url,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	IconURL   string    `json:"icon_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Preview is the only shape search results may expose: {id, title,
// username, icon_url}. It never carries a password, URL, or notes.
type Preview struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Username string `json:"username"`
	IconURL  string `json:"icon_url,omitempty"`
}

// ToPreview projects an Entry down to its searchable, secret-free shape.
func (e Entry) ToPreview() Preview {
	return Preview{ID: e.ID, Title: e.Title, Username: e.Username, IconURL: e.IconURL}
}

// Fields are the user-supplied, mutable fields of an Entry (everything but
// ID and the timestamps, which the engine owns).
type Fields struct {
	Title    string
	Username string
	Password string
	URL      string
	Notes    string
	IconURL  string
}

// Validate checks Fields against the invariants in spec §3: Title must be
// non-empty once trimmed.
func (f Fields) Validate() error {
	if len(strings.TrimSpace(f.Title)) == 0 {
		return ErrEmptyTitle
	}

	return nil
}

// New builds a fresh Entry from validated fields, assigning a new id and
// setting both timestamps to now.
func New(f Fields, now time.Time) (Entry, error) {
	if err := f.Validate(); err != nil {
		return Entry{}, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		ID:        id.URN(),
		Title:     f.Title,
		Username:  f.Username,
		Password:  f.Password,
		URL:       f.URL,
		Notes:     f.Notes,
		IconURL:   f.IconURL,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply overwrites the mutable fields of e with f and bumps UpdatedAt to
// now. now must not be before e.CreatedAt; the engine is responsible for
// passing a monotonically non-decreasing clock.
func (e Entry) Apply(f Fields, now time.Time) (Entry, error) {
	if err := f.Validate(); err != nil {
		return Entry{}, err
	}

	e.Title = f.Title
	e.Username = f.Username
	e.Password = f.Password
	e.URL = f.URL
	e.Notes = f.Notes
	e.IconURL = f.IconURL

	if now.Before(e.UpdatedAt) {
		now = e.UpdatedAt
	}

	e.UpdatedAt = now

	return e, nil
}

// Field identifies a single secret-bearing field exposable via
// request_secret.
type Field string

const (
	FieldPassword Field = "password"
	FieldUsername Field = "username"
	FieldURL      Field = "url"
	FieldNotes    Field = "notes"
)

// Value returns the value of field f on e, or ("", false) if f is not a
// recognized request_secret field.
func (e Entry) Value(f Field) (string, bool) {
	switch f {
	case FieldPassword:
		return e.Password, true
	case FieldUsername:
		return e.Username, true
	case FieldURL:
		return e.URL, true
	case FieldNotes:
		return e.Notes, true
	default:
		return "", false
	}
}
