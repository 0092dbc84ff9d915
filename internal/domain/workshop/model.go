package workshop

import (
	"errors"
	"strings"
	"time"
)

// Visibility values for a fully loaded workshop.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ValidVisibilities contains all valid visibility values.
var ValidVisibilities = []Visibility{VisibilityPublic, VisibilityPrivate}

// Domain errors
var (
	ErrNotFound          = errors.New("workshop not found")
	ErrEmptyType         = errors.New("workshop type cannot be empty")
	ErrEmptyPlace        = errors.New("workshop place name cannot be empty")
	ErrNegativeUpvotes   = errors.New("workshop upvotes cannot be negative")
	ErrInvalidVisibility = errors.New("workshop visibility must be one of: public, private")
)

// Place is where a workshop happens. MapURL is optional.
type Place struct {
	Name   string `json:"name"`
	MapURL string `json:"mapUrl,omitempty"`
}

// BaseWorkshop is the summary record shown in list views.
// Date is a timestamp in epoch milliseconds.
type BaseWorkshop struct {
	ID      int      `json:"id"`
	Type    string   `json:"type"`
	Place   Place    `json:"place"`
	Date    int64    `json:"date"`
	Tags    []string `json:"tags"`
	Upvotes int      `json:"upvotes"`
	Teaser  string   `json:"teaser"`
}

// Validate checks the fields a workshop needs before it is listed.
// PRE: BaseWorkshop struct is populated
// POST: Returns nil if valid, error otherwise
func (w *BaseWorkshop) Validate() error {
	if strings.TrimSpace(w.Type) == "" {
		return ErrEmptyType
	}
	if strings.TrimSpace(w.Place.Name) == "" {
		return ErrEmptyPlace
	}
	if w.Upvotes < 0 {
		return ErrNegativeUpvotes
	}
	return nil
}

// Time returns the workshop date in the given location.
// A nil location means time.Local.
func (w BaseWorkshop) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(w.Date).In(loc)
}

// Content is any detail payload a full workshop can carry.
type Content interface {
	ContentKind() string
}

// Workshop is the full detail view of a single workshop.
type Workshop[C Content] struct {
	BaseWorkshop
	Facilitators []string   `json:"facilitators"`
	Visibility   Visibility `json:"visibility"`
	Content      C          `json:"content"`
}

// Valid reports whether v is a known visibility.
func (v Visibility) Valid() bool {
	for _, known := range ValidVisibilities {
		if v == known {
			return true
		}
	}
	return false
}
