package workshop

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TermKind distinguishes text terms from month terms.
type TermKind uint8

const (
	TermText TermKind = iota
	TermMonth
)

// MonthPrefix marks a raw term that names a calendar month, e.g. "month:2020-06".
const MonthPrefix = "month:"

const monthLayout = "2006-01"

// Term errors
var (
	ErrEmptyTerm    = errors.New("filter term cannot be empty")
	ErrInvalidMonth = errors.New("month term must look like month:YYYY-MM")
)

// FilterTerm is a single filter constraint. Terms combine conjunctively.
// Text terms match type, place name or tags case-insensitively.
// Month terms carry an epoch-millisecond timestamp and match any workshop
// in the same calendar year and month.
// INVARIANT: FilterTerm values are comparable with ==
type FilterTerm struct {
	Kind  TermKind
	Text  string
	Month int64
}

// TextTerm builds a text term.
func TextTerm(s string) FilterTerm {
	return FilterTerm{Kind: TermText, Text: s}
}

// MonthTerm builds a month term from an epoch-millisecond timestamp.
func MonthTerm(ms int64) FilterTerm {
	return FilterTerm{Kind: TermMonth, Month: ms}
}

// ParseFilterTerm turns user input into a term.
// PRE: loc is the calendar used to resolve month terms (nil means time.Local)
// POST: Returns a month term for "month:YYYY-MM", a text term otherwise
func ParseFilterTerm(raw string, loc *time.Location) (FilterTerm, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FilterTerm{}, ErrEmptyTerm
	}
	if !strings.HasPrefix(strings.ToLower(raw), MonthPrefix) {
		return TextTerm(raw), nil
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(monthLayout, strings.TrimSpace(raw[len(MonthPrefix):]), loc)
	if err != nil {
		return FilterTerm{}, fmt.Errorf("%w: %q", ErrInvalidMonth, raw)
	}
	return MonthTerm(t.UnixMilli()), nil
}

// Validate rejects text terms that would match everything.
func (t FilterTerm) Validate() error {
	if t.Kind == TermText && strings.TrimSpace(t.Text) == "" {
		return ErrEmptyTerm
	}
	return nil
}

// Matches reports whether w satisfies the term.
// PRE: loc is the calendar used for month comparison (nil means time.Local)
// POST: Returns true on a case-insensitive text hit or a same year and month date
func (t FilterTerm) Matches(w BaseWorkshop, loc *time.Location) bool {
	if t.Kind == TermMonth {
		if loc == nil {
			loc = time.Local
		}
		wd := w.Time(loc)
		qd := time.UnixMilli(t.Month).In(loc)
		return wd.Year() == qd.Year() && wd.Month() == qd.Month()
	}
	if ContainsFold(w.Type, t.Text) || ContainsFold(w.Place.Name, t.Text) {
		return true
	}
	for _, tag := range w.Tags {
		if ContainsFold(tag, t.Text) {
			return true
		}
	}
	return false
}

// Label renders the term for display.
func (t FilterTerm) Label(loc *time.Location) string {
	if t.Kind == TermMonth {
		if loc == nil {
			loc = time.Local
		}
		return MonthPrefix + time.UnixMilli(t.Month).In(loc).Format(monthLayout)
	}
	return t.Text
}

// MarshalJSON encodes text terms as JSON strings and month terms as numbers.
func (t FilterTerm) MarshalJSON() ([]byte, error) {
	if t.Kind == TermMonth {
		return json.Marshal(t.Month)
	}
	return json.Marshal(t.Text)
}

// UnmarshalJSON accepts a JSON string (text term) or an integer that fits in int64 (month term).
func (t *FilterTerm) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TextTerm(s)
		return nil
	}
	if trimmed == "null" {
		return ErrEmptyTerm
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("filter term must be a string or a number: %w", err)
	}
	ms, err := num.Int64()
	if err != nil {
		return fmt.Errorf("month term %s is not an integer millisecond timestamp: %w", num, err)
	}
	*t = MonthTerm(ms)
	return nil
}

// Candidates returns the type, place name and tags of w that contain query,
// case-insensitively, in that order. Duplicates are not removed.
func (w BaseWorkshop) Candidates(query string) []string {
	var out []string
	if ContainsFold(w.Type, query) {
		out = append(out, w.Type)
	}
	if ContainsFold(w.Place.Name, query) {
		out = append(out, w.Place.Name)
	}
	for _, tag := range w.Tags {
		if ContainsFold(tag, query) {
			out = append(out, tag)
		}
	}
	return out
}

// ContainsFold reports whether substr is within s after lower-casing both.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
