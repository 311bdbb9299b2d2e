// Package filter computes the visible subset of a record collection
// from a set of typed predicates. Apply is pure: it never mutates its
// input and the same inputs always produce the same output.
package filter

import (
	"strings"
	"time"
)

// All is the sentinel value that disables a predicate.
const All = "all"

// DateRange buckets records by when they were created, relative to a
// reference time.
type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
)

func (d DateRange) String() string {
	switch d {
	case DateRangeToday:
		return "Today"
	case DateRangeWeek:
		return "This Week"
	case DateRangeMonth:
		return "This Month"
	}

	return "All Time"
}

// Record is the filterable surface of a domain record. Types without a
// meaningful status, type, or searchable fields return zero values.
type Record interface {
	StatusValue() string
	TypeValue() string
	CreatedTime() time.Time
	SearchFields() []string
}

// Criteria is the set of active predicates. Zero value matches
// everything.
type Criteria struct {
	Status    string
	Type      string
	DateRange DateRange
	Search    string
}

// Apply returns the elements of items matching every active predicate.
// now anchors the date-range buckets.
func Apply[T Record](items []T, c Criteria, now time.Time) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if !matches(item, c, now) {
			continue
		}

		out = append(out, item)
	}

	return out
}

func matches(r Record, c Criteria, now time.Time) bool {
	if active(c.Status) && !strings.EqualFold(r.StatusValue(), c.Status) {
		return false
	}

	if active(c.Type) && !strings.EqualFold(r.TypeValue(), c.Type) {
		return false
	}

	if c.DateRange != "" && c.DateRange != DateRangeAll {
		if !inRange(r.CreatedTime(), c.DateRange, now) {
			return false
		}
	}

	if c.Search != "" {
		if !matchesSearch(r.SearchFields(), c.Search) {
			return false
		}
	}

	return true
}

func active(predicate string) bool {
	return predicate != "" && !strings.EqualFold(predicate, All)
}

func inRange(t time.Time, d DateRange, now time.Time) bool {
	switch d {
	case DateRangeToday:
		return t.Year() == now.Year() && t.YearDay() == now.YearDay()
	case DateRangeWeek:
		// ISO week starts Monday.
		ty, tw := t.ISOWeek()
		ny, nw := now.ISOWeek()

		return ty == ny && tw == nw
	case DateRangeMonth:
		return t.Year() == now.Year() && t.Month() == now.Month()
	}

	return true
}

func matchesSearch(fields []string, term string) bool {
	term = strings.ToLower(term)

	for _, f := range fields {
		// Missing record fields arrive as empty strings and simply
		// never match.
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}

	return false
}
