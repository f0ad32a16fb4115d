package core

import (
	"strconv"
	"strings"
)

// AllValue is the reserved filter selection that disables a filter.
const AllValue = "all"

// FilterKind tells the surface which control to render for a filter.
type FilterKind string

const (
	FilterSelect FilterKind = "select"
	FilterRange  FilterKind = "range"
)

// FilterOption is one choice offered by a filter control.
type FilterOption struct {
	Value string
	Label string
}

// FilterPredicate decides whether an entity matches the selected filter value.
type FilterPredicate func(e Entity, selected string) bool

// FilterDescriptor declares one filter of a tab.
// Without a Predicate the filter compares the field named Key for equality.
type FilterDescriptor struct {
	Key         string
	Kind        FilterKind
	Placeholder string
	Options     []FilterOption
	Predicate   FilterPredicate
}

// FilterState is the transient search and filter selection of one tab.
type FilterState struct {
	Search   string
	Selected map[string]string
}

// NewFilterState returns an empty state with every filter disabled.
func NewFilterState() FilterState {
	return FilterState{Selected: make(map[string]string)}
}

// Active reports whether the selection for key restricts the collection.
func (s FilterState) Active(key string) bool {
	return isActiveSelection(s.Selected[key])
}

// IsZero reports whether neither search nor any filter is active.
func (s FilterState) IsZero() bool {
	if s.Search != "" {
		return false
	}
	for _, v := range s.Selected {
		if isActiveSelection(v) {
			return false
		}
	}
	return true
}

// Clone returns a copy whose Selected map can be modified independently.
func (s FilterState) Clone() FilterState {
	out := FilterState{Search: s.Search, Selected: make(map[string]string, len(s.Selected))}
	for k, v := range s.Selected {
		out.Selected[k] = v
	}
	return out
}

func isActiveSelection(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, AllValue)
}

// FilterItems returns the entities of items that match the search term on any
// of searchFields and every active filter. Input order is preserved and items
// is never modified.
func FilterItems[E Entity](items []E, searchFields []string, filters []FilterDescriptor, state FilterState) []E {
	result := make([]E, 0, len(items))
	for _, item := range items {
		if Matches(item, searchFields, filters, state) {
			result = append(result, item)
		}
	}
	return result
}

// Matches is the composed predicate behind FilterItems.
func Matches(e Entity, searchFields []string, filters []FilterDescriptor, state FilterState) bool {
	if !matchesSearch(e, searchFields, state.Search) {
		return false
	}
	for _, f := range filters {
		selected := state.Selected[f.Key]
		if !isActiveSelection(selected) {
			continue
		}
		if !matchesFilter(e, f, strings.TrimSpace(selected)) {
			return false
		}
	}
	return true
}

// matchesSearch compares term as typed: surrounding spaces are part of it.
func matchesSearch(e Entity, fields []string, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(FieldString(e, field)), term) {
			return true
		}
	}
	return false
}

func matchesFilter(e Entity, f FilterDescriptor, selected string) bool {
	if f.Predicate != nil {
		return f.Predicate(e, selected)
	}
	v, ok := FieldValue(e, f.Key)
	if !ok {
		return false
	}
	return FormatValue(v) == selected
}

// PredicateAs adapts a predicate written against a concrete entity type.
// Entities of any other type never match.
func PredicateAs[E Entity](fn func(e E, selected string) bool) FilterPredicate {
	return func(e Entity, selected string) bool {
		typed, ok := e.(E)
		if !ok {
			return false
		}
		return fn(typed, selected)
	}
}

// RangePredicate matches a numeric field against a selection of the form
// "min-max", "min-" or "-max". Min is inclusive, max exclusive. Non-numeric
// fields and malformed selections never match.
func RangePredicate(field string) FilterPredicate {
	return func(e Entity, selected string) bool {
		lo, hi, ok := ParseRange(selected)
		if !ok {
			return false
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(FieldString(e, field)), 64)
		if err != nil {
			return false
		}
		if lo != nil && n < *lo {
			return false
		}
		if hi != nil && n >= *hi {
			return false
		}
		return true
	}
}

// ParseRange splits a "min-max" selection into optional bounds.
func ParseRange(s string) (lo, hi *float64, ok bool) {
	s = strings.TrimSpace(s)
	idx := strings.Index(s, "-")
	if idx < 0 {
		return nil, nil, false
	}
	// A leading '-' means "no lower bound", not a negative number.
	loStr, hiStr := strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:])
	if loStr == "" && hiStr == "" {
		return nil, nil, false
	}
	if loStr != "" {
		v, err := strconv.ParseFloat(loStr, 64)
		if err != nil {
			return nil, nil, false
		}
		lo = &v
	}
	if hiStr != "" {
		v, err := strconv.ParseFloat(hiStr, 64)
		if err != nil {
			return nil, nil, false
		}
		hi = &v
	}
	return lo, hi, true
}
