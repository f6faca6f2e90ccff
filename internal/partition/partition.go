// Package partition splits videos into train and test sets by name.
package partition

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFilter = errors.New("invalid filter type")

// FilterType selects how the special list is applied.
type FilterType string

const (
	// In keeps only the listed videos.
	In FilterType = "in"
	// NotIn drops the listed videos.
	NotIn FilterType = "not_in"
	// All keeps every video.
	All FilterType = "all"
)

// ParseFilterType accepts "in", "not_in", "all" or the empty string.
func ParseFilterType(value string) (FilterType, error) {
	switch FilterType(strings.ToLower(strings.TrimSpace(value))) {
	case In:
		return In, nil
	case NotIn, "not-in", "notin":
		return NotIn, nil
	case All, "":
		return All, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFilter, value)
}

// Filter decides membership of a video in a partition.
type Filter struct {
	names map[string]struct{}
	typ   FilterType
}

// NewFilter builds a filter for the special list.
func NewFilter(special []string, typ FilterType) Filter {
	names := make(map[string]struct{}, len(special))
	for _, name := range special {
		names[strings.TrimSpace(name)] = struct{}{}
	}
	return Filter{names: names, typ: typ}
}

// Keep reports whether video belongs to the partition.
func (f Filter) Keep(video string) bool {
	_, listed := f.names[video]
	switch f.typ {
	case In:
		return listed
	case NotIn:
		return !listed
	default:
		return true
	}
}

// Type returns the filter type; the zero type reports All.
func (f Filter) Type() FilterType {
	if f.typ == "" {
		return All
	}
	return f.typ
}
