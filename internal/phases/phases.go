// Package phases holds the phase-name to class-id mappings of the supported
// surgical workflow datasets.
package phases

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownPhase   = errors.New("unknown phase")
	ErrUnknownDataset = errors.New("unknown dataset")
)

const (
	Cholec80 = "cholec80-workflow-5"
	M2CAI16  = "m2cai16-workflow-5"
)

// Mapping maps a phase name to its class id.
type Mapping map[string]int

// Label returns the class id of phase.
func (m Mapping) Label(phase string) (int, error) {
	label, ok := m[phase]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}
	return label, nil
}

// Names returns the phase names ordered by class id.
func (m Mapping) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if m[names[i]] != m[names[j]] {
			return m[names[i]] < m[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// NumClasses is one past the largest class id.
func (m Mapping) NumClasses() int {
	n := 0
	for _, label := range m {
		if label+1 > n {
			n = label + 1
		}
	}
	return n
}

func cholec80() Mapping {
	return Mapping{
		"Preparation":             0,
		"CalotTriangleDissection": 1,
		"ClippingCutting":         2,
		"GallbladderDissection":   3,
		"GallbladderPackaging":    4,
		"CleaningCoagulation":     5,
		"GallbladderRetraction":   6,
	}
}

func m2cai16() Mapping {
	return Mapping{
		"TrocarPlacement":         0,
		"Preparation":             1,
		"CalotTriangleDissection": 2,
		"ClippingCutting":         3,
		"GallbladderDissection":   4,
		"GallbladderPackaging":    5,
		"CleaningCoagulation":     6,
		"GallbladderRetraction":   7,
	}
}

// Registry resolves dataset names to mappings.
type Registry struct {
	mappings map[string]Mapping
}

// NewRegistry returns a registry holding the built-in mappings.
func NewRegistry() *Registry {
	return &Registry{mappings: map[string]Mapping{
		Cholec80: cholec80(),
		M2CAI16:  m2cai16(),
	}}
}

// Register adds or replaces the mapping of a dataset.
func (r *Registry) Register(dataset string, m Mapping) {
	r.mappings[strings.TrimSpace(dataset)] = m
}

// Lookup returns the mapping registered for dataset.
func (r *Registry) Lookup(dataset string) (Mapping, error) {
	m, ok := r.mappings[strings.TrimSpace(dataset)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	return m, nil
}

// Datasets lists the registered dataset names.
func (r *Registry) Datasets() []string {
	names := make([]string, 0, len(r.mappings))
	for name := range r.mappings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
