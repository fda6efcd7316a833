package plan

import (
	"fmt"

	"github.com/samber/lo"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
)

// FileDescriptor describes one chaff file before any content exists.
type FileDescriptor struct {
	Kind      Kind   `toml:"kind"`
	SizeBytes uint64 `toml:"size_bytes"`
	Language  string `toml:"language"`
	Name      string `toml:"name"`
}

// PlanSet is an ordered, immutable collection of descriptors with unique names.
type PlanSet struct {
	descriptors []FileDescriptor
	index       map[string]int
}

// Partition splits a plan by category, keeping plan order inside each slice.
type Partition struct {
	Emails       []FileDescriptor
	Documents    []FileDescriptor
	Spreadsheets []FileDescriptor
	Images       []FileDescriptor
}

// NewPlanSet validates descriptors and copies them into a PlanSet.
func NewPlanSet(descriptors []FileDescriptor) (*PlanSet, error) {
	ps := &PlanSet{
		descriptors: make([]FileDescriptor, len(descriptors)),
		index:       make(map[string]int, len(descriptors)),
	}
	for i, d := range descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: descriptor %d has no name", cerrors.ErrInvalidDescriptor, i)
		}
		if !d.Kind.Valid() {
			return nil, fmt.Errorf("%w: %s has kind %q", cerrors.ErrInvalidDescriptor, d.Name, d.Kind)
		}
		if _, exists := ps.index[d.Name]; exists {
			return nil, fmt.Errorf("%w: %s", cerrors.ErrDuplicateFileName, d.Name)
		}
		ps.descriptors[i] = d
		ps.index[d.Name] = i
	}
	return ps, nil
}

// Len returns the number of planned files.
func (ps *PlanSet) Len() int {
	return len(ps.descriptors)
}

// All returns a copy of the descriptors in plan order.
func (ps *PlanSet) All() []FileDescriptor {
	out := make([]FileDescriptor, len(ps.descriptors))
	copy(out, ps.descriptors)
	return out
}

// Get looks a descriptor up by name.
func (ps *PlanSet) Get(name string) (FileDescriptor, bool) {
	i, ok := ps.index[name]
	if !ok {
		return FileDescriptor{}, false
	}
	return ps.descriptors[i], true
}

// Contains reports whether name is part of the plan.
func (ps *PlanSet) Contains(name string) bool {
	_, ok := ps.index[name]
	return ok
}

// Partition groups the plan into emails, documents, spreadsheets and images.
func (ps *PlanSet) Partition() Partition {
	byCategory := lo.GroupBy(ps.descriptors, func(d FileDescriptor) Category {
		return d.Kind.Category()
	})
	return Partition{
		Emails:       byCategory[CategoryEmail],
		Documents:    byCategory[CategoryDocument],
		Spreadsheets: byCategory[CategorySpreadsheet],
		Images:       byCategory[CategoryImage],
	}
}

// OfKinds returns the descriptors whose kind is one of kinds, in plan order.
func (ps *PlanSet) OfKinds(kinds ...Kind) []FileDescriptor {
	return lo.Filter(ps.descriptors, func(d FileDescriptor, _ int) bool {
		return lo.Contains(kinds, d.Kind)
	})
}

// Names returns every file name in plan order.
func Names(descriptors []FileDescriptor) []string {
	return lo.Map(descriptors, func(d FileDescriptor, _ int) string {
		return d.Name
	})
}
