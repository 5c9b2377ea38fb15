// Package model defines the data structures for assertion selection.
package model

import (
	"fmt"
	"sort"
)

// MutantID identifies a mutant across a minimization pass.
type MutantID int

// Location is the source position a mutant was planted at.
type Location struct {
	Owner  string // owning type or package
	Method string
	Line   int
}

// Mutant is a semantically altered program variant.
type Mutant struct {
	ID          MutantID
	Location    Location
	Description string // e.g. "replace + with -"
}

func (mt Mutant) String() string {
	return fmt.Sprintf("mutant %d (%s.%s:%d)", mt.ID, mt.Location.Owner, mt.Location.Method, mt.Location.Line)
}

// MutantRegistry maps mutant ids to their location. It is immutable once built.
type MutantRegistry struct {
	mutants map[MutantID]Mutant
	ordered []MutantID
}

// NewMutantRegistry builds a registry. Duplicate ids keep the first entry.
func NewMutantRegistry(mutants ...Mutant) *MutantRegistry {
	r := &MutantRegistry{mutants: make(map[MutantID]Mutant, len(mutants))}

	for _, mt := range mutants {
		if _, ok := r.mutants[mt.ID]; ok {
			continue
		}

		r.mutants[mt.ID] = mt
		r.ordered = append(r.ordered, mt.ID)
	}

	sort.Slice(r.ordered, func(i, j int) bool { return r.ordered[i] < r.ordered[j] })

	return r
}

// Lookup returns the mutant registered under id.
func (r *MutantRegistry) Lookup(id MutantID) (Mutant, bool) {
	if r == nil {
		return Mutant{}, false
	}

	mt, ok := r.mutants[id]

	return mt, ok
}

// IDs returns every registered id in ascending order.
func (r *MutantRegistry) IDs() []MutantID {
	if r == nil {
		return nil
	}

	out := make([]MutantID, len(r.ordered))
	copy(out, r.ordered)

	return out
}

// All returns every registered mutant in ascending id order.
func (r *MutantRegistry) All() []Mutant {
	if r == nil {
		return nil
	}

	out := make([]Mutant, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.mutants[id])
	}

	return out
}

// Len returns the number of known mutants.
func (r *MutantRegistry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.ordered)
}
