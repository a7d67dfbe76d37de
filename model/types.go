package model

import (
	"fmt"
	"slices"
)

// Species is the type label of an atom (e.g. an atomic number).
type Species int32

// AnySpecies is the implicit species of an unpartitioned layout.
// Every atom belongs to it regardless of its own label.
const AnySpecies Species = -1

// String returns a string representation of the Species.
func (s Species) String() string {
	if s == AnySpecies {
		return "*"
	}
	return fmt.Sprintf("%d", int32(s))
}

// Structure is a read-only view of one atomic configuration.
// Only the number of atoms and the species of each atom are consulted.
type Structure interface {
	// Len returns the number of atoms.
	Len() int
	// SpeciesAt returns the species of the atom at local position i.
	SpeciesAt(i int) Species
}

// Atoms is a Structure backed by a slice of species labels.
type Atoms []Species

// Len implements Structure.
func (a Atoms) Len() int { return len(a) }

// SpeciesAt implements Structure.
func (a Atoms) SpeciesAt(i int) Species { return a[i] }

// Location identifies an atom by its structure and its position within it.
type Location struct {
	Structure int
	Local     int
}

// String returns a string representation of the Location.
func (l Location) String() string {
	return fmt.Sprintf("Loc(%d:%d)", l.Structure, l.Local)
}

// SpeciesSet is an ordered, duplicate-free set of species.
// The order is the declaration order and drives iteration everywhere.
type SpeciesSet struct {
	order []Species
	index map[Species]int
}

// NewSpeciesSet creates a set from the given species, keeping the first
// occurrence of duplicates.
func NewSpeciesSet(species ...Species) SpeciesSet {
	s := SpeciesSet{
		order: make([]Species, 0, len(species)),
		index: make(map[Species]int, len(species)),
	}
	for _, sp := range species {
		if _, ok := s.index[sp]; ok {
			continue
		}
		s.index[sp] = len(s.order)
		s.order = append(s.order, sp)
	}
	return s
}

// Len returns the number of species in the set.
func (s SpeciesSet) Len() int { return len(s.order) }

// Contains reports whether sp is a member of the set.
func (s SpeciesSet) Contains(sp Species) bool {
	_, ok := s.index[sp]
	return ok
}

// IndexOf returns the declaration position of sp, or -1.
func (s SpeciesSet) IndexOf(sp Species) int {
	if i, ok := s.index[sp]; ok {
		return i
	}
	return -1
}

// Species returns a copy of the species in declaration order.
func (s SpeciesSet) Species() []Species {
	return slices.Clone(s.order)
}
