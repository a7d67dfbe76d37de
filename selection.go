package centermap

import (
	"iter"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/centermap/codec"
	"github.com/hupe1980/centermap/internal/bitmap"
	"github.com/hupe1980/centermap/model"
)

// Selection holds, for every structure, the ascending duplicate-free local
// positions of the selected atoms. Each translation returns a fresh Selection
// owned by the caller.
type Selection struct {
	sizes  []int
	locals [][]int
}

func newSelectionFromSets(sizes []int, sets []*bitmap.LocalSet) *Selection {
	sel := &Selection{
		sizes:  slices.Clone(sizes),
		locals: make([][]int, len(sizes)),
	}
	for s := range sel.locals {
		if s < len(sets) && sets[s] != nil {
			sel.locals[s] = sets[s].Ints()
		} else {
			sel.locals[s] = []int{}
		}
	}
	return sel
}

// NewSelection creates a Selection from per-structure lists of local
// positions. sizes holds the number of atoms of each structure. Lists are
// sorted and deduplicated; positions outside a structure fail with
// ErrInvalidSelection.
func NewSelection(sizes []int, locals [][]int) (*Selection, error) {
	if len(locals) != len(sizes) {
		return nil, invalidSelection("%d lists for %d structures", len(locals), len(sizes))
	}
	sets := make([]*bitmap.LocalSet, len(sizes))
	for s, list := range locals {
		if sizes[s] < 0 {
			return nil, invalidSelection("negative size %d for structure %d", sizes[s], s)
		}
		set := bitmap.New()
		for _, local := range list {
			if local < 0 || local >= sizes[s] {
				return nil, invalidSelection("local position %d outside structure %d of %d atoms", local, s, sizes[s])
			}
			if err := set.Add(local); err != nil {
				return nil, err
			}
		}
		sets[s] = set
	}
	return newSelectionFromSets(sizes, sets), nil
}

// Len returns the number of structures.
func (s *Selection) Len() int { return len(s.locals) }

func (s *Selection) has(i int) bool { return i >= 0 && i < len(s.locals) }

// StructureLen returns the number of atoms in structure i, or 0 if i is out
// of range.
func (s *Selection) StructureLen(i int) int {
	if !s.has(i) {
		return 0
	}
	return s.sizes[i]
}

// Structure returns the selected local positions of structure i, ascending.
// It returns nil if i is out of range.
func (s *Selection) Structure(i int) []int {
	if !s.has(i) {
		return nil
	}
	return slices.Clone(s.locals[i])
}

// Count returns the number of selected atoms across all structures.
func (s *Selection) Count() int {
	n := 0
	for _, list := range s.locals {
		n += len(list)
	}
	return n
}

// Lists returns a deep copy of the per-structure lists.
func (s *Selection) Lists() [][]int {
	out := make([][]int, len(s.locals))
	for i, list := range s.locals {
		out[i] = slices.Clone(list)
	}
	return out
}

// Sizes returns the number of atoms of every structure.
func (s *Selection) Sizes() []int { return slices.Clone(s.sizes) }

// Mask returns a mask over the atoms of structure i with the selected bits set.
// It returns nil if i is out of range.
func (s *Selection) Mask(i int) *bitset.BitSet {
	if !s.has(i) {
		return nil
	}
	mask := bitset.New(uint(s.sizes[i]))
	for _, local := range s.locals[i] {
		mask.Set(uint(local))
	}
	return mask
}

// All iterates over the selected atoms in structure then position order.
func (s *Selection) All() iter.Seq[model.Location] {
	return func(yield func(model.Location) bool) {
		for i, list := range s.locals {
			for _, local := range list {
				if !yield(model.Location{Structure: i, Local: local}) {
					return
				}
			}
		}
	}
}

type selectionDoc struct {
	Sizes  []int   `json:"sizes"`
	Locals [][]int `json:"locals"`
}

// MarshalJSON encodes the selection as {"sizes": [...], "locals": [[...], ...]}.
func (s *Selection) MarshalJSON() ([]byte, error) {
	return codec.Default.Marshal(selectionDoc{Sizes: s.sizes, Locals: s.locals})
}

// UnmarshalJSON decodes and validates a selection produced by MarshalJSON.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var doc selectionDoc
	if err := codec.Default.Unmarshal(data, &doc); err != nil {
		return err
	}
	sel, err := NewSelection(doc.Sizes, doc.Locals)
	if err != nil {
		return err
	}
	*s = *sel
	return nil
}
