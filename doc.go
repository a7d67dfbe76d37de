// Package centermap maps between collection-wide atom numberings and
// structure-local atom positions.
//
// Center-selection algorithms (CUR, FPS, ...) operate on a flat feature matrix
// whose rows are atoms of many independent structures, usually one matrix per
// species. They return row indices in that flat numbering. Downstream code,
// however, addresses atoms by (structure, local position). centermap keeps the
// bookkeeping between the two.
//
// # Layout
//
// A Layout is computed once per structure collection:
//
//   - BuildBySpecies numbers the atoms of every declared species separately.
//     Ordinal k of species A is the k-th atom of species A encountered in
//     structure-then-atom order.
//   - Build numbers all atoms with one counter (model.AnySpecies).
//
// For every species the layout keeps a cumulative stride table
// (strides[s+1]-strides[s] atoms of that species live in structure s) and, per
// structure, the map from ordinal to local position.
//
// # Translation
//
// Translate, TranslateSpecies and TranslateAll convert selected ordinals back
// into one ascending, duplicate-free list of local positions per structure.
// Ordinals are resolved by binary search over the stride table; an ordinal
// equal to a stride boundary belongs to the structure starting there. Out of
// range ordinals and, unless WithUnsortedSelections is set, decreasing
// sequences are rejected before any output is produced.
//
// # Quick Start
//
//	structures := []model.Structure{
//	    model.Atoms{1, 8, 1},
//	    model.Atoms{8, 1},
//	}
//	layout, err := centermap.BuildBySpecies(structures, model.NewSpeciesSet(1, 8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sel, err := layout.TranslateAll(map[model.Species][]int{1: {0, 1}})
//	// sel.Structure(0) == [0 2], sel.Structure(1) == [1]
//
// # Concurrency
//
// Layouts are immutable and may be shared between goroutines. Every
// translation returns a fresh Selection owned by the caller. Rebuild the
// layout when the structure collection changes.
package centermap
