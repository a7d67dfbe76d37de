package centermap

import (
	"slices"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/centermap/internal/stride"
	"github.com/hupe1980/centermap/model"
)

// partition holds the numbering of one species (or of all atoms when the
// layout is unpartitioned).
type partition struct {
	species model.Species
	strides stride.Table
	// locals[s][k] is the local position of ordinal strides[s]+k.
	locals [][]int
	// bucket[ord] is the collection-wide atom index of ordinal ord.
	bucket []int
}

// slot is the reverse entry of one atom.
type slot struct {
	species model.Species
	ordinal int
}

// Layout is the stride table and index map of a collection of structures.
//
// A Layout is immutable after construction and safe for concurrent use.
type Layout struct {
	partitioned bool
	species     []model.Species
	parts       map[model.Species]*partition
	sizes       []int
	atoms       [][]slot
	opts        options
}

// BuildBySpecies numbers the atoms of each declared species across the
// collection, structure by structure and atom by atom.
//
// Every atom must carry a species from set, otherwise an *InvalidSpeciesError
// is returned and no layout is built.
func BuildBySpecies(structures []model.Structure, set model.SpeciesSet, optFns ...Option) (*Layout, error) {
	o := applyOptions(optFns)
	start := time.Now()

	l, atoms, err := build(structures, set, true)
	o.metricsCollector.RecordBuild(len(structures), atoms, time.Since(start), err)
	o.logger.LogBuild(len(structures), atoms, set.Len(), true, err)
	if err != nil {
		return nil, err
	}
	l.opts = o
	return l, nil
}

// Build numbers all atoms of the collection with a single running counter.
// The resulting layout has one partition keyed by model.AnySpecies.
func Build(structures []model.Structure, optFns ...Option) (*Layout, error) {
	o := applyOptions(optFns)
	start := time.Now()

	l, atoms, err := build(structures, model.NewSpeciesSet(model.AnySpecies), false)
	o.metricsCollector.RecordBuild(len(structures), atoms, time.Since(start), err)
	o.logger.LogBuild(len(structures), atoms, 1, false, err)
	if err != nil {
		return nil, err
	}
	l.opts = o
	return l, nil
}

func build(structures []model.Structure, set model.SpeciesSet, partitioned bool) (*Layout, int, error) {
	if set.Len() == 0 {
		return nil, 0, ErrEmptySpeciesSet
	}
	if partitioned && set.Contains(model.AnySpecies) {
		return nil, 0, reservedSpecies()
	}

	n := len(structures)
	l := &Layout{
		partitioned: partitioned,
		species:     set.Species(),
		parts:       make(map[model.Species]*partition, set.Len()),
		sizes:       make([]int, n),
		atoms:       make([][]slot, n),
	}
	counts := make(map[model.Species][]int, set.Len())
	for _, sp := range l.species {
		l.parts[sp] = &partition{species: sp, locals: make([][]int, n)}
		counts[sp] = make([]int, n)
	}

	flat := 0
	for s, st := range structures {
		if st == nil {
			return nil, flat, nilStructure(s)
		}
		size := st.Len()
		l.sizes[s] = size
		l.atoms[s] = make([]slot, size)

		for i := range size {
			sp := model.AnySpecies
			if partitioned {
				sp = st.SpeciesAt(i)
			}
			p, ok := l.parts[sp]
			if !ok {
				return nil, flat, &InvalidSpeciesError{
					Species:   sp,
					Structure: s,
					Atom:      i,
					Declared:  set.Species(),
				}
			}
			ord := len(p.bucket)
			p.bucket = append(p.bucket, flat)
			p.locals[s] = append(p.locals[s], i)
			l.atoms[s][i] = slot{species: sp, ordinal: ord}
			flat++
		}
		for _, sp := range l.species {
			counts[sp][s] = len(l.parts[sp].locals[s])
		}
	}

	for _, sp := range l.species {
		tbl, err := stride.FromCounts(counts[sp])
		if err != nil {
			return nil, flat, err
		}
		l.parts[sp].strides = tbl
	}
	return l, flat, nil
}

func (l *Layout) lookup(sp model.Species) (*partition, error) {
	p, ok := l.parts[sp]
	if !ok {
		return nil, unknownSpecies(sp)
	}
	return p, nil
}

// Partitioned reports whether the layout numbers atoms per species.
func (l *Layout) Partitioned() bool { return l.partitioned }

// Species returns the species of the layout in declaration order.
// For an unpartitioned layout this is [model.AnySpecies].
func (l *Layout) Species() []model.Species { return slices.Clone(l.species) }

// NumStructures returns the number of structures in the collection.
func (l *Layout) NumStructures() int { return len(l.sizes) }

// StructureLen returns the number of atoms in structure s, or 0 if s is
// outside the collection.
func (l *Layout) StructureLen(s int) int {
	if !l.hasStructure(s) {
		return 0
	}
	return l.sizes[s]
}

func (l *Layout) hasStructure(s int) bool { return s >= 0 && s < len(l.sizes) }

// NumAtoms returns the number of atoms across all structures.
func (l *Layout) NumAtoms() int {
	total := 0
	for _, n := range l.sizes {
		total += n
	}
	return total
}

// Strides returns the cumulative stride table of sp: one leading zero
// followed by one entry per structure boundary. It returns nil if sp is not
// part of the layout.
func (l *Layout) Strides(sp model.Species) []int {
	p, ok := l.parts[sp]
	if !ok {
		return nil
	}
	return p.strides.Offsets()
}

// Total returns the number of atoms of sp across the collection.
func (l *Layout) Total(sp model.Species) int {
	p, ok := l.parts[sp]
	if !ok {
		return 0
	}
	return p.strides.Total()
}

// Totals returns the final value of the running counter of every species.
func (l *Layout) Totals() map[model.Species]int {
	out := make(map[model.Species]int, len(l.parts))
	for sp, p := range l.parts {
		out[sp] = p.strides.Total()
	}
	return out
}

// Ordinals returns every ordinal of sp, i.e. [0, Total(sp)).
func (l *Layout) Ordinals(sp model.Species) []int {
	out := make([]int, l.Total(sp))
	for i := range out {
		out[i] = i
	}
	return out
}

// Bucket returns, for every ordinal of sp in order, the collection-wide index
// of the atom across all species.
func (l *Layout) Bucket(sp model.Species) []int {
	p, ok := l.parts[sp]
	if !ok {
		return nil
	}
	return slices.Clone(p.bucket)
}

// Locals returns the local positions of the atoms of sp in structure s,
// ascending. It returns nil if sp is not part of the layout or s is outside
// the collection.
func (l *Layout) Locals(sp model.Species, s int) []int {
	p, ok := l.parts[sp]
	if !ok || !l.hasStructure(s) {
		return nil
	}
	return slices.Clone(p.locals[s])
}

// IndexMap returns the map from ordinal of sp to local position for the
// atoms of structure s, or nil under the same conditions as Locals.
func (l *Layout) IndexMap(sp model.Species, s int) map[int]int {
	p, ok := l.parts[sp]
	if !ok || !l.hasStructure(s) {
		return nil
	}
	lo, _ := p.strides.Bounds(s)
	out := make(map[int]int, len(p.locals[s]))
	for k, local := range p.locals[s] {
		out[lo+k] = local
	}
	return out
}

// Locate returns the structure and local position of ordinal ord of sp.
func (l *Layout) Locate(sp model.Species, ord int) (model.Location, error) {
	p, err := l.lookup(sp)
	if err != nil {
		return model.Location{}, err
	}
	s, ok := p.strides.Locate(ord)
	if !ok {
		return model.Location{}, &OrdinalOutOfRangeError{Species: sp, Ordinal: ord, Total: p.strides.Total()}
	}
	lo, _ := p.strides.Bounds(s)
	return model.Location{Structure: s, Local: p.locals[s][ord-lo]}, nil
}

// Ordinal returns the species and ordinal of the atom at loc.
// It returns false if loc is outside the collection.
func (l *Layout) Ordinal(loc model.Location) (model.Species, int, bool) {
	if loc.Structure < 0 || loc.Structure >= len(l.atoms) {
		return 0, 0, false
	}
	atoms := l.atoms[loc.Structure]
	if loc.Local < 0 || loc.Local >= len(atoms) {
		return 0, 0, false
	}
	a := atoms[loc.Local]
	return a.species, a.ordinal, true
}

// SpeciesMask returns a mask over the atoms of structure s with the bits of
// the atoms of sp set. It returns nil if s is outside the collection.
func (l *Layout) SpeciesMask(sp model.Species, s int) *bitset.BitSet {
	if !l.hasStructure(s) {
		return nil
	}
	mask := bitset.New(uint(l.sizes[s]))
	if p, ok := l.parts[sp]; ok {
		for _, local := range p.locals[s] {
			mask.Set(uint(local))
		}
	}
	return mask
}
