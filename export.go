package centermap

import (
	"slices"
	"time"

	"github.com/hupe1980/centermap/codec"
	"github.com/hupe1980/centermap/internal/stride"
	"github.com/hupe1980/centermap/model"
)

// LayoutDoc is the plain-container form of a Layout.
type LayoutDoc struct {
	Partitioned bool           `json:"partitioned"`
	Sizes       []int          `json:"sizes"`
	Partitions  []PartitionDoc `json:"partitions"`
}

// PartitionDoc is the numbering of one species.
//
// Maps[s][k] is the local position in structure s of ordinal Strides[s]+k.
// Bucket[ord] is the collection-wide atom index of ordinal ord.
type PartitionDoc struct {
	Species model.Species `json:"species"`
	Strides []int         `json:"strides"`
	Maps    [][]int       `json:"maps"`
	Bucket  []int         `json:"bucket,omitempty"`
}

// Export returns a deep copy of the layout as plain containers.
func (l *Layout) Export() LayoutDoc {
	doc := LayoutDoc{
		Partitioned: l.partitioned,
		Sizes:       slices.Clone(l.sizes),
		Partitions:  make([]PartitionDoc, 0, len(l.species)),
	}
	for _, sp := range l.species {
		p := l.parts[sp]
		maps := make([][]int, len(p.locals))
		for s, locals := range p.locals {
			maps[s] = slices.Clone(locals)
			if maps[s] == nil {
				maps[s] = []int{}
			}
		}
		pd := PartitionDoc{
			Species: sp,
			Strides: p.strides.Offsets(),
			Maps:    maps,
		}
		if len(p.bucket) > 0 {
			pd.Bucket = slices.Clone(p.bucket)
		}
		doc.Partitions = append(doc.Partitions, pd)
	}
	return doc
}

// MarshalJSON encodes the exported form of the layout.
func (l *Layout) MarshalJSON() ([]byte, error) {
	return codec.Default.Marshal(l.Export())
}

// Restore rebuilds a Layout from its exported form.
//
// The document is fully validated: strides must be monotonic and agree with
// the maps, every atom must be mapped exactly once and buckets, when present,
// must match the maps. Failures wrap ErrInvalidLayout.
func Restore(doc LayoutDoc, optFns ...Option) (*Layout, error) {
	o := applyOptions(optFns)
	start := time.Now()

	l, err := restore(doc)
	atoms := 0
	if l != nil {
		atoms = l.NumAtoms()
	}
	o.metricsCollector.RecordBuild(len(doc.Sizes), atoms, time.Since(start), err)
	o.logger.LogBuild(len(doc.Sizes), atoms, len(doc.Partitions), doc.Partitioned, err)
	if err != nil {
		return nil, err
	}
	l.opts = o
	return l, nil
}

func restore(doc LayoutDoc) (*Layout, error) {
	if len(doc.Partitions) == 0 {
		return nil, invalidLayout("no partitions")
	}
	if !doc.Partitioned && (len(doc.Partitions) != 1 || doc.Partitions[0].Species != model.AnySpecies) {
		return nil, invalidLayout("unpartitioned layout must have a single partition of species %s", model.AnySpecies)
	}

	n := len(doc.Sizes)
	l := &Layout{
		partitioned: doc.Partitioned,
		species:     make([]model.Species, 0, len(doc.Partitions)),
		parts:       make(map[model.Species]*partition, len(doc.Partitions)),
		sizes:       slices.Clone(doc.Sizes),
		atoms:       make([][]slot, n),
	}
	flatOffset := make([]int, n)
	filled := make([][]bool, n)
	for s, size := range doc.Sizes {
		if size < 0 {
			return nil, invalidLayout("negative size %d for structure %d", size, s)
		}
		if s > 0 {
			flatOffset[s] = flatOffset[s-1] + doc.Sizes[s-1]
		}
		l.atoms[s] = make([]slot, size)
		filled[s] = make([]bool, size)
	}

	mapped := 0
	for _, pd := range doc.Partitions {
		sp := pd.Species
		if doc.Partitioned && sp == model.AnySpecies {
			return nil, invalidLayout("species %s in partitioned layout", sp)
		}
		if _, dup := l.parts[sp]; dup {
			return nil, invalidLayout("duplicate species %s", sp)
		}
		tbl, err := stride.FromOffsets(pd.Strides)
		if err != nil {
			return nil, invalidLayout("species %s: %v", sp, err)
		}
		if tbl.Len() != n || len(pd.Maps) != n {
			return nil, invalidLayout("species %s: %d strides and %d maps for %d structures", sp, tbl.Len(), len(pd.Maps), n)
		}

		p := &partition{
			species: sp,
			strides: tbl,
			locals:  make([][]int, n),
			bucket:  make([]int, 0, tbl.Total()),
		}
		for s, locals := range pd.Maps {
			if len(locals) != tbl.Count(s) {
				return nil, invalidLayout("species %s, structure %d: %d entries for stride count %d", sp, s, len(locals), tbl.Count(s))
			}
			lo, _ := tbl.Bounds(s)
			for k, local := range locals {
				if local < 0 || local >= doc.Sizes[s] {
					return nil, invalidLayout("species %s, structure %d: local position %d out of range", sp, s, local)
				}
				if k > 0 && local <= locals[k-1] {
					return nil, invalidLayout("species %s, structure %d: local positions not ascending", sp, s)
				}
				if filled[s][local] {
					return nil, invalidLayout("structure %d: atom %d mapped twice", s, local)
				}
				filled[s][local] = true
				l.atoms[s][local] = slot{species: sp, ordinal: lo + k}
				p.bucket = append(p.bucket, flatOffset[s]+local)
				mapped++
			}
			p.locals[s] = slices.Clone(locals)
		}
		if len(pd.Bucket) > 0 && !slices.Equal(pd.Bucket, p.bucket) {
			return nil, invalidLayout("species %s: bucket does not match maps", sp)
		}

		l.species = append(l.species, sp)
		l.parts[sp] = p
	}

	if mapped != l.NumAtoms() {
		return nil, invalidLayout("%d of %d atoms mapped", mapped, l.NumAtoms())
	}
	return l, nil
}
