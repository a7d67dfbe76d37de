package centermap

import (
	"time"

	"github.com/hupe1980/centermap/internal/bitmap"
	"github.com/hupe1980/centermap/model"
	"golang.org/x/sync/errgroup"
)

// Translate converts globally numbered ordinals of an unpartitioned layout
// into per-structure local positions.
func (l *Layout) Translate(selected []int) (*Selection, error) {
	if l.partitioned {
		return nil, ErrPartitioned
	}
	return l.translateOne(model.AnySpecies, selected)
}

// TranslateSpecies converts ordinals in the numbering of sp into
// per-structure local positions.
func (l *Layout) TranslateSpecies(sp model.Species, selected []int) (*Selection, error) {
	if !l.partitioned {
		return nil, ErrNotPartitioned
	}
	return l.translateOne(sp, selected)
}

func (l *Layout) translateOne(sp model.Species, selected []int) (*Selection, error) {
	start := time.Now()
	sel, err := l.translateSingle(sp, selected)
	l.record(len(selected), sel, time.Since(start), err)
	return sel, err
}

func (l *Layout) translateSingle(sp model.Species, selected []int) (*Selection, error) {
	p, err := l.lookup(sp)
	if err != nil {
		return nil, err
	}
	sets, err := p.translate(selected, l.opts.allowUnsorted)
	if err != nil {
		return nil, err
	}
	return newSelectionFromSets(l.sizes, sets), nil
}

// TranslateAll converts per-species selections of a partitioned layout and
// merges them into one list of local positions per structure.
//
// Species are processed in the declaration order of the layout. A species
// missing from selected contributes nothing. A species in selected that is not
// part of the layout fails the whole call.
func (l *Layout) TranslateAll(selected map[model.Species][]int) (*Selection, error) {
	start := time.Now()
	n := 0
	for _, ords := range selected {
		n += len(ords)
	}
	sel, err := l.translateAll(selected)
	l.record(n, sel, time.Since(start), err)
	return sel, err
}

func (l *Layout) translateAll(selected map[model.Species][]int) (*Selection, error) {
	if !l.partitioned {
		return nil, ErrNotPartitioned
	}
	for sp := range selected {
		if _, ok := l.parts[sp]; !ok {
			return nil, unknownSpecies(sp)
		}
	}

	results := make([][]*bitmap.LocalSet, len(l.species))
	g := new(errgroup.Group)
	g.SetLimit(l.opts.parallelism)
	for i, sp := range l.species {
		ords, ok := selected[sp]
		if !ok {
			continue
		}
		p := l.parts[sp]
		g.Go(func() error {
			sets, err := p.translate(ords, l.opts.allowUnsorted)
			if err != nil {
				return err
			}
			results[i] = sets
			l.opts.logger.WithSpecies(sp).Debug("species translated", "selected", len(ords))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]*bitmap.LocalSet, len(l.sizes))
	for _, sets := range results {
		for s, set := range sets {
			if set == nil {
				continue
			}
			if merged[s] == nil {
				merged[s] = bitmap.New()
			}
			merged[s].Or(set)
		}
	}
	return newSelectionFromSets(l.sizes, merged), nil
}

func (l *Layout) record(selected int, sel *Selection, d time.Duration, err error) {
	l.opts.metricsCollector.RecordTranslate(selected, d, err)
	translated := 0
	if sel != nil {
		translated = sel.Count()
	}
	l.opts.logger.LogTranslate(selected, translated, err)
}

// translate resolves ordinals of the partition to local positions, grouped by
// structure. Every ordinal is validated before any output is produced.
func (p *partition) translate(selected []int, allowUnsorted bool) ([]*bitmap.LocalSet, error) {
	total := p.strides.Total()
	for i, ord := range selected {
		if ord < 0 || ord >= total {
			return nil, &OrdinalOutOfRangeError{Species: p.species, Ordinal: ord, Total: total}
		}
		if !allowUnsorted && i > 0 && ord < selected[i-1] {
			return nil, &UnsortedSelectionError{
				Species:  p.species,
				Position: i,
				Previous: selected[i-1],
				Value:    ord,
			}
		}
	}

	sets := make([]*bitmap.LocalSet, p.strides.Len())
	for _, ord := range selected {
		s, _ := p.strides.Locate(ord)
		lo, _ := p.strides.Bounds(s)
		if sets[s] == nil {
			sets[s] = bitmap.New()
		}
		if err := sets[s].Add(p.locals[s][ord-lo]); err != nil {
			return nil, err
		}
	}
	return sets, nil
}
