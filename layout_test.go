package centermap

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/hupe1980/centermap/model"
	"github.com/hupe1980/centermap/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	spA model.Species = 1
	spB model.Species = 2
)

// scenario returns structures [A, B, A] and [B, A].
func scenario() []model.Structure {
	return []model.Structure{
		model.Atoms{spA, spB, spA},
		model.Atoms{spB, spA},
	}
}

func buildScenario(t *testing.T, optFns ...Option) *Layout {
	t.Helper()
	l, err := BuildBySpecies(scenario(), model.NewSpeciesSet(spA, spB), optFns...)
	require.NoError(t, err)
	return l
}

func TestBuildBySpecies(t *testing.T) {
	l := buildScenario(t)

	assert.True(t, l.Partitioned())
	assert.Equal(t, []model.Species{spA, spB}, l.Species())
	assert.Equal(t, 2, l.NumStructures())
	assert.Equal(t, 5, l.NumAtoms())

	assert.Equal(t, []int{0, 2, 3}, l.Strides(spA))
	assert.Equal(t, []int{0, 1, 2}, l.Strides(spB))
	assert.Equal(t, map[model.Species]int{spA: 3, spB: 2}, l.Totals())

	assert.Equal(t, map[int]int{0: 0, 1: 2}, l.IndexMap(spA, 0))
	assert.Equal(t, map[int]int{2: 1}, l.IndexMap(spA, 1))
	assert.Equal(t, map[int]int{0: 1}, l.IndexMap(spB, 0))
	assert.Equal(t, map[int]int{1: 0}, l.IndexMap(spB, 1))

	assert.Equal(t, []int{0, 2, 4}, l.Bucket(spA))
	assert.Equal(t, []int{1, 3}, l.Bucket(spB))

	assert.Nil(t, l.Strides(99))
	assert.Nil(t, l.Bucket(99))
	assert.Nil(t, l.IndexMap(99, 0))
	assert.Zero(t, l.Total(99))
}

func TestBuildBySpeciesInvalidSpecies(t *testing.T) {
	structures := []model.Structure{
		model.Atoms{spA, spA},
		model.Atoms{spB, 7},
	}
	l, err := BuildBySpecies(structures, model.NewSpeciesSet(spA, spB))
	require.Error(t, err)
	assert.Nil(t, l)
	assert.ErrorIs(t, err, ErrInvalidSpecies)

	var ise *InvalidSpeciesError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, model.Species(7), ise.Species)
	assert.Equal(t, 1, ise.Structure)
	assert.Equal(t, 1, ise.Atom)
	assert.Equal(t, []model.Species{spA, spB}, ise.Declared)
}

func TestBuildArgumentErrors(t *testing.T) {
	t.Run("empty species set", func(t *testing.T) {
		_, err := BuildBySpecies(scenario(), model.NewSpeciesSet())
		assert.ErrorIs(t, err, ErrEmptySpeciesSet)
	})

	t.Run("reserved species", func(t *testing.T) {
		_, err := BuildBySpecies(scenario(), model.NewSpeciesSet(spA, spB, model.AnySpecies))
		assert.ErrorIs(t, err, ErrInvalidSpecies)
	})

	t.Run("nil structure", func(t *testing.T) {
		_, err := Build([]model.Structure{model.Atoms{0}, nil})
		assert.ErrorIs(t, err, ErrNilStructure)
	})
}

func TestBuildUnpartitioned(t *testing.T) {
	l, err := Build(scenario())
	require.NoError(t, err)

	assert.False(t, l.Partitioned())
	assert.Equal(t, []model.Species{model.AnySpecies}, l.Species())
	assert.Equal(t, []int{0, 3, 5}, l.Strides(model.AnySpecies))
	assert.Equal(t, 5, l.Total(model.AnySpecies))
	assert.Equal(t, map[int]int{0: 0, 1: 1, 2: 2}, l.IndexMap(model.AnySpecies, 0))
	assert.Equal(t, map[int]int{3: 0, 4: 1}, l.IndexMap(model.AnySpecies, 1))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, l.Bucket(model.AnySpecies))
}

func TestBuildEmptyCollection(t *testing.T) {
	l, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, l.NumStructures())
	assert.Equal(t, []int{0}, l.Strides(model.AnySpecies))
	assert.Empty(t, l.Ordinals(model.AnySpecies))
}

func TestBuildEmptyStructures(t *testing.T) {
	structures := []model.Structure{model.Atoms{}, model.Atoms{spA}, model.Atoms{}, model.Atoms{spB, spA}}
	l, err := BuildBySpecies(structures, model.NewSpeciesSet(spA, spB))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 1, 1, 2}, l.Strides(spA))
	assert.Equal(t, []int{0, 0, 0, 0, 1}, l.Strides(spB))
}

func TestStrideProperties(t *testing.T) {
	rng := testutil.NewRNG(42)
	species := []model.Species{1, 6, 7, 8}
	structures := rng.Structures(50, 40, species)

	l, err := BuildBySpecies(structures, model.NewSpeciesSet(species...))
	require.NoError(t, err)

	for _, sp := range species {
		positions := testutil.Positions(structures, sp)
		strides := l.Strides(sp)
		require.Len(t, strides, len(structures)+1)
		assert.Equal(t, 0, strides[0])

		total := 0
		for s := range structures {
			assert.LessOrEqual(t, strides[s], strides[s+1], "monotonic")
			assert.Equal(t, len(positions[s]), strides[s+1]-strides[s], "partition completeness")
			assert.Equal(t, positions[s], append([]int{}, l.Locals(sp, s)...))
			assert.Len(t, l.IndexMap(sp, s), strides[s+1]-strides[s])
			total += len(positions[s])
		}
		assert.Equal(t, total, strides[len(strides)-1])
		assert.Equal(t, total, l.Total(sp))
		assert.Len(t, l.Bucket(sp), total)
	}
}

func TestLocateAndOrdinal(t *testing.T) {
	rng := testutil.NewRNG(9)
	species := []model.Species{1, 8}
	structures := rng.Structures(20, 15, species)

	l, err := BuildBySpecies(structures, model.NewSpeciesSet(species...))
	require.NoError(t, err)

	for _, sp := range species {
		for _, ord := range l.Ordinals(sp) {
			loc, err := l.Locate(sp, ord)
			require.NoError(t, err)
			assert.Equal(t, sp, structures[loc.Structure].SpeciesAt(loc.Local))

			gotSp, gotOrd, ok := l.Ordinal(loc)
			require.True(t, ok)
			assert.Equal(t, sp, gotSp)
			assert.Equal(t, ord, gotOrd)
		}
	}

	_, err = l.Locate(1, l.Total(1))
	assert.ErrorIs(t, err, ErrOrdinalOutOfRange)
	_, err = l.Locate(99, 0)
	assert.ErrorIs(t, err, ErrUnknownSpecies)

	_, _, ok := l.Ordinal(model.Location{Structure: -1})
	assert.False(t, ok)
	_, _, ok = l.Ordinal(model.Location{Structure: 0, Local: 1 << 20})
	assert.False(t, ok)
}

func TestSpeciesMask(t *testing.T) {
	l := buildScenario(t)

	a := l.SpeciesMask(spA, 0)
	b := l.SpeciesMask(spB, 0)
	assert.Equal(t, uint(2), a.Count())
	assert.True(t, a.Test(0))
	assert.True(t, a.Test(2))
	assert.Equal(t, uint(0), a.IntersectionCardinality(b))
	assert.Equal(t, uint(3), a.UnionCardinality(b))

	assert.Equal(t, uint(0), l.SpeciesMask(99, 0).Count())
}

func TestStructureAccessorsOutOfRange(t *testing.T) {
	l := buildScenario(t)

	for _, s := range []int{-1, 2, 5} {
		assert.Zero(t, l.StructureLen(s))
		assert.Nil(t, l.Locals(spA, s))
		assert.Nil(t, l.IndexMap(spA, s))
		assert.Nil(t, l.SpeciesMask(spA, s))
	}
	assert.Equal(t, 2, l.StructureLen(1))
}

func TestBuildMetricsAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &BasicMetricsCollector{}

	_ = buildScenario(t, WithLogger(logger), WithMetricsCollector(metrics))
	_, err := BuildBySpecies(scenario(), model.NewSpeciesSet(spA), WithLogger(logger), WithMetricsCollector(metrics))
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BuildErrors)
	assert.Equal(t, int64(5), stats.BuildAtoms)

	out := buf.String()
	assert.Contains(t, out, "layout built")
	assert.Contains(t, out, `"atoms":5`)
	assert.Contains(t, out, "layout build failed")
}
