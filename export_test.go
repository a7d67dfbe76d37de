package centermap

import (
	"encoding/json"
	"testing"

	"github.com/hupe1980/centermap/model"
	"github.com/hupe1980/centermap/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	l := buildScenario(t)
	doc := l.Export()

	assert.True(t, doc.Partitioned)
	assert.Equal(t, []int{3, 2}, doc.Sizes)
	require.Len(t, doc.Partitions, 2)
	assert.Equal(t, PartitionDoc{
		Species: spA,
		Strides: []int{0, 2, 3},
		Maps:    [][]int{{0, 2}, {1}},
		Bucket:  []int{0, 2, 4},
	}, doc.Partitions[0])
	assert.Equal(t, PartitionDoc{
		Species: spB,
		Strides: []int{0, 1, 2},
		Maps:    [][]int{{1}, {0}},
		Bucket:  []int{1, 3},
	}, doc.Partitions[1])

	data, err := json.Marshal(l)
	require.NoError(t, err)
	var decoded LayoutDoc
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc, decoded)
}

func TestRestoreRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(21)
	species := []model.Species{1, 6, 8}
	structures := rng.Structures(25, 20, species)

	l, err := BuildBySpecies(structures, model.NewSpeciesSet(species...))
	require.NoError(t, err)

	r, err := Restore(l.Export(), WithUnsortedSelections())
	require.NoError(t, err)
	assert.Equal(t, l.Export(), r.Export())

	for _, sp := range species {
		want, err := l.TranslateSpecies(sp, l.Ordinals(sp))
		require.NoError(t, err)
		got, err := r.TranslateSpecies(sp, l.Ordinals(sp))
		require.NoError(t, err)
		assert.Equal(t, want.Lists(), got.Lists())
	}

	for s := range structures {
		for i := range structures[s].Len() {
			loc := model.Location{Structure: s, Local: i}
			wantSp, wantOrd, _ := l.Ordinal(loc)
			gotSp, gotOrd, ok := r.Ordinal(loc)
			require.True(t, ok)
			assert.Equal(t, wantSp, gotSp)
			assert.Equal(t, wantOrd, gotOrd)
		}
	}
}

func TestRestoreInvalid(t *testing.T) {
	valid := func() LayoutDoc { return buildScenario(t).Export() }

	cases := map[string]func(d *LayoutDoc){
		"no partitions": func(d *LayoutDoc) { d.Partitions = nil },
		"unpartitioned with species": func(d *LayoutDoc) {
			d.Partitioned = false
		},
		"any species in partitioned": func(d *LayoutDoc) {
			d.Partitions[1].Species = model.AnySpecies
		},
		"duplicate species": func(d *LayoutDoc) {
			d.Partitions[1].Species = spA
		},
		"strides not monotonic": func(d *LayoutDoc) {
			d.Partitions[0].Strides = []int{0, 3, 2}
		},
		"strides length": func(d *LayoutDoc) {
			d.Partitions[0].Strides = []int{0, 3}
		},
		"map disagrees with strides": func(d *LayoutDoc) {
			d.Partitions[0].Maps[0] = []int{0}
		},
		"local out of range": func(d *LayoutDoc) {
			d.Partitions[0].Maps[1] = []int{5}
		},
		"atom mapped twice": func(d *LayoutDoc) {
			d.Partitions[1].Maps[0] = []int{0}
		},
		"atom unmapped": func(d *LayoutDoc) {
			d.Sizes[0] = 4
		},
		"bucket mismatch": func(d *LayoutDoc) {
			d.Partitions[0].Bucket = []int{0, 1, 4}
		},
		"negative size": func(d *LayoutDoc) {
			d.Sizes[1] = -1
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			doc := valid()
			mutate(&doc)
			l, err := Restore(doc)
			assert.ErrorIs(t, err, ErrInvalidLayout)
			assert.Nil(t, l)
		})
	}
}
