// Package testutil provides seeded generators of synthetic structure
// collections for tests and benchmarks.
package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/centermap/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Atoms generates one structure of n atoms drawn uniformly from species.
func (r *RNG) Atoms(n int, species []model.Species) model.Atoms {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.atoms(n, species)
}

func (r *RNG) atoms(n int, species []model.Species) model.Atoms {
	atoms := make(model.Atoms, n)
	for i := range atoms {
		atoms[i] = species[r.rand.Intn(len(species))]
	}
	return atoms
}

// Structures generates num structures with between 0 and maxAtoms atoms each.
func (r *RNG) Structures(num, maxAtoms int, species []model.Species) []model.Structure {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Structure, num)
	for i := range out {
		out[i] = r.atoms(r.rand.Intn(maxAtoms+1), species)
	}
	return out
}

// Subset returns a sorted random subset of [0, n) where each element is kept
// with probability p.
func (r *RNG) Subset(n int, p float64) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, 0, int(float64(n)*p)+1)
	for i := range n {
		if r.rand.Float64() < p {
			out = append(out, i)
		}
	}
	return out
}

// Positions returns, per structure, the local positions of atoms of sp.
// It is the brute-force reference used to check translated selections.
func Positions(structures []model.Structure, sp model.Species) [][]int {
	out := make([][]int, len(structures))
	for s, st := range structures {
		out[s] = []int{}
		for i := range st.Len() {
			if sp == model.AnySpecies || st.SpeciesAt(i) == sp {
				out[s] = append(out[s], i)
			}
		}
	}
	return out
}
