package bitmap

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/centermap/internal/conv"
)

// LocalSet is a set of structure-local atom positions.
type LocalSet struct {
	rb *roaring.Bitmap
}

// New creates a new empty set.
func New() *LocalSet {
	return &LocalSet{
		rb: roaring.New(),
	}
}

// Add adds a local position to the set.
func (s *LocalSet) Add(local int) error {
	v, err := conv.IntToUint32(local)
	if err != nil {
		return err
	}
	s.rb.Add(v)
	return nil
}

// Len returns the number of positions in the set.
func (s *LocalSet) Len() int {
	return int(s.rb.GetCardinality())
}

// Or merges other into s.
func (s *LocalSet) Or(other *LocalSet) {
	if other == nil {
		return
	}
	s.rb.Or(other.rb)
}

// Ints returns the positions in ascending order.
func (s *LocalSet) Ints() []int {
	out := make([]int, 0, s.Len())
	it := s.rb.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}
