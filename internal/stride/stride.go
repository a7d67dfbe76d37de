package stride

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrInvalid is returned when counts or offsets violate the table invariants.
var ErrInvalid = errors.New("invalid stride table")

// Table is an immutable cumulative offset table.
type Table struct {
	offsets []int
}

// FromCounts builds a Table from per-structure counts.
// The result is the prefix sum of counts with a leading zero.
func FromCounts(counts []int) (Table, error) {
	offsets := make([]int, len(counts)+1)
	for i, c := range counts {
		if c < 0 {
			return Table{}, fmt.Errorf("%w: negative count %d at structure %d", ErrInvalid, c, i)
		}
		offsets[i+1] = offsets[i] + c
	}
	return Table{offsets: offsets}, nil
}

// FromOffsets builds a Table from already accumulated offsets.
// The offsets are copied and must start at zero and be non-decreasing.
func FromOffsets(offsets []int) (Table, error) {
	if len(offsets) == 0 {
		return Table{}, fmt.Errorf("%w: missing leading zero", ErrInvalid)
	}
	if offsets[0] != 0 {
		return Table{}, fmt.Errorf("%w: first offset is %d, want 0", ErrInvalid, offsets[0])
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return Table{}, fmt.Errorf("%w: offset %d at %d is below %d", ErrInvalid, offsets[i], i, offsets[i-1])
		}
	}
	return Table{offsets: slices.Clone(offsets)}, nil
}

// Len returns the number of structures covered by the table.
func (t Table) Len() int {
	if len(t.offsets) == 0 {
		return 0
	}
	return len(t.offsets) - 1
}

// Total returns the number of ordinals across all structures.
func (t Table) Total() int {
	if len(t.offsets) == 0 {
		return 0
	}
	return t.offsets[len(t.offsets)-1]
}

// Bounds returns the half-open ordinal interval owned by structure i.
func (t Table) Bounds(i int) (lo, hi int) {
	return t.offsets[i], t.offsets[i+1]
}

// Count returns the number of ordinals owned by structure i.
func (t Table) Count(i int) int {
	return t.offsets[i+1] - t.offsets[i]
}

// Offsets returns a copy of the cumulative offsets.
func (t Table) Offsets() []int {
	if len(t.offsets) == 0 {
		return []int{0}
	}
	return slices.Clone(t.offsets)
}

// Locate returns the structure whose interval contains ordinal.
// Empty structures are skipped, so the result is the unique i with
// offsets[i] <= ordinal < offsets[i+1].
func (t Table) Locate(ordinal int) (int, bool) {
	if ordinal < 0 || ordinal >= t.Total() {
		return 0, false
	}
	n := t.Len()
	i := sort.Search(n, func(i int) bool { return t.offsets[i+1] > ordinal })
	return i, i < n
}
