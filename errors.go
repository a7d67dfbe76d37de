package centermap

import (
	"errors"
	"fmt"

	"github.com/hupe1980/centermap/model"
)

var (
	// ErrInvalidSpecies is returned when an atom's species was not declared.
	ErrInvalidSpecies = errors.New("invalid species")

	// ErrUnsortedSelection is returned when selected ordinals are not non-decreasing.
	ErrUnsortedSelection = errors.New("selection is not sorted")

	// ErrOrdinalOutOfRange is returned when a selected ordinal is outside [0, total).
	ErrOrdinalOutOfRange = errors.New("ordinal out of range")

	// ErrUnknownSpecies is returned when a species is not part of the layout.
	ErrUnknownSpecies = errors.New("unknown species")

	// ErrPartitioned is returned when the unpartitioned API is used on a species-partitioned layout.
	ErrPartitioned = errors.New("layout is partitioned by species")

	// ErrNotPartitioned is returned when the per-species API is used on an unpartitioned layout.
	ErrNotPartitioned = errors.New("layout is not partitioned by species")

	// ErrNilStructure is returned when a structure in the input is nil.
	ErrNilStructure = errors.New("nil structure")

	// ErrEmptySpeciesSet is returned when a species-partitioned build declares no species.
	ErrEmptySpeciesSet = errors.New("empty species set")

	// ErrInvalidLayout is returned when an exported layout fails validation on restore.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrInvalidSelection is returned when selection lists do not fit their structures.
	ErrInvalidSelection = errors.New("invalid selection")
)

// InvalidSpeciesError reports an atom whose species is outside the declared set.
//
// errors.Is(err, ErrInvalidSpecies) holds for this error.
type InvalidSpeciesError struct {
	Species   model.Species
	Structure int
	Atom      int
	Declared  []model.Species
}

func (e *InvalidSpeciesError) Error() string {
	return fmt.Sprintf("atom type %s has not been declared: structure %d, atom %d, declared %v",
		e.Species, e.Structure, e.Atom, e.Declared)
}

func (e *InvalidSpeciesError) Unwrap() error { return ErrInvalidSpecies }

// UnsortedSelectionError reports the first position where a selection decreases.
//
// errors.Is(err, ErrUnsortedSelection) holds for this error.
type UnsortedSelectionError struct {
	Species  model.Species
	Position int
	Previous int
	Value    int
}

func (e *UnsortedSelectionError) Error() string {
	return fmt.Sprintf("selection for species %s is not sorted: %d follows %d at position %d",
		e.Species, e.Value, e.Previous, e.Position)
}

func (e *UnsortedSelectionError) Unwrap() error { return ErrUnsortedSelection }

// OrdinalOutOfRangeError reports an ordinal outside the numbering of its species.
//
// errors.Is(err, ErrOrdinalOutOfRange) holds for this error.
type OrdinalOutOfRangeError struct {
	Species model.Species
	Ordinal int
	Total   int
}

func (e *OrdinalOutOfRangeError) Error() string {
	return fmt.Sprintf("ordinal %d out of range [0, %d) for species %s", e.Ordinal, e.Total, e.Species)
}

func (e *OrdinalOutOfRangeError) Unwrap() error { return ErrOrdinalOutOfRange }

func unknownSpecies(sp model.Species) error {
	return fmt.Errorf("%w: %s", ErrUnknownSpecies, sp)
}

func reservedSpecies() error {
	return fmt.Errorf("%w: %s is reserved for unpartitioned layouts", ErrInvalidSpecies, model.AnySpecies)
}

func nilStructure(i int) error {
	return fmt.Errorf("%w at index %d", ErrNilStructure, i)
}

func invalidLayout(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLayout, fmt.Sprintf(format, args...))
}

func invalidSelection(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSelection, fmt.Sprintf(format, args...))
}
