// Package model defines core types used throughout centermap.
//
// # Identity Types
//
//   - Species: Atom type label used to partition centers (int32)
//   - Location: Structure-local address of an atom (Structure, Local)
//
// # Input Types
//
//   - Structure: Read-only view of an atomic structure (length + species per atom)
//   - Atoms: Slice-backed Structure, convenient for tests and simple callers
//   - SpeciesSet: Ordered, duplicate-free set of species of interest
//
// Example:
//
//	structures := []model.Structure{
//	    model.Atoms{1, 8, 1},
//	    model.Atoms{8, 1},
//	}
//	set := model.NewSpeciesSet(1, 8)
package model
