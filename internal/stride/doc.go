// Package stride implements cumulative offset tables over a sequence of structures.
//
// A Table with n structures holds n+1 non-decreasing offsets starting at zero.
// Structure i owns the half-open ordinal interval [offsets[i], offsets[i+1]),
// so an ordinal equal to a boundary belongs to the structure that starts there.
package stride
