// Package conv provides checked integer conversions.
//
// Local positions and ordinals are plain ints in the public API but are stored
// as uint32 in bitmaps and as fixed-width integers in snapshots. Conversions at
// those boundaries go through this package so that overflow surfaces as an error.
package conv
