// Package bitmap provides the set type used to collect selected local positions.
//
// LocalSet wraps a 32-bit Roaring bitmap. Adding the same position twice is a
// no-op and iteration is always ascending, which gives translated selections
// their sorted, duplicate-free shape without a separate sort pass.
package bitmap
