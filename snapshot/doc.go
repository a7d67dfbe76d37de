// Package snapshot saves and loads layouts and selections.
//
// A layout is built once per structure collection but is typically consulted by
// several selection runs, possibly in other processes. A snapshot stores the
// exported form of a Layout or Selection in a small framed file:
//
//	┌────────────────────────────── header (28 bytes) ──────────────────────────────┐
//	│ magic u32 │ version u32 │ kind u8 │ compression u8 │ codec len u8 │ pad u8    │
//	│ raw size u32 │ stored size u32 │ crc32c u32 │ reserved u32                      │
//	└────────────────────────────────────────────────────────────────────────────────┘
//	codec name (codec len bytes) │ payload (stored size bytes)
//
// The payload is the codec-encoded document, optionally compressed with LZ4 or
// ZSTD. The checksum covers the stored payload. Loading a layout re-validates
// it through centermap.Restore.
package snapshot
