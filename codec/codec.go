// Package codec encodes the documents this module exports: LayoutDoc from
// Layout.Export and the sizes/locals form of a Selection.
//
// Both are plain nested int slices, so every built-in codec produces bytes the
// others decode. Snapshots store the codec name in their header and resolve
// it with ByName when reading.
package codec

import (
	"fmt"
	"slices"
)

// Codec encodes and decodes exported documents.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Name is written into snapshot headers and must be at most 255 bytes.
	Name() string
}

var builtin = map[string]Codec{
	JSON{}.Name():   JSON{},
	GoJSON{}.Name(): GoJSON{},
}

// ByName returns the built-in codec recorded under name in a snapshot header.
func ByName(name string) (Codec, bool) {
	c, ok := builtin[name]
	return c, ok
}

// Names returns the names of the built-in codecs, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MustMarshal encodes v with c, or with Default if c is nil, and panics on
// failure. Intended for tests and examples.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s: encode %T: %w", c.Name(), v, err))
	}
	return b
}
