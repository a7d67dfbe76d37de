package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hupe1980/centermap"
	"github.com/hupe1980/centermap/codec"
	"github.com/hupe1980/centermap/internal/conv"
)

const (
	// MagicNumber identifies snapshot files (ASCII: "CMAP").
	MagicNumber = 0x434d4150
	// Version is the current file format version.
	Version = 1

	// MaxPayloadSize bounds the payload accepted by readers.
	MaxPayloadSize = 1 << 30

	headerSize = 28
)

// Kind identifies the document stored in a snapshot.
type Kind uint8

const (
	// KindLayout marks a snapshot of a centermap.Layout.
	KindLayout Kind = 1
	// KindSelection marks a snapshot of a centermap.Selection.
	KindSelection Kind = 2
)

var (
	// ErrInvalidMagic is returned when the input is not a snapshot.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrIncompatibleFormat is returned when the snapshot version is not supported.
	ErrIncompatibleFormat = errors.New("incompatible format")

	// ErrCorrupt is returned when a checksum or size check fails.
	ErrCorrupt = errors.New("snapshot corrupt")

	// ErrUnknownCompression is returned for an unsupported compression byte.
	ErrUnknownCompression = errors.New("unknown compression")

	// ErrUnknownCodec is returned when the codec named in the header is not built in.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrKindMismatch is returned when the snapshot holds a different document kind.
	ErrKindMismatch = errors.New("snapshot kind mismatch")
)

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// Options configures how snapshots are written.
type Options struct {
	// Compression is applied to the payload. Defaults to CompressionNone.
	Compression Compression
	// Codec encodes the document. Defaults to codec.Default.
	Codec codec.Codec
}

func applyOptions(optFns []func(*Options)) Options {
	o := Options{Compression: CompressionNone, Codec: codec.Default}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Codec == nil {
		o.Codec = codec.Default
	}
	return o
}

// WriteLayout writes the exported form of l to w.
func WriteLayout(w io.Writer, l *centermap.Layout, optFns ...func(*Options)) error {
	return write(w, KindLayout, l.Export(), applyOptions(optFns))
}

// ReadLayout reads a layout snapshot and restores it with the given options.
func ReadLayout(r io.Reader, optFns ...centermap.Option) (*centermap.Layout, error) {
	var doc centermap.LayoutDoc
	if err := read(r, KindLayout, &doc); err != nil {
		return nil, err
	}
	return centermap.Restore(doc, optFns...)
}

type selectionDoc struct {
	Sizes  []int   `json:"sizes"`
	Locals [][]int `json:"locals"`
}

// WriteSelection writes sel to w.
func WriteSelection(w io.Writer, sel *centermap.Selection, optFns ...func(*Options)) error {
	doc := selectionDoc{Sizes: sel.Sizes(), Locals: sel.Lists()}
	return write(w, KindSelection, doc, applyOptions(optFns))
}

// ReadSelection reads a selection snapshot.
func ReadSelection(r io.Reader) (*centermap.Selection, error) {
	var doc selectionDoc
	if err := read(r, KindSelection, &doc); err != nil {
		return nil, err
	}
	return centermap.NewSelection(doc.Sizes, doc.Locals)
}

func write(w io.Writer, kind Kind, doc any, o Options) error {
	raw, err := o.Codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", o.Codec.Name(), err)
	}
	if len(raw) > MaxPayloadSize {
		return fmt.Errorf("payload of %d bytes exceeds %d", len(raw), MaxPayloadSize)
	}
	stored, applied, err := compress(raw, o.Compression)
	if err != nil {
		return err
	}
	name := o.Codec.Name()
	if len(name) > 255 {
		return fmt.Errorf("codec name %q too long", name)
	}
	rawSize, err := conv.IntToUint32(len(raw))
	if err != nil {
		return err
	}
	storedSize, err := conv.IntToUint32(len(stored))
	if err != nil {
		return err
	}

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:], MagicNumber)
	binary.LittleEndian.PutUint32(hdr[4:], Version)
	hdr[8] = byte(kind)
	hdr[9] = byte(applied)
	hdr[10] = byte(len(name))
	binary.LittleEndian.PutUint32(hdr[12:], rawSize)
	binary.LittleEndian.PutUint32(hdr[16:], storedSize)
	binary.LittleEndian.PutUint32(hdr[20:], crc32.Checksum(stored, crc32cTable))

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, name); err != nil {
		return err
	}
	_, err = w.Write(stored)
	return err
}

func read(r io.Reader, want Kind, doc any) error {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if binary.LittleEndian.Uint32(hdr[0:]) != MagicNumber {
		return ErrInvalidMagic
	}
	if v := binary.LittleEndian.Uint32(hdr[4:]); v != Version {
		return fmt.Errorf("%w: version %d", ErrIncompatibleFormat, v)
	}
	if kind := Kind(hdr[8]); kind != want {
		return fmt.Errorf("%w: got %d, want %d", ErrKindMismatch, kind, want)
	}
	compression := Compression(hdr[9])
	nameLen := int(hdr[10])
	rawSize := int(binary.LittleEndian.Uint32(hdr[12:]))
	storedSize := int(binary.LittleEndian.Uint32(hdr[16:]))
	checksum := binary.LittleEndian.Uint32(hdr[20:])
	if rawSize < 0 || storedSize < 0 || rawSize > MaxPayloadSize || storedSize > MaxPayloadSize {
		return fmt.Errorf("%w: payload size exceeds %d", ErrCorrupt, MaxPayloadSize)
	}

	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return fmt.Errorf("read codec name: %w", err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return fmt.Errorf("%w: %q (built in: %v)", ErrUnknownCodec, name, codec.Names())
	}

	// storedSize is unverified until the checksum; allocate as data arrives.
	stored, err := io.ReadAll(io.LimitReader(r, int64(storedSize)))
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	if len(stored) != storedSize {
		return fmt.Errorf("%w: payload truncated, %d of %d bytes", ErrCorrupt, len(stored), storedSize)
	}
	if crc32.Checksum(stored, crc32cTable) != checksum {
		return fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	raw, err := decompress(stored, compression, rawSize)
	if err != nil {
		return err
	}
	if err := c.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	return nil
}
