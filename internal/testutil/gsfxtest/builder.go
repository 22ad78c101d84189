// SPDX-License-Identifier: MPL-2.0

package gsfxtest

import (
	"encoding/binary"

	"github.com/fxodeps/fxodeps/internal/gsfx"
)

type (
	// Fixture is a built GSFX buffer together with the layout it was built from.
	Fixture struct {
		Bytes []byte

		VSStart, VSLen uint32
		FSStart, FSLen uint32
	}

	// Option configures an effect fixture.
	Option func(*builder)

	builder struct {
		name      string
		checksum  uint16
		unknown1  uint32
		unknown2  uint32
		padding   int
		gap       int
		overall   *uint32
		blobStart uint32
	}
)

// WithName sets the effect name field.
func WithName(name string) Option {
	return func(b *builder) { b.name = name }
}

// WithChecksum sets the 16-bit name checksum field.
func WithChecksum(sum uint16) Option {
	return func(b *builder) { b.checksum = sum }
}

// WithUnknowns sets the two unknown GSFX header fields.
func WithUnknowns(u1, u2 uint32) Option {
	return func(b *builder) { b.unknown1, b.unknown2 = u1, u2 }
}

// WithStagePadding appends n zero bytes after each stage blob, inside the
// stage container's declared range.
func WithStagePadding(n int) Option {
	return func(b *builder) { b.padding = n }
}

// WithGap inserts n zero bytes between the GSFX header and the vertex container.
func WithGap(n int) Option {
	return func(b *builder) { b.gap = n }
}

// WithOverallLen overrides the declared overall length.
func WithOverallLen(n uint32) Option {
	return func(b *builder) { b.overall = &n }
}

// WithBlobGap places each blob n bytes after the end of its stage header.
func WithBlobGap(n uint32) Option {
	return func(b *builder) { b.blobStart = n }
}

// NewEffect builds a GSFX buffer wrapping the given vertex and fragment blobs.
// By default the vertex container starts right after the 64-byte header and
// the fragment container follows it directly.
func NewEffect(vertex, fragment []byte, opts ...Option) *Fixture {
	b := &builder{name: "test_effect"}
	for _, opt := range opts {
		opt(b)
	}

	vs := b.stage(gsfx.MagicVertex, vertex)
	fs := b.stage(gsfx.MagicFragment, fragment)

	f := &Fixture{
		VSStart: uint32(gsfx.EffectHeaderSize + b.gap),
		VSLen:   uint32(len(vs)),
	}
	f.FSStart = f.VSStart + f.VSLen
	f.FSLen = uint32(len(fs))

	total := int(f.FSStart + f.FSLen)
	buf := make([]byte, total)
	copy(buf, gsfx.MagicEffect)
	le := binary.LittleEndian
	le.PutUint32(buf[4:], b.unknown1)
	le.PutUint32(buf[8:], b.unknown2)
	overall := uint32(total)
	if b.overall != nil {
		overall = *b.overall
	}
	le.PutUint32(buf[12:], overall)
	le.PutUint16(buf[16:], b.checksum)
	copy(buf[18:18+gsfx.NameSize], b.name)
	le.PutUint32(buf[48:], f.VSStart)
	le.PutUint32(buf[52:], f.VSLen)
	le.PutUint32(buf[56:], f.FSStart)
	le.PutUint32(buf[60:], f.FSLen)
	copy(buf[f.VSStart:], vs)
	copy(buf[f.FSStart:], fs)

	f.Bytes = buf
	return f
}

// NewStage builds a standalone GSVS or GSPS container wrapping blob.
func NewStage(magic string, blob []byte, opts ...Option) []byte {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b.stage(magic, blob)
}

func (b *builder) stage(magic string, blob []byte) []byte {
	start := uint32(gsfx.StageHeaderSize) + b.blobStart
	buf := make([]byte, int(start)+len(blob)+b.padding)
	copy(buf, magic)
	le := binary.LittleEndian
	le.PutUint32(buf[12:], uint32(len(blob)))
	le.PutUint32(buf[24:], start)
	le.PutUint32(buf[28:], uint32(len(blob)))
	copy(buf[start:], blob)
	return buf
}
