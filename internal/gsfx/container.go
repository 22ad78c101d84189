// SPDX-License-Identifier: MPL-2.0

package gsfx

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// MagicEffect tags the outer effect container found in .fxo files.
	MagicEffect = "GSFX"
	// MagicVertex tags a vertex stage container.
	MagicVertex = "GSVS"
	// MagicFragment tags a fragment (pixel) stage container.
	MagicFragment = "GSPS"

	// EffectHeaderSize is the size of the fixed GSFX header.
	EffectHeaderSize = 64
	// StageHeaderSize is the size of the fixed GSVS/GSPS header.
	StageHeaderSize = 32
	// NameSize is the size of the fixed name field in the GSFX header.
	NameSize = 30
)

// GSFX header field offsets.
const (
	effectUnknown1Off   = 4
	effectUnknown2Off   = 8
	effectOverallLenOff = 12
	effectChecksumOff   = 16
	effectNameOff       = 18
	effectVSStartOff    = effectNameOff + NameSize
	effectVSLenOff      = effectVSStartOff + 4
	effectFSStartOff    = effectVSLenOff + 4
	effectFSLenOff      = effectFSStartOff + 4
)

// GSVS/GSPS header field offsets.
const (
	stageUnknown1Off     = 4
	stageUnknown2Off     = 8
	stageRedundantLenOff = 12
	stageUnknown3Off     = 16
	stageUnknown4Off     = 20
	stageDXBCOffsetOff   = 24
	stageDXBCLenOff      = 28
)

type (
	// Blob is a bytecode blob borrowed from a container buffer.
	// Bytes aliases the buffer passed to the parse call; its capacity is
	// clipped to its length so appends never write into neighbouring data.
	Blob struct {
		Stage Stage
		// Offset is the position of Bytes within the parsed buffer.
		Offset int
		Bytes  []byte
	}

	// StageHeader holds the GSVS/GSPS header fields whose meaning is unknown
	// but which are kept for inspection.
	StageHeader struct {
		Unknown1     uint32
		Unknown2     uint32
		RedundantLen uint32
		Unknown3     uint32
		Unknown4     uint32
	}

	// Container is a decoded GSFX record.
	Container struct {
		Unknown1     uint32
		Unknown2     uint32
		OverallLen   uint32
		NameChecksum uint16
		// Name is the fixed-size name field with trailing NUL bytes removed.
		Name string

		Vertex   Blob
		Fragment Blob

		VertexHeader   StageHeader
		FragmentHeader StageHeader
	}
)

// Len returns the blob size in bytes.
func (b Blob) Len() int { return len(b.Bytes) }

// Blobs returns the vertex and fragment blobs in stage order.
func (c *Container) Blobs() []Blob {
	return []Blob{c.Vertex, c.Fragment}
}

// Parse decodes a GSFX container and both of its stage containers.
// Offsets in the GSFX header are relative to buf; offsets inside each stage
// container are relative to that container's own byte range.
func Parse(buf []byte) (*Container, error) {
	if err := checkMagic(buf, MagicEffect); err != nil {
		return nil, err
	}
	if len(buf) < EffectHeaderSize {
		return nil, truncated(MagicEffect, "header", EffectHeaderSize, len(buf))
	}

	le := binary.LittleEndian
	c := &Container{
		Unknown1:     le.Uint32(buf[effectUnknown1Off:]),
		Unknown2:     le.Uint32(buf[effectUnknown2Off:]),
		OverallLen:   le.Uint32(buf[effectOverallLenOff:]),
		NameChecksum: le.Uint16(buf[effectChecksumOff:]),
		Name:         string(bytes.TrimRight(buf[effectNameOff:effectNameOff+NameSize], "\x00")),
	}
	if uint64(len(buf)) < uint64(c.OverallLen) {
		return nil, &MalformedContainerError{
			Magic:  MagicEffect,
			Field:  "overallLen",
			Length: uint64(c.OverallLen),
			Size:   len(buf),
			Reason: "buffer shorter than declared length",
		}
	}

	vsStart, vsLen := le.Uint32(buf[effectVSStartOff:]), le.Uint32(buf[effectVSLenOff:])
	fsStart, fsLen := le.Uint32(buf[effectFSStartOff:]), le.Uint32(buf[effectFSLenOff:])

	vs, err := subrange(buf, vsStart, vsLen, MagicEffect, "vertex container")
	if err != nil {
		return nil, err
	}
	fs, err := subrange(buf, fsStart, fsLen, MagicEffect, "fragment container")
	if err != nil {
		return nil, err
	}

	if c.Vertex, c.VertexHeader, err = parseStage(vs, MagicVertex, StageVertex); err != nil {
		return nil, err
	}
	if c.Fragment, c.FragmentHeader, err = parseStage(fs, MagicFragment, StageFragment); err != nil {
		return nil, err
	}
	c.Vertex.Offset += int(vsStart)
	c.Fragment.Offset += int(fsStart)

	return c, nil
}

// ParseVertex decodes a standalone GSVS container (the contents of a .vso file).
func ParseVertex(buf []byte) (Blob, error) {
	blob, _, err := parseStage(buf, MagicVertex, StageVertex)
	return blob, err
}

// ParseFragment decodes a standalone GSPS container (the contents of a .pso file).
func ParseFragment(buf []byte) (Blob, error) {
	blob, _, err := parseStage(buf, MagicFragment, StageFragment)
	return blob, err
}

// ParseStageHeader decodes the header of a standalone stage container
// without slicing its blob.
func ParseStageHeader(buf []byte, magic string) (StageHeader, error) {
	if err := checkMagic(buf, magic); err != nil {
		return StageHeader{}, err
	}
	if len(buf) < StageHeaderSize {
		return StageHeader{}, truncated(magic, "header", StageHeaderSize, len(buf))
	}
	le := binary.LittleEndian
	return StageHeader{
		Unknown1:     le.Uint32(buf[stageUnknown1Off:]),
		Unknown2:     le.Uint32(buf[stageUnknown2Off:]),
		RedundantLen: le.Uint32(buf[stageRedundantLenOff:]),
		Unknown3:     le.Uint32(buf[stageUnknown3Off:]),
		Unknown4:     le.Uint32(buf[stageUnknown4Off:]),
	}, nil
}

func parseStage(buf []byte, magic string, stage Stage) (Blob, StageHeader, error) {
	hdr, err := ParseStageHeader(buf, magic)
	if err != nil {
		return Blob{}, StageHeader{}, err
	}
	le := binary.LittleEndian
	off, n := le.Uint32(buf[stageDXBCOffsetOff:]), le.Uint32(buf[stageDXBCLenOff:])
	data, err := subrange(buf, off, n, magic, "dxbc")
	if err != nil {
		return Blob{}, StageHeader{}, err
	}
	return Blob{Stage: stage, Offset: int(off), Bytes: data}, hdr, nil
}

func checkMagic(buf []byte, magic string) error {
	if len(buf) < len(magic) {
		return truncated(magic, "magic", len(magic), len(buf))
	}
	if got := string(buf[:len(magic)]); got != magic {
		return &MalformedContainerError{
			Magic:  magic,
			Field:  "magic",
			Size:   len(buf),
			Reason: fmt.Sprintf("got %q", got),
		}
	}
	return nil
}

// subrange returns buf[off:off+n] with its capacity clipped, or an error when
// the range does not fit. The arithmetic is done in uint64 so that a crafted
// offset cannot wrap around.
func subrange(buf []byte, off, n uint32, magic, field string) ([]byte, error) {
	end := uint64(off) + uint64(n)
	if end > uint64(len(buf)) {
		return nil, &MalformedContainerError{
			Magic:  magic,
			Field:  field,
			Offset: uint64(off),
			Length: uint64(n),
			Size:   len(buf),
			Reason: "out of range",
		}
	}
	return buf[off:end:end], nil
}

func truncated(magic, field string, want, got int) error {
	return &MalformedContainerError{
		Magic:  magic,
		Field:  field,
		Size:   got,
		Reason: fmt.Sprintf("truncated, need %d bytes", want),
	}
}
