// SPDX-License-Identifier: MPL-2.0

// Package dxbc reads DirectX bytecode containers and extracts the shader
// program chunk (SHDR or SHEX) handed to the native compiler.
package dxbc

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// Magic is the container tag.
	Magic = "DXBC"
	// HeaderSize is the size of the fixed header before the chunk offsets:
	// magic, 16-byte checksum, a reserved u32 (always 1), total size and
	// chunk count.
	HeaderSize = 32
	// ChunkHeaderSize is the size of a chunk's fourcc and length.
	ChunkHeaderSize = 8

	offTotalSize  = 24
	offChunkCount = 28
)

// Program chunk tags. SHEX is the Shader Model 5 variant of SHDR.
const (
	ChunkSHDR = "SHDR"
	ChunkSHEX = "SHEX"
)

// ErrMalformedDXBC is the sentinel error wrapped by MalformedError.
var ErrMalformedDXBC = errors.New("malformed DXBC container")

type (
	// Chunk is one tagged chunk. Data aliases the container buffer.
	Chunk struct {
		FourCC string
		Offset int
		Data   []byte
	}

	// Container is a parsed DXBC container.
	Container struct {
		Checksum [16]byte
		Size     uint32
		Chunks   []Chunk
	}

	// MalformedError describes why a DXBC container could not be read.
	// It wraps ErrMalformedDXBC for errors.Is() compatibility.
	MalformedError struct {
		Reason string
		Offset uint64
		Size   int
	}
)

// Error implements the error interface.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed DXBC container: %s at offset %d (%d bytes available)", e.Reason, e.Offset, e.Size)
}

// Unwrap returns ErrMalformedDXBC for errors.Is() compatibility.
func (e *MalformedError) Unwrap() error { return ErrMalformedDXBC }

// Parse reads the container header and chunk table of buf.
func Parse(buf []byte) (*Container, error) {
	if len(buf) < HeaderSize {
		return nil, malformed("truncated header", 0, buf)
	}
	if string(buf[:4]) != Magic {
		return nil, malformed(fmt.Sprintf("bad magic %q", buf[:4]), 0, buf)
	}

	c := &Container{Size: binary.LittleEndian.Uint32(buf[offTotalSize:])}
	copy(c.Checksum[:], buf[4:20])
	if uint64(c.Size) > uint64(len(buf)) {
		return nil, malformed(fmt.Sprintf("declared size %d exceeds buffer", c.Size), offTotalSize, buf)
	}
	if c.Size < HeaderSize {
		return nil, malformed(fmt.Sprintf("declared size %d is smaller than the header", c.Size), offTotalSize, buf)
	}
	buf = buf[:c.Size]

	count := uint64(binary.LittleEndian.Uint32(buf[offChunkCount:]))
	if HeaderSize+4*count > uint64(len(buf)) {
		return nil, malformed(fmt.Sprintf("chunk table of %d entries exceeds container", count), HeaderSize, buf)
	}

	c.Chunks = make([]Chunk, 0, count)
	for i := range count {
		off := uint64(binary.LittleEndian.Uint32(buf[HeaderSize+4*i:]))
		if off+ChunkHeaderSize > uint64(len(buf)) {
			return nil, malformed("truncated chunk header", off, buf)
		}
		size := uint64(binary.LittleEndian.Uint32(buf[off+4:]))
		start := off + ChunkHeaderSize
		if start+size > uint64(len(buf)) {
			return nil, malformed(fmt.Sprintf("chunk of %d bytes exceeds container", size), off, buf)
		}
		c.Chunks = append(c.Chunks, Chunk{
			FourCC: string(buf[off : off+4]),
			Offset: int(start),
			Data:   buf[start : start+size : start+size],
		})
	}
	return c, nil
}

// Find returns the first chunk tagged fourcc.
func (c *Container) Find(fourcc string) (Chunk, bool) {
	for _, ch := range c.Chunks {
		if ch.FourCC == fourcc {
			return ch, true
		}
	}
	return Chunk{}, false
}

// ShaderBytecode returns the program chunk of a DXBC container. The result
// aliases buf.
func ShaderBytecode(buf []byte) ([]byte, error) {
	c, err := Parse(buf)
	if err != nil {
		return nil, err
	}
	for _, tag := range []string{ChunkSHEX, ChunkSHDR} {
		if ch, ok := c.Find(tag); ok {
			return ch.Data, nil
		}
	}
	return nil, malformed("no SHDR or SHEX chunk", 0, buf)
}

func malformed(reason string, off uint64, buf []byte) *MalformedError {
	return &MalformedError{Reason: reason, Offset: off, Size: len(buf)}
}
