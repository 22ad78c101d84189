// SPDX-License-Identifier: MPL-2.0

package dxbc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

type testChunk struct {
	tag  string
	data []byte
}

func build(chunks ...testChunk) []byte {
	table := HeaderSize + 4*len(chunks)
	size := table
	for _, ch := range chunks {
		size += ChunkHeaderSize + len(ch.data)
	}

	buf := make([]byte, size)
	copy(buf, Magic)
	for i := 4; i < 20; i++ {
		buf[i] = byte(i)
	}
	binary.LittleEndian.PutUint32(buf[20:], 1)
	binary.LittleEndian.PutUint32(buf[offTotalSize:], uint32(size))
	binary.LittleEndian.PutUint32(buf[offChunkCount:], uint32(len(chunks)))

	off := table
	for i, ch := range chunks {
		binary.LittleEndian.PutUint32(buf[HeaderSize+4*i:], uint32(off))
		copy(buf[off:], ch.tag)
		binary.LittleEndian.PutUint32(buf[off+4:], uint32(len(ch.data)))
		copy(buf[off+ChunkHeaderSize:], ch.data)
		off += ChunkHeaderSize + len(ch.data)
	}
	return buf
}

func TestShaderBytecode(t *testing.T) {
	t.Parallel()

	program := []byte{0x50, 0x00, 0x01, 0x00, 0xAA, 0xBB}
	tests := []struct {
		name   string
		chunks []testChunk
	}{
		{"SHDR", []testChunk{{"RDEF", []byte{1, 2, 3}}, {"ISGN", nil}, {"SHDR", program}}},
		{"SHEX", []testChunk{{"SHEX", program}, {"STAT", []byte{9}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := build(tt.chunks...)
			got, err := ShaderBytecode(buf)
			if err != nil {
				t.Fatalf("ShaderBytecode() error = %v", err)
			}
			if !bytes.Equal(got, program) {
				t.Errorf("ShaderBytecode() = %x, want %x", got, program)
			}
			if cap(got) != len(got) {
				t.Errorf("cap(ShaderBytecode()) = %d, want %d", cap(got), len(got))
			}
		})
	}
}

func TestParse_Header(t *testing.T) {
	t.Parallel()

	c, err := Parse(build(testChunk{"SHDR", []byte{1}}))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Checksum[0] != 4 || c.Checksum[15] != 19 {
		t.Errorf("Checksum = %x, want bytes 4..19", c.Checksum)
	}
	if len(c.Chunks) != 1 || c.Chunks[0].FourCC != "SHDR" {
		t.Errorf("Chunks = %+v, want one SHDR chunk", c.Chunks)
	}
	if c.Chunks[0].Offset != HeaderSize+4+ChunkHeaderSize {
		t.Errorf("Chunk offset = %d, want %d", c.Chunks[0].Offset, HeaderSize+4+ChunkHeaderSize)
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	valid := build(testChunk{"SHDR", []byte{1, 2, 3, 4}})

	tests := []struct {
		name string
		buf  func() []byte
	}{
		{"empty", func() []byte { return nil }},
		{"bad magic", func() []byte {
			b := bytes.Clone(valid)
			b[0] = 'X'
			return b
		}},
		{"truncated", func() []byte { return valid[:len(valid)-1] }},
		{"declared size below header", func() []byte {
			b := bytes.Clone(valid)
			binary.LittleEndian.PutUint32(b[offTotalSize:], 4)
			return b
		}},
		{"chunk table overflow", func() []byte {
			b := bytes.Clone(valid)
			binary.LittleEndian.PutUint32(b[offChunkCount:], 0xFFFFFFFF)
			return b
		}},
		{"chunk offset out of range", func() []byte {
			b := bytes.Clone(valid)
			binary.LittleEndian.PutUint32(b[HeaderSize:], 0xFFFFFFF0)
			return b
		}},
		{"chunk size out of range", func() []byte {
			b := bytes.Clone(valid)
			binary.LittleEndian.PutUint32(b[HeaderSize+4+4:], 0xFFFFFFFF)
			return b
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.buf())
			if !errors.Is(err, ErrMalformedDXBC) {
				t.Errorf("Parse() error = %v, want ErrMalformedDXBC", err)
			}
		})
	}
}

func TestShaderBytecode_NoProgramChunk(t *testing.T) {
	t.Parallel()

	_, err := ShaderBytecode(build(testChunk{"RDEF", []byte{1}}))
	if !errors.Is(err, ErrMalformedDXBC) {
		t.Errorf("ShaderBytecode() error = %v, want ErrMalformedDXBC", err)
	}
}
