// SPDX-License-Identifier: MPL-2.0

package gsfxtest

import (
	"encoding/binary"

	"github.com/fxodeps/fxodeps/internal/dxbc"
)

// NewDXBC builds a minimal DXBC container holding program as its SHDR chunk.
func NewDXBC(program []byte) []byte {
	const table = dxbc.HeaderSize + 4
	size := table + dxbc.ChunkHeaderSize + len(program)
	buf := make([]byte, size)

	le := binary.LittleEndian
	copy(buf, dxbc.Magic)
	le.PutUint32(buf[20:], 1)
	le.PutUint32(buf[24:], uint32(size))
	le.PutUint32(buf[28:], 1)
	le.PutUint32(buf[dxbc.HeaderSize:], table)
	copy(buf[table:], dxbc.ChunkSHDR)
	le.PutUint32(buf[table+4:], uint32(len(program)))
	copy(buf[table+dxbc.ChunkHeaderSize:], program)
	return buf
}
