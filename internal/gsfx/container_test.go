// SPDX-License-Identifier: MPL-2.0

package gsfx_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/fxodeps/fxodeps/internal/gsfx"
	"github.com/fxodeps/fxodeps/internal/testutil/gsfxtest"
)

var deadbeef = []byte{0xDE, 0xAD, 0xBE, 0xEF}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		vertex   []byte
		fragment []byte
		opts     []gsfxtest.Option
	}{
		{name: "minimal", vertex: deadbeef, fragment: deadbeef},
		{name: "distinct blobs", vertex: []byte("vertex-dxbc"), fragment: []byte("fragment-dxbc-longer")},
		{name: "empty blobs", vertex: nil, fragment: nil},
		{name: "padding and gap", vertex: deadbeef, fragment: []byte{1, 2, 3}, opts: []gsfxtest.Option{
			gsfxtest.WithStagePadding(7), gsfxtest.WithGap(13), gsfxtest.WithBlobGap(5),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fx := gsfxtest.NewEffect(tt.vertex, tt.fragment, tt.opts...)

			c, err := gsfx.Parse(fx.Bytes)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !bytes.Equal(c.Vertex.Bytes, tt.vertex) {
				t.Errorf("Vertex = %x, want %x", c.Vertex.Bytes, tt.vertex)
			}
			if !bytes.Equal(c.Fragment.Bytes, tt.fragment) {
				t.Errorf("Fragment = %x, want %x", c.Fragment.Bytes, tt.fragment)
			}
			if c.Vertex.Stage != gsfx.StageVertex || c.Fragment.Stage != gsfx.StageFragment {
				t.Errorf("stages = %v/%v, want Vertex/Fragment", c.Vertex.Stage, c.Fragment.Stage)
			}
			if got := fx.Bytes[c.Vertex.Offset : c.Vertex.Offset+c.Vertex.Len()]; !bytes.Equal(got, tt.vertex) {
				t.Errorf("Vertex.Offset %d does not locate the blob", c.Vertex.Offset)
			}
		})
	}
}

func TestParse_Header(t *testing.T) {
	t.Parallel()

	fx := gsfxtest.NewEffect(deadbeef, deadbeef,
		gsfxtest.WithName("character_skin"),
		gsfxtest.WithChecksum(0xBEEF),
		gsfxtest.WithUnknowns(7, 9),
	)
	c, err := gsfx.Parse(fx.Bytes)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Name != "character_skin" {
		t.Errorf("Name = %q, want %q", c.Name, "character_skin")
	}
	if c.NameChecksum != 0xBEEF {
		t.Errorf("NameChecksum = %#x, want 0xbeef", c.NameChecksum)
	}
	if c.Unknown1 != 7 || c.Unknown2 != 9 {
		t.Errorf("Unknown1/2 = %d/%d, want 7/9", c.Unknown1, c.Unknown2)
	}
	if c.OverallLen != uint32(len(fx.Bytes)) {
		t.Errorf("OverallLen = %d, want %d", c.OverallLen, len(fx.Bytes))
	}
	if c.VertexHeader.RedundantLen != uint32(len(deadbeef)) {
		t.Errorf("VertexHeader.RedundantLen = %d, want %d", c.VertexHeader.RedundantLen, len(deadbeef))
	}
}

// The GSFX header is 64 bytes (16 + 2 + 30 + 16), so the first stage
// container can start at 64 at the earliest.
func TestParse_EndToEndExtraction(t *testing.T) {
	t.Parallel()

	fx := gsfxtest.NewEffect(deadbeef, deadbeef, gsfxtest.WithStagePadding(4))
	if fx.VSStart != 64 || fx.VSLen != 40 || fx.FSStart != 104 || fx.FSLen != 40 {
		t.Fatalf("fixture layout = %d/%d/%d/%d, want 64/40/104/40", fx.VSStart, fx.VSLen, fx.FSStart, fx.FSLen)
	}

	c, err := gsfx.Parse(fx.Bytes)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for _, blob := range c.Blobs() {
		if !bytes.Equal(blob.Bytes, deadbeef) {
			t.Errorf("%v blob = %x, want deadbeef", blob.Stage, blob.Bytes)
		}
		if cap(blob.Bytes) != len(deadbeef) {
			t.Errorf("%v blob cap = %d, want %d", blob.Stage, cap(blob.Bytes), len(deadbeef))
		}
	}
	if c.Vertex.Offset != 64+gsfx.StageHeaderSize {
		t.Errorf("Vertex.Offset = %d, want %d", c.Vertex.Offset, 64+gsfx.StageHeaderSize)
	}
}

func TestParse_BlobsAliasInput(t *testing.T) {
	t.Parallel()

	fx := gsfxtest.NewEffect(deadbeef, deadbeef)
	c, err := gsfx.Parse(fx.Bytes)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fx.Bytes[c.Vertex.Offset] = 0x00
	if c.Vertex.Bytes[0] != 0x00 {
		t.Error("Vertex blob does not alias the input buffer")
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	valid := gsfxtest.NewEffect(deadbeef, deadbeef, gsfxtest.WithStagePadding(4))

	corrupt := func(off int) []byte {
		b := bytes.Clone(valid.Bytes)
		b[off] ^= 0xFF
		return b
	}
	withU32 := func(off int, v uint32) []byte {
		b := bytes.Clone(valid.Bytes)
		binary.LittleEndian.PutUint32(b[off:], v)
		return b
	}

	tests := []struct {
		name  string
		buf   []byte
		field string
	}{
		{name: "empty", buf: nil, field: "magic"},
		{name: "effect magic", buf: corrupt(0), field: "magic"},
		{name: "vertex magic", buf: corrupt(int(valid.VSStart)), field: "magic"},
		{name: "fragment magic", buf: corrupt(int(valid.FSStart) + 3), field: "magic"},
		{name: "truncated header", buf: valid.Bytes[:40], field: "header"},
		{name: "truncated before overall length", buf: valid.Bytes[:len(valid.Bytes)-1], field: "overallLen"},
		{name: "vertex range", buf: withU32(52, 1<<20), field: "vertex container"},
		{name: "fragment start overflow", buf: withU32(56, 0xFFFFFFFF), field: "fragment container"},
		{name: "dxbc offset", buf: withU32(int(valid.VSStart)+24, 39), field: "dxbc"},
		{name: "dxbc length", buf: withU32(int(valid.FSStart)+28, 0xFFFFFFF0), field: "dxbc"},
		{name: "stage header cut", buf: withU32(52, 20), field: "header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := gsfx.Parse(tt.buf)
			if err == nil {
				t.Fatal("Parse() error = nil, want malformed container")
			}
			if !errors.Is(err, gsfx.ErrMalformedContainer) {
				t.Errorf("Parse() error %v does not wrap ErrMalformedContainer", err)
			}
			var mce *gsfx.MalformedContainerError
			if !errors.As(err, &mce) {
				t.Fatalf("Parse() error %T is not *MalformedContainerError", err)
			}
			if mce.Field != tt.field {
				t.Errorf("Field = %q, want %q (%v)", mce.Field, tt.field, err)
			}
		})
	}
}

func TestParse_EveryTruncationFails(t *testing.T) {
	t.Parallel()

	valid := gsfxtest.NewEffect(deadbeef, []byte("frag"), gsfxtest.WithStagePadding(2))
	for n := 0; n < len(valid.Bytes); n++ {
		if _, err := gsfx.Parse(valid.Bytes[:n]); !errors.Is(err, gsfx.ErrMalformedContainer) {
			t.Fatalf("Parse(buf[:%d]) error = %v, want ErrMalformedContainer", n, err)
		}
	}
}

func TestParseStandaloneStages(t *testing.T) {
	t.Parallel()

	vso := gsfxtest.NewStage(gsfx.MagicVertex, deadbeef)
	pso := gsfxtest.NewStage(gsfx.MagicFragment, []byte("ps"))

	vb, err := gsfx.ParseVertex(vso)
	if err != nil {
		t.Fatalf("ParseVertex() error = %v", err)
	}
	if !bytes.Equal(vb.Bytes, deadbeef) || vb.Stage != gsfx.StageVertex {
		t.Errorf("ParseVertex() = %v %x", vb.Stage, vb.Bytes)
	}

	pb, err := gsfx.ParseFragment(pso)
	if err != nil {
		t.Fatalf("ParseFragment() error = %v", err)
	}
	if string(pb.Bytes) != "ps" || pb.Stage != gsfx.StageFragment {
		t.Errorf("ParseFragment() = %v %q", pb.Stage, pb.Bytes)
	}

	if _, err := gsfx.ParseFragment(vso); !errors.Is(err, gsfx.ErrMalformedContainer) {
		t.Errorf("ParseFragment(vso) error = %v, want ErrMalformedContainer", err)
	}
	if _, err := gsfx.ParseVertex(pso); !errors.Is(err, gsfx.ErrMalformedContainer) {
		t.Errorf("ParseVertex(pso) error = %v, want ErrMalformedContainer", err)
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	fx := gsfxtest.NewEffect(deadbeef, []byte("ps"))
	tests := []struct {
		name   string
		kind   gsfx.FileKind
		buf    []byte
		stages []gsfx.Stage
	}{
		{name: "effect", kind: gsfx.FileEffect, buf: fx.Bytes, stages: []gsfx.Stage{gsfx.StageVertex, gsfx.StageFragment}},
		{name: "vertex", kind: gsfx.FileVertex, buf: gsfxtest.NewStage(gsfx.MagicVertex, deadbeef), stages: []gsfx.Stage{gsfx.StageVertex}},
		{name: "fragment", kind: gsfx.FileFragment, buf: gsfxtest.NewStage(gsfx.MagicFragment, deadbeef), stages: []gsfx.Stage{gsfx.StageFragment}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			blobs, err := gsfx.ParseFile(tt.kind, tt.buf)
			if err != nil {
				t.Fatalf("ParseFile() error = %v", err)
			}
			if len(blobs) != len(tt.stages) {
				t.Fatalf("ParseFile() returned %d blobs, want %d", len(blobs), len(tt.stages))
			}
			for i, b := range blobs {
				if b.Stage != tt.stages[i] {
					t.Errorf("blob[%d].Stage = %v, want %v", i, b.Stage, tt.stages[i])
				}
			}
		})
	}

	if _, err := gsfx.ParseFile(0, fx.Bytes); !errors.Is(err, gsfx.ErrUnknownFileKind) {
		t.Errorf("ParseFile(0) error = %v, want ErrUnknownFileKind", err)
	}
}
