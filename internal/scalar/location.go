// SPDX-License-Identifier: MPL-2.0

package scalar

import (
	"cmp"
	"fmt"
	"strings"
)

const (
	// SpaceTemp is a general purpose temporary register (r0).
	SpaceTemp Space = iota + 1
	// SpaceIndexedTemp is an element of an indexable temporary array (x0[3]).
	SpaceIndexedTemp
	// SpaceInput is a stage input register or named input port (v0).
	SpaceInput
	// SpaceOutput is a stage output register or named output port (o0).
	SpaceOutput
	// SpaceLiteral is a literal register declared with constant values (l0).
	SpaceLiteral
	// SpaceConstBuffer is an element of a constant buffer (cb0[4]).
	SpaceConstBuffer
	// SpaceOther is any register file the decoder does not classify.
	SpaceOther
)

const (
	// X is the first vector component.
	X Component = iota
	// Y is the second vector component.
	Y
	// Z is the third vector component.
	Z
	// W is the fourth vector component.
	W

	// NumComponents is the number of components of a register.
	NumComponents = 4
)

const (
	// KindFloat marks values used as 32-bit floats.
	KindFloat ValueKind = 1 << iota
	// KindInt marks values used as signed integers.
	KindInt
	// KindUint marks values used as unsigned integers.
	KindUint

	// KindUntyped is the zero ValueKind: no typed use has been observed.
	KindUntyped ValueKind = 0
)

// componentNames is indexed by Component.
const componentNames = "xyzw"

type (
	// Space identifies a register file.
	Space uint8

	// Component is a lane index within a four-component register.
	Component uint8

	// ComponentMask is a bit set of components (bit i = Component i).
	ComponentMask uint8

	// ValueKind is a display-only bitmask of the value types a register was
	// used with. It is not part of a location's identity.
	ValueKind uint8

	// Register identifies one four-component register.
	//
	// Element is used by indexed spaces (cb0[4], x0[2]). Name identifies
	// named I/O ports and registers in SpaceOther; when set it is the
	// register's display name.
	Register struct {
		Space   Space
		Index   uint32
		Element uint32
		Name    string
	}

	// Location is one scalar value slot: a register component.
	Location struct {
		Register  Register
		Component Component
	}
)

// Prefix returns the assembly prefix of the space ("r", "v", "cb", ...).
func (s Space) Prefix() string {
	switch s {
	case SpaceTemp:
		return "r"
	case SpaceIndexedTemp:
		return "x"
	case SpaceInput:
		return "v"
	case SpaceOutput:
		return "o"
	case SpaceLiteral:
		return "l"
	case SpaceConstBuffer:
		return "cb"
	default:
		return "?"
	}
}

// String returns the component letter.
func (c Component) String() string {
	if c < NumComponents {
		return componentNames[c : c+1]
	}
	return fmt.Sprintf("c%d", uint8(c))
}

// ParseComponent parses one of x, y, z, w.
func ParseComponent(r rune) (Component, bool) {
	i := strings.IndexRune(componentNames, r)
	if i < 0 {
		return 0, false
	}
	return Component(i), true
}

// MaskAll selects all four components.
const MaskAll ComponentMask = 0b1111

// MaskOf builds a mask from components.
func MaskOf(cs ...Component) ComponentMask {
	var m ComponentMask
	for _, c := range cs {
		m |= 1 << c
	}
	return m
}

// Has reports whether c is in the mask.
func (m ComponentMask) Has(c Component) bool { return m&(1<<c) != 0 }

// Components returns the components of the mask in order.
func (m ComponentMask) Components() []Component {
	var out []Component
	for c := X; c < NumComponents; c++ {
		if m.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String returns the mask as component letters ("xyz").
func (m ComponentMask) String() string {
	var b strings.Builder
	for _, c := range m.Components() {
		b.WriteString(c.String())
	}
	return b.String()
}

// String returns the kinds joined by "|", or "untyped".
func (k ValueKind) String() string {
	if k == KindUntyped {
		return "untyped"
	}
	var parts []string
	if k&KindFloat != 0 {
		parts = append(parts, "float")
	}
	if k&KindInt != 0 {
		parts = append(parts, "int")
	}
	if k&KindUint != 0 {
		parts = append(parts, "uint")
	}
	return strings.Join(parts, "|")
}

// Reg returns a numbered register in space s.
func Reg(s Space, index uint32) Register {
	return Register{Space: s, Index: index}
}

// Port returns a named I/O port in space s (SpaceInput or SpaceOutput).
func Port(s Space, name string) Register {
	return Register{Space: s, Name: name}
}

// At returns the location of component c of r.
func (r Register) At(c Component) Location {
	return Location{Register: r, Component: c}
}

// IsOutput reports whether the register is a stage output.
func (r Register) IsOutput() bool { return r.Space == SpaceOutput }

// IsInput reports whether the register is a stage input.
func (r Register) IsInput() bool { return r.Space == SpaceInput }

// IsLiteral reports whether the register is a literal register.
func (r Register) IsLiteral() bool { return r.Space == SpaceLiteral }

// String returns the assembly spelling of the register.
func (r Register) String() string {
	if r.Name != "" {
		return r.Name
	}
	switch r.Space {
	case SpaceConstBuffer, SpaceIndexedTemp:
		return fmt.Sprintf("%s%d[%d]", r.Space.Prefix(), r.Index, r.Element)
	default:
		return fmt.Sprintf("%s%d", r.Space.Prefix(), r.Index)
	}
}

// Compare orders registers by space, then name (numbered registers have
// none and sort first), index and element.
func (r Register) Compare(o Register) int {
	if c := cmp.Compare(r.Space, o.Space); c != 0 {
		return c
	}
	if c := cmp.Compare(r.Name, o.Name); c != 0 {
		return c
	}
	if c := cmp.Compare(r.Index, o.Index); c != 0 {
		return c
	}
	return cmp.Compare(r.Element, o.Element)
}

// String returns "register.component" ("r3.x").
func (l Location) String() string {
	return l.Register.String() + "." + l.Component.String()
}

// IsOutput reports whether the location belongs to a stage output.
func (l Location) IsOutput() bool { return l.Register.IsOutput() }

// Compare orders locations by register, then component.
func (l Location) Compare(o Location) int {
	if c := l.Register.Compare(o.Register); c != 0 {
		return c
	}
	return cmp.Compare(l.Component, o.Component)
}
