// SPDX-License-Identifier: MPL-2.0

package amdil

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fxodeps/fxodeps/internal/scalar"
)

// numberedSpaces maps register prefixes to their spaces.
var numberedSpaces = map[string]scalar.Space{
	"r":  scalar.SpaceTemp,
	"x":  scalar.SpaceIndexedTemp,
	"v":  scalar.SpaceInput,
	"o":  scalar.SpaceOutput,
	"l":  scalar.SpaceLiteral,
	"cb": scalar.SpaceConstBuffer,
}

// operand is one parsed instruction operand.
type operand struct {
	reg scalar.Register
	// sel is the raw selector after the dot: a destination write mask or a
	// source swizzle. Empty means all four lanes in order.
	sel string
	// index is the relative address of an indexed operand (cb0[r1.x]).
	index *operand
}

// parseOperand parses a register operand such as "r3.xyz_", "-v0.xxxx",
// "cb0[4].y", "x1[r0.x+2]" or "r2_neg(xyzw)". Source modifiers are dropped.
func parseOperand(s string) (operand, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "-")
	if s == "" {
		return operand{}, errors.New("empty operand")
	}

	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	letters := s[:i]
	if letters == "" {
		return operand{}, errors.New("operand does not name a register")
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	digits := s[start:i]

	var op operand
	var bracket string
	if i < len(s) && s[i] == '[' {
		end := strings.IndexByte(s[i:], ']')
		if end < 0 {
			return operand{}, errors.New("unterminated register index")
		}
		bracket = s[i : i+end+1]
		i += end + 1
	}

	space, numbered := numberedSpaces[letters]
	switch {
	case numbered && digits != "":
		n, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return operand{}, err
		}
		op.reg = scalar.Reg(space, uint32(n))
		if bracket != "" {
			if err := op.setIndex(bracket[1 : len(bracket)-1]); err != nil {
				return operand{}, err
			}
		}
	case numbered:
		return operand{}, errors.New("register number missing")
	default:
		op.reg = namedRegister(letters, s[:i])
	}

	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isSelector(s, i) {
			i++
		}
		op.sel = s[start:i]
		if op.sel == "" {
			return operand{}, errors.New("empty component selector")
		}
	}

	if rest := s[i:]; rest != "" && rest[0] != '_' {
		return operand{}, errors.New("unexpected text after operand")
	}
	return op, nil
}

// namedRegister classifies a register whose prefix is not a numbered space.
// Names starting with v or o are named stage ports.
func namedRegister(letters, name string) scalar.Register {
	switch letters[0] {
	case 'v':
		return scalar.Port(scalar.SpaceInput, name)
	case 'o':
		return scalar.Port(scalar.SpaceOutput, name)
	default:
		return scalar.Register{Space: scalar.SpaceOther, Name: name}
	}
}

// setIndex records a constant element or a relative address.
func (op *operand) setIndex(expr string) error {
	expr = strings.TrimSpace(expr)
	if n, err := strconv.ParseUint(expr, 0, 32); err == nil {
		op.reg.Element = uint32(n)
		return nil
	}
	base, offset, _ := strings.Cut(expr, "+")
	if offset != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(offset), 0, 32)
		if err != nil {
			return errors.New("invalid register index offset")
		}
		op.reg.Element = uint32(n)
	}
	idx, err := parseOperand(base)
	if err != nil {
		return err
	}
	op.index = &idx
	return nil
}

// mask returns the components written when the operand is a destination.
func (op operand) mask() scalar.ComponentMask {
	if op.sel == "" {
		return scalar.MaskAll
	}
	var m scalar.ComponentMask
	for _, r := range op.sel {
		if c, ok := scalar.ParseComponent(r); ok {
			m |= scalar.MaskOf(c)
		}
	}
	return m
}

// lane returns the source component read for destination lane i. A short
// swizzle repeats its last selector. Constant selectors (0, 1) read nothing.
func (op operand) lane(i scalar.Component) (scalar.Location, bool) {
	sel := strings.TrimRight(op.sel, "_")
	if sel == "" {
		return op.reg.At(i), true
	}
	pos := min(int(i), len(sel)-1)
	c, ok := scalar.ParseComponent(rune(sel[pos]))
	if !ok {
		return scalar.Location{}, false
	}
	return op.reg.At(c), true
}

// reads appends the sources read for destination lane i, including the
// relative address register if any.
func (op operand) reads(dst []scalar.Source, i scalar.Component) []scalar.Source {
	if loc, ok := op.lane(i); ok {
		dst = append(dst, scalar.From(loc))
	}
	if op.index != nil {
		if loc, ok := op.index.lane(scalar.X); ok {
			dst = append(dst, scalar.From(loc))
		}
	}
	return dst
}

func isLetter(b byte) bool { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isSelector reports whether s[i] continues a component selector. An
// underscore continues it only when it is a write-mask placeholder, not the
// start of a modifier such as _abs or _neg(xyzw).
func isSelector(s string, i int) bool {
	switch s[i] {
	case 'x', 'y', 'z', 'w', '0', '1':
		return true
	case '_':
		if i+1 == len(s) {
			return true
		}
		return strings.IndexByte("xyzw01_", s[i+1]) >= 0
	default:
		return false
	}
}
