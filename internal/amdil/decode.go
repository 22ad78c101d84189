// SPDX-License-Identifier: MPL-2.0

package amdil

import (
	"bufio"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fxodeps/fxodeps/internal/scalar"
)

// skipped lists opcodes that carry no data dependencies. Control flow is
// matched by base opcode, so "ifc_relop(lt)", "break_logicalnz" and
// "retc" are covered by their families.
var skipped = map[string]bool{
	"ret": true, "retc": true, "end": true, "endmain": true,
	"if": true, "ifc": true, "ifnz": true, "else": true, "endif": true,
	"whileloop": true, "loop": true, "endloop": true,
	"break": true, "breakc": true, "continue": true, "continuec": true,
	"switch": true, "case": true, "default": true, "endswitch": true,
	"func": true, "endfunc": true, "call": true, "callnz": true,
	"nop": true, "mdef": true, "mend": true,
}

// dotLanes maps dot product opcodes to the number of lanes they read.
var dotLanes = map[string]int{"dp2": 2, "dp3": 3, "dp4": 4}

// crossLane lists opcode families whose every result lane may read every
// source lane.
var crossLane = []string{"sample", "load", "gather", "resinfo", "fetch4", "texld", "lds", "uav"}

// decoder holds the program being built.
type decoder struct {
	prog scalar.Program
}

// Decode parses AMDIL text into a program. Lines are processed in order;
// the first malformed line aborts decoding with a *DecodeError.
func Decode(text string) (*scalar.Program, error) {
	var d decoder
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		src := sc.Text()
		if i := strings.IndexByte(src, ';'); i >= 0 {
			src = src[:i]
		}
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		if err := d.decodeLine(src); err != nil {
			return nil, &DecodeError{Line: line, Text: src, Reason: err.Error()}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &DecodeError{Line: line + 1, Reason: err.Error()}
	}
	return &d.prog, nil
}

func (d *decoder) decodeLine(src string) error {
	opcode, rest := src, ""
	if i := strings.IndexAny(src, " \t"); i >= 0 {
		opcode, rest = src[:i], src[i+1:]
	}
	opcode = strings.ToLower(opcode)
	base := baseOpcode(opcode)

	switch {
	case strings.HasPrefix(opcode, "il_"), skipped[opcode], skipped[base]:
		return nil
	case strings.HasPrefix(opcode, "dcl_literal"):
		return d.literal(rest)
	case strings.HasPrefix(opcode, "dcl_input"):
		return d.io(opcode, rest, scalar.DirectionInput)
	case strings.HasPrefix(opcode, "dcl_output"):
		return d.io(opcode, rest, scalar.DirectionOutput)
	case strings.HasPrefix(opcode, "dcl_"):
		return nil
	case base == "discard":
		return d.discard(rest)
	}

	ops, err := splitOperands(rest)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		slog.Debug("ignoring AMDIL instruction without operands", "opcode", opcode)
		return nil
	}
	dst, srcs := ops[0], ops[1:]

	kind := kindOf(base)
	for _, c := range dst.mask().Components() {
		var inputs []scalar.Source
		switch {
		case dotLanes[base] > 0:
			for _, s := range srcs {
				for i := range dotLanes[base] {
					inputs = s.reads(inputs, scalar.Component(i))
				}
			}
		case isCrossLane(base):
			for _, s := range srcs {
				for i := scalar.X; i < scalar.NumComponents; i++ {
					inputs = s.reads(inputs, i)
				}
			}
		default:
			for _, s := range srcs {
				inputs = s.reads(inputs, c)
			}
		}
		if dst.index != nil {
			inputs = dst.index.reads(inputs, scalar.X)
		}
		d.emit(scalar.Dependency{Output: dst.reg.At(c), Inputs: inputs, Kind: kind})
	}
	return nil
}

func (d *decoder) emit(act scalar.Action) {
	d.prog.Actions = append(d.prog.Actions, act)
}

// literal decodes "dcl_literal l0, a, b, c, d".
func (d *decoder) literal(rest string) error {
	fields := strings.Split(rest, ",")
	if len(fields) != 1+scalar.NumComponents {
		return fmt.Errorf("dcl_literal needs a register and %d values, got %d fields", scalar.NumComponents, len(fields))
	}
	op, err := parseOperand(fields[0])
	if err != nil {
		return err
	}
	if !op.reg.IsLiteral() {
		return fmt.Errorf("dcl_literal target %s is not a literal register", op.reg)
	}
	for i, f := range fields[1:] {
		v, err := parseLiteral(strings.TrimSpace(f))
		if err != nil {
			return err
		}
		d.emit(scalar.DeclareLiteral(op.reg.At(scalar.Component(i)), v))
	}
	return nil
}

// parseLiteral parses a 32-bit literal written as hex, decimal or a signed
// decimal, which is stored in two's complement.
func parseLiteral(s string) (scalar.Literal, error) {
	if v, err := strconv.ParseUint(s, 0, 32); err == nil {
		return scalar.Literal(v), nil
	}
	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid literal value %q", s)
	}
	return scalar.Literal(uint32(int32(v))), nil
}

// io decodes an input or output declaration, declaring each masked component.
func (d *decoder) io(opcode, rest string, dir scalar.Direction) error {
	ops, err := splitOperands(rest)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return fmt.Errorf("%s without a register", opcode)
	}
	op := ops[0]
	mask := op.mask()
	for _, c := range mask.Components() {
		d.emit(scalar.Declare(op.reg.At(c)))
	}
	d.prog.IO = append(d.prog.IO, scalar.IODeclaration{
		Register:  op.reg,
		Mask:      mask,
		Direction: dir,
		Semantic:  semantic(opcode),
	})
	return nil
}

// semantic extracts the usage tag from "dcl_input_generic_interp(linear)".
func semantic(opcode string) string {
	_, usage, ok := strings.Cut(opcode, "_")
	if !ok {
		return ""
	}
	_, usage, ok = strings.Cut(usage, "_")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(usage, "_("); i >= 0 {
		usage = usage[:i]
	}
	return usage
}

// discard decodes a conditional discard; its condition is the first lane
// of the operand.
func (d *decoder) discard(rest string) error {
	ops, err := splitOperands(rest)
	if err != nil {
		return err
	}
	var guards []scalar.Location
	for _, op := range ops {
		for _, src := range op.reads(nil, scalar.X) {
			guards = append(guards, src.Location())
		}
	}
	d.emit(scalar.EarlyOut{Guards: guards})
	return nil
}

func splitOperands(rest string) ([]operand, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, nil
	}
	var ops []operand
	for _, f := range strings.Split(rest, ",") {
		op, err := parseOperand(f)
		if err != nil {
			return nil, fmt.Errorf("operand %q: %w", strings.TrimSpace(f), err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// baseOpcode strips modifiers and suffixes: "mul_ieee" -> "mul",
// "sample_resource(0)_sampler(0)" -> "sample".
func baseOpcode(opcode string) string {
	if i := strings.IndexAny(opcode, "_("); i >= 0 {
		return opcode[:i]
	}
	return opcode
}

func isCrossLane(base string) bool {
	for _, p := range crossLane {
		if strings.HasPrefix(base, p) {
			return true
		}
	}
	return false
}

// kindOf guesses the value type an opcode operates on.
func kindOf(base string) scalar.ValueKind {
	switch {
	case base == "mov" || base == "cmov" || base == "and" || base == "or" || isCrossLane(base):
		return scalar.KindUntyped
	case base == "ftoi":
		return scalar.KindInt
	case base == "ftou":
		return scalar.KindUint
	case base == "itof" || base == "utof":
		return scalar.KindFloat
	case strings.HasPrefix(base, "i"):
		return scalar.KindInt
	case strings.HasPrefix(base, "u"):
		return scalar.KindUint
	default:
		return scalar.KindFloat
	}
}
