// SPDX-License-Identifier: MPL-2.0

package scalar

import (
	"fmt"
	"strings"
)

const (
	// DirectionInput marks a stage input declaration.
	DirectionInput Direction = iota + 1
	// DirectionOutput marks a stage output declaration.
	DirectionOutput
)

type (
	// Action is one step of a decoded program. It is a closed set:
	// Declaration, Dependency and EarlyOut are the only implementations.
	Action interface {
		action()
		String() string
	}

	// Declaration announces that a location exists. When Value is set the
	// location holds that literal constant.
	Declaration struct {
		Location Location
		Value    *Literal
	}

	// Dependency records that Output is written from Inputs.
	// Kind is the value type the writing instruction operates on.
	Dependency struct {
		Output Location
		Inputs []Source
		Kind   ValueKind
	}

	// EarlyOut records a conditional discard or early return guarded by
	// Guards. Every write after it depends on the guards.
	EarlyOut struct {
		Guards []Location
	}

	// Direction is the data direction of an I/O declaration.
	Direction uint8

	// IODeclaration is a stage input or output register declared by the program.
	IODeclaration struct {
		Register  Register
		Mask      ComponentMask
		Direction Direction
		// Semantic is the decoder's usage tag ("position", "generic"), if any.
		Semantic string
	}

	// Program is a decoded shader: its actions in program order and its
	// declared inputs and outputs.
	Program struct {
		Actions []Action
		IO      []IODeclaration
	}
)

func (Declaration) action() {}
func (Dependency) action()  {}
func (EarlyOut) action()    {}

// Declare returns a Declaration without a value.
func Declare(loc Location) Declaration { return Declaration{Location: loc} }

// DeclareLiteral returns a Declaration of a literal location.
func DeclareLiteral(loc Location, v Literal) Declaration {
	return Declaration{Location: loc, Value: &v}
}

func (d Declaration) String() string {
	if d.Value != nil {
		return fmt.Sprintf("%s = %s", d.Location, *d.Value)
	}
	return fmt.Sprintf("%s exists", d.Location)
}

func (d Dependency) String() string {
	inputs := make([]string, len(d.Inputs))
	for i, in := range d.Inputs {
		inputs[i] = in.String()
	}
	return fmt.Sprintf("%s <- %s", d.Output, strings.Join(inputs, ", "))
}

func (e EarlyOut) String() string {
	guards := make([]string, len(e.Guards))
	for i, g := range e.Guards {
		guards[i] = g.String()
	}
	return fmt.Sprintf("early out [%s]", strings.Join(guards, ", "))
}

// String returns "input" or "output".
func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "input"
	case DirectionOutput:
		return "output"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// String returns the declaration as "direction reg.mask".
func (d IODeclaration) String() string {
	s := fmt.Sprintf("%s %s.%s", d.Direction, d.Register, d.Mask)
	if d.Semantic != "" {
		s += " (" + d.Semantic + ")"
	}
	return s
}
