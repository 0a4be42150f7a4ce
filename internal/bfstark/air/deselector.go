// Package air builds the algebraic intermediate representation over the
// five execution tables the vm package produces: the boundary,
// consistency, transition and terminal constraint polynomials, and the
// cross-table lookup arguments that tie Memory, Instruction, Input and
// Output back into Processor.
package air

import (
	"github.com/bfstark/bfstark/internal/bfstark/core"
	"github.com/bfstark/bfstark/internal/bfstark/vm"
)

// Deselector builds the degree-7 polynomial D_x(ci) = ∏_{y≠x} (ci - y),
// taken over the eight opcode values. D_x vanishes at every opcode other
// than x and is nonzero at x itself, so a transition constraint written as
// Σ_x D_x(ci) · expr_x(...) reduces, at any row where ci = x, to the
// single term D_x(x) · expr_x(...); since D_x(x) ≠ 0, the whole sum is
// zero exactly when expr_x is zero there.
//
// This fixes a defect in the construction this arithmetization is
// modeled on, which built each factor as (y − y) — always zero,
// collapsing every deselector to the zero polynomial and silently
// disabling every instruction-specific transition constraint. Here each
// factor is (ci − y), matching the definition above.
func Deselector(field *core.Field, x vm.Opcode, ci core.FieldElement) core.FieldElement {
	acc := field.One()
	for _, y := range vm.Instructions {
		if y == x {
			continue
		}
		acc = acc.Mul(ci.Sub(field.NewElementFromUint64(uint64(y))))
	}
	return acc
}
