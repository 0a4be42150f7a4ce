package air

import (
	"github.com/bfstark/bfstark/internal/bfstark/core"
	"github.com/bfstark/bfstark/internal/bfstark/vm"
)

// Instruction table column layout.
const (
	instrIp = iota
	instrCi
	instrNi
	instrWidth
)

// InstructionColumns flattens an Instruction row into (ip, ci, ni).
func InstructionColumns(r vm.InstructionRow) []core.FieldElement {
	return []core.FieldElement{r.Ip, r.Ci, r.Ni}
}

// InstructionColumnRows flattens an entire Instruction table, already
// sorted by ip per vm.Tables' contract.
func InstructionColumnRows(rows []vm.InstructionRow) [][]core.FieldElement {
	out := make([][]core.FieldElement, len(rows))
	for i, r := range rows {
		out[i] = InstructionColumns(r)
	}
	return out
}

// InstructionTransitionConstraints returns the two constraints that make
// the Instruction table a single, internally-consistent program listing
// even though it interleaves the compiled program's static entries with
// every row the Processor witnessed at that address (spec.md §3):
//
//   - the address column only ever repeats or advances by exactly one;
//   - whenever two consecutive rows share an address, they must agree on
//     both the current and next instruction, so two witnesses of the
//     same program counter can never disagree about what instruction
//     lives there.
func InstructionTransitionConstraints(field *core.Field) []TransitionConstraint {
	one := field.One()
	return []TransitionConstraint{
		{
			Name:   "instruction.transition.ip_step",
			Degree: 2,
			Evaluate: func(cur, next []core.FieldElement) core.FieldElement {
				d := next[instrIp].Sub(cur[instrIp])
				return d.Mul(d.Sub(one))
			},
		},
		{
			Name:   "instruction.transition.ci_agrees_when_duplicated",
			Degree: 2,
			Evaluate: func(cur, next []core.FieldElement) core.FieldElement {
				sameIp := one.Sub(next[instrIp].Sub(cur[instrIp]))
				return sameIp.Mul(next[instrCi].Sub(cur[instrCi]))
			},
		},
		{
			Name:   "instruction.transition.ni_agrees_when_duplicated",
			Degree: 2,
			Evaluate: func(cur, next []core.FieldElement) core.FieldElement {
				sameIp := one.Sub(next[instrIp].Sub(cur[instrIp]))
				return sameIp.Mul(next[instrNi].Sub(cur[instrNi]))
			},
		},
	}
}
