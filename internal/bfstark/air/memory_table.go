package air

import (
	"github.com/bfstark/bfstark/internal/bfstark/core"
	"github.com/bfstark/bfstark/internal/bfstark/vm"
)

// Memory table column layout.
const (
	memClk = iota
	memMp
	memMv
	memWidth
)

// MemoryColumns flattens a Memory row into (clk, mp, mv).
func MemoryColumns(r vm.MemoryRow) []core.FieldElement {
	field := r.Mp.Field()
	return []core.FieldElement{field.NewElementFromUint64(r.Clk), r.Mp, r.Mv}
}

// MemoryColumnRows flattens an entire Memory table, already sorted by
// (mp, clk) per vm.Tables' contract.
func MemoryColumnRows(rows []vm.MemoryRow) [][]core.FieldElement {
	out := make([][]core.FieldElement, len(rows))
	for i, r := range rows {
		out[i] = MemoryColumns(r)
	}
	return out
}

// MemoryBoundaryConstraints pins row 0 to the all-zero state: execution
// starts at address 0, clock 0, value 0.
func MemoryBoundaryConstraints(field *core.Field) []Constraint {
	zero := func(name string, col int) Constraint {
		return Constraint{
			Name:   name,
			Degree: 1,
			Evaluate: func(row []core.FieldElement) core.FieldElement {
				return row[col]
			},
		}
	}
	return []Constraint{
		zero("memory.boundary.clk", memClk),
		zero("memory.boundary.mp", memMp),
		zero("memory.boundary.mv", memMv),
	}
}

// MemoryTransitionConstraints returns the three constraints that make the
// sorted Memory table an internally consistent record of every cell's
// value history (spec.md §4.4's memory-table invariants, grounded in the
// original memory_table.rs's constraint_m0/m1/m2):
//
//   - M0: the address column only ever increases by 0 or 1 between rows.
//   - M1: whenever the address is unchanged and the clock jumps by more
//     than one step, the cell's value must be held — a revisited cell
//     cannot silently change between the row that leaves it and the row
//     that comes back to it.
//   - M2: whenever the address advances to a cell never visited before,
//     that cell's recorded value starts at zero.
func MemoryTransitionConstraints(field *core.Field) []TransitionConstraint {
	one := field.One()
	return []TransitionConstraint{
		{
			Name:   "memory.transition.mp_step",
			Degree: 2,
			Evaluate: func(cur, next []core.FieldElement) core.FieldElement {
				d := next[memMp].Sub(cur[memMp])
				return d.Mul(d.Sub(one))
			},
		},
		{
			// (mp' - mp - 1)*(mv' - mv)*(clk' - clk - 1) = 0
			Name:   "memory.transition.value_held_across_gap",
			Degree: 3,
			Evaluate: func(cur, next []core.FieldElement) core.FieldElement {
				mpTerm := next[memMp].Sub(cur[memMp]).Sub(one)
				mvTerm := next[memMv].Sub(cur[memMv])
				clkTerm := next[memClk].Sub(cur[memClk]).Sub(one)
				return mpTerm.Mul(mvTerm).Mul(clkTerm)
			},
		},
		{
			Name:   "memory.transition.new_cell_is_zero",
			Degree: 2,
			Evaluate: func(cur, next []core.FieldElement) core.FieldElement {
				d := next[memMp].Sub(cur[memMp])
				return d.Mul(next[memMv])
			},
		},
	}
}
