package air

import (
	"github.com/bfstark/bfstark/internal/bfstark/core"
	"github.com/bfstark/bfstark/internal/bfstark/vm"
)

// Processor table column layout.
const (
	procClk = iota
	procIp
	procCi
	procNi
	procMp
	procMv
	procMvi
	procWidth
)

// ProcessorColumns flattens a Processor row into the column order the
// constraints in this file expect.
func ProcessorColumns(r vm.ProcessorRow) []core.FieldElement {
	field := r.Ip.Field()
	return []core.FieldElement{field.NewElementFromUint64(r.Clk), r.Ip, r.Ci, r.Ni, r.Mp, r.Mv, r.Mvi}
}

// ProcessorColumnRows flattens an entire Processor table.
func ProcessorColumnRows(rows []vm.ProcessorRow) [][]core.FieldElement {
	out := make([][]core.FieldElement, len(rows))
	for i, r := range rows {
		out[i] = ProcessorColumns(r)
	}
	return out
}

// ProcessorBoundaryConstraints returns the constraints that must hold at
// row 0: every register that does not depend on the program text starts
// at zero (spec.md §4.3). ci and ni are excluded here — at row 0 they
// hold the first instruction and its successor, whatever the compiled
// program happens to start with, not zero.
func ProcessorBoundaryConstraints(field *core.Field) []Constraint {
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
		zero("processor.boundary.clk", procClk),
		zero("processor.boundary.ip", procIp),
		zero("processor.boundary.mp", procMp),
		zero("processor.boundary.mv", procMv),
		zero("processor.boundary.mvi", procMvi),
	}
}

// ProcessorTerminalConstraints returns the constraints that must hold at
// the last row: execution halts on the zero opcode (spec.md §4.3).
func ProcessorTerminalConstraints(field *core.Field) []Constraint {
	return []Constraint{
		{
			Name:   "processor.terminal.ci",
			Degree: 1,
			Evaluate: func(row []core.FieldElement) core.FieldElement {
				return row[procCi]
			},
		},
		{
			Name:   "processor.terminal.ni",
			Degree: 1,
			Evaluate: func(row []core.FieldElement) core.FieldElement {
				return row[procNi]
			},
		},
	}
}

// ProcessorConsistencyConstraints returns the row-local invariant tying
// mv and mvi together: mvi is mv's inverse when mv is nonzero, and zero
// when mv is zero. Both halves are required because neither alone rules
// out mvi being an arbitrary nonzero value when mv is zero.
func ProcessorConsistencyConstraints(field *core.Field) []Constraint {
	one := field.One()
	return []Constraint{
		{
			Name:   "processor.consistency.mv",
			Degree: 3,
			Evaluate: func(row []core.FieldElement) core.FieldElement {
				mv, mvi := row[procMv], row[procMvi]
				return mv.Mul(mv.Mul(mvi).Sub(one))
			},
		},
		{
			Name:   "processor.consistency.mvi",
			Degree: 3,
			Evaluate: func(row []core.FieldElement) core.FieldElement {
				mv, mvi := row[procMv], row[procMvi]
				return mvi.Mul(mv.Mul(mvi).Sub(one))
			},
		},
	}
}

// isNonzero returns the branch-free "mv is nonzero" indicator mv*mvi,
// which the consistency constraints pin to exactly {0, 1}.
func isNonzero(mv, mvi core.FieldElement) core.FieldElement {
	return mv.Mul(mvi)
}

// transitionExprs maps each opcode to its Φ_x transition expression:
// given the current and next row's columns, the value that must be zero
// for that opcode's step to be valid (spec.md §4.3's per-instruction
// Processor transition table).
func transitionExprs(field *core.Field) map[vm.Opcode]func(cur, next []core.FieldElement) []core.FieldElement {
	one := field.One()
	two := field.NewElementFromInt64(2)

	ipAdvanceBy1 := func(cur, next []core.FieldElement) core.FieldElement {
		return next[procIp].Sub(cur[procIp].Add(one))
	}
	mpUnchanged := func(cur, next []core.FieldElement) core.FieldElement {
		return next[procMp].Sub(cur[procMp])
	}
	mvUnchanged := func(cur, next []core.FieldElement) core.FieldElement {
		return next[procMv].Sub(cur[procMv])
	}

	return map[vm.Opcode]func(cur, next []core.FieldElement) []core.FieldElement{
		vm.SHL: func(cur, next []core.FieldElement) []core.FieldElement {
			return []core.FieldElement{
				ipAdvanceBy1(cur, next),
				next[procMp].Sub(cur[procMp].Sub(one)),
			}
		},
		vm.SHR: func(cur, next []core.FieldElement) []core.FieldElement {
			return []core.FieldElement{
				ipAdvanceBy1(cur, next),
				next[procMp].Sub(cur[procMp].Add(one)),
			}
		},
		vm.ADD: func(cur, next []core.FieldElement) []core.FieldElement {
			return []core.FieldElement{
				ipAdvanceBy1(cur, next),
				mpUnchanged(cur, next),
				next[procMv].Sub(cur[procMv].Add(one)),
			}
		},
		vm.SUB: func(cur, next []core.FieldElement) []core.FieldElement {
			return []core.FieldElement{
				ipAdvanceBy1(cur, next),
				mpUnchanged(cur, next),
				next[procMv].Sub(cur[procMv].Sub(one)),
			}
		},
		vm.GETCHAR: func(cur, next []core.FieldElement) []core.FieldElement {
			// mv' is bound by the Input table lookup (spec.md §4.4), not
			// here: any value the Input table co-attests to is valid.
			return []core.FieldElement{
				ipAdvanceBy1(cur, next),
				mpUnchanged(cur, next),
			}
		},
		vm.PUTCHAR: func(cur, next []core.FieldElement) []core.FieldElement {
			return []core.FieldElement{
				ipAdvanceBy1(cur, next),
				mpUnchanged(cur, next),
				mvUnchanged(cur, next),
			}
		},
		vm.LB: func(cur, next []core.FieldElement) []core.FieldElement {
			nz := isNonzero(cur[procMv], cur[procMvi])
			notNz := one.Sub(nz)
			// ip' = nz*(ip+2) + (1-nz)*ni
			branchFree := next[procIp].Sub(nz.Mul(cur[procIp].Add(two)).Add(notNz.Mul(cur[procNi])))
			return []core.FieldElement{
				mpUnchanged(cur, next),
				branchFree,
				mvUnchanged(cur, next),
			}
		},
		vm.RB: func(cur, next []core.FieldElement) []core.FieldElement {
			nz := isNonzero(cur[procMv], cur[procMvi])
			notNz := one.Sub(nz)
			// ip' = nz*ni + (1-nz)*(ip+2)
			branchFree := next[procIp].Sub(nz.Mul(cur[procNi]).Add(notNz.Mul(cur[procIp].Add(two))))
			return []core.FieldElement{
				mpUnchanged(cur, next),
				branchFree,
				mvUnchanged(cur, next),
			}
		},
	}
}

// ProcessorTransitionConstraints returns the constraints relating each
// Processor row to its successor: clk always advances by one, and
// exactly one opcode-specific set of equalities holds, selected
// branch-free by the deselector polynomials (spec.md §4.3, §9).
func ProcessorTransitionConstraints(field *core.Field) []TransitionConstraint {
	one := field.One()
	exprs := transitionExprs(field)

	constraints := []TransitionConstraint{
		{
			Name:   "processor.transition.clk",
			Degree: 1,
			Evaluate: func(cur, next []core.FieldElement) core.FieldElement {
				return next[procClk].Sub(cur[procClk].Add(one))
			},
		},
	}

	// Every opcode contributes one deselected constraint per expression
	// it produces; summing the deselected expressions for a fixed index
	// across opcodes keeps the degree bounded without interleaving
	// unrelated opcodes' expressions into a single polynomial.
	maxExprs := 0
	for _, op := range vm.Instructions {
		if n := len(exprs[op](zeroRowPair(field))); n > maxExprs {
			maxExprs = n
		}
	}

	for slot := 0; slot < maxExprs; slot++ {
		slot := slot
		constraints = append(constraints, TransitionConstraint{
			Name: "processor.transition.opcode",
			// Degree-7 deselector times the degree-3 bracket ip
			// expression, the highest-degree Φ_x term in any slot.
			Degree: 10,
			Evaluate: func(cur, next []core.FieldElement) core.FieldElement {
				acc := field.Zero()
				for _, op := range vm.Instructions {
					es := exprs[op](cur, next)
					if slot >= len(es) {
						continue
					}
					d := Deselector(field, op, cur[procCi])
					acc = acc.Add(d.Mul(es[slot]))
				}
				return acc
			},
		})
	}
	return constraints
}

// zeroRowPair is a throwaway (cur, next) pair used only to probe how
// many expressions each opcode's transitionExprs entry produces.
func zeroRowPair(field *core.Field) ([]core.FieldElement, []core.FieldElement) {
	row := make([]core.FieldElement, procWidth)
	for i := range row {
		row[i] = field.Zero()
	}
	next := make([]core.FieldElement, procWidth)
	copy(next, row)
	return row, next
}
