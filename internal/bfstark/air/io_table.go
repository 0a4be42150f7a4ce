package air

import (
	"math/big"

	"github.com/bfstark/bfstark/internal/bfstark/core"
	"github.com/bfstark/bfstark/internal/bfstark/vm"
)

// Input and Output table column layout (shared: both tables are records
// of (clk, value) pairs in the order their GETCHAR/PUTCHAR instructions
// executed).
const (
	ioClk = iota
	ioValue
	ioWidth
)

// ClkByteWidth bounds the number of bytes the less-than gadget below
// decomposes a clk difference into. 8 bytes comfortably covers any trace
// this Tracer can produce (clk is itself a uint64).
const ClkByteWidth = 8

// IOColumns flattens an Input or Output row into (clk, value).
func IOColumns(r vm.IORow) []core.FieldElement {
	field := r.Value.Field()
	return []core.FieldElement{field.NewElementFromUint64(r.Clk), r.Value}
}

// IOColumnRows flattens an entire Input or Output table.
func IOColumnRows(rows []vm.IORow) [][]core.FieldElement {
	out := make([][]core.FieldElement, len(rows))
	for i, r := range rows {
		out[i] = IOColumns(r)
	}
	return out
}

// LessThan reports whether a < b, by checking that the canonical
// representative of b - a is nonzero and below 2^(8·numBytes), i.e. that
// the difference fits in numBytes bytes without wraparound — the same
// "unsigned difference fits in N bytes" technique as the
// original less-than gadget, adapted here to a direct range check rather
// than a set of byte-lookup columns, since this package checks
// constraint satisfaction against a concrete witness rather than
// building a full lookup-argument circuit for the range check itself.
func LessThan(field *core.Field, a, b core.FieldElement, numBytes int) bool {
	diff := b.Sub(a).Big()
	limit := new(big.Int).Lsh(big.NewInt(1), uint(numBytes*8))
	return diff.Sign() > 0 && diff.Cmp(limit) < 0
}

// IOTransitionConstraints returns the constraint requiring the clock
// column to strictly increase from row to row (spec.md §3's "Input and
// Output rows are in strictly increasing clk order"), built on LessThan.
func IOTransitionConstraints(field *core.Field) []TransitionConstraint {
	return []TransitionConstraint{
		{
			Name:   "io.transition.clk_strictly_increases",
			Degree: 1,
			Evaluate: func(cur, next []core.FieldElement) core.FieldElement {
				if LessThan(field, cur[ioClk], next[ioClk], ClkByteWidth) {
					return field.Zero()
				}
				return field.One()
			},
		},
	}
}
