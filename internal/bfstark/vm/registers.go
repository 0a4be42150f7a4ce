package vm

import "github.com/bfstark/bfstark/internal/bfstark/core"

// Registers holds the Tracer's live state (spec.md §3). One snapshot per
// executed step becomes one Processor row.
type Registers struct {
	Clk uint64
	Ip  int
	Ci  core.FieldElement
	Ni  core.FieldElement
	Mp  int
	Mv  core.FieldElement
	Mvi core.FieldElement
}

// zeroRegisters returns the all-zero register snapshot spec.md §4.3's
// boundary constraint requires of Processor row 0.
func zeroRegisters(field *core.Field) Registers {
	return Registers{
		Clk: 0,
		Ip:  0,
		Ci:  field.Zero(),
		Ni:  field.Zero(),
		Mp:  0,
		Mv:  field.Zero(),
		Mvi: field.Zero(),
	}
}
