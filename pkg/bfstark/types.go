package bfstark

import (
	"github.com/bfstark/bfstark/internal/bfstark/air"
	"github.com/bfstark/bfstark/internal/bfstark/core"
	"github.com/bfstark/bfstark/internal/bfstark/vm"
)

// FieldElement is a BN254 scalar field element, the value type every
// table column and constraint in this module is expressed over.
type FieldElement = core.FieldElement

// Program is a compiled, jump-resolved Brainfuck program.
type Program = vm.Program

// Tables holds the five execution tables a trace produces.
type Tables = vm.Tables

// Config controls how a program is compiled and traced.
type Config struct {
	// TapeSize is the number of addressable memory cells. Zero selects
	// vm.DefaultTapeSize.
	TapeSize int
}

// DefaultConfig returns the Config used when Trace is called without
// one.
func DefaultConfig() Config {
	return Config{TapeSize: vm.DefaultTapeSize}
}

// Field returns the scalar field every FieldElement in this package's
// output belongs to.
func Field() *core.Field {
	return core.BN254
}

// NewElementFromByte wraps a raw input/output byte as a field element,
// the representation Trace expects for its input stream and Tables
// carries for every Input/Output row's value.
func NewElementFromByte(b byte) FieldElement {
	return core.BN254.NewElementFromUint64(uint64(b))
}

// Constraint re-exports air.Constraint for callers that want to run the
// soundness checks in VerifyTrace themselves against a custom table
// projection.
type Constraint = air.Constraint

// TransitionConstraint re-exports air.TransitionConstraint.
type TransitionConstraint = air.TransitionConstraint
