// Package bfstark is the public entry point for compiling Brainfuck
// source, tracing its execution over the BN254 scalar field, and
// checking the resulting tables against the algebraic intermediate
// representation that would ultimately back a zero-knowledge proof of
// correct execution.
package bfstark

import (
	"math/big"

	"github.com/bfstark/bfstark/internal/bfstark/air"
	"github.com/bfstark/bfstark/internal/bfstark/core"
	"github.com/bfstark/bfstark/internal/bfstark/vm"
)

// Compile translates raw Brainfuck source into a jump-resolved Program.
func Compile(source []byte) (Program, error) {
	prog, err := vm.Compile(source)
	if err != nil {
		return Program{}, newError(ErrCodeCompile, "failed to compile source", err)
	}
	return prog, nil
}

// Trace compiles source and executes it against input (one field element
// per byte, consumed in order by GETCHAR), returning the five execution
// tables. A zero-value Config selects DefaultConfig.
func Trace(source []byte, input []byte, cfg Config) (Tables, error) {
	prog, err := Compile(source)
	if err != nil {
		return Tables{}, err
	}

	elems := make([]FieldElement, len(input))
	for i, b := range input {
		elems[i] = NewElementFromByte(b)
	}

	tapeSize := cfg.TapeSize
	if tapeSize == 0 {
		tapeSize = vm.DefaultTapeSize
	}

	interp, err := vm.New(prog, elems, tapeSize)
	if err != nil {
		return Tables{}, newError(ErrCodeExecution, "failed to initialize interpreter", err)
	}
	if err := interp.Run(); err != nil {
		return Tables{}, newError(ErrCodeExecution, "execution failed", err)
	}
	return interp.Tables(), nil
}

// Fingerprint returns a digest binding every row of every table in
// tables, suitable as the initial Fiat-Shamir absorption for a proof
// over this trace.
func Fingerprint(tables Tables) []byte {
	return vm.TraceFingerprint(tables)
}

// lookupSpec names one cross-table lookup argument: sub's rows must all
// appear in a projection of the Processor table.
type lookupSpec struct {
	name string
	sub  [][]FieldElement
	// project extracts, from a full Processor row, the columns that line
	// up with sub's column layout.
	project func(processorRow []FieldElement) []FieldElement
}

// VerifyTrace checks every boundary, consistency, transition and
// terminal constraint across all five tables, plus the four cross-table
// lookup arguments (Memory, Instruction, Input, Output ⊆ Processor). It
// reports the first violation found; a nil return means tables is an
// internally consistent witness of the arithmetization's rules.
func VerifyTrace(tables Tables) error {
	field := core.BN254

	processorRows := air.ProcessorColumnRows(tables.Processor)
	memoryRows := air.MemoryColumnRows(tables.Memory)
	instructionRows := air.InstructionColumnRows(tables.Instruction)
	inputRows := air.IOColumnRows(tables.Input)
	outputRows := air.IOColumnRows(tables.Output)

	tableChecks := []func() error{
		func() error { return runAll(air.ProcessorBoundaryConstraints(field), processorRows, air.CheckBoundary) },
		func() error { return runAll(air.ProcessorTerminalConstraints(field), processorRows, air.CheckTerminal) },
		func() error {
			return runAll(air.ProcessorConsistencyConstraints(field), processorRows, air.CheckConsistency)
		},
		func() error { return runAllTransitions(air.ProcessorTransitionConstraints(field), processorRows) },
		func() error { return runAll(air.MemoryBoundaryConstraints(field), memoryRows, air.CheckBoundary) },
		func() error { return runAllTransitions(air.MemoryTransitionConstraints(field), memoryRows) },
		func() error { return runAllTransitions(air.InstructionTransitionConstraints(field), instructionRows) },
		func() error { return runAllTransitions(air.IOTransitionConstraints(field), inputRows) },
		func() error { return runAllTransitions(air.IOTransitionConstraints(field), outputRows) },
	}
	for _, check := range tableChecks {
		if err := check(); err != nil {
			return newError(ErrCodeConstraint, "trace violates a table constraint", err)
		}
	}

	seed := Fingerprint(tables)
	// air.ProcessorColumns has 7 columns (procWidth); deriving that many
	// challenges covers every lookup's compression below, each of which
	// uses a prefix of this same slice.
	challenges := air.DeriveChallenges(field, field.NewElement(new(big.Int).SetBytes(seed)), 7)

	lookups := []lookupSpec{
		{
			name: "memory",
			sub:  memoryRows,
			project: func(p []FieldElement) []FieldElement {
				return []FieldElement{p[0], p[4], p[5]} // clk, mp, mv
			},
		},
		{
			name: "instruction",
			sub:  instructionRows,
			project: func(p []FieldElement) []FieldElement {
				return []FieldElement{p[1], p[2], p[3]} // ip, ci, ni
			},
		},
		{
			name: "input",
			sub:  inputRows,
			project: func(p []FieldElement) []FieldElement {
				return []FieldElement{p[0], p[5]} // clk, mv
			},
		},
		{
			name: "output",
			sub:  outputRows,
			project: func(p []FieldElement) []FieldElement {
				return []FieldElement{p[0], p[5]} // clk, mv
			},
		},
	}
	for _, lk := range lookups {
		if len(lk.sub) == 0 {
			continue
		}
		super := make([][]FieldElement, len(processorRows))
		for i, row := range processorRows {
			super[i] = lk.project(row)
		}
		width := len(lk.sub[0])
		if err := air.CheckContainment(lk.sub, super, challenges[:width]); err != nil {
			return newError(ErrCodeLookup, lk.name+" lookup argument failed", err)
		}
	}

	return nil
}

func runAll(constraints []Constraint, rows [][]FieldElement, check func(Constraint, [][]FieldElement) error) error {
	for _, c := range constraints {
		if err := check(c, rows); err != nil {
			return err
		}
	}
	return nil
}

func runAllTransitions(constraints []TransitionConstraint, rows [][]FieldElement) error {
	for _, c := range constraints {
		if err := air.CheckTransition(c, rows); err != nil {
			return err
		}
	}
	return nil
}
