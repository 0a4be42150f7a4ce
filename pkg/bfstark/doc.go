// Package bfstark arithmetizes Brainfuck execution as a PLONK-style set
// of algebraic tables over the BN254 scalar field.
//
// A minimal round trip looks like:
//
//	tables, err := bfstark.Trace([]byte("++."), nil, bfstark.DefaultConfig())
//	if err != nil {
//		// compilation or execution failed
//	}
//	if err := bfstark.VerifyTrace(tables); err != nil {
//		// the trace violates the arithmetization's rules
//	}
//
// Trace compiles and executes a Brainfuck program, producing the five
// execution tables (Processor, Memory, Instruction, Input, Output).
// VerifyTrace checks those tables against every boundary, consistency,
// transition and terminal constraint, plus the cross-table lookup
// arguments binding Memory, Instruction, Input and Output back into
// Processor. Lower-level access to the tables and constraints is
// available through the re-exported types and the internal vm and air
// packages for callers building a full proving pipeline on top.
package bfstark
