package vm

import (
	"sort"

	"github.com/bfstark/bfstark/internal/bfstark/core"
)

// ProcessorRow is one row of the Processor table: a full register
// snapshot, in chronological order (spec.md §3).
type ProcessorRow struct {
	Clk uint64
	Ip  core.FieldElement
	Ci  core.FieldElement
	Ni  core.FieldElement
	Mp  core.FieldElement
	Mv  core.FieldElement
	Mvi core.FieldElement
}

// MemoryRow is one row of the Memory table, sorted by (Mp, Clk).
type MemoryRow struct {
	Clk uint64
	Mp  core.FieldElement
	Mv  core.FieldElement
}

// InstructionRow is one row of the Instruction table, sorted by Ip.
type InstructionRow struct {
	Ip core.FieldElement
	Ci core.FieldElement
	Ni core.FieldElement
}

// IORow is one row of the Input or Output table, in chronological order.
type IORow struct {
	Clk   uint64
	Value core.FieldElement
}

// Tables holds the five frozen tables the Tracer produces (spec.md §3).
// Once Run has completed, Tables is immutable: the Memory and Instruction
// tables are views derived from Processor (plus, for Instruction, the
// compiled program's static projection); Input and Output are the public
// instance data.
type Tables struct {
	Processor   []ProcessorRow
	Memory      []MemoryRow
	Instruction []InstructionRow
	Input       []IORow
	Output      []IORow
}

// deriveMemoryTable projects (clk, mp, mv) out of every Processor row and
// stable-sorts by (mp asc, clk asc), per spec.md §4.2's post-processing
// step — "one row per Processor row", so no rows are added or removed,
// only reordered.
func deriveMemoryTable(processor []ProcessorRow) []MemoryRow {
	rows := make([]MemoryRow, len(processor))
	for i, p := range processor {
		rows[i] = MemoryRow{Clk: p.Clk, Mp: p.Mp, Mv: p.Mv}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ci, cj := rows[i].Mp.Big(), rows[j].Mp.Big()
		if c := ci.Cmp(cj); c != 0 {
			return c < 0
		}
		return rows[i].Clk < rows[j].Clk
	})
	return rows
}

// deriveInstructionTable builds the Instruction table: the witnessed
// projection of Processor rows, unioned with the compiled program's
// static (ip, ci, ni) entries, stable-sorted by ip (spec.md §4.2, §3).
func deriveInstructionTable(processor []ProcessorRow, program Program, field *core.Field) []InstructionRow {
	rows := make([]InstructionRow, 0, len(processor)+len(program.Cells))
	for _, p := range processor {
		rows = append(rows, InstructionRow{Ip: p.Ip, Ci: p.Ci, Ni: p.Ni})
	}
	for _, i := range program.InstructionPositions() {
		rows = append(rows, InstructionRow{
			Ip: field.NewElementFromUint64(uint64(i)),
			Ci: field.NewElementFromUint64(program.Cells[i]),
			Ni: field.NewElementFromUint64(program.At(i + 1)),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Ip.Big().Cmp(rows[j].Ip.Big()) < 0
	})
	return rows
}
