package vm

import (
	"errors"
	"testing"

	"github.com/bfstark/bfstark/internal/bfstark/core"
)

func mustCompile(t *testing.T, src string) Program {
	t.Helper()
	prog, err := Compile([]byte(src))
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	return prog
}

func TestRunIncrementAndOutput(t *testing.T) {
	prog := mustCompile(t, "+++.")
	in, err := New(prog, nil, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := in.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	tables := in.Tables()
	if len(tables.Output) != 1 {
		t.Fatalf("len(Output) = %d, want 1", len(tables.Output))
	}
	if got, want := tables.Output[0].Value.Big().Int64(), int64(3); got != want {
		t.Fatalf("output value = %d, want %d", got, want)
	}
	// One row per executed instruction (4) plus the terminal row.
	if got, want := len(tables.Processor), 5; got != want {
		t.Fatalf("len(Processor) = %d, want %d", got, want)
	}
	last := tables.Processor[len(tables.Processor)-1]
	if !last.Ci.IsZero() || !last.Ni.IsZero() {
		t.Fatalf("terminal row ci/ni not zero: ci=%s ni=%s", last.Ci, last.Ni)
	}
}

func TestRunLoopZeroesCell(t *testing.T) {
	prog := mustCompile(t, "+++[-]")
	in, err := New(prog, nil, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := in.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	tables := in.Tables()
	last := tables.Processor[len(tables.Processor)-1]
	if !last.Mv.IsZero() {
		t.Fatalf("final mv = %s, want 0", last.Mv)
	}
}

func TestRunSkipsLoopBodyWhenZero(t *testing.T) {
	prog := mustCompile(t, "[+]+")
	in, err := New(prog, nil, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := in.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	tables := in.Tables()
	last := tables.Processor[len(tables.Processor)-1]
	// The loop body's '+' must never execute; only the trailing '+' does.
	if got, want := last.Mv.Big().Int64(), int64(1); got != want {
		t.Fatalf("final mv = %d, want %d", got, want)
	}
}

func TestRunGetcharPutchar(t *testing.T) {
	prog := mustCompile(t, ",.")
	input := []core.FieldElement{core.BN254.NewElementFromInt64(65)}
	in, err := New(prog, input, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := in.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	tables := in.Tables()
	if len(tables.Input) != 1 || len(tables.Output) != 1 {
		t.Fatalf("Input/Output lens = %d/%d, want 1/1", len(tables.Input), len(tables.Output))
	}
	if !tables.Input[0].Value.Equal(tables.Output[0].Value) {
		t.Fatalf("echoed value mismatch: in=%s out=%s", tables.Input[0].Value, tables.Output[0].Value)
	}
}

func TestRunInputExhausted(t *testing.T) {
	prog := mustCompile(t, ",,")
	input := []core.FieldElement{core.BN254.NewElementFromInt64(1)}
	in, err := New(prog, input, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := in.Run(); !errors.Is(err, ErrInputExhausted) {
		t.Fatalf("Run error = %v, want ErrInputExhausted", err)
	}
}

func TestRunMemoryOutOfBounds(t *testing.T) {
	prog := mustCompile(t, "<")
	in, err := New(prog, nil, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := in.Run(); !errors.Is(err, ErrMemoryOutOfBounds) {
		t.Fatalf("Run error = %v, want ErrMemoryOutOfBounds", err)
	}
}

func TestDeriveMemoryTableSortedByMpThenClk(t *testing.T) {
	prog := mustCompile(t, "+>+<+")
	in, err := New(prog, nil, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := in.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	tables := in.Tables()
	for i := 1; i < len(tables.Memory); i++ {
		prev, cur := tables.Memory[i-1], tables.Memory[i]
		prevMp, curMp := prev.Mp.Big(), cur.Mp.Big()
		if c := prevMp.Cmp(curMp); c > 0 || (c == 0 && prev.Clk > cur.Clk) {
			t.Fatalf("Memory table not sorted at %d: %+v then %+v", i, prev, cur)
		}
	}
}

func TestDeriveInstructionTableIncludesStaticEntries(t *testing.T) {
	prog := mustCompile(t, "+[-]")
	in, err := New(prog, nil, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := in.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	tables := in.Tables()
	// Program has 4 instruction positions (ADD, LB, SUB, RB); each must
	// appear in the Instruction table even if under-executed, since the
	// static projection is unconditionally unioned in.
	seen := map[int64]bool{}
	for _, r := range tables.Instruction {
		seen[r.Ip.Big().Int64()] = true
	}
	for _, ip := range []int64{0, 1, 3, 4} {
		if !seen[ip] {
			t.Fatalf("Instruction table missing static entry at ip=%d", ip)
		}
	}
}
