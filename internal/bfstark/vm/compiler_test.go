package vm

import (
	"errors"
	"testing"
)

func TestCompileDropsNonOpcodeBytes(t *testing.T) {
	prog, err := Compile([]byte("+ho+i there-"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []Opcode{ADD, ADD, SUB}
	got := make([]Opcode, 0, len(want))
	for i, isInstr := range prog.IsInstr {
		if isInstr {
			got = append(got, prog.Opcode(i))
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %v opcodes, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("opcode[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCompileResolvesMatchedBrackets(t *testing.T) {
	// "+[-]" compiles to: ADD, LB, target, SUB, RB, target
	prog, err := Compile([]byte("+[-]"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if prog.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", prog.Len())
	}
	if prog.Opcode(1) != LB {
		t.Fatalf("cells[1] = %v, want LB", prog.Opcode(1))
	}
	// LB's target should point just past RB's target slot.
	if got, want := prog.At(2), uint64(6); got != want {
		t.Fatalf("LB target = %d, want %d", got, want)
	}
	if prog.Opcode(4) != RB {
		t.Fatalf("cells[4] = %v, want RB", prog.Opcode(4))
	}
	// RB's target should point back to just past LB's target slot.
	if got, want := prog.At(5), uint64(3); got != want {
		t.Fatalf("RB target = %d, want %d", got, want)
	}
}

func TestCompileRejectsUnmatchedBrackets(t *testing.T) {
	if _, err := Compile([]byte("[+")); !errors.Is(err, ErrUnbalancedBrackets) {
		t.Fatalf("Compile([+) error = %v, want ErrUnbalancedBrackets", err)
	}
	if _, err := Compile([]byte("+]")); !errors.Is(err, ErrUnbalancedBrackets) {
		t.Fatalf("Compile(+]) error = %v, want ErrUnbalancedBrackets", err)
	}
}

func TestCompileNestedBrackets(t *testing.T) {
	prog, err := Compile([]byte("[[]]"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if prog.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", prog.Len())
	}
	positions := prog.InstructionPositions()
	want := []int{0, 2, 4, 6}
	if len(positions) != len(want) {
		t.Fatalf("instruction positions = %v, want %v", positions, want)
	}
}
