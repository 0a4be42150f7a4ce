package vm

import (
	"errors"
	"fmt"

	"github.com/bfstark/bfstark/internal/bfstark/core"
)

// ErrMemoryOutOfBounds is returned when a '<' or '>' instruction would move
// mp outside the configured tape (spec.md §4.1's "undefined" left to this
// rewrite's discretion — see SPEC_FULL.md §9: treated as a fatal runtime
// error rather than silent wraparound, matching the Tracer's role as the
// one place that validates a witness before it is ever turned into rows).
var ErrMemoryOutOfBounds = errors.New("vm: memory pointer out of bounds")

// ErrInputExhausted is returned when a ',' instruction executes with no
// remaining input values.
var ErrInputExhausted = errors.New("vm: input exhausted")

// DefaultTapeSize is used when a caller does not specify a tape size. The
// Rust original hard-codes a small fixed tape; this rewrite makes tape
// size a runtime parameter (SPEC_FULL.md §3.1) with a much larger
// default.
const DefaultTapeSize = 1 << 15

// Interpreter runs a compiled Program over the BN254 scalar field,
// recording one Processor row per executed step plus the Input and Output
// rows its GETCHAR/PUTCHAR instructions produce. Once Run returns
// successfully, Tables returns the five frozen execution tables.
type Interpreter struct {
	field   *core.Field
	program Program
	tape    []core.FieldElement
	input   []core.FieldElement

	regs Registers

	processor []ProcessorRow
	output    []IORow
	inputRows []IORow
	inputPos  int
}

// New builds an Interpreter over program with the given input stream and
// tape size. Tape cells start at field zero.
func New(program Program, input []core.FieldElement, tapeSize int) (*Interpreter, error) {
	if tapeSize <= 0 {
		tapeSize = DefaultTapeSize
	}
	field := core.BN254
	tape := make([]core.FieldElement, tapeSize)
	for i := range tape {
		tape[i] = field.Zero()
	}
	return &Interpreter{
		field:   field,
		program: program,
		tape:    tape,
		input:   input,
		regs:    zeroRegisters(field),
	}, nil
}

// loadCurrent refreshes mv/mvi from the live tape at the current mp, per
// the register invariant of spec.md §3: mvi is mv's inverse, or zero when
// mv is zero.
func (in *Interpreter) loadCurrent() error {
	if in.regs.Mp < 0 || in.regs.Mp >= len(in.tape) {
		return fmt.Errorf("%w: mp=%d", ErrMemoryOutOfBounds, in.regs.Mp)
	}
	mv := in.tape[in.regs.Mp]
	in.regs.Mv = mv
	if mv.IsZero() {
		in.regs.Mvi = in.field.Zero()
		return nil
	}
	mvi, err := mv.Inv()
	if err != nil {
		return err
	}
	in.regs.Mvi = mvi
	return nil
}

// currentOpcode returns the opcode at ip, or false once ip is past the
// end of the program (the halt condition).
func (in *Interpreter) currentOpcode() (Opcode, bool) {
	if in.regs.Ip >= in.program.Len() {
		return 0, false
	}
	return in.program.Opcode(in.regs.Ip), true
}

// Run executes the compiled program to completion, recording one
// Processor row per step and a terminal row (ci = ni = 0) at halt, plus
// the Input and Output tables (spec.md §4.2, §4.3).
func (in *Interpreter) Run() error {
	for {
		op, ok := in.currentOpcode()
		if !ok {
			break
		}
		if err := in.loadCurrent(); err != nil {
			return err
		}

		row := ProcessorRow{
			Clk: in.regs.Clk,
			Ip:  in.field.NewElementFromInt64(int64(in.regs.Ip)),
			Ci:  in.field.NewElementFromUint64(uint64(op)),
			Ni:  in.field.NewElementFromUint64(in.program.At(in.regs.Ip + 1)),
			Mp:  in.field.NewElementFromInt64(int64(in.regs.Mp)),
			Mv:  in.regs.Mv,
			Mvi: in.regs.Mvi,
		}
		in.processor = append(in.processor, row)

		if err := in.step(op); err != nil {
			return err
		}
		in.regs.Clk++
	}

	// Terminal row: ci = ni = 0, registers otherwise frozen at halt
	// (spec.md §4.3's terminal boundary constraint).
	if err := in.loadCurrent(); err != nil {
		return err
	}
	in.processor = append(in.processor, ProcessorRow{
		Clk: in.regs.Clk,
		Ip:  in.field.NewElementFromInt64(int64(in.regs.Ip)),
		Ci:  in.field.Zero(),
		Ni:  in.field.Zero(),
		Mp:  in.field.NewElementFromInt64(int64(in.regs.Mp)),
		Mv:  in.regs.Mv,
		Mvi: in.regs.Mvi,
	})
	return nil
}

// step applies the transition function Φ_x for a single opcode (spec.md
// §4.3's per-instruction Processor transition table), advancing ip and mp
// (but not clk, which Run handles uniformly for every opcode).
func (in *Interpreter) step(op Opcode) error {
	switch op {
	case SHL:
		in.regs.Mp--
		in.regs.Ip++
	case SHR:
		in.regs.Mp++
		in.regs.Ip++
	case ADD:
		in.tape[in.regs.Mp] = in.tape[in.regs.Mp].Add(in.field.One())
		in.regs.Ip++
	case SUB:
		in.tape[in.regs.Mp] = in.tape[in.regs.Mp].Sub(in.field.One())
		in.regs.Ip++
	case GETCHAR:
		if in.inputPos >= len(in.input) {
			return ErrInputExhausted
		}
		v := in.input[in.inputPos]
		// The read value becomes visible as mv starting with the *next*
		// Processor row (mv is loaded from the tape before a step runs,
		// so this step's own row still shows the pre-read value); record
		// the Input row against clk+1 so the Input⊆Processor lookup
		// argument lines up with the row that actually witnesses v.
		in.inputRows = append(in.inputRows, IORow{Clk: in.regs.Clk + 1, Value: v})
		in.inputPos++
		in.tape[in.regs.Mp] = v
		in.regs.Ip++
	case PUTCHAR:
		in.output = append(in.output, IORow{Clk: in.regs.Clk, Value: in.tape[in.regs.Mp]})
		in.regs.Ip++
	case LB:
		// Branch-free in the constraint system (spec.md §4.3's mv*mvi
		// indicator); the Tracer itself can just branch on IsZero.
		if in.regs.Mv.IsZero() {
			in.regs.Ip = int(in.program.At(in.regs.Ip + 1))
		} else {
			in.regs.Ip += 2
		}
	case RB:
		if !in.regs.Mv.IsZero() {
			in.regs.Ip = int(in.program.At(in.regs.Ip + 1))
		} else {
			in.regs.Ip += 2
		}
	default:
		return fmt.Errorf("vm: unrecognized opcode %v at ip=%d", op, in.regs.Ip)
	}
	return nil
}

// Tables returns the five frozen execution tables produced by Run. It
// must only be called after Run has returned successfully.
func (in *Interpreter) Tables() Tables {
	return Tables{
		Processor:   in.processor,
		Memory:      deriveMemoryTable(in.processor),
		Instruction: deriveInstructionTable(in.processor, in.program, in.field),
		Input:       in.inputRows,
		Output:      in.output,
	}
}
