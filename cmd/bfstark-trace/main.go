// Command bfstark-trace compiles and traces a Brainfuck program, prints a
// summary of the resulting execution tables, and checks the trace
// against the algebraic intermediate representation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bfstark/bfstark/pkg/bfstark"
)

type summary struct {
	ProcessorRows   int    `json:"processor_rows"`
	MemoryRows      int    `json:"memory_rows"`
	InstructionRows int    `json:"instruction_rows"`
	InputRows       int    `json:"input_rows"`
	OutputRows      int    `json:"output_rows"`
	OutputBytes     string `json:"output_bytes"`
	Fingerprint     string `json:"fingerprint"`
	Verified        bool   `json:"verified"`
}

func main() {
	var (
		sourcePath = flag.String("program", "", "path to a Brainfuck source file (default: stdin)")
		inputPath  = flag.String("input", "", "path to a raw input byte stream (default: empty)")
		tapeSize   = flag.Int("tape-size", 0, "number of addressable memory cells (default: bfstark.DefaultConfig)")
		skipVerify = flag.Bool("skip-verify", false, "skip checking the trace against the constraint system")
	)
	flag.Parse()

	if err := run(*sourcePath, *inputPath, *tapeSize, *skipVerify); err != nil {
		log.Fatalf("bfstark-trace: %v", err)
	}
}

func run(sourcePath, inputPath string, tapeSize int, skipVerify bool) error {
	source, err := readAllOrStdin(sourcePath)
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	var input []byte
	if inputPath != "" {
		input, err = os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}

	cfg := bfstark.DefaultConfig()
	if tapeSize > 0 {
		cfg.TapeSize = tapeSize
	}

	tables, err := bfstark.Trace(source, input, cfg)
	if err != nil {
		return fmt.Errorf("tracing program: %w", err)
	}

	verified := false
	if !skipVerify {
		if err := bfstark.VerifyTrace(tables); err != nil {
			return fmt.Errorf("verifying trace: %w", err)
		}
		verified = true
	}

	var outputBytes []byte
	for _, row := range tables.Output {
		outputBytes = append(outputBytes, byte(row.Value.Big().Int64()))
	}

	out := summary{
		ProcessorRows:   len(tables.Processor),
		MemoryRows:      len(tables.Memory),
		InstructionRows: len(tables.Instruction),
		InputRows:       len(tables.Input),
		OutputRows:      len(tables.Output),
		OutputBytes:     string(outputBytes),
		Fingerprint:     fmt.Sprintf("%x", bfstark.Fingerprint(tables)),
		Verified:        verified,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readAllOrStdin(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
