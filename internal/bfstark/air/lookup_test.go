package air

import (
	"testing"

	"github.com/bfstark/bfstark/internal/bfstark/core"
	"github.com/stretchr/testify/require"
)

// memoryProjection extracts (clk, mp, mv) from Processor rows, the same
// column shape as the Memory table, so the two can be compared as
// multisets.
func memoryProjection(rows [][]core.FieldElement) [][]core.FieldElement {
	out := make([][]core.FieldElement, len(rows))
	for i, r := range rows {
		out[i] = []core.FieldElement{r[procClk], r[procMp], r[procMv]}
	}
	return out
}

func TestCheckContainmentAcceptsMemorySubsetOfProcessor(t *testing.T) {
	field := core.BN254
	tables := traceProgram(t, "+++[-]>++<.", nil)

	processorRows := ProcessorColumnRows(tables.Processor)
	memoryRows := MemoryColumnRows(tables.Memory)

	challenges := DeriveChallenges(field, field.NewElementFromInt64(42), 3)
	err := CheckContainment(memoryRows, memoryProjection(processorRows), challenges)
	require.NoError(t, err)
}

func TestCheckContainmentRejectsForgedRow(t *testing.T) {
	field := core.BN254
	tables := traceProgram(t, "+++[-]>++<.", nil)

	processorRows := ProcessorColumnRows(tables.Processor)
	memoryRows := MemoryColumnRows(tables.Memory)
	// Introduce a memory row with a value no Processor row ever recorded.
	memoryRows = append(memoryRows, []core.FieldElement{
		field.NewElementFromInt64(9999),
		field.NewElementFromInt64(9999),
		field.NewElementFromInt64(9999),
	})

	challenges := DeriveChallenges(field, field.NewElementFromInt64(42), 3)
	err := CheckContainment(memoryRows, memoryProjection(processorRows), challenges)
	require.Error(t, err)
}

func TestCompressRowIsDeterministic(t *testing.T) {
	field := core.BN254
	row := []core.FieldElement{field.NewElementFromInt64(1), field.NewElementFromInt64(2), field.NewElementFromInt64(3)}
	challenges := DeriveChallenges(field, field.NewElementFromInt64(7), 3)

	a := CompressRow(row, challenges)
	b := CompressRow(row, challenges)
	require.True(t, a.Equal(b))
}
