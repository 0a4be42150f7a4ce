package air

import (
	"testing"

	"github.com/bfstark/bfstark/internal/bfstark/core"
	"github.com/stretchr/testify/require"
)

func TestInstructionConstraintsAcceptHonestTrace(t *testing.T) {
	field := core.BN254
	tables := traceProgram(t, "+++[-]>++<.", nil)
	rows := InstructionColumnRows(tables.Instruction)

	for _, c := range InstructionTransitionConstraints(field) {
		require.NoError(t, CheckTransition(c, rows), c.Name)
	}
}

func TestInstructionTransitionRejectsDisagreeingDuplicate(t *testing.T) {
	field := core.BN254
	// A loop guarantees the Instruction table has duplicate ip entries:
	// the static listing plus every iteration's witnessed visit.
	tables := traceProgram(t, "+++[-]", nil)
	rows := InstructionColumnRows(tables.Instruction)

	var corrupted bool
	for i := 1; i < len(rows); i++ {
		if rows[i][instrIp].Big().Cmp(rows[i-1][instrIp].Big()) == 0 {
			rows[i][instrCi] = rows[i][instrCi].Add(field.One())
			corrupted = true
			break
		}
	}
	require.True(t, corrupted, "expected at least one duplicate ip in a looping program")

	var sawFailure bool
	for _, c := range InstructionTransitionConstraints(field) {
		if err := CheckTransition(c, rows); err != nil {
			sawFailure = true
		}
	}
	require.True(t, sawFailure, "disagreeing duplicate ip rows must be rejected")
}
