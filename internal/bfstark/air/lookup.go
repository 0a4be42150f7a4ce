package air

import (
	"fmt"

	"github.com/bfstark/bfstark/internal/bfstark/core"
	"github.com/dolthub/swiss"
)

// CompressRow folds a table row down to a single field element via a
// random linear combination against Fiat-Shamir-derived challenges, one
// per column — the standard "row compression" step a permutation or
// lookup argument needs before it can treat a whole row as one value to
// count multiplicities over.
func CompressRow(row []core.FieldElement, challenges []core.FieldElement) core.FieldElement {
	if len(row) == 0 {
		panic("air: cannot compress an empty row")
	}
	acc := row[0].Mul(challenges[0])
	for i := 1; i < len(row); i++ {
		acc = acc.Add(row[i].Mul(challenges[i]))
	}
	return acc
}

// LookupError reports that a sub-table row had no matching entry left in
// the super-table's multiset.
type LookupError struct {
	Row int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("air: lookup argument failed: sub-table row %d has no remaining match in the super-table", e.Row)
}

// CheckContainment verifies that every compressed row of sub appears in
// super at least as many times as it appears in sub — i.e. sub's
// multiset is contained in super's (spec.md §3's Memory/Instruction/
// Input/Output ⊆ Processor requirement). Multiplicities are tracked with
// a swiss.Map keyed by the compressed value's canonical decimal string,
// the same counting-map shape used elsewhere in this codebase for
// frequency tables over field-derived keys.
func CheckContainment(sub, super [][]core.FieldElement, challenges []core.FieldElement) error {
	available := swiss.NewMap[string, uint64](uint32(len(super)))
	for _, row := range super {
		key := CompressRow(row, challenges).String()
		count, _ := available.Get(key)
		available.Put(key, count+1)
	}

	for i, row := range sub {
		key := CompressRow(row, challenges).String()
		count, ok := available.Get(key)
		if !ok || count == 0 {
			return &LookupError{Row: i}
		}
		available.Put(key, count-1)
	}
	return nil
}

// DeriveChallenges expands a single Fiat-Shamir seed into n independent
// challenges as successive powers of seed's successor: challenge_i =
// (seed + 1)^(i+1). This derivation is local to constraint-satisfaction
// checking; Channel (see channel.go) is the transcript-based challenge
// source.
func DeriveChallenges(field *core.Field, seed core.FieldElement, n int) []core.FieldElement {
	out := make([]core.FieldElement, n)
	cur := field.One()
	step := seed.Add(field.One())
	for i := 0; i < n; i++ {
		cur = cur.Mul(step)
		out[i] = cur
	}
	return out
}
