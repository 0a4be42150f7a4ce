package air

import (
	"fmt"

	"github.com/bfstark/bfstark/internal/bfstark/core"
)

// Constraint is a single-row polynomial constraint: boundary, consistency
// and terminal constraints are all expressed this way, evaluated against
// one table row's columns. Degree is recorded for documentation and for
// the composition polynomial's degree bookkeeping in the wider protocol;
// it is not checked at evaluation time.
type Constraint struct {
	Name     string
	Degree   int
	Evaluate func(row []core.FieldElement) core.FieldElement
}

// TransitionConstraint is a two-row polynomial constraint relating a
// table row to its successor.
type TransitionConstraint struct {
	Name     string
	Degree   int
	Evaluate func(cur, next []core.FieldElement) core.FieldElement
}

// ConstraintError reports which named constraint failed, on which row,
// and what nonzero value it evaluated to.
type ConstraintError struct {
	Name  string
	Row   int
	Value core.FieldElement
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("air: constraint %q violated at row %d: evaluated to %s, want 0", e.Name, e.Row, e.Value)
}

// CheckBoundary evaluates a single constraint against the table's first
// row.
func CheckBoundary(c Constraint, rows [][]core.FieldElement) error {
	if len(rows) == 0 {
		return nil
	}
	if v := c.Evaluate(rows[0]); !v.IsZero() {
		return &ConstraintError{Name: c.Name, Row: 0, Value: v}
	}
	return nil
}

// CheckTerminal evaluates a single constraint against the table's last
// row.
func CheckTerminal(c Constraint, rows [][]core.FieldElement) error {
	if len(rows) == 0 {
		return nil
	}
	last := len(rows) - 1
	if v := c.Evaluate(rows[last]); !v.IsZero() {
		return &ConstraintError{Name: c.Name, Row: last, Value: v}
	}
	return nil
}

// CheckConsistency evaluates a constraint against every row of the table.
func CheckConsistency(c Constraint, rows [][]core.FieldElement) error {
	for i, row := range rows {
		if v := c.Evaluate(row); !v.IsZero() {
			return &ConstraintError{Name: c.Name, Row: i, Value: v}
		}
	}
	return nil
}

// CheckTransition evaluates a transition constraint against every
// adjacent pair of rows.
func CheckTransition(c TransitionConstraint, rows [][]core.FieldElement) error {
	for i := 0; i+1 < len(rows); i++ {
		if v := c.Evaluate(rows[i], rows[i+1]); !v.IsZero() {
			return &ConstraintError{Name: c.Name, Row: i, Value: v}
		}
	}
	return nil
}
