package assignment

import (
	"fmt"

	"github.com/fll-tools/roster-optimizer/pkg/core"
	"github.com/fll-tools/roster-optimizer/pkg/solver"
)

// IntegrityError reports a solved valuation violating an invariant the
// constraint set was supposed to enforce. It indicates a defect in the model
// or the engine, never an expected runtime condition, and is surfaced
// verbatim rather than corrected.
type IntegrityError struct {
	msg string
}

func (e *IntegrityError) Error() string {
	return "solution integrity violation: " + e.msg
}

// Valuation is the read-back surface the extractor needs from a completed
// solve. solver.Solution satisfies it.
type Valuation interface {
	BoolValue(v solver.Var) bool
}

// extractAssignments maps a solved valuation back to one team index and a
// role set per student. Extraction is a pure read: running it twice over the
// same valuation yields identical results.
func extractAssignments(val Valuation, v *variables, roster *core.Roster) ([]core.StudentAssignment, error) {
	out := make([]core.StudentAssignment, v.numStudents)
	for i := 0; i < v.numStudents; i++ {
		team := -1
		for t := 0; t < v.numTeams; t++ {
			if !val.BoolValue(v.Team(i, t)) {
				continue
			}
			if team >= 0 {
				return nil, &IntegrityError{msg: fmt.Sprintf(
					"student %d is on both team %d and team %d", i, team, t)}
			}
			team = t
		}
		if team < 0 {
			return nil, &IntegrityError{msg: fmt.Sprintf("student %d is on no team", i)}
		}

		var roles []core.Role
		for _, r := range core.Roles() {
			if val.BoolValue(v.Role(i, r)) {
				roles = append(roles, r)
			}
		}
		out[i] = core.StudentAssignment{
			StudentID: roster.Student(i).ID,
			Team:      team,
			Roles:     roles,
		}
	}
	return out, nil
}
