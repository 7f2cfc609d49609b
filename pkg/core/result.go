package core

import "github.com/fll-tools/roster-optimizer/pkg/solver"

// StudentAssignment is the finalized placement of one student: exactly one
// team index and a set of up to two held roles.
type StudentAssignment struct {
	StudentID string
	Team      int
	Roles     []Role
}

// RoleSlots is the number of role columns in tabular output. Assignments with
// fewer held roles are padded with empty placeholders.
const RoleSlots = 2

// PaddedRoles returns the held role names padded to exactly RoleSlots entries,
// with "" for unfilled slots.
func (a StudentAssignment) PaddedRoles() [RoleSlots]string {
	var out [RoleSlots]string
	for i, r := range a.Roles {
		if i >= RoleSlots {
			break
		}
		out[i] = r.String()
	}
	return out
}

// Result is the read-only outcome of one solve. It is created once by the
// solution extractor and never mutated afterward. For non-solution statuses
// (infeasible, invalid, unknown) Assignments is nil and Objective is zero.
type Result struct {
	// Assignments is index-aligned with the roster that produced it; nil
	// unless Status is Optimal or Feasible.
	Assignments []StudentAssignment
	Objective   int
	Status      solver.Status
}

// HasSolution reports whether the result carries a concrete assignment.
func (r *Result) HasSolution() bool {
	return r.Status == solver.StatusOptimal || r.Status == solver.StatusFeasible
}

// TeamSizes returns the member count per team index.
func (r *Result) TeamSizes(totalTeams int) []int {
	sizes := make([]int, totalTeams)
	for _, a := range r.Assignments {
		if a.Team >= 0 && a.Team < totalTeams {
			sizes[a.Team]++
		}
	}
	return sizes
}

// TeamMembers returns, per team index, the roster indices assigned to it.
func (r *Result) TeamMembers(totalTeams int) [][]int {
	members := make([][]int, totalTeams)
	for i, a := range r.Assignments {
		if a.Team >= 0 && a.Team < totalTeams {
			members[a.Team] = append(members[a.Team], i)
		}
	}
	return members
}
