package assignment

import (
	"fmt"

	"github.com/fll-tools/roster-optimizer/pkg/core"
	"github.com/fll-tools/roster-optimizer/pkg/solver"
)

// variables is the arena of decision variables, pre-sized and indexed by
// (student, team) and (student, role) so the exactly-one and uniqueness
// constraints iterate trivially.
type variables struct {
	numStudents int
	numTeams    int

	team []solver.Var // numStudents x numTeams, row-major
	role []solver.Var // numStudents x core.NumRoles, row-major
	// holds is the (student, team, role) product arena: student on team AND
	// holding role.
	holds []solver.Var
}

// declareVariables allocates the per-student decision booleans. Declaration
// is grouped per student, team and role choices followed by their products,
// so the engine's declaration-order search settles one student before
// touching the next and conflicts surface next to the choice that caused
// them.
func declareVariables(m *solver.Model, numStudents, totalTeams int) *variables {
	v := &variables{
		numStudents: numStudents,
		numTeams:    totalTeams,
		team:        make([]solver.Var, numStudents*totalTeams),
		role:        make([]solver.Var, numStudents*core.NumRoles),
		holds:       make([]solver.Var, numStudents*totalTeams*core.NumRoles),
	}
	for i := 0; i < numStudents; i++ {
		for t := 0; t < totalTeams; t++ {
			v.team[i*totalTeams+t] = m.NewBoolVar(fmt.Sprintf("student_%d_team_%d", i, t))
		}
		for _, r := range core.Roles() {
			v.role[i*core.NumRoles+int(r)] = m.NewBoolVar(fmt.Sprintf("student_%d_role_%s", i, r))
		}
		for t := 0; t < totalTeams; t++ {
			for _, r := range core.Roles() {
				v.holds[(i*totalTeams+t)*core.NumRoles+int(r)] = m.NewBoolAnd(
					v.Team(i, t), v.Role(i, r),
					fmt.Sprintf("student_%d_role_%s_team_%d", i, r, t))
			}
		}
	}
	return v
}

// Holds returns the product variable for student i on team t holding role r.
func (v *variables) Holds(i, t int, r core.Role) solver.Var {
	return v.holds[(i*v.numTeams+t)*core.NumRoles+int(r)]
}

// Team returns the membership variable for (student i, team t).
func (v *variables) Team(i, t int) solver.Var {
	return v.team[i*v.numTeams+t]
}

// Role returns the held-role variable for (student i, role r).
func (v *variables) Role(i int, r core.Role) solver.Var {
	return v.role[i*core.NumRoles+int(r)]
}

// teamSum is the membership count expression of team t.
func (v *variables) teamSum(t int) *solver.LinearExpr {
	e := solver.NewLinearExpr()
	for i := 0; i < v.numStudents; i++ {
		e.Add(v.Team(i, t))
	}
	return e
}

// roleSum is the held-role count expression of student i.
func (v *variables) roleSum(i int) *solver.LinearExpr {
	e := solver.NewLinearExpr()
	for _, r := range core.Roles() {
		e.Add(v.Role(i, r))
	}
	return e
}
