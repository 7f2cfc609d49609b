package assignment

import (
	"fmt"

	"github.com/fll-tools/roster-optimizer/pkg/config"
	"github.com/fll-tools/roster-optimizer/pkg/core"
	"github.com/fll-tools/roster-optimizer/pkg/solver"
)

// clusteredGrades are the grade levels subject to the no-singleton rule on
// regular teams. Eighth graders are excluded: in separate mode they are
// pinned away from regular teams, and in distributed mode the per-team cap
// of one directly contradicts a two-minimum.
var clusteredGrades = []core.Grade{core.Grade6, core.Grade7}

// addAssignmentConstraints forces every student onto exactly one team.
func addAssignmentConstraints(m *solver.Model, v *variables) {
	for i := 0; i < v.numStudents; i++ {
		e := solver.NewLinearExpr()
		for t := 0; t < v.numTeams; t++ {
			e.Add(v.Team(i, t))
		}
		m.AddEquality(e, 1)
	}
}

// addSpecialGroupConstraints pins each reserved team's subgroup onto it and
// keeps everyone else off it. Team 0 is the female team in both modes; in
// separate mode team 1 is the eighth-grade team.
func addSpecialGroupConstraints(m *solver.Model, v *variables, roster *core.Roster, mode core.Mode) {
	// A student in both subgroups is pinned to both reserved teams; the
	// exactly-one constraint then makes the model infeasible, which is the
	// solver's verdict to report, not ours to pre-empt.
	for i := 0; i < v.numStudents; i++ {
		pin(m, v.Team(i, 0), roster.IsFemale(i))
		if mode == core.ModeSeparate {
			pin(m, v.Team(i, 1), roster.IsEighthGrade(i))
		}
	}
}

func pin(m *solver.Model, membership solver.Var, member bool) {
	if member {
		m.AddEquality(solver.Sum(membership), 1)
	} else {
		m.AddEquality(solver.Sum(membership), 0)
	}
}

// addEighthGradeCap limits every non-reserved team to at most one eighth
// grader. Distributed mode only.
func addEighthGradeCap(m *solver.Model, v *variables, roster *core.Roster, mode core.Mode) {
	eighth := roster.EighthGradeIndices()
	if len(eighth) == 0 {
		return
	}
	for t := mode.ReservedTeams(); t < v.numTeams; t++ {
		e := solver.NewLinearExpr()
		for _, i := range eighth {
			e.Add(v.Team(i, t))
		}
		m.AddAtMost(e, 1)
	}
}

// addTeamSizeConstraints fixes reserved teams at the special size and keeps
// regular teams inside [MinTeamSize, MaxTeamSize].
func addTeamSizeConstraints(m *solver.Model, v *variables, cfg *config.OptimizationConfig) {
	reserved := cfg.Mode.ReservedTeams()
	for t := 0; t < v.numTeams; t++ {
		size := v.teamSum(t)
		if t < reserved {
			m.AddEquality(size, cfg.SpecialTeamSize)
		} else {
			m.AddLinearRange(size, cfg.MinTeamSize, cfg.MaxTeamSize)
		}
	}
}

// addRoleCountConstraints bounds every student's held-role count.
func addRoleCountConstraints(m *solver.Model, v *variables, cfg *config.OptimizationConfig) {
	for i := 0; i < v.numStudents; i++ {
		m.AddLinearRange(v.roleSum(i), cfg.MinRolesPerStudent, cfg.MaxRolesPerStudent)
	}
}

// addRoleUniquenessConstraints makes every (team, role) pair held by exactly
// one member of that team, summing the per-student product variables the
// declaration pass already built.
func addRoleUniquenessConstraints(m *solver.Model, v *variables) {
	for t := 0; t < v.numTeams; t++ {
		for _, r := range core.Roles() {
			holders := solver.NewLinearExpr()
			for i := 0; i < v.numStudents; i++ {
				holders.Add(v.Holds(i, t, r))
			}
			m.AddEquality(holders, 1)
		}
	}
}

// addGradeClusteringConstraints forbids singleton grade representation on
// regular teams: per (team, clustered grade), a presence indicator implies a
// count of at least two, and its absence forces a count of zero.
func addGradeClusteringConstraints(m *solver.Model, v *variables, roster *core.Roster, mode core.Mode) {
	for t := mode.ReservedTeams(); t < v.numTeams; t++ {
		for _, grade := range clusteredGrades {
			members := roster.GradeIndices(grade)
			if len(members) == 0 {
				continue
			}
			count := solver.NewLinearExpr()
			for _, i := range members {
				count.Add(v.Team(i, t))
			}
			present := m.NewBoolVar(fmt.Sprintf("grade_%s_team_%d", grade, t))
			m.AddAtLeast(count, 2).OnlyEnforceIf(solver.Pos(present))
			m.AddEquality(count, 0).OnlyEnforceIf(solver.Not(present))
		}
	}
}

// addAllConstraints applies the full hard-constraint set in a fixed order.
// The order only aids failure diagnosis; the solver sees one conjunct set.
func addAllConstraints(m *solver.Model, v *variables, roster *core.Roster, cfg *config.OptimizationConfig) {
	addAssignmentConstraints(m, v)
	addSpecialGroupConstraints(m, v, roster, cfg.Mode)
	if cfg.Mode == core.ModeDistributed {
		addEighthGradeCap(m, v, roster, cfg.Mode)
	}
	addTeamSizeConstraints(m, v, cfg)
	addRoleCountConstraints(m, v, cfg)
	addRoleUniquenessConstraints(m, v)
	addGradeClusteringConstraints(m, v, roster, cfg.Mode)
}
