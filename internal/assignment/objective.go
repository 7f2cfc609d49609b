package assignment

import (
	"fmt"

	"github.com/fll-tools/roster-optimizer/pkg/config"
	"github.com/fll-tools/roster-optimizer/pkg/core"
	"github.com/fll-tools/roster-optimizer/pkg/solver"
)

// buildObjective assembles the single linear objective to maximize. All
// components are additive over the shared variable set and none is applied
// twice. The active role-count policy is the fixed sixth-grade multi-role
// penalty; the tiered reward-by-count scheme is the rejected alternative and
// must never be stacked on top of it.
func buildObjective(m *solver.Model, v *variables, roster *core.Roster, cfg *config.OptimizationConfig) {
	obj := solver.NewLinearExpr()

	addPreferenceScores(obj, v, roster)
	addSixthGradePenalty(obj, v, roster, cfg.SixthGradeMultiRolePenalty)
	if w := cfg.Weights.TeamSizeDeviation; w > 0 {
		addTeamSizeDeviationPenalty(m, obj, v, cfg, w)
	}
	if w := cfg.Weights.PreferenceConflict; w > 0 {
		addPreferenceConflictPenalty(m, obj, v, roster, w)
	}
	if w := cfg.Weights.GradeAffinity; w > 0 {
		addGradeAffinityBonus(m, obj, v, roster, w)
	}

	m.Maximize(obj)
}

// addPreferenceScores credits each held role with the student's stated score.
func addPreferenceScores(obj *solver.LinearExpr, v *variables, roster *core.Roster) {
	for i := 0; i < v.numStudents; i++ {
		s := roster.Student(i)
		for _, r := range core.Roles() {
			obj.AddTerm(s.Score(r), v.Role(i, r))
		}
	}
}

// addSixthGradePenalty charges the configured negative weight per role beyond
// the first held by a sixth grader: penalty * (roleCount - 1).
func addSixthGradePenalty(obj *solver.LinearExpr, v *variables, roster *core.Roster, penalty int) {
	if penalty == 0 {
		return
	}
	for _, i := range roster.GradeIndices(core.Grade6) {
		for _, r := range core.Roles() {
			obj.AddTerm(penalty, v.Role(i, r))
		}
		obj.AddConstant(-penalty)
	}
}

// addTeamSizeDeviationPenalty charges each regular team's absolute deviation
// from the midpoint of the size window, pushing sizes toward balance rather
// than mere bound satisfaction. The auxiliary variable is bounded below by
// both signed differences, so maximization forces it onto the absolute value.
func addTeamSizeDeviationPenalty(m *solver.Model, obj *solver.LinearExpr, v *variables, cfg *config.OptimizationConfig, weight int) {
	mid := (cfg.MinTeamSize + cfg.MaxTeamSize) / 2
	for t := cfg.Mode.ReservedTeams(); t < v.numTeams; t++ {
		dev := m.NewIntVar(0, v.numStudents+mid, fmt.Sprintf("team_%d_size_deviation", t))
		// dev >= size - mid  and  dev >= mid - size
		m.AddAtLeast(solver.NewLinearExpr().Add(dev).AddExpr(negate(v.teamSum(t))), -mid)
		m.AddAtLeast(solver.NewLinearExpr().Add(dev).AddExpr(v.teamSum(t)), mid)
		obj.AddTerm(-weight, dev)
	}
}

// addPreferenceConflictPenalty charges every top-preference student beyond
// the first competing for the same (team, role) slot, discouraging stacking
// strong candidates where only one can hold the role.
func addPreferenceConflictPenalty(m *solver.Model, obj *solver.LinearExpr, v *variables, roster *core.Roster, weight int) {
	for _, r := range core.Roles() {
		var top []int
		for i := 0; i < v.numStudents; i++ {
			if roster.Student(i).Score(r) == core.MaxScore {
				top = append(top, i)
			}
		}
		if len(top) < 2 {
			continue
		}
		for t := 0; t < v.numTeams; t++ {
			excess := m.NewIntVar(0, len(top)-1, fmt.Sprintf("role_%s_team_%d_conflicts", r, t))
			// excess >= (count of top-preference members) - 1
			e := solver.NewLinearExpr().Add(excess)
			for _, i := range top {
				e.AddTerm(-1, v.Team(i, t))
			}
			m.AddAtLeast(e, -1)
			obj.AddTerm(-weight, excess)
		}
	}
}

// gradeAffinity scores co-membership of two grade levels: strong for same
// grade, zero when a seventh grader would be mixed across grades, mild
// otherwise.
func gradeAffinity(a, b core.Grade) int {
	switch {
	case a == b:
		return 3
	case a == core.Grade7 || b == core.Grade7:
		return 0
	default:
		return 1
	}
}

// addGradeAffinityBonus rewards pairs of students with compatible grades
// sharing a team. Optional; it adds a product variable per (pair, team).
func addGradeAffinityBonus(m *solver.Model, obj *solver.LinearExpr, v *variables, roster *core.Roster, weight int) {
	for i := 0; i < v.numStudents; i++ {
		for j := i + 1; j < v.numStudents; j++ {
			affinity := gradeAffinity(roster.Student(i).Grade, roster.Student(j).Grade)
			if affinity == 0 {
				continue
			}
			for t := 0; t < v.numTeams; t++ {
				together := m.NewBoolAnd(v.Team(i, t), v.Team(j, t),
					fmt.Sprintf("students_%d_%d_team_%d", i, j, t))
				obj.AddTerm(weight*affinity, together)
			}
		}
	}
}

func negate(e *solver.LinearExpr) *solver.LinearExpr {
	out := solver.NewLinearExpr()
	for _, t := range e.Terms() {
		out.AddTerm(-t.Coeff, t.Var)
	}
	return out.AddConstant(-e.Constant())
}
