package core

import (
	"reflect"
	"testing"

	"github.com/fll-tools/roster-optimizer/pkg/solver"
)

func TestPaddedRoles(t *testing.T) {
	tests := []struct {
		name  string
		roles []Role
		want  [RoleSlots]string
	}{
		{name: "no roles", roles: nil, want: [RoleSlots]string{"", ""}},
		{name: "one role", roles: []Role{LeadCoder}, want: [RoleSlots]string{"lead_coder", ""}},
		{name: "two roles", roles: []Role{TeamCaptain, MissionStrategist}, want: [RoleSlots]string{"team_captain", "mission_strategist"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := StudentAssignment{StudentID: "s1", Roles: tt.roles}
			if got := a.PaddedRoles(); got != tt.want {
				t.Errorf("PaddedRoles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultHasSolution(t *testing.T) {
	for _, st := range []solver.Status{solver.StatusOptimal, solver.StatusFeasible} {
		r := &Result{Status: st}
		if !r.HasSolution() {
			t.Errorf("HasSolution() = false for %s", st)
		}
	}
	for _, st := range []solver.Status{solver.StatusInfeasible, solver.StatusModelInvalid, solver.StatusUnknown} {
		r := &Result{Status: st}
		if r.HasSolution() {
			t.Errorf("HasSolution() = true for %s", st)
		}
	}
}

func TestTeamSizesAndMembers(t *testing.T) {
	r := &Result{
		Status: solver.StatusOptimal,
		Assignments: []StudentAssignment{
			{StudentID: "s1", Team: 0},
			{StudentID: "s2", Team: 2},
			{StudentID: "s3", Team: 2},
			{StudentID: "s4", Team: 1},
		},
	}
	if got, want := r.TeamSizes(3), []int{1, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("TeamSizes(3) = %v, want %v", got, want)
	}
	members := r.TeamMembers(3)
	if !reflect.DeepEqual(members[2], []int{1, 2}) {
		t.Errorf("TeamMembers(3)[2] = %v, want [1 2]", members[2])
	}
}
