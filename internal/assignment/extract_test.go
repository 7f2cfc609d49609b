package assignment

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fll-tools/roster-optimizer/pkg/core"
	"github.com/fll-tools/roster-optimizer/pkg/solver"
)

// fakeValuation marks an explicit set of variables true.
type fakeValuation map[solver.Var]bool

func (f fakeValuation) BoolValue(v solver.Var) bool {
	return f[v]
}

func extractFixture() (*variables, *core.Roster) {
	roster := core.NewRoster([]core.Student{
		{ID: "s1", Gender: core.Female, Grade: core.Grade7},
		{ID: "s2", Gender: core.Male, Grade: core.Grade8},
	})
	m := solver.NewModel()
	return declareVariables(m, roster.Len(), 2), roster
}

func TestExtractAssignments(t *testing.T) {
	v, roster := extractFixture()
	val := fakeValuation{
		v.Team(0, 0):                      true,
		v.Role(0, core.TeamCaptain):       true,
		v.Role(0, core.LeadCoder):         true,
		v.Team(1, 1):                      true,
		v.Role(1, core.MissionStrategist): true,
	}

	got, err := extractAssignments(val, v, roster)
	if err != nil {
		t.Fatalf("extractAssignments() returned %v", err)
	}
	want := []core.StudentAssignment{
		{StudentID: "s1", Team: 0, Roles: []core.Role{core.TeamCaptain, core.LeadCoder}},
		{StudentID: "s2", Team: 1, Roles: []core.Role{core.MissionStrategist}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("assignments mismatch (-want +got):\n%s", diff)
	}

	// Extraction is a pure read; a second pass yields identical output.
	again, err := extractAssignments(val, v, roster)
	if err != nil {
		t.Fatalf("second extractAssignments() returned %v", err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Fatalf("extraction is not idempotent (-first +second):\n%s", diff)
	}
}

func TestExtractRejectsDoubleTeam(t *testing.T) {
	v, roster := extractFixture()
	val := fakeValuation{
		v.Team(0, 0): true,
		v.Team(0, 1): true,
		v.Team(1, 1): true,
	}
	_, err := extractAssignments(val, v, roster)
	if err == nil {
		t.Fatal("a student on two teams was accepted")
	}
	var ie *IntegrityError
	if !errors.As(err, &ie) {
		t.Fatalf("error %v is not an *IntegrityError", err)
	}
	if !strings.Contains(err.Error(), "student 0 is on both team 0 and team 1") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestExtractRejectsTeamlessStudent(t *testing.T) {
	v, roster := extractFixture()
	val := fakeValuation{
		v.Team(0, 0): true,
	}
	_, err := extractAssignments(val, v, roster)
	if err == nil {
		t.Fatal("a teamless student was accepted")
	}
	if !strings.Contains(err.Error(), "student 1 is on no team") {
		t.Errorf("unexpected message: %v", err)
	}
}
