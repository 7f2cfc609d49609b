package core

import (
	"reflect"
	"testing"
)

func testStudents() []Student {
	return []Student{
		{ID: "s1", Gender: Female, Grade: Grade7},
		{ID: "s2", Gender: Male, Grade: Grade8},
		{ID: "s3", Gender: Male, Grade: Grade6},
		{ID: "s4", Gender: Female, Grade: Grade8},
		{ID: "s5", Gender: Male, Grade: Grade7},
	}
}

func TestRosterDerivedIndices(t *testing.T) {
	r := NewRoster(testStudents())

	if r.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", r.Len())
	}
	if got, want := r.FemaleIndices(), []int{0, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("FemaleIndices() = %v, want %v", got, want)
	}
	if got, want := r.EighthGradeIndices(), []int{1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("EighthGradeIndices() = %v, want %v", got, want)
	}
	if got, want := r.GradeIndices(Grade7), []int{0, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("GradeIndices(Grade7) = %v, want %v", got, want)
	}
	if got := r.GradeIndices(Grade6); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("GradeIndices(Grade6) = %v, want [2]", got)
	}
}

func TestRosterPinning(t *testing.T) {
	r := NewRoster(testStudents())

	// Females are pinned in both modes; eighth graders only in separate mode.
	for _, i := range []int{0, 3} {
		if !r.Pinned(i, ModeSeparate) || !r.Pinned(i, ModeDistributed) {
			t.Errorf("female student %d should be pinned in both modes", i)
		}
	}
	if !r.Pinned(1, ModeSeparate) {
		t.Error("eighth grader should be pinned in separate mode")
	}
	if r.Pinned(1, ModeDistributed) {
		t.Error("male eighth grader should not be pinned in distributed mode")
	}

	if got := r.Unpinned(ModeSeparate); got != 2 {
		t.Errorf("Unpinned(separate) = %d, want 2", got)
	}
	if got := r.Unpinned(ModeDistributed); got != 3 {
		t.Errorf("Unpinned(distributed) = %d, want 3", got)
	}
}

func TestRosterCopiesInput(t *testing.T) {
	in := testStudents()
	r := NewRoster(in)
	in[0].ID = "mutated"
	if r.Student(0).ID != "s1" {
		t.Error("roster aliases its input slice")
	}
}
