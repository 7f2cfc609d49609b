package core

// Roster wraps the validated student records with the derived indices the
// constraint model needs. Membership in the female and eighth-grade subgroups
// is computed once here and is fixed data, not a decision.
type Roster struct {
	students []Student
	female   []int
	eighth   []int
	byGrade  map[Grade][]int
}

// NewRoster builds a roster and derives the special-group indices. Records
// are assumed to have passed validation; an unchecked feed is undefined
// behavior.
func NewRoster(students []Student) *Roster {
	r := &Roster{
		students: append([]Student(nil), students...),
		byGrade:  make(map[Grade][]int, len(GradeLevels())),
	}
	for i, s := range r.students {
		if s.Gender == Female {
			r.female = append(r.female, i)
		}
		if s.Grade == Grade8 {
			r.eighth = append(r.eighth, i)
		}
		r.byGrade[s.Grade] = append(r.byGrade[s.Grade], i)
	}
	return r
}

// Len returns the number of students.
func (r *Roster) Len() int {
	return len(r.students)
}

// Student returns the record at positional index i.
func (r *Roster) Student(i int) Student {
	return r.students[i]
}

// Students returns a copy of the student list.
func (r *Roster) Students() []Student {
	return append([]Student(nil), r.students...)
}

// FemaleIndices returns the positional indices of the female subgroup.
func (r *Roster) FemaleIndices() []int {
	return append([]int(nil), r.female...)
}

// EighthGradeIndices returns the positional indices of the eighth-grade subgroup.
func (r *Roster) EighthGradeIndices() []int {
	return append([]int(nil), r.eighth...)
}

// GradeIndices returns the positional indices of all students at a grade level.
func (r *Roster) GradeIndices(g Grade) []int {
	return append([]int(nil), r.byGrade[g]...)
}

// IsFemale reports whether student i belongs to the female subgroup.
func (r *Roster) IsFemale(i int) bool {
	return r.students[i].Gender == Female
}

// IsEighthGrade reports whether student i belongs to the eighth-grade subgroup.
func (r *Roster) IsEighthGrade(i int) bool {
	return r.students[i].Grade == Grade8
}

// Pinned reports whether student i belongs to any subgroup that the mode pins
// to a reserved team.
func (r *Roster) Pinned(i int, m Mode) bool {
	if r.IsFemale(i) {
		return true
	}
	return m == ModeSeparate && r.IsEighthGrade(i)
}

// Unpinned returns the count of students not pinned to a reserved team under
// the mode, the population the regular teams must absorb.
func (r *Roster) Unpinned(m Mode) int {
	n := 0
	for i := range r.students {
		if !r.Pinned(i, m) {
			n++
		}
	}
	return n
}
