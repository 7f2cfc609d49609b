package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Role identifies one of the fixed functional roles filled on every team.
// The role set is closed and identical for every team.
type Role int

const (
	TeamCaptain Role = iota
	InnovationProjectLeader
	MissionStrategist
	PublicRelationsLead
	LegoLeadBuilder
	LeadCoder

	// NumRoles is the size of the closed role set.
	NumRoles = int(LeadCoder) + 1
)

var roleColumns = [NumRoles]string{
	"team_captain",
	"innovation_project_leader",
	"mission_strategist",
	"public_relations_lead",
	"lego_lead_builder",
	"lead_coder",
}

// Roles returns all roles in column order.
func Roles() []Role {
	rs := make([]Role, NumRoles)
	for i := range rs {
		rs[i] = Role(i)
	}
	return rs
}

// RoleColumns returns the CSV column names of the role set, in role order.
func RoleColumns() []string {
	cols := make([]string, NumRoles)
	copy(cols, roleColumns[:])
	return cols
}

// String returns the column name of the role.
func (r Role) String() string {
	if r < 0 || int(r) >= NumRoles {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleColumns[r]
}

// ParseRole maps a column name back to its Role.
func ParseRole(s string) (Role, error) {
	for i, col := range roleColumns {
		if col == s {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Gender is the recognized gender category of a student record.
type Gender string

const (
	Male   Gender = "M"
	Female Gender = "F"
)

// ParseGender validates a raw gender cell.
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.TrimSpace(s)) {
	case Male:
		return Male, nil
	case Female:
		return Female, nil
	}
	return "", fmt.Errorf("invalid gender %q, must be one of: M, F", s)
}

// Grade is one of the three ordered grade levels.
type Grade int

const (
	Grade6 Grade = 6
	Grade7 Grade = 7
	Grade8 Grade = 8
)

// String renders the textual "Nth" form used in input files and reports.
func (g Grade) String() string {
	return fmt.Sprintf("%dth", int(g))
}

// ParseGrade accepts either a numeric ("7", "7.0") or a textual ("7th") grade form.
func ParseGrade(s string) (Grade, error) {
	raw := strings.TrimSpace(s)
	text := strings.TrimSuffix(raw, "th")
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || n != float64(int(n)) {
		return 0, fmt.Errorf("invalid grade format %q", raw)
	}
	g := Grade(int(n))
	switch g {
	case Grade6, Grade7, Grade8:
		return g, nil
	}
	return 0, fmt.Errorf("invalid grade value %q, must be 6th, 7th or 8th", raw)
}

// GradeLevels returns the recognized grade levels in ascending order.
func GradeLevels() []Grade {
	return []Grade{Grade6, Grade7, Grade8}
}

// Preference score bounds, inclusive.
const (
	MinScore = 1
	MaxScore = 3
)

// Student is one immutable input record. The positional index of a student in
// its Roster is stable for the duration of a run.
type Student struct {
	ID     string
	Gender Gender
	Grade  Grade
	// Scores holds the stated preference score per role, indexed by Role.
	Scores [NumRoles]int
}

// Score returns the student's stated preference for a role.
func (s Student) Score(r Role) int {
	return s.Scores[r]
}

// Mode selects the team semantics for eighth-grade students.
type Mode int

const (
	// ModeSeparate reserves team 0 for the female subgroup and team 1 for the
	// eighth-grade subgroup; teams >= 2 are regular.
	ModeSeparate Mode = iota
	// ModeDistributed reserves team 0 for the female subgroup and spreads
	// eighth graders over the remaining teams, at most one per team.
	ModeDistributed
)

// String returns the mode name used on the CLI and in config files.
func (m Mode) String() string {
	switch m {
	case ModeSeparate:
		return "separate"
	case ModeDistributed:
		return "distributed"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a mode name to its Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.TrimSpace(s) {
	case "separate":
		return ModeSeparate, nil
	case "distributed":
		return ModeDistributed, nil
	}
	return 0, fmt.Errorf("unknown eighth-grade mode %q, must be one of: separate, distributed", s)
}

// ReservedTeams is the number of leading team indices whose membership is
// fully predetermined by a demographic subgroup.
func (m Mode) ReservedTeams() int {
	if m == ModeSeparate {
		return 2
	}
	return 1
}

// MinTotalTeams is the smallest total team count the mode permits. A
// caller-specified total below this is clamped upward, not rejected.
func (m Mode) MinTotalTeams() int {
	return m.ReservedTeams()
}
