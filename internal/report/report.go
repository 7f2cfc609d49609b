// Package report renders a solve result for the operator: a tabular CSV of
// per-student placements and a human-readable summary of teams and sizes.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/fll-tools/roster-optimizer/pkg/core"
	"github.com/fll-tools/roster-optimizer/pkg/solver"
)

// StatusText maps a solver status to the operator-facing phrasing.
func StatusText(s solver.Status) string {
	switch s {
	case solver.StatusOptimal:
		return "Optimal solution found"
	case solver.StatusFeasible:
		return "Feasible solution found"
	case solver.StatusInfeasible:
		return "Problem is infeasible"
	case solver.StatusModelInvalid:
		return "Model is invalid"
	}
	return "Unknown status"
}

// WriteCSV writes the per-student assignment table. Role columns are always
// exactly two, padded with empty placeholders when only one role is held.
func WriteCSV(w io.Writer, res *core.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"student_id", "team_id", "role_1", "role_2"}); err != nil {
		return fmt.Errorf("writing assignments: %w", err)
	}
	for _, a := range res.Assignments {
		roles := a.PaddedRoles()
		record := []string{a.StudentID, fmt.Sprintf("%d", a.Team), roles[0], roles[1]}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing assignments: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the assignment table to a file.
func WriteCSVFile(path string, res *core.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing assignments: %w", err)
	}
	if err := WriteCSV(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render prints the result in a readable format: status, team compositions,
// sizes, and size statistics over the regular teams.
func Render(w io.Writer, res *core.Result, roster *core.Roster, totalTeams int, mode core.Mode) {
	fmt.Fprintf(w, "Status: %s\n", StatusText(res.Status))
	if !res.HasSolution() {
		fmt.Fprintln(w, "No assignment produced. The constraints may be too restrictive;")
		fmt.Fprintln(w, "try raising the number of teams or adjusting the size bounds.")
		return
	}
	fmt.Fprintf(w, "Objective value: %d\n", res.Objective)

	members := res.TeamMembers(totalTeams)
	for t := 0; t < totalTeams; t++ {
		fmt.Fprintf(w, "\nTeam %d (%d students):\n", t, len(members[t]))
		for _, i := range members[t] {
			s := roster.Student(i)
			a := res.Assignments[i]
			fmt.Fprintf(w, "  Student %s (%s, %s): %s\n", s.ID, s.Gender, s.Grade, roleList(a.Roles))
		}
	}

	fmt.Fprintln(w, "\nTeam sizes:")
	sizes := res.TeamSizes(totalTeams)
	for t, size := range sizes {
		fmt.Fprintf(w, "Team %d: %d students\n", t, size)
	}

	// Sample stddev needs two teams; a single regular team gets the mean only.
	switch regular := regularSizes(sizes, mode); {
	case len(regular) >= 2:
		mean, std := stat.MeanStdDev(regular, nil)
		fmt.Fprintf(w, "Regular team size: mean %.1f, stddev %.2f\n", mean, std)
	case len(regular) == 1:
		fmt.Fprintf(w, "Regular team size: mean %.1f\n", stat.Mean(regular, nil))
	}
}

func regularSizes(sizes []int, mode core.Mode) []float64 {
	reserved := mode.ReservedTeams()
	if len(sizes) <= reserved {
		return nil
	}
	out := make([]float64, 0, len(sizes)-reserved)
	for _, s := range sizes[reserved:] {
		out = append(out, float64(s))
	}
	return out
}

func roleList(roles []core.Role) string {
	if len(roles) == 0 {
		return "(no role)"
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}
