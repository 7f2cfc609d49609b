// Package loader reads raw student tables from CSV and turns validated
// tables into domain rosters. It also hosts the column-projection anonymizer.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fll-tools/roster-optimizer/pkg/core"
)

// Column names of the fixed input schema, besides the role score columns.
const (
	ColumnID     = "ID"
	ColumnGender = "Gender"
	ColumnGrade  = "Grade"
)

// RequiredColumns returns the full required schema in canonical order.
func RequiredColumns() []string {
	cols := []string{ColumnID, ColumnGender, ColumnGrade}
	return append(cols, core.RoleColumns()...)
}

// Table is a raw tabular view of the input file: a header and string cells.
// It carries no typing; the validator decides whether it is usable.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// HasColumn reports whether the header contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the trimmed cell at (row, column). ok is false when the
// column is absent from the schema or the row is too short to reach it.
func (t *Table) Cell(row int, column string) (value string, ok bool) {
	ci, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) || ci >= len(t.Rows[row]) {
		return "", false
	}
	return strings.TrimSpace(t.Rows[row][ci]), true
}

// ReadTable parses CSV data into a raw table. Ragged rows are accepted here;
// the validator reports the holes.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading CSV: no header row")
	}
	t := &Table{
		Columns: records[0],
		Rows:    records[1:],
		index:   make(map[string]int, len(records[0])),
	}
	for i, col := range t.Columns {
		t.index[strings.TrimSpace(col)] = i
	}
	return t, nil
}

// ReadTableFile reads a CSV file into a raw table.
func ReadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// RosterFromTable converts a table into a roster with derived indices. The
// table must have passed validation; feeding an unchecked table here is
// undefined behavior.
func RosterFromTable(t *Table) (*core.Roster, error) {
	students := make([]core.Student, len(t.Rows))
	for row := range t.Rows {
		id, _ := t.Cell(row, ColumnID)
		genderRaw, _ := t.Cell(row, ColumnGender)
		gender, err := core.ParseGender(genderRaw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		gradeRaw, _ := t.Cell(row, ColumnGrade)
		grade, err := core.ParseGrade(gradeRaw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		s := core.Student{ID: id, Gender: gender, Grade: grade}
		for _, role := range core.Roles() {
			raw, _ := t.Cell(row, role.String())
			score, err := parseScore(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", row+1, role, err)
			}
			s.Scores[role] = score
		}
		students[row] = s
	}
	return core.NewRoster(students), nil
}

func parseScore(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q", raw)
	}
	return n, nil
}
