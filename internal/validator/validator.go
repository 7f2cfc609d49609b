// Package validator performs schema and value sanity checks on raw student
// tables before any model construction. Every violation found is collected
// and reported together, so the operator fixes a file in one round trip.
package validator

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/fll-tools/roster-optimizer/internal/loader"
	"github.com/fll-tools/roster-optimizer/pkg/core"
)

// ValidationError enumerates every violation found in an input table.
type ValidationError struct {
	issues []error
}

// Issues returns the individual violations.
func (e *ValidationError) Issues() []error {
	return e.issues
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("data validation failed:")
	for _, issue := range e.issues {
		b.WriteString("\n- ")
		b.WriteString(issue.Error())
	}
	return b.String()
}

// Validate checks a raw table against the fixed schema: required columns
// present, no empty cells, gender in {M, F}, grade one of the three levels
// (numeric or "Nth" form), role scores integers in [MinScore, MaxScore].
// It does not mutate the table. The returned error, when non-nil, is a
// *ValidationError carrying all violations, never just the first.
func Validate(t *loader.Table) error {
	var combined error

	for _, col := range loader.RequiredColumns() {
		if !t.HasColumn(col) {
			combined = multierr.Append(combined, fmt.Errorf("missing required column: %s", col))
		}
	}

	for row := range t.Rows {
		combined = multierr.Append(combined, validateRow(t, row))
	}

	if issues := multierr.Errors(combined); len(issues) > 0 {
		return &ValidationError{issues: issues}
	}
	return nil
}

func validateRow(t *loader.Table, row int) error {
	var combined error
	appendf := func(format string, args ...any) {
		combined = multierr.Append(combined, fmt.Errorf(format, args...))
	}

	// Missing-column issues are reported once at table level; per-row checks
	// only look at columns the schema actually has. A row too short to reach
	// a present column counts as a missing value.
	cell := func(col string) (string, bool) {
		if !t.HasColumn(col) {
			return "", false
		}
		v, ok := t.Cell(row, col)
		if !ok || v == "" {
			appendf("row %d: missing value in column %s", row+1, col)
			return "", false
		}
		return v, true
	}

	cell(loader.ColumnID)

	if v, ok := cell(loader.ColumnGender); ok {
		if _, err := core.ParseGender(v); err != nil {
			appendf("row %d: %v", row+1, err)
		}
	}

	if v, ok := cell(loader.ColumnGrade); ok {
		if _, err := core.ParseGrade(v); err != nil {
			appendf("row %d: %v", row+1, err)
		}
	}

	for _, col := range core.RoleColumns() {
		v, ok := cell(col)
		if !ok {
			continue
		}
		score, err := strconv.Atoi(v)
		if err != nil {
			appendf("row %d: invalid score %q in column %s", row+1, v, col)
			continue
		}
		if score < core.MinScore || score > core.MaxScore {
			appendf("row %d: score %d in column %s outside [%d, %d]",
				row+1, score, col, core.MinScore, core.MaxScore)
		}
	}

	return combined
}
