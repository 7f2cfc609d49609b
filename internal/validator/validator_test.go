package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/fll-tools/roster-optimizer/internal/loader"
)

func mustTable(t *testing.T, csv string) *loader.Table {
	t.Helper()
	tbl, err := loader.ReadTable(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadTable() returned %v", err)
	}
	return tbl
}

const validCSV = `ID,Gender,Grade,team_captain,innovation_project_leader,mission_strategist,public_relations_lead,lego_lead_builder,lead_coder
s1,F,7,3,2,1,2,1,3
s2,M,8th,1,1,2,3,2,1
`

func TestValidateAcceptsCleanTable(t *testing.T) {
	if err := Validate(mustTable(t, validCSV)); err != nil {
		t.Fatalf("Validate() returned %v", err)
	}
}

func TestValidateMissingColumns(t *testing.T) {
	err := Validate(mustTable(t, "ID,Gender,Grade\ns1,F,7\n"))
	if err == nil {
		t.Fatal("Validate() accepted a table without role columns")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %v is not a *ValidationError", err)
	}
	if !strings.Contains(err.Error(), "missing required column: team_captain") {
		t.Errorf("missing column not named:\n%s", err)
	}
	if len(ve.Issues()) != 6 {
		t.Errorf("got %d issues, want 6 missing role columns:\n%s", len(ve.Issues()), err)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	bad := `ID,Gender,Grade,team_captain,innovation_project_leader,mission_strategist,public_relations_lead,lego_lead_builder,lead_coder
s1,X,5,3,2,1,2,1,3
,M,8,4,abc,2,3,2,1
`
	err := Validate(mustTable(t, bad))
	if err == nil {
		t.Fatal("Validate() accepted a table with violations")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %v is not a *ValidationError", err)
	}

	msg := err.Error()
	for _, want := range []string{
		`row 1: invalid gender "X"`,
		`row 1: invalid grade value "5"`,
		"row 2: missing value in column ID",
		"row 2: score 4 in column team_captain outside [1, 3]",
		`row 2: invalid score "abc" in column innovation_project_leader`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing violation %q in:\n%s", want, msg)
		}
	}
	if len(ve.Issues()) != 5 {
		t.Errorf("got %d issues, want 5:\n%s", len(ve.Issues()), msg)
	}
}

func TestValidateRaggedRow(t *testing.T) {
	short := `ID,Gender,Grade,team_captain,innovation_project_leader,mission_strategist,public_relations_lead,lego_lead_builder,lead_coder
s1,F,7,3,2
`
	err := Validate(mustTable(t, short))
	if err == nil {
		t.Fatal("Validate() accepted a row missing trailing cells")
	}
	msg := err.Error()
	for _, col := range []string{"mission_strategist", "public_relations_lead", "lego_lead_builder", "lead_coder"} {
		if !strings.Contains(msg, "missing value in column "+col) {
			t.Errorf("short row not reported for column %s:\n%s", col, msg)
		}
	}
}
