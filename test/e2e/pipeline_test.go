package e2e

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fll-tools/roster-optimizer/internal/assignment"
	"github.com/fll-tools/roster-optimizer/internal/loader"
	"github.com/fll-tools/roster-optimizer/internal/report"
	"github.com/fll-tools/roster-optimizer/internal/validator"
	"github.com/fll-tools/roster-optimizer/pkg/config"
	"github.com/fll-tools/roster-optimizer/pkg/core"
)

const studentCSV = `ID,Gender,Grade,team_captain,innovation_project_leader,mission_strategist,public_relations_lead,lego_lead_builder,lead_coder
f1,F,7,3,2,2,2,1,2
f2,F,7,2,3,2,1,2,2
f3,F,7,2,2,3,2,2,1
e1,M,8,3,1,2,2,2,2
e2,M,8,2,2,2,3,1,2
e3,M,8,1,2,2,2,3,2
m1,M,7,2,2,3,2,2,2
m2,M,7,2,3,2,2,2,1
m3,M,7,2,2,1,2,2,3
`

var _ = Describe("assignment pipeline", func() {
	var (
		workDir  string
		dataPath string
	)

	BeforeEach(func() {
		workDir = GinkgoT().TempDir()
		dataPath = filepath.Join(workDir, "students.csv")
		Expect(os.WriteFile(dataPath, []byte(studentCSV), 0o644)).To(Succeed())
	})

	loadRoster := func() *core.Roster {
		table, err := loader.ReadTableFile(dataPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(validator.Validate(table)).To(Succeed())
		roster, err := loader.RosterFromTable(table)
		Expect(err).NotTo(HaveOccurred())
		return roster
	}

	solveConfig := func(mode core.Mode) config.OptimizationConfig {
		cfg := config.Default()
		cfg.Mode = mode
		cfg.SpecialTeamSize = 3
		cfg.MinTeamSize = 3
		cfg.MaxTeamSize = 3
		cfg.TotalTeams = 3
		cfg.SolveTimeout = 3 * time.Second
		return cfg
	}

	It("produces a valid assignment CSV in separate mode", func() {
		roster := loadRoster()
		Expect(roster.Len()).To(Equal(9))

		o, err := assignment.New(roster, solveConfig(core.ModeSeparate))
		Expect(err).NotTo(HaveOccurred())

		res, err := o.Optimize(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.HasSolution()).To(BeTrue(), "status was %s", res.Status)

		outPath := filepath.Join(workDir, "assignments.csv")
		Expect(report.WriteCSVFile(outPath, res)).To(Succeed())

		out, err := loader.ReadTableFile(outPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Columns).To(Equal([]string{"student_id", "team_id", "role_1", "role_2"}))
		Expect(out.Rows).To(HaveLen(9))

		// Reserved teams: females on team 0, eighth graders on team 1.
		teams := map[string]string{}
		for row := range out.Rows {
			id, _ := out.Cell(row, "student_id")
			team, _ := out.Cell(row, "team_id")
			teams[id] = team
		}
		for _, id := range []string{"f1", "f2", "f3"} {
			Expect(teams[id]).To(Equal("0"), "student %s", id)
		}
		for _, id := range []string{"e1", "e2", "e3"} {
			Expect(teams[id]).To(Equal("1"), "student %s", id)
		}
		for _, id := range []string{"m1", "m2", "m3"} {
			Expect(teams[id]).To(Equal("2"), "student %s", id)
		}
	})

	It("spreads eighth graders in distributed mode", func() {
		// Two eighth graders, so each regular team takes exactly one.
		distributed := filepath.Join(workDir, "distributed.csv")
		Expect(os.WriteFile(distributed, []byte(
			"ID,Gender,Grade,team_captain,innovation_project_leader,mission_strategist,public_relations_lead,lego_lead_builder,lead_coder\n"+
				"f1,F,7,3,2,2,2,1,2\n"+
				"f2,F,7,2,3,2,1,2,2\n"+
				"f3,F,7,2,2,3,2,2,1\n"+
				"e1,M,8,3,1,2,2,2,2\n"+
				"e2,M,8,2,2,2,3,1,2\n"+
				"m1,M,7,2,2,3,2,2,2\n"+
				"m2,M,7,2,3,2,2,2,1\n"+
				"m3,M,7,2,2,1,2,2,3\n"+
				"m4,M,7,1,2,2,3,2,2\n"), 0o644)).To(Succeed())
		dataPath = distributed

		roster := loadRoster()
		cfg := solveConfig(core.ModeDistributed)

		o, err := assignment.New(roster, cfg)
		Expect(err).NotTo(HaveOccurred())

		res, err := o.Optimize(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.HasSolution()).To(BeTrue(), "status was %s", res.Status)

		perTeam := map[int]int{}
		for i, a := range res.Assignments {
			if roster.IsEighthGrade(i) {
				Expect(a.Team).NotTo(Equal(0), "eighth grader on the reserved team")
				perTeam[a.Team]++
			}
		}
		for team, n := range perTeam {
			Expect(n).To(BeNumerically("<=", 1), "team %d", team)
		}
	})

	It("rejects a malformed data file with every violation listed", func() {
		bad := filepath.Join(workDir, "bad.csv")
		Expect(os.WriteFile(bad, []byte(
			"ID,Gender,Grade\nx1,Q,9\n"), 0o644)).To(Succeed())

		table, err := loader.ReadTableFile(bad)
		Expect(err).NotTo(HaveOccurred())

		verr := validator.Validate(table)
		Expect(verr).To(HaveOccurred())
		Expect(verr.Error()).To(ContainSubstring("missing required column: team_captain"))
		Expect(verr.Error()).To(ContainSubstring(`invalid gender "Q"`))
		Expect(verr.Error()).To(ContainSubstring("invalid grade"))
	})

	It("anonymizes extra columns away and the result stays loadable", func() {
		raw := filepath.Join(workDir, "raw.csv")
		anon := filepath.Join(workDir, "anon.csv")
		Expect(os.WriteFile(raw, []byte(
			"Name,ID,Gender,Grade,team_captain,innovation_project_leader,mission_strategist,public_relations_lead,lego_lead_builder,lead_coder\n"+
				"Ada Lovelace,s1,F,7,3,2,1,2,1,3\n"), 0o644)).To(Succeed())

		Expect(loader.AnonymizeFile(raw, anon)).To(Succeed())

		data, err := os.ReadFile(anon)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).NotTo(ContainSubstring("Lovelace"))

		table, err := loader.ReadTableFile(anon)
		Expect(err).NotTo(HaveOccurred())
		Expect(validator.Validate(table)).To(Succeed())
	})
})
