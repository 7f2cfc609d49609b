package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fll-tools/roster-optimizer/internal/assignment"
	"github.com/fll-tools/roster-optimizer/internal/logging"
	"github.com/fll-tools/roster-optimizer/internal/metrics"
	"github.com/fll-tools/roster-optimizer/internal/report"
	"github.com/fll-tools/roster-optimizer/pkg/core"
)

// newSweepCmd runs the optimizer over every (team count, mode) combination
// and writes one assignment file per combination. Infeasible combinations
// are reported and skipped, not fatal.
func newSweepCmd() *cobra.Command {
	var (
		dataPath  string
		outPrefix string
		cfgFile   string
		teams     []int
		modes     []string
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run all team-count and mode combinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			log := logging.FromContext(ctx)

			roster, err := loadRoster(ctx, dataPath)
			if err != nil {
				return err
			}

			solved := 0
			for _, modeName := range modes {
				mode, err := core.ParseMode(modeName)
				if err != nil {
					return err
				}
				for _, teamCount := range teams {
					runCfg := cfg
					runCfg.Mode = mode
					runCfg.TotalTeams = teamCount

					outFile := fmt.Sprintf("%s_%d_%s.csv", outPrefix, teamCount, mode)
					log.Info("sweep run", "teams", teamCount, "mode", mode.String(), "out", outFile)

					opt, err := assignment.New(roster, runCfg, assignment.WithMetrics(metrics.New()))
					if err != nil {
						return err
					}
					result, err := opt.Optimize(ctx)
					if err != nil {
						return err
					}

					fmt.Printf("\n=== %d teams, %s mode ===\n", teamCount, mode)
					report.Render(os.Stdout, result, roster, opt.TotalTeams(), mode)
					if !result.HasSolution() {
						continue
					}
					if err := report.WriteCSVFile(outFile, result); err != nil {
						return err
					}
					solved++
				}
			}
			fmt.Printf("\n%d of %d combinations produced an assignment\n", solved, len(teams)*len(modes))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "input student CSV (required)")
	cmd.Flags().StringVar(&outPrefix, "out-prefix", "teams", "output file prefix")
	cmd.Flags().StringVar(&cfgFile, "config", "", "YAML configuration file")
	cmd.Flags().IntSliceVar(&teams, "team-counts", []int{4, 5}, "team counts to try")
	cmd.Flags().StringSliceVar(&modes, "modes", []string{"separate", "distributed"}, "eighth-grade modes to try")
	addConfigFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
