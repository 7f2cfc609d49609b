package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fll-tools/roster-optimizer/internal/assignment"
	"github.com/fll-tools/roster-optimizer/internal/loader"
	"github.com/fll-tools/roster-optimizer/internal/logging"
	"github.com/fll-tools/roster-optimizer/internal/metrics"
	"github.com/fll-tools/roster-optimizer/internal/report"
	"github.com/fll-tools/roster-optimizer/internal/validator"
	"github.com/fll-tools/roster-optimizer/pkg/config"
	"github.com/fll-tools/roster-optimizer/pkg/core"
)

// envPrefix is the environment namespace for all configuration keys, e.g.
// ROSTERCTL_MIN_TEAM_SIZE.
const envPrefix = "ROSTERCTL"

func newOptimizeCmd() *cobra.Command {
	var (
		dataPath    string
		outPath     string
		metricsPath string
		cfgFile     string
	)
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Solve one team assignment for a student CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runOptimize(cmd.Context(), cfg, dataPath, outPath, metricsPath)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "input student CSV (required)")
	cmd.Flags().StringVar(&outPath, "out", "team_assignments.csv", "output assignment CSV")
	cmd.Flags().StringVar(&metricsPath, "metrics-file", "", "dump solve metrics to this file")
	cmd.Flags().StringVar(&cfgFile, "config", "", "YAML configuration file")
	addConfigFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

// addConfigFlags declares the flags shared by optimize and sweep. Flag names
// double as viper keys so that flag > env > file > default resolution works.
func addConfigFlags(fs *pflag.FlagSet) {
	d := config.Default()
	fs.Int("teams", 0, "total team count, 0 derives it from the roster")
	fs.String("mode", d.Mode.String(), "eighth-grade mode: separate or distributed")
	fs.Int("min-team-size", d.MinTeamSize, "minimum regular team size")
	fs.Int("max-team-size", d.MaxTeamSize, "maximum regular team size")
	fs.Int("special-team-size", d.SpecialTeamSize, "exact size of reserved teams")
	fs.Int("min-roles", d.MinRolesPerStudent, "minimum roles per student")
	fs.Int("max-roles", d.MaxRolesPerStudent, "maximum roles per student")
	fs.Int("sixth-grade-penalty", d.SixthGradeMultiRolePenalty, "penalty per extra role held by a 6th grader")
	fs.Duration("timeout", d.SolveTimeout, "solver wall-clock budget")
	fs.Int("weight-size-deviation", 0, "penalty weight for team size deviation")
	fs.Int("weight-preference-conflict", 0, "penalty weight for stacked top preferences")
	fs.Int("weight-grade-affinity", 0, "bonus weight for same-grade co-membership")
}

// resolveConfig merges flags, ROSTERCTL_* environment variables, the optional
// YAML file and defaults, in that priority order.
func resolveConfig(cfgFile string, fs *pflag.FlagSet) (config.OptimizationConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return config.OptimizationConfig{}, err
	}

	cfg := config.Default()
	if cfgFile != "" {
		data, err := os.ReadFile(cfgFile)
		if err != nil {
			return config.OptimizationConfig{}, fmt.Errorf("reading config file: %w", err)
		}
		cfg, err = config.Parse(data)
		if err != nil {
			return config.OptimizationConfig{}, err
		}
	}

	// Flags and environment override the file only when actually set.
	set := func(key string) bool {
		if f := fs.Lookup(key); f != nil && f.Changed {
			return true
		}
		return os.Getenv(envPrefix+"_"+envKey(key)) != ""
	}
	if set("teams") {
		cfg.TotalTeams = v.GetInt("teams")
	}
	if set("mode") {
		mode, err := core.ParseMode(v.GetString("mode"))
		if err != nil {
			return config.OptimizationConfig{}, err
		}
		cfg.Mode = mode
	}
	if set("min-team-size") {
		cfg.MinTeamSize = v.GetInt("min-team-size")
	}
	if set("max-team-size") {
		cfg.MaxTeamSize = v.GetInt("max-team-size")
	}
	if set("special-team-size") {
		cfg.SpecialTeamSize = v.GetInt("special-team-size")
	}
	if set("min-roles") {
		cfg.MinRolesPerStudent = v.GetInt("min-roles")
	}
	if set("max-roles") {
		cfg.MaxRolesPerStudent = v.GetInt("max-roles")
	}
	if set("sixth-grade-penalty") {
		cfg.SixthGradeMultiRolePenalty = v.GetInt("sixth-grade-penalty")
	}
	if set("timeout") {
		cfg.SolveTimeout = v.GetDuration("timeout")
	}
	if set("weight-size-deviation") {
		cfg.Weights.TeamSizeDeviation = v.GetInt("weight-size-deviation")
	}
	if set("weight-preference-conflict") {
		cfg.Weights.PreferenceConflict = v.GetInt("weight-preference-conflict")
	}
	if set("weight-grade-affinity") {
		cfg.Weights.GradeAffinity = v.GetInt("weight-grade-affinity")
	}

	if err := cfg.Validate(); err != nil {
		return config.OptimizationConfig{}, err
	}
	return cfg, nil
}

func envKey(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// loadRoster reads, validates and converts an input CSV.
func loadRoster(ctx context.Context, dataPath string) (*core.Roster, error) {
	log := logging.FromContext(ctx)
	table, err := loader.ReadTableFile(dataPath)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(table); err != nil {
		return nil, err
	}
	roster, err := loader.RosterFromTable(table)
	if err != nil {
		return nil, err
	}
	byGrade := make(map[string]int, len(core.GradeLevels()))
	for _, g := range core.GradeLevels() {
		byGrade[g.String()] = len(roster.GradeIndices(g))
	}
	log.Info("roster loaded",
		"students", roster.Len(),
		"females", len(roster.FemaleIndices()),
		"eighthGraders", len(roster.EighthGradeIndices()),
		"byGrade", byGrade)
	return roster, nil
}

func runOptimize(ctx context.Context, cfg config.OptimizationConfig, dataPath, outPath, metricsPath string) error {
	roster, err := loadRoster(ctx, dataPath)
	if err != nil {
		return err
	}

	mets := metrics.New()
	opt, err := assignment.New(roster, cfg, assignment.WithMetrics(mets))
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := opt.Optimize(ctx)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info("optimization finished",
		"status", result.Status.String(),
		"elapsed", time.Since(start).Round(time.Millisecond).String())

	report.Render(os.Stdout, result, roster, opt.TotalTeams(), cfg.Mode)
	if result.HasSolution() {
		if err := report.WriteCSVFile(outPath, result); err != nil {
			return err
		}
		fmt.Printf("\nAssignments saved to %s\n", outPath)
	}

	if metricsPath != "" {
		f, err := os.Create(metricsPath)
		if err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		if err := mets.WriteText(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
