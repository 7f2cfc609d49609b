package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fll-tools/roster-optimizer/pkg/core"
)

// ConfigurationError reports internally inconsistent bounds. It aborts a run
// before any decision variable is built.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.msg
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// Weights are the optional objective-shaping weights. All are magnitudes of
// penalties (applied negatively) except GradeAffinity, which is a bonus
// weight; zero disables a component.
type Weights struct {
	// TeamSizeDeviation penalizes each regular team's absolute deviation
	// from the midpoint of [MinTeamSize, MaxTeamSize].
	TeamSizeDeviation int `yaml:"teamSizeDeviation"`
	// PreferenceConflict penalizes every top-preference student beyond the
	// first competing for the same (team, role) slot.
	PreferenceConflict int `yaml:"preferenceConflict"`
	// GradeAffinity rewards same/adjacent-grade co-membership. Off by
	// default; it grows the model quadratically in the roster size.
	GradeAffinity int `yaml:"gradeAffinity"`
}

// OptimizationConfig is the fixed set of tunable bounds consumed by the
// constraint model.
type OptimizationConfig struct {
	// TotalTeams is the requested team count, including reserved teams.
	// Zero derives a count from the roster; a value below the mode minimum
	// is clamped upward, not rejected.
	TotalTeams int `yaml:"totalTeams"`
	// Mode selects the eighth-grade placement semantics.
	Mode core.Mode `yaml:"-"`

	MinTeamSize     int `yaml:"minTeamSize"`
	MaxTeamSize     int `yaml:"maxTeamSize"`
	SpecialTeamSize int `yaml:"specialTeamSize"`

	MinRolesPerStudent int `yaml:"minRolesPerStudent"`
	MaxRolesPerStudent int `yaml:"maxRolesPerStudent"`

	// SixthGradeMultiRolePenalty is the (negative) weight applied per role
	// beyond the first held by a sixth grader.
	SixthGradeMultiRolePenalty int `yaml:"sixthGradeMultiRolePenalty"`

	// SolveTimeout is the wall-clock budget handed to the solver engine. In
	// YAML it travels as a duration string ("60s", "2m").
	SolveTimeout time.Duration `yaml:"-"`

	Weights Weights `yaml:"weights"`
}

// Default returns the reference configuration.
func Default() OptimizationConfig {
	return OptimizationConfig{
		Mode:                       core.ModeSeparate,
		MinTeamSize:                4,
		MaxTeamSize:                8,
		SpecialTeamSize:            4,
		MinRolesPerStudent:         1,
		MaxRolesPerStudent:         2,
		SixthGradeMultiRolePenalty: -5,
		SolveTimeout:               60 * time.Second,
	}
}

// Validate checks internal consistency of the bounds. It does not look at
// roster data; see ValidateForRoster.
func (c *OptimizationConfig) Validate() error {
	if c.MinTeamSize <= 0 {
		return configErrorf("minTeamSize must be positive, got %d", c.MinTeamSize)
	}
	if c.MinTeamSize > c.MaxTeamSize {
		return configErrorf("minTeamSize (%d) must not exceed maxTeamSize (%d)", c.MinTeamSize, c.MaxTeamSize)
	}
	if c.SpecialTeamSize <= 0 {
		return configErrorf("specialTeamSize must be positive, got %d", c.SpecialTeamSize)
	}
	if c.MinRolesPerStudent < 0 {
		return configErrorf("minRolesPerStudent must not be negative, got %d", c.MinRolesPerStudent)
	}
	if c.MinRolesPerStudent > c.MaxRolesPerStudent {
		return configErrorf("minRolesPerStudent (%d) must not exceed maxRolesPerStudent (%d)",
			c.MinRolesPerStudent, c.MaxRolesPerStudent)
	}
	if c.TotalTeams < 0 {
		return configErrorf("totalTeams must not be negative, got %d", c.TotalTeams)
	}
	if c.SolveTimeout < 0 {
		return configErrorf("solveTimeout must not be negative, got %s", c.SolveTimeout)
	}
	return nil
}

// ValidateForRoster checks the roster-dependent feasibility conditions: the
// special team size must exactly hold each pinned subgroup. Constraint sets
// that are merely unsatisfiable are not detected here; that is the solver's
// verdict.
func (c *OptimizationConfig) ValidateForRoster(r *core.Roster) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if n := len(r.FemaleIndices()); n != c.SpecialTeamSize {
		return configErrorf("specialTeamSize is %d but the female subgroup has %d students", c.SpecialTeamSize, n)
	}
	if c.Mode == core.ModeSeparate {
		if n := len(r.EighthGradeIndices()); n != c.SpecialTeamSize {
			return configErrorf("specialTeamSize is %d but the 8th-grade subgroup has %d students", c.SpecialTeamSize, n)
		}
	}
	return nil
}

// DefaultTotalTeams derives a team count from the roster when TotalTeams is
// unset: the reserved teams plus enough regular teams to absorb the unpinned
// students at MaxTeamSize, and in distributed mode at least one regular team
// per eighth grader.
func (c *OptimizationConfig) DefaultTotalTeams(r *core.Roster) int {
	regular := (r.Unpinned(c.Mode) + c.MaxTeamSize - 1) / c.MaxTeamSize
	if c.Mode == core.ModeDistributed {
		if n := len(r.EighthGradeIndices()); n > regular {
			regular = n
		}
	}
	return c.Mode.ReservedTeams() + regular
}

// EffectiveTotalTeams resolves the team count for a roster: the configured
// value, derived when unset, clamped upward to the mode minimum.
func (c *OptimizationConfig) EffectiveTotalTeams(r *core.Roster) int {
	total := c.TotalTeams
	if total == 0 {
		total = c.DefaultTotalTeams(r)
	}
	if floor := c.Mode.MinTotalTeams(); total < floor {
		total = floor
	}
	return total
}

// fileConfig is the YAML shape of OptimizationConfig; the mode travels as
// its string name and the solve timeout as a duration string.
type fileConfig struct {
	OptimizationConfig `yaml:",inline"`
	ModeName           string `yaml:"eighthGradeMode"`
	SolveTimeoutText   string `yaml:"solveTimeout"`
}

// Parse decodes a YAML document over the defaults and validates the result.
func Parse(data []byte) (OptimizationConfig, error) {
	fc := fileConfig{OptimizationConfig: Default()}
	fc.ModeName = fc.Mode.String()
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return OptimizationConfig{}, fmt.Errorf("parsing configuration: %w", err)
	}
	mode, err := core.ParseMode(fc.ModeName)
	if err != nil {
		return OptimizationConfig{}, &ConfigurationError{msg: err.Error()}
	}
	cfg := fc.OptimizationConfig
	cfg.Mode = mode
	if fc.SolveTimeoutText != "" {
		d, err := time.ParseDuration(fc.SolveTimeoutText)
		if err != nil {
			return OptimizationConfig{}, configErrorf("invalid solveTimeout: %v", err)
		}
		cfg.SolveTimeout = d
	}
	if err := cfg.Validate(); err != nil {
		return OptimizationConfig{}, err
	}
	return cfg, nil
}
