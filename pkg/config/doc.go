// Package config provides configuration management for the roster optimizer.
//
// This package handles loading, validation, and access to the optimization
// configuration from a YAML file, environment variables, and command-line
// flags (bound through viper by the CLI layer).
//
// Configuration Types:
//
//   - OptimizationConfig: team sizing bounds, role-count bounds, the
//     eighth-grade placement mode, penalty weights, and the solve budget
//   - Weights: optional objective-shaping weights
//
// Configuration Sources:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables (ROSTERCTL_*)
//  3. YAML config file
//  4. Default values (lowest priority)
//
// Configuration Validation:
//
// All values are validated before any model variable is declared:
//   - Numeric ranges (positive sizes, MinTeamSize <= MaxTeamSize)
//   - Cross-field constraints (MinRolesPerStudent <= MaxRolesPerStudent)
//   - Roster-dependent feasibility (a special team size that exactly holds
//     each pinned subgroup)
//
// Violations are reported as *ConfigurationError and abort the run before
// model construction.
package config
