// Package assignment formulates the team-assignment problem as a constraint
// model and orchestrates one solve of it.
//
// Architecture:
//
// The package follows a build pipeline over a shared solver model:
//
//	Variables -> Constraints -> Objective -> Solve -> Extract
//
// Each stage is an independent, order-insensitive addition to the model; only
// the final extraction reads anything back, and it reads nothing but the
// solved valuation.
//
// Decision variables:
//
//   - one boolean per (student, team): student i is on team t
//   - one boolean per (student, role): student i holds role r
//   - auxiliary AND products per (student, role, team) for role uniqueness
//
// Hard constraints: every student on exactly one team; special-group pinning
// to the reserved teams; the distributed-mode eighth-grade per-team cap; team
// sizing; per-student role-count bounds; exactly one holder per (team, role);
// and grade clustering (a regular team has zero or at least two students of a
// clustered grade, never one).
//
// Objective: stated preference scores, minus the sixth-grade multi-role
// penalty, the regular-team size-deviation penalty, and the top-preference
// conflict penalty, plus the optional grade-affinity bonus.
//
// Solver statuses that carry no assignment (infeasible, invalid, unknown)
// are normal results here, not errors; the Optimizer returns a Result with
// the status and no assignments, and never retries.
package assignment
