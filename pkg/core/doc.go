// Package core provides fundamental data structures for the roster optimization engine.
//
// This package contains the domain models that represent the entities in the
// team-assignment system:
//
//   - Role: the closed set of functional team roles
//   - Gender, Grade: demographic categories with parsing helpers
//   - Student: an immutable per-run student record with role preference scores
//   - Roster: the indexed student list plus derived special-group indices
//   - Mode: the two eighth-grade placement modes and their team semantics
//   - Result: the finalized assignment produced by a solve
//
// These types form the foundation for the constraint model in internal/assignment
// and are used throughout the CLI for decision-making.
//
// Example usage:
//
//	// Parse categorical fields
//	grade, err := core.ParseGrade("7th")
//	gender, err := core.ParseGender("F")
//
//	// Build a roster; special-group indices are derived once here
//	roster := core.NewRoster(students)
//
//	// Inspect the derived groups
//	females := roster.FemaleIndices()
//	eighth := roster.EighthGradeIndices()
//
// The core package is designed to be:
//   - Immutable where possible (value types, copies on access)
//   - Type-safe with strong domain boundaries
//   - Independent of CSV loading and the CLI surface (pure domain logic)
package core
