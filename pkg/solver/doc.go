// Package solver implements a generic constraint-satisfaction and optimization engine.
//
// The solver package is independent of the team-assignment domain: it accepts
// boolean and bounded-integer decision variables, linear constraints over them
// (optionally conditioned on enforcement literals), and a single linear
// objective to maximize, and searches for an optimal variable assignment
// within a wall-clock time budget.
//
// Key Components:
//
//   - Model: declaration of variables, constraints and the objective
//   - LinearExpr: coefficient/variable term lists with sum helpers
//   - Engine: the solve interface, with a branch-and-bound implementation
//   - Solution: a status plus a concrete value for every declared variable
//
// Search Strategy:
//
// The built-in engine uses backtracking search with forward propagation:
//  1. Branch over variables in declaration order
//  2. After every assignment, propagate to a fixpoint: fix each boolean
//     variable whose other value cannot satisfy an active constraint, and
//     falsify the last open enforcement literal of an unsatisfiable
//     conditional constraint
//  3. Run the same propagation once at the root, so pinned variables and
//     their consequences are fixed before any branching
//  4. Prune subtrees whose optimistic objective bound cannot beat the incumbent
//
// Example usage:
//
//	m := solver.NewModel()
//	a := m.NewBoolVar("a")
//	b := m.NewBoolVar("b")
//	m.AddLinearRange(solver.Sum(a, b), 1, 1) // exactly one
//	m.Maximize(solver.NewLinearExpr().AddTerm(3, a).AddTerm(2, b))
//
//	sol := solver.NewEngine().Solve(ctx, m, solver.Options{TimeLimit: time.Minute})
//	if sol.Status == solver.StatusOptimal {
//	    fmt.Println(sol.BoolValue(a), sol.Objective)
//	}
//
// The engine is designed to be:
//   - Deterministic: same model produces the same search
//   - Bounded: a time budget turns exhaustive search into anytime search
//   - Observable: an optional observer sees every improved incumbent
//   - Exact: an exhausted search proves optimality or infeasibility
package solver
