package solver

import "time"

// Status is the outcome class of a solve. Infeasible, ModelInvalid and
// Unknown are normal result variants, not errors; callers handle them by
// inspecting the status and receiving no assignment.
type Status int

const (
	// StatusUnknown means the time budget expired before any solution was found.
	StatusUnknown Status = iota
	// StatusOptimal means the search was exhausted and the incumbent is proven best.
	StatusOptimal
	// StatusFeasible means the time budget expired with an unproven incumbent.
	StatusFeasible
	// StatusInfeasible means the search was exhausted without finding any solution.
	StatusInfeasible
	// StatusModelInvalid means the model itself is malformed and was not searched.
	StatusModelInvalid
)

// String returns the solver-convention status name.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusModelInvalid:
		return "MODEL_INVALID"
	}
	return "UNKNOWN"
}

// Solution is a completed variable valuation plus its status. For
// StatusOptimal and StatusFeasible every declared variable has a concrete
// value; otherwise the valuation is absent.
type Solution struct {
	Status    Status
	Objective int

	// Problems lists model defects when Status is StatusModelInvalid.
	Problems []string

	values []int
}

// HasValues reports whether the solution carries a concrete valuation.
func (s Solution) HasValues() bool {
	return s.values != nil
}

// Value returns the solved value of a variable. It returns 0 when the
// solution carries no valuation.
func (s Solution) Value(v Var) int {
	if s.values == nil || v < 0 || int(v) >= len(s.values) {
		return 0
	}
	return s.values[v]
}

// BoolValue returns the solved value of a boolean variable.
func (s Solution) BoolValue(v Var) bool {
	return s.Value(v) == 1
}

// Observer is invoked synchronously on every improved incumbent found during
// search. It runs on the solver's own thread of control, must not mutate the
// model, and should be side-effect-light (logging only). Each call receives
// an immutable snapshot.
type Observer func(incumbent Solution)

// DefaultTimeLimit bounds the search when Options.TimeLimit is zero.
const DefaultTimeLimit = 60 * time.Second

// Options controls one solve call.
type Options struct {
	// TimeLimit is the wall-clock search budget. Zero means DefaultTimeLimit.
	TimeLimit time.Duration
	// Observer, if set, sees every improved incumbent.
	Observer Observer
}
