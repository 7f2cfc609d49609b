package solver

import (
	"context"
	"time"
)

// Engine solves an assembled model within a bounded time budget.
type Engine interface {
	// Solve searches the model and returns a solution for every outcome
	// class; it never panics on malformed models, reporting them as
	// StatusModelInvalid instead. Cancelling the context is equivalent to
	// the time budget expiring.
	Solve(ctx context.Context, m *Model, opts Options) Solution
}

// NewEngine creates the built-in branch-and-bound engine.
func NewEngine() Engine {
	return &bbEngine{}
}

type bbEngine struct{}

func (e *bbEngine) Solve(ctx context.Context, m *Model, opts Options) Solution {
	if problems := m.validate(); len(problems) > 0 {
		return Solution{Status: StatusModelInvalid, Problems: problems}
	}

	limit := opts.TimeLimit
	if limit <= 0 {
		limit = DefaultTimeLimit
	}

	s := newSearch(ctx, m, opts, time.Now().Add(limit))
	s.run()

	switch {
	case s.best != nil && !s.stopped:
		return Solution{Status: StatusOptimal, Objective: s.best.objective, values: s.best.values}
	case s.best != nil:
		return Solution{Status: StatusFeasible, Objective: s.best.objective, values: s.best.values}
	case s.stopped:
		return Solution{Status: StatusUnknown}
	default:
		return Solution{Status: StatusInfeasible}
	}
}

// varCoeff is one variable's net coefficient inside a constraint, with
// duplicate terms merged.
type varCoeff struct {
	v     Var
	coeff int
}

// consState tracks the reachable sum range of one constraint under the
// current partial assignment.
type consState struct {
	c              *Constraint
	curMin, curMax int
	vars           []varCoeff
}

// occEntry links a variable to a constraint it affects: through its net
// coefficient, or with coeff 0 when the variable only appears as an
// enforcement literal.
type occEntry struct {
	ci    int
	coeff int
}

type incumbent struct {
	objective int
	values    []int
}

type search struct {
	ctx      context.Context
	opts     Options
	deadline time.Time

	decls    []varDecl
	values   []int
	assigned []bool

	cons []consState
	occ  [][]occEntry

	// trail records every assignment in order, decided and propagated
	// alike, so backtracking unwinds exactly to a decision point.
	trail []int
	// queue is the propagation worklist of constraint indices.
	queue []int

	objCoeff []int
	objConst int
	// bound is the optimistic objective value reachable below the current
	// node: exact contributions of assigned variables plus the per-variable
	// maximum of the rest.
	bound int

	best    *incumbent
	nodes   uint64
	stopped bool
}

func newSearch(ctx context.Context, m *Model, opts Options, deadline time.Time) *search {
	n := len(m.vars)
	s := &search{
		ctx:      ctx,
		opts:     opts,
		deadline: deadline,
		decls:    m.vars,
		values:   make([]int, n),
		assigned: make([]bool, n),
		cons:     make([]consState, len(m.constraints)),
		occ:      make([][]occEntry, n),
		objCoeff: make([]int, n),
	}

	if m.objective != nil {
		s.objConst = m.objective.constant
		for _, t := range m.objective.terms {
			s.objCoeff[t.Var] += t.Coeff
		}
	}
	s.bound = s.objConst
	for v, c := range s.objCoeff {
		s.bound += maxContrib(c, s.decls[v].lo, s.decls[v].hi)
	}

	for ci, c := range m.constraints {
		cs := consState{c: c, curMin: c.expr.constant, curMax: c.expr.constant}
		index := make(map[Var]int, len(c.expr.terms))
		for _, t := range c.expr.terms {
			if i, ok := index[t.Var]; ok {
				cs.vars[i].coeff += t.Coeff
			} else {
				index[t.Var] = len(cs.vars)
				cs.vars = append(cs.vars, varCoeff{v: t.Var, coeff: t.Coeff})
			}
		}
		for _, vc := range cs.vars {
			d := s.decls[vc.v]
			cs.curMin += minContrib(vc.coeff, d.lo, d.hi)
			cs.curMax += maxContrib(vc.coeff, d.lo, d.hi)
			s.occ[vc.v] = append(s.occ[vc.v], occEntry{ci: ci, coeff: vc.coeff})
		}
		for _, l := range c.enforce {
			if _, ok := index[l.v]; !ok {
				index[l.v] = -1
				s.occ[l.v] = append(s.occ[l.v], occEntry{ci: ci})
			}
		}
		s.cons[ci] = cs
	}
	return s
}

func minContrib(coeff, lo, hi int) int {
	if coeff >= 0 {
		return coeff * lo
	}
	return coeff * hi
}

func maxContrib(coeff, lo, hi int) int {
	if coeff >= 0 {
		return coeff * hi
	}
	return coeff * lo
}

func (s *search) run() {
	// A full propagation pass at the root fixes everything the constraints
	// force outright (pinned memberships and their downstream products);
	// a contradiction here is infeasibility, with no search needed.
	for ci := range s.cons {
		s.queue = append(s.queue, ci)
	}
	if !s.propagate() {
		return
	}
	s.dfs(0)
}

func (s *search) dfs(idx int) {
	if s.stopped {
		return
	}
	for idx < len(s.decls) && s.assigned[idx] {
		idx++
	}
	s.nodes++
	if s.nodes&1023 == 0 && s.outOfBudget() {
		s.stopped = true
		return
	}
	if s.best != nil && s.bound <= s.best.objective {
		return
	}
	if idx == len(s.decls) {
		s.record()
		return
	}

	d := s.decls[idx]
	for val := d.lo; ; val++ {
		mark := len(s.trail)
		if s.decide(idx, val) {
			s.dfs(idx + 1)
		}
		s.undoTo(mark)
		if s.stopped || val == d.hi {
			return
		}
	}
}

// decide fixes variable idx to val and runs propagation to a fixpoint. It
// reports whether the resulting state is still consistent; on false the
// caller unwinds the trail to its mark.
func (s *search) decide(idx, val int) bool {
	s.queue = s.queue[:0]
	if !s.place(idx, val) {
		return false
	}
	return s.propagate()
}

// place assigns one variable, updates the affected constraint ranges and the
// objective bound, and enqueues the touched constraints for propagation. It
// reports whether every definitely-active touched constraint can still be
// satisfied.
func (s *search) place(idx, val int) bool {
	d := s.decls[idx]
	s.values[idx] = val
	s.assigned[idx] = true
	s.trail = append(s.trail, idx)
	s.bound += s.objCoeff[idx]*val - maxContrib(s.objCoeff[idx], d.lo, d.hi)

	ok := true
	for _, e := range s.occ[idx] {
		cs := &s.cons[e.ci]
		if e.coeff != 0 {
			cs.curMin += e.coeff*val - minContrib(e.coeff, d.lo, d.hi)
			cs.curMax += e.coeff*val - maxContrib(e.coeff, d.lo, d.hi)
		}
		if s.active(cs) && (cs.curMin > cs.c.ub || cs.curMax < cs.c.lb) {
			ok = false
		}
		s.queue = append(s.queue, e.ci)
	}
	return ok
}

func (s *search) propagate() bool {
	for len(s.queue) > 0 {
		ci := s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]
		if !s.examine(ci) {
			return false
		}
	}
	return true
}

// examine applies bounds reasoning to one constraint: a falsified literal
// makes it vacuous; an unsatisfiable body falsifies its last open
// enforcement literal; an active constraint fixes every boolean variable
// whose other value cannot satisfy it. It reports false on contradiction.
func (s *search) examine(ci int) bool {
	cs := &s.cons[ci]
	c := cs.c

	open := 0
	last := -1
	for i, l := range c.enforce {
		if s.assigned[l.v] {
			if !l.satisfiedBy(s.values[l.v]) {
				return true
			}
			continue
		}
		open++
		last = i
	}

	broken := cs.curMin > c.ub || cs.curMax < c.lb
	if open > 0 {
		if broken && open == 1 {
			l := c.enforce[last]
			val := 0
			if l.neg {
				val = 1
			}
			return s.place(int(l.v), val)
		}
		return true
	}
	if broken {
		return false
	}

	for _, vc := range cs.vars {
		if vc.coeff == 0 || s.assigned[vc.v] {
			continue
		}
		d := s.decls[vc.v]
		if d.lo != 0 || d.hi != 1 {
			continue
		}
		minc := minContrib(vc.coeff, 0, 1)
		maxc := maxContrib(vc.coeff, 0, 1)
		ok0 := cs.curMin-minc <= c.ub && cs.curMax-maxc >= c.lb
		ok1 := cs.curMin+vc.coeff-minc <= c.ub && cs.curMax+vc.coeff-maxc >= c.lb
		switch {
		case !ok0 && !ok1:
			return false
		case !ok0:
			if !s.place(int(vc.v), 1) {
				return false
			}
		case !ok1:
			if !s.place(int(vc.v), 0) {
				return false
			}
		}
	}
	return true
}

// undoTo unwinds the trail back to a mark, reverting constraint ranges and
// the objective bound.
func (s *search) undoTo(mark int) {
	for len(s.trail) > mark {
		idx := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		val := s.values[idx]
		d := s.decls[idx]
		s.assigned[idx] = false
		s.bound += maxContrib(s.objCoeff[idx], d.lo, d.hi) - s.objCoeff[idx]*val
		for _, e := range s.occ[idx] {
			if e.coeff == 0 {
				continue
			}
			cs := &s.cons[e.ci]
			cs.curMin += minContrib(e.coeff, d.lo, d.hi) - e.coeff*val
			cs.curMax += maxContrib(e.coeff, d.lo, d.hi) - e.coeff*val
		}
	}
}

// active reports whether a constraint is known to apply under the current
// partial assignment. Constraints whose enforcement literals are undecided or
// falsified do not prune; a falsified literal makes the constraint vacuous
// and an undecided one is re-examined when the literal's variable is fixed.
func (s *search) active(cs *consState) bool {
	for _, l := range cs.c.enforce {
		if !s.assigned[l.v] || !l.satisfiedBy(s.values[l.v]) {
			return false
		}
	}
	return true
}

// record stores the complete assignment as the new incumbent. The bound is
// exact at a leaf, and the caller only reaches a leaf when it improves on the
// previous incumbent.
func (s *search) record() {
	vals := make([]int, len(s.values))
	copy(vals, s.values)
	s.best = &incumbent{objective: s.bound, values: vals}
	if s.opts.Observer != nil {
		s.opts.Observer(Solution{Status: StatusFeasible, Objective: s.best.objective, values: vals})
	}
}

func (s *search) outOfBudget() bool {
	if s.ctx != nil && s.ctx.Err() != nil {
		return true
	}
	return time.Now().After(s.deadline)
}
