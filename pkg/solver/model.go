package solver

import "fmt"

// Var identifies a declared decision variable. Variables are arena-allocated
// and index-addressed; a Var is only meaningful with the model that issued it.
type Var int

// Lit is a boolean variable or its negation, used for enforcement conditions.
type Lit struct {
	v   Var
	neg bool
}

// Pos returns the literal that is satisfied when v is 1.
func Pos(v Var) Lit {
	return Lit{v: v}
}

// Not returns the literal that is satisfied when v is 0.
func Not(v Var) Lit {
	return Lit{v: v, neg: true}
}

// satisfiedBy reports whether the literal holds under a concrete value of v.
func (l Lit) satisfiedBy(val int) bool {
	if l.neg {
		return val == 0
	}
	return val == 1
}

type varDecl struct {
	lo, hi int
	name   string
}

// Constraint is a linear constraint lb <= expr <= ub, optionally active only
// when all its enforcement literals hold.
type Constraint struct {
	expr    *LinearExpr
	lb, ub  int
	enforce []Lit
}

// OnlyEnforceIf restricts the constraint to apply only when every given
// literal is true; otherwise the constraint is vacuously satisfied.
func (c *Constraint) OnlyEnforceIf(lits ...Lit) *Constraint {
	c.enforce = append(c.enforce, lits...)
	return c
}

// unbounded is the sentinel magnitude for one-sided linear constraints. It is
// far above any bound a finite model can produce.
const unbounded = 1 << 40

// Model collects variable declarations, constraints and the objective. It is
// not safe for concurrent mutation; the build phase is sequential.
type Model struct {
	vars        []varDecl
	constraints []*Constraint
	objective   *LinearExpr
	hasObj      bool
	problems    []string
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar declares a boolean decision variable.
func (m *Model) NewBoolVar(name string) Var {
	return m.newVar(0, 1, name)
}

// NewIntVar declares an integer decision variable with inclusive domain [lo, hi].
func (m *Model) NewIntVar(lo, hi int, name string) Var {
	if lo > hi {
		m.problems = append(m.problems, fmt.Sprintf("variable %q has empty domain [%d, %d]", name, lo, hi))
	}
	return m.newVar(lo, hi, name)
}

func (m *Model) newVar(lo, hi int, name string) Var {
	m.vars = append(m.vars, varDecl{lo: lo, hi: hi, name: name})
	return Var(len(m.vars) - 1)
}

// NumVars returns the number of declared variables.
func (m *Model) NumVars() int {
	return len(m.vars)
}

// NumConstraints returns the number of added constraints.
func (m *Model) NumConstraints() int {
	return len(m.constraints)
}

// AddLinearRange adds the constraint lb <= expr <= ub.
func (m *Model) AddLinearRange(e *LinearExpr, lb, ub int) *Constraint {
	if lb > ub {
		m.problems = append(m.problems, fmt.Sprintf("constraint has empty range [%d, %d]", lb, ub))
	}
	m.checkExpr(e)
	c := &Constraint{expr: e, lb: lb, ub: ub}
	m.constraints = append(m.constraints, c)
	return c
}

// AddEquality adds the constraint expr == value.
func (m *Model) AddEquality(e *LinearExpr, value int) *Constraint {
	return m.AddLinearRange(e, value, value)
}

// AddAtLeast adds the constraint expr >= lb.
func (m *Model) AddAtLeast(e *LinearExpr, lb int) *Constraint {
	return m.AddLinearRange(e, lb, unbounded)
}

// AddAtMost adds the constraint expr <= ub.
func (m *Model) AddAtMost(e *LinearExpr, ub int) *Constraint {
	return m.AddLinearRange(e, -unbounded, ub)
}

// AddImplication adds a => b for boolean variables a and b.
func (m *Model) AddImplication(a, b Var) *Constraint {
	// a <= b
	return m.AddAtLeast(NewLinearExpr().Add(b).AddTerm(-1, a), 0)
}

// NewBoolAnd declares a fresh boolean c constrained to equal a AND b. All
// product variables in a model go through this one helper so the encoding
// stays auditable in isolation.
func (m *Model) NewBoolAnd(a, b Var, name string) Var {
	c := m.NewBoolVar(name)
	// c <= a, c <= b, c >= a + b - 1
	m.AddAtLeast(NewLinearExpr().Add(a).AddTerm(-1, c), 0)
	m.AddAtLeast(NewLinearExpr().Add(b).AddTerm(-1, c), 0)
	m.AddAtMost(NewLinearExpr().Add(a).Add(b).AddTerm(-1, c), 1)
	return c
}

// Maximize sets the linear objective. Calling it twice is a model defect and
// is reported as StatusModelInvalid at solve time.
func (m *Model) Maximize(e *LinearExpr) {
	if m.hasObj {
		m.problems = append(m.problems, "objective set more than once")
		return
	}
	m.checkExpr(e)
	m.objective = e
	m.hasObj = true
}

func (m *Model) checkExpr(e *LinearExpr) {
	if e == nil {
		m.problems = append(m.problems, "nil expression")
		return
	}
	for _, t := range e.terms {
		if t.Var < 0 || int(t.Var) >= len(m.vars) {
			m.problems = append(m.problems, fmt.Sprintf("expression references undeclared variable %d", t.Var))
		}
	}
}

// validate returns the accumulated model defects, including enforcement
// literals over non-boolean variables.
func (m *Model) validate() []string {
	problems := append([]string(nil), m.problems...)
	for _, c := range m.constraints {
		for _, l := range c.enforce {
			if l.v < 0 || int(l.v) >= len(m.vars) {
				problems = append(problems, fmt.Sprintf("enforcement literal references undeclared variable %d", l.v))
				continue
			}
			d := m.vars[l.v]
			if d.lo < 0 || d.hi > 1 {
				problems = append(problems, fmt.Sprintf("enforcement literal on non-boolean variable %q", d.name))
			}
		}
	}
	return problems
}
