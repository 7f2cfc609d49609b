package solver

// Term is one coefficient-variable product inside a linear expression.
type Term struct {
	Coeff int
	Var   Var
}

// LinearExpr is a sum of coefficient-variable terms plus a constant. The zero
// value is usable; helpers return the receiver for chaining.
type LinearExpr struct {
	terms    []Term
	constant int
}

// NewLinearExpr returns an empty expression.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// Sum returns an expression adding the given variables with coefficient 1.
func Sum(vars ...Var) *LinearExpr {
	e := &LinearExpr{terms: make([]Term, 0, len(vars))}
	for _, v := range vars {
		e.terms = append(e.terms, Term{Coeff: 1, Var: v})
	}
	return e
}

// Add appends a variable with coefficient 1.
func (e *LinearExpr) Add(v Var) *LinearExpr {
	return e.AddTerm(1, v)
}

// AddTerm appends a coefficient-variable term. Zero coefficients are dropped.
func (e *LinearExpr) AddTerm(coeff int, v Var) *LinearExpr {
	if coeff != 0 {
		e.terms = append(e.terms, Term{Coeff: coeff, Var: v})
	}
	return e
}

// AddConstant adds a constant offset.
func (e *LinearExpr) AddConstant(c int) *LinearExpr {
	e.constant += c
	return e
}

// AddExpr appends all terms and the constant of another expression.
func (e *LinearExpr) AddExpr(other *LinearExpr) *LinearExpr {
	e.terms = append(e.terms, other.terms...)
	e.constant += other.constant
	return e
}

// Terms returns the term list. The returned slice must not be mutated.
func (e *LinearExpr) Terms() []Term {
	return e.terms
}

// Constant returns the constant offset.
func (e *LinearExpr) Constant() int {
	return e.constant
}
