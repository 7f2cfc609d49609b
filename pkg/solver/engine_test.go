package solver

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func solve(t *testing.T, m *Model, opts Options) Solution {
	t.Helper()
	if opts.TimeLimit == 0 {
		opts.TimeLimit = 10 * time.Second
	}
	return NewEngine().Solve(context.Background(), m, opts)
}

func TestSolveEmptyModel(t *testing.T) {
	sol := solve(t, NewModel(), Options{})
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %s, want OPTIMAL", sol.Status)
	}
	if sol.Objective != 0 {
		t.Fatalf("objective = %d, want 0", sol.Objective)
	}
}

func TestMaximizeExactlyOne(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	c := m.NewBoolVar("c")
	m.AddEquality(Sum(a, b, c), 1)
	m.Maximize(NewLinearExpr().AddTerm(1, a).AddTerm(3, b).AddTerm(2, c))

	sol := solve(t, m, Options{})
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %s, want OPTIMAL", sol.Status)
	}
	if sol.Objective != 3 {
		t.Fatalf("objective = %d, want 3", sol.Objective)
	}
	if !sol.BoolValue(b) || sol.BoolValue(a) || sol.BoolValue(c) {
		t.Fatalf("valuation = %d %d %d, want only b set", sol.Value(a), sol.Value(b), sol.Value(c))
	}
}

func TestInfeasible(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddEquality(Sum(a, b), 3)

	sol := solve(t, m, Options{})
	if sol.Status != StatusInfeasible {
		t.Fatalf("status = %s, want INFEASIBLE", sol.Status)
	}
	if sol.HasValues() {
		t.Fatal("infeasible solution should carry no valuation")
	}
}

func TestBoolAndTruthTable(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 0, 0},
		{0, 1, 0},
		{1, 0, 0},
		{1, 1, 1},
	}
	for _, tt := range tests {
		m := NewModel()
		a := m.NewBoolVar("a")
		b := m.NewBoolVar("b")
		c := m.NewBoolAnd(a, b, "c")
		m.AddEquality(Sum(a), tt.a)
		m.AddEquality(Sum(b), tt.b)

		sol := solve(t, m, Options{})
		if sol.Status != StatusOptimal {
			t.Fatalf("a=%d b=%d: status = %s, want OPTIMAL", tt.a, tt.b, sol.Status)
		}
		if got := sol.Value(c); got != tt.want {
			t.Errorf("and(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestImplication(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddImplication(a, b)
	m.AddEquality(Sum(a), 1)

	sol := solve(t, m, Options{})
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %s, want OPTIMAL", sol.Status)
	}
	if !sol.BoolValue(b) {
		t.Fatal("a=1 with a => b must force b=1")
	}
}

func TestEnforcementLiterals(t *testing.T) {
	// present=1 requires both x and y; present=0 forbids both.
	build := func(presentVal int) (*Model, Var, Var) {
		m := NewModel()
		x := m.NewBoolVar("x")
		y := m.NewBoolVar("y")
		p := m.NewBoolVar("p")
		m.AddAtLeast(Sum(x, y), 2).OnlyEnforceIf(Pos(p))
		m.AddEquality(Sum(x, y), 0).OnlyEnforceIf(Not(p))
		m.AddEquality(Sum(p), presentVal)
		m.Maximize(Sum(x))
		return m, x, y
	}

	m, x, y := build(1)
	sol := solve(t, m, Options{})
	if sol.Status != StatusOptimal || !sol.BoolValue(x) || !sol.BoolValue(y) {
		t.Fatalf("present=1: status=%s x=%d y=%d, want both set", sol.Status, sol.Value(x), sol.Value(y))
	}

	m, x, y = build(0)
	sol = solve(t, m, Options{})
	if sol.Status != StatusOptimal || sol.BoolValue(x) || sol.BoolValue(y) {
		t.Fatalf("present=0: status=%s x=%d y=%d, want both clear", sol.Status, sol.Value(x), sol.Value(y))
	}
}

func TestIntVarAbsoluteDeviation(t *testing.T) {
	// dev is bounded below by both signed differences from 6; maximizing
	// -dev forces it onto the absolute value.
	m := NewModel()
	x := m.NewIntVar(0, 10, "x")
	dev := m.NewIntVar(0, 10, "dev")
	m.AddAtLeast(NewLinearExpr().Add(dev).AddTerm(-1, x), -6) // dev >= x - 6
	m.AddAtLeast(NewLinearExpr().Add(dev).Add(x), 6)          // dev >= 6 - x
	m.AddEquality(Sum(x), 2)
	m.Maximize(NewLinearExpr().AddTerm(-1, dev))

	sol := solve(t, m, Options{})
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %s, want OPTIMAL", sol.Status)
	}
	if got := sol.Value(dev); got != 4 {
		t.Fatalf("dev = %d, want 4", got)
	}
	if sol.Objective != -4 {
		t.Fatalf("objective = %d, want -4", sol.Objective)
	}
}

func TestModelInvalid(t *testing.T) {
	m := NewModel()
	m.NewIntVar(5, 2, "empty")
	sol := solve(t, m, Options{})
	if sol.Status != StatusModelInvalid {
		t.Fatalf("status = %s, want MODEL_INVALID", sol.Status)
	}
	if len(sol.Problems) == 0 {
		t.Fatal("invalid model should report its problems")
	}
}

func TestDoubleMaximizeIsInvalid(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	m.Maximize(Sum(a))
	m.Maximize(Sum(a))
	sol := solve(t, m, Options{})
	if sol.Status != StatusModelInvalid {
		t.Fatalf("status = %s, want MODEL_INVALID", sol.Status)
	}
}

func TestObserverSeesImprovingIncumbents(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	c := m.NewBoolVar("c")
	m.AddEquality(Sum(a, b, c), 1)
	m.Maximize(NewLinearExpr().AddTerm(1, a).AddTerm(3, b).AddTerm(2, c))

	var objectives []int
	sol := solve(t, m, Options{Observer: func(inc Solution) {
		if !inc.HasValues() {
			t.Error("incumbent must carry a valuation")
		}
		objectives = append(objectives, inc.Objective)
	}})
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %s, want OPTIMAL", sol.Status)
	}
	if len(objectives) == 0 {
		t.Fatal("observer saw no incumbents")
	}
	for i := 1; i < len(objectives); i++ {
		if objectives[i] <= objectives[i-1] {
			t.Fatalf("incumbents not strictly improving: %v", objectives)
		}
	}
	if last := objectives[len(objectives)-1]; last != sol.Objective {
		t.Fatalf("last incumbent objective = %d, final = %d", last, sol.Objective)
	}
}

func TestTimeLimitFeasible(t *testing.T) {
	// An easy first incumbent inside a search space far too large to
	// exhaust: the budget expires with an unproven incumbent.
	m := NewModel()
	const n = 34
	all := NewLinearExpr()
	obj := NewLinearExpr()
	for i := 0; i < n; i++ {
		v := m.NewBoolVar("v")
		all.Add(v)
		obj.Add(v)
	}
	m.AddEquality(all, n/2)
	m.Maximize(obj)

	sol := solve(t, m, Options{TimeLimit: 50 * time.Millisecond})
	if sol.Status != StatusFeasible {
		t.Fatalf("status = %s, want FEASIBLE", sol.Status)
	}
	if sol.Objective != n/2 {
		t.Fatalf("objective = %d, want %d", sol.Objective, n/2)
	}
}

func TestTimeLimitUnknown(t *testing.T) {
	// Enough variables that no leaf is reached before the first budget
	// check trips an already-expired deadline.
	m := NewModel()
	for i := 0; i < 3000; i++ {
		m.NewBoolVar("v")
	}
	sol := solve(t, m, Options{TimeLimit: time.Nanosecond})
	if sol.Status != StatusUnknown {
		t.Fatalf("status = %s, want UNKNOWN", sol.Status)
	}
	if sol.HasValues() {
		t.Fatal("unknown status should carry no valuation")
	}
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewModel()
	for i := 0; i < 3000; i++ {
		m.NewBoolVar("v")
	}
	sol := NewEngine().Solve(ctx, m, Options{TimeLimit: time.Minute})
	if sol.Status != StatusUnknown {
		t.Fatalf("status = %s, want UNKNOWN", sol.Status)
	}
}
