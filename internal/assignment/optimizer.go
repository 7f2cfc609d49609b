package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/fll-tools/roster-optimizer/internal/logging"
	"github.com/fll-tools/roster-optimizer/internal/metrics"
	"github.com/fll-tools/roster-optimizer/pkg/config"
	"github.com/fll-tools/roster-optimizer/pkg/core"
	"github.com/fll-tools/roster-optimizer/pkg/solver"
)

// Optimizer runs one team-assignment solve over a fixed roster and
// configuration. It owns the model build; the search itself is delegated to
// the solver engine under the configured time budget.
type Optimizer struct {
	roster     *core.Roster
	cfg        config.OptimizationConfig
	engine     solver.Engine
	metrics    *metrics.Metrics
	totalTeams int
}

// Option customizes an Optimizer.
type Option func(*Optimizer)

// WithEngine substitutes the solver engine, mainly for tests.
func WithEngine(e solver.Engine) Option {
	return func(o *Optimizer) { o.engine = e }
}

// WithMetrics attaches solve instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Optimizer) { o.metrics = m }
}

// New validates the configuration against the roster and prepares an
// optimizer. Inconsistent bounds fail here, before any variable exists; a
// requested team count below the mode minimum is clamped, not rejected.
func New(roster *core.Roster, cfg config.OptimizationConfig, opts ...Option) (*Optimizer, error) {
	if err := cfg.ValidateForRoster(roster); err != nil {
		return nil, err
	}
	o := &Optimizer{
		roster:     roster,
		cfg:        cfg,
		engine:     solver.NewEngine(),
		totalTeams: cfg.EffectiveTotalTeams(roster),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// TotalTeams returns the resolved team count, after derivation and clamping.
func (o *Optimizer) TotalTeams() int {
	return o.totalTeams
}

// Optimize builds the model, solves it, and extracts the result. Statuses
// without an assignment (infeasible, invalid, unknown) come back as a Result
// carrying only the status; they are not errors and nothing is retried. The
// only error conditions are configuration-independent defects surfaced as
// *IntegrityError.
func (o *Optimizer) Optimize(ctx context.Context) (*core.Result, error) {
	log := logging.FromContext(ctx)

	m := solver.NewModel()
	v := declareVariables(m, o.roster.Len(), o.totalTeams)
	addAllConstraints(m, v, o.roster, &o.cfg)
	buildObjective(m, v, o.roster, &o.cfg)

	log.Info("model built",
		"students", o.roster.Len(),
		"teams", o.totalTeams,
		"mode", o.cfg.Mode.String(),
		"variables", m.NumVars(),
		"constraints", m.NumConstraints())

	start := time.Now()
	sol := o.engine.Solve(ctx, m, solver.Options{
		TimeLimit: o.cfg.SolveTimeout,
		Observer:  o.progressObserver(log, start),
	})
	elapsed := time.Since(start)
	o.metrics.ObserveSolve(sol.Status.String(), elapsed, sol.Objective)
	log.Info("solve finished",
		"status", sol.Status.String(),
		"objective", sol.Objective,
		"elapsed", elapsed.Round(time.Millisecond).String())

	if sol.Status == solver.StatusModelInvalid {
		log.Info("solver rejected the model", "problems", fmt.Sprintf("%v", sol.Problems))
	}
	if !sol.HasValues() {
		return &core.Result{Status: sol.Status}, nil
	}

	assignments, err := extractAssignments(sol, v, o.roster)
	if err != nil {
		return nil, err
	}
	return &core.Result{
		Assignments: assignments,
		Objective:   sol.Objective,
		Status:      sol.Status,
	}, nil
}
