package assignment

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/fll-tools/roster-optimizer/pkg/solver"
)

// progressObserver logs every improved incumbent the engine finds. It runs
// synchronously on the solver's thread of control, so it only logs and
// counts; it never touches the model or blocks.
func (o *Optimizer) progressObserver(log logr.Logger, start time.Time) solver.Observer {
	count := 0
	return func(incumbent solver.Solution) {
		count++
		o.metrics.ObserveIncumbent()
		log.V(1).Info("incumbent found",
			"solution", count,
			"objective", incumbent.Objective,
			"elapsed", time.Since(start).Round(time.Millisecond).String())
	}
}
