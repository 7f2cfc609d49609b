// rosterctl assigns a student roster to fixed-capacity teams and functional
// roles by building a constraint model and handing it to the solver engine.
package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fll-tools/roster-optimizer/internal/logging"
)

type rootOptions struct {
	verbosity int
	devLog    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Optimize student team and role assignments",
		Long:          "rosterctl builds a constraint model over a student roster and solves it\nfor an optimal assignment of teams and functional roles.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log := logging.New(opts.verbosity, opts.devLog).WithValues("run", uuid.NewString())
			cmd.SetContext(logging.IntoContext(cmd.Context(), log))
		},
	}

	cmd.PersistentFlags().IntVarP(&opts.verbosity, "verbosity", "v", 0, "log verbosity level")
	cmd.PersistentFlags().BoolVar(&opts.devLog, "dev-log", false, "human-oriented console log encoding")

	cmd.AddCommand(newOptimizeCmd())
	cmd.AddCommand(newSweepCmd())
	cmd.AddCommand(newAnonymizeCmd())
	return cmd
}
