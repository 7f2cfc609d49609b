package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fll-tools/roster-optimizer/internal/loader"
)

func newAnonymizeCmd() *cobra.Command {
	var inPath, outPath string
	cmd := &cobra.Command{
		Use:   "anonymize",
		Short: "Strip a raw student CSV down to the required columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loader.AnonymizeFile(inPath, outPath); err != nil {
				return err
			}
			fmt.Printf("Anonymized data saved to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "raw input CSV (required)")
	cmd.Flags().StringVar(&outPath, "out", "anonymized_student_data.csv", "anonymized output CSV")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
