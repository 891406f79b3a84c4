package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/dualec-backdoor/pkg/dualec"
)

func newSweepCmd(opts *rootOptions) *cobra.Command {
	var (
		minBits uint
		maxBits uint
		format  string
		raw     bool
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Measure recovery cost for each truncation width",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "csv" {
				return fmt.Errorf("unknown format %q (json or csv)", format)
			}
			exp, err := opts.load(cmd)
			if err != nil {
				return err
			}
			gen, err := exp.generator()
			if err != nil {
				return err
			}

			report, err := dualec.Sweep(cmd.Context(), dualec.SweepConfig{
				Base:     exp.cfg,
				Key:      exp.key,
				Seed:     gen.Seed(),
				MinBits:  minBits,
				MaxBits:  maxBits,
				Strategy: opts.strategy(exp, raw, false),
				Logger:   opts.logger,
			})
			if err != nil {
				return err
			}

			if format == "csv" {
				return report.WriteCSV(os.Stdout)
			}
			return report.WriteJSON(os.Stdout)
		},
	}
	cmd.Flags().UintVar(&minBits, "min-bits", 0, "Smallest truncation width")
	cmd.Flags().UintVar(&maxBits, "max-bits", 16, "Largest truncation width")
	cmd.Flags().StringVar(&format, "format", "json", "Report format (json or csv)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Count raw candidates instead of verified seeds")
	return cmd
}
