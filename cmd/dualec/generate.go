package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		count int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Emit truncated outputs from the backdoored generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			exp, err := opts.load(cmd)
			if err != nil {
				return err
			}
			gen, err := exp.generator()
			if err != nil {
				return err
			}
			opts.logger.Info("generator ready", zap.String("seed", gen.Seed().String()))

			entries := make([]map[string]string, 0, count)
			for i := 0; i < count; i++ {
				v, err := gen.Generate()
				if err != nil {
					return fmt.Errorf("output %d: %w", i, err)
				}
				if i == 0 {
					opts.logger.Debug("state after first output", zap.String("seed", gen.Seed().String()))
				}
				entries = append(entries, map[string]string{"output": v.String()})
				if out == "" {
					fmt.Println(v.String())
				}
			}

			if out == "" {
				return nil
			}
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write capture: %w", err)
			}
			fmt.Printf("[+] Wrote %d outputs to %s\n", count, out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 2, "Number of outputs to emit")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write a JSON capture file instead of printing")
	return cmd
}
