package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/dualec-backdoor/pkg/dualec"
)

func newRecoverCmd(opts *rootOptions) *cobra.Command {
	var (
		capture     string
		format      string
		field       string
		raw         bool
		stopAtFirst bool
		predict     int
	)
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Recover the generator state from captured outputs using the trapdoor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if capture == "" {
				return fmt.Errorf("--capture is required")
			}
			exp, err := opts.load(cmd)
			if err != nil {
				return err
			}

			// Set up parser based on format
			var parser dualec.OutputParser
			switch format {
			case "json":
				parser = &dualec.JSONParser{Field: field}
			case "csv":
				parser = &dualec.CSVParser{Column: field}
			default:
				return fmt.Errorf("unknown format %q (json or csv)", format)
			}
			outputs, err := parser.ParseOutputs(capture)
			if err != nil {
				return err
			}

			client, err := dualec.NewClient(exp.cfg, exp.key)
			if err != nil {
				return err
			}
			client = client.
				WithParser(parser).
				WithLogger(opts.logger).
				WithStrategy(opts.strategy(exp, raw, stopAtFirst))

			result, err := client.RecoverFromOutputs(cmd.Context(), outputs)
			if err != nil {
				return err
			}
			printResult(result, len(outputs))

			if predict > 0 && !result.Exhausted() {
				seed := result.Seeds[0]
				if len(result.Confirmed) > 0 {
					seed = result.Confirmed[0]
				}
				// seed is the state after outputs[0]; skip what was captured.
				all, err := dualec.Predict(exp.cfg, seed, len(outputs)-1+predict)
				if err != nil {
					return err
				}
				fmt.Printf("\n[+] Next %d outputs:\n", predict)
				for _, v := range all[len(outputs)-1:] {
					fmt.Printf("    %s\n", v)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&capture, "capture", "", "Path to captured outputs (JSON or CSV)")
	cmd.Flags().StringVar(&format, "format", "json", "Capture file format (json or csv)")
	cmd.Flags().StringVar(&field, "field", "", "JSON field or CSV column holding outputs (default \"output\")")
	cmd.Flags().BoolVar(&raw, "raw", false, "List every lifted candidate without checking the second output")
	cmd.Flags().BoolVar(&stopAtFirst, "stop-at-first", false, "Stop at the first accepted seed")
	cmd.Flags().IntVar(&predict, "predict", 0, "Predict this many outputs past the capture")
	return cmd
}

func printResult(result *dualec.RecoveryResult, captured int) {
	fmt.Printf("[+] %s swept %d prefixes", result.Strategy, result.Enumerated)
	if result.DegenerateEnumerated > 0 {
		fmt.Printf(" (+%d low values for a zero output)", result.DegenerateEnumerated)
	}
	fmt.Printf(", %d residues, %s\n", result.Residues, result.Elapsed)

	if result.Exhausted() {
		fmt.Println("[-] No candidate state found")
		return
	}
	fmt.Printf("[+] %d candidate state(s) after the first output:\n", len(result.Seeds))
	for _, s := range result.Seeds {
		fmt.Printf("    %s\n", s)
	}
	if captured > 2 {
		fmt.Printf("[+] %d confirmed against %d extra output(s)\n", len(result.Confirmed), captured-2)
		for _, s := range result.Confirmed {
			fmt.Printf("    ✓ %s\n", s)
		}
	}
}
