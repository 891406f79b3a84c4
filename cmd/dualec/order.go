package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/dualec-backdoor/pkg/ec"
)

func newOrderCmd(opts *rootOptions) *cobra.Command {
	var (
		limit uint64
		dlog  bool
	)
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Show curve order, base point order and the cost of recovering d without the trapdoor",
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := opts.load(cmd)
			if err != nil {
				return err
			}
			c := exp.cfg.Curve()
			fmt.Printf("Curve: %s\n", c.Name())
			fmt.Printf("    p = %s\n", c.P())
			fmt.Printf("    P = %s\n", exp.cfg.P())
			fmt.Printf("    Q = %s\n", exp.cfg.Q())
			fmt.Printf("    trapdoor order = %s\n", exp.key.Order())

			n, err := ec.CountPoints(c)
			switch {
			case errors.Is(err, ec.ErrTooLarge):
				fmt.Println("    #E = (too large to enumerate)")
			case err != nil:
				return err
			default:
				fmt.Printf("    #E = %s\n", n)
			}

			ord, err := ec.PointOrder(c, exp.cfg.P(), limit)
			switch {
			case errors.Is(err, ec.ErrTooLarge):
				fmt.Printf("    ord(P) > %d\n", limit)
			case err != nil:
				return err
			default:
				fmt.Printf("    ord(P) = %s\n", ord)
			}

			if !dlog {
				return nil
			}
			start := time.Now()
			d, err := ec.DiscreteLog(c, exp.cfg.P(), exp.cfg.Q(), limit)
			if err != nil {
				fmt.Printf("[-] No discrete log within %d steps: %v (%s)\n", limit, err, time.Since(start))
				return nil
			}
			fmt.Printf("[+] Recovered d = %s by brute force in %s\n", d, time.Since(start))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&limit, "limit", 1<<20, "Step limit for order and discrete log searches")
	cmd.Flags().BoolVar(&dlog, "dlog", false, "Brute-force d from P and Q")
	return cmd
}
