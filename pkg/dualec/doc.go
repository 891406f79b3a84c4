// Package dualec implements a Dual-EC style pseudorandom generator over a
// short Weierstrass curve together with the trapdoor attack that recovers
// its internal state.
//
// The generator keeps a seed s and two points P and Q. Each output is
//
//	r   = x(s*P)
//	s   = x(r*P)
//	out = truncate(x(r*Q))
//
// where truncate drops the n high bits of an l-bit value. Whoever chose Q
// as d*P knows e = d^-1 and can turn one output back into the next seed:
// lifting any x with the right low bits to a point A gives e*A = r*P,
// whose x coordinate is the state. The 2^n possible high-bit prefixes are
// swept in parallel and a second output filters the candidates.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/dualec-backdoor/pkg/dualec"
//
//	preset := ec.Demo1e9()
//	cfg, key, err := dualec.NewBackdooredConfig(preset.Curve, preset.Base,
//	    big.NewInt(ec.DemoTrapdoorD), preset.Order, 16, 32)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gen, _ := dualec.NewGenerator(cfg, big.NewInt(0x42))
//	out0, _ := gen.Generate()
//	out1, _ := gen.Generate()
//
//	client, _ := dualec.NewClient(cfg, key)
//	result, err := client.RecoverFromOutputs(ctx, []*big.Int{out0, out1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("candidate seeds: %v\n", result.Seeds)
//
// # Customization
//
// You can customize the search strategy:
//
//	strategy := dualec.NewVerifiedSearch().
//	    WithSearchConfig(dualec.SearchConfig{
//	        NumWorkers:  16,
//	        StopAtFirst: true,
//	    }).
//	    WithLogger(logger)
//
//	client = client.WithStrategy(strategy)
//
// RawCandidateSearch skips the second-output check and returns every
// lifted candidate, which is useful for counting how many states a single
// output leaves open.
//
// # Custom Strategies
//
// Implement the Strategy interface to create custom searches:
//
//	type MyStrategy struct{}
//
//	func (s *MyStrategy) Recover(ctx context.Context, cfg *dualec.Config, key *dualec.TrapdoorKey, obs dualec.Observation) (*dualec.RecoveryResult, error) {
//	    // Your custom search logic
//	}
//
//	func (s *MyStrategy) Name() string {
//	    return "MyCustomStrategy"
//	}
//
//	client = client.WithStrategy(&MyStrategy{})
package dualec
