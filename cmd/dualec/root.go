package main

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/dualec-backdoor/internal/config"
	"github.com/mahdiidarabi/dualec-backdoor/internal/metrics"
	"github.com/mahdiidarabi/dualec-backdoor/pkg/dualec"
)

type rootOptions struct {
	configFile  string
	verbose     bool
	metricsAddr string

	logger    *zap.Logger
	collector *metrics.Collector
	server    *http.Server
}

// experiment holds a validated configuration for one command run.
type experiment struct {
	raw  *config.Experiment
	cfg  *dualec.Config
	key  *dualec.TrapdoorKey
	seed *big.Int // nil = random
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "dualec",
		Short:         "Backdoored Dual-EC generator and trapdoor state recovery",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.teardown()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Experiment config file (yaml, json or toml)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	pf.String("curve", "demo1e9", "Curve preset (toy103, demo1e9, p256, secp256k1)")
	pf.String("p", "", "Explicit field modulus, overrides --curve")
	pf.String("a", "", "Explicit coefficient a")
	pf.String("b", "", "Explicit coefficient b")
	pf.String("base-x", "", "x coordinate of the base point P")
	pf.String("d", "", "Trapdoor scalar d, Q = d*P")
	pf.String("order", "", "Order of P used to invert d")
	pf.String("seed", "", "Initial seed (decimal or 0x hex, empty = config or random)")
	pf.Uint("truncation-bits", 16, "Number of high bits dropped from each output")
	pf.Uint("output-bits", 32, "Output width l before truncation")
	pf.Int("workers", 0, "Number of parallel workers (0 = auto-detect based on CPU cores)")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newRecoverCmd(opts),
		newSweepCmd(opts),
		newOrderCmd(opts),
	)
	return cmd
}

func (o *rootOptions) setup() error {
	var err error
	if o.verbose {
		o.logger, err = zap.NewDevelopment()
	} else {
		o.logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	if o.collector, err = metrics.NewCollector(reg); err != nil {
		return err
	}
	if o.metricsAddr != "" {
		o.server = &http.Server{
			Addr:              o.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := o.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				o.logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
		o.logger.Info("serving metrics", zap.String("addr", o.metricsAddr))
	}
	return nil
}

func (o *rootOptions) teardown() error {
	if o.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.server.Shutdown(ctx)
	}
	if o.logger != nil {
		_ = o.logger.Sync()
	}
	return nil
}

// load resolves the experiment from the config file, environment and the
// command's flags, failing before any output is produced.
func (o *rootOptions) load(cmd *cobra.Command) (*experiment, error) {
	raw, err := config.Load(o.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	cfg, key, seed, err := raw.Build()
	if err != nil {
		return nil, err
	}
	o.logger.Debug("experiment loaded",
		zap.String("curve", cfg.Curve().Name()),
		zap.Uint("truncation_bits", cfg.TruncationBits()),
		zap.Uint("output_bits", cfg.OutputBits()),
		zap.String("q", cfg.Q().String()))
	return &experiment{raw: raw, cfg: cfg, key: key, seed: seed}, nil
}

// strategy builds the configured search, wired to the logger and metrics.
func (o *rootOptions) strategy(exp *experiment, raw, stopAtFirst bool) dualec.Strategy {
	sc := dualec.DefaultSearchConfig()
	sc.NumWorkers = exp.raw.Workers
	sc.StopAtFirst = stopAtFirst
	if raw {
		return dualec.NewRawCandidateSearch().WithSearchConfig(sc).WithLogger(o.logger).WithObserver(o.collector)
	}
	return dualec.NewVerifiedSearch().WithSearchConfig(sc).WithLogger(o.logger).WithObserver(o.collector)
}

// generator starts from the configured seed or a random one.
func (exp *experiment) generator() (*dualec.Generator, error) {
	if exp.seed == nil {
		return dualec.NewRandomGenerator(exp.cfg, nil)
	}
	return dualec.NewGenerator(exp.cfg, exp.seed)
}
