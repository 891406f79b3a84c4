package dualec

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// Client bundles a backdoored configuration, its trapdoor and a recovery
// strategy behind a file-oriented API.
type Client struct {
	cfg      *Config
	key      *TrapdoorKey
	strategy Strategy
	parser   OutputParser
	logger   *zap.Logger
}

// NewClient creates a client with a VerifiedSearch and a JSON parser. The
// key must satisfy e*Q == P for cfg.
func NewClient(cfg *Config, key *TrapdoorKey) (*Client, error) {
	if cfg == nil || key == nil {
		return nil, fmt.Errorf("%w: nil config or trapdoor", ErrConfiguration)
	}
	if err := key.Check(cfg); err != nil {
		return nil, err
	}
	return &Client{
		cfg:      cfg,
		key:      key,
		strategy: NewVerifiedSearch(),
		parser:   &JSONParser{},
		logger:   zap.NewNop(),
	}, nil
}

// WithStrategy sets a custom recovery strategy.
func (c *Client) WithStrategy(strategy Strategy) *Client {
	c.strategy = strategy
	return c
}

// WithParser sets a custom output parser.
func (c *Client) WithParser(parser OutputParser) *Client {
	c.parser = parser
	return c
}

// WithLogger sets the client's logger.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	c.logger = logger
	return c
}

// Config returns the client's generator configuration.
func (c *Client) Config() *Config { return c.cfg }

// RecoverFromFile parses a capture with the client's parser and recovers
// the generator state from it.
func (c *Client) RecoverFromFile(ctx context.Context, path string) (*RecoveryResult, error) {
	outputs, err := c.parser.ParseOutputs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse outputs: %w", err)
	}
	return c.RecoverFromOutputs(ctx, outputs)
}

// RecoverFromOutputs recovers the state after outputs[0] from the first
// two outputs. Any further outputs are used to confirm each candidate:
// a seed is Confirmed when it reproduces outputs[1:] exactly.
func (c *Client) RecoverFromOutputs(ctx context.Context, outputs []*big.Int) (*RecoveryResult, error) {
	if len(outputs) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughOutputs, len(outputs))
	}

	result, err := c.strategy.Recover(ctx, c.cfg, c.key, Observation{Out0: outputs[0], Out1: outputs[1]})
	if err != nil {
		return nil, err
	}
	if len(outputs) == 2 {
		return result, nil
	}

	want := outputs[1:]
	for _, seed := range result.Seeds {
		got, err := Predict(c.cfg, seed, len(want))
		if err != nil || !equalOutputs(got, want) {
			continue
		}
		result.Confirmed = append(result.Confirmed, seed)
	}
	c.logger.Info("confirmed candidates against extra outputs",
		zap.Int("candidates", len(result.Seeds)),
		zap.Int("confirmed", len(result.Confirmed)),
		zap.Int("extra_outputs", len(outputs)-2))
	return result, nil
}

func equalOutputs(a, b []*big.Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}
