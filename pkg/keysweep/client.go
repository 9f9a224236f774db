package keysweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned when a guided search exhausts its depth and
// pruning constraints without finding the target.
var ErrNotFound = errors.New("no matching key found")

// Client provides a high-level API for both search engines.
type Client struct {
	deriver  Deriver
	logger   *slog.Logger
	progress ProgressFunc
}

// NewClient creates a new client with the production address deriver and no
// logging.
func NewClient() *Client {
	return &Client{
		deriver: AddressDeriver{},
		logger:  NoopLogger(),
	}
}

// WithDeriver sets a custom derivation oracle.
func (c *Client) WithDeriver(d Deriver) *Client {
	c.deriver = d
	return c
}

// WithLogger sets the logger passed to both engines.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

// WithProgress sets the per-batch progress callback used by Scan.
func (c *Client) WithProgress(fn ProgressFunc) *Client {
	c.progress = fn
	return c
}

// FindKey runs a prefix-guided tree search over the configured range.
//
// Args:
//   - ctx: Context for cancellation.
//   - cfg: Search range, target address, depth bound, and pruning seeds.
//
// Returns:
//   - The first match in depth-first Left-before-Right order, or
//     ErrNotFound when the pruned tree holds no match.
func (c *Client) FindKey(ctx context.Context, cfg GuidedConfig) (*Match, error) {
	search, err := NewGuidedSearch(cfg)
	if err != nil {
		return nil, err
	}

	match := search.WithDeriver(c.deriver).WithLogger(c.logger).Search(ctx)
	if match == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w within depth %d", ErrNotFound, cfg.MaxDepth)
	}
	return match, nil
}

// FindKeyFromSeedFile is FindKey with the pruning seeds loaded from a file
// of one decimal key per line.
func (c *Client) FindKeyFromSeedFile(ctx context.Context, cfg GuidedConfig, seedPath string) (*Match, error) {
	seeds, err := LoadSeeds(seedPath)
	if err != nil {
		return nil, err
	}
	cfg.Seeds = seeds
	return c.FindKey(ctx, cfg)
}

// Scan runs the parallel exhaustive scanner over the configured range,
// resuming from the configured checkpoint when one exists.
func (c *Client) Scan(ctx context.Context, cfg ScanConfig) (*ScanReport, error) {
	scanner, err := NewScanner(cfg)
	if err != nil {
		return nil, err
	}

	scanner.WithDeriver(c.deriver).WithLogger(c.logger)
	if c.progress != nil {
		scanner.WithProgress(c.progress)
	}
	return scanner.Run(ctx)
}
