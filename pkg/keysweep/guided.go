package keysweep

import (
	"context"
	"fmt"
	"log/slog"
)

// GuidedSearch explores the bisection tree of a key range depth-first,
// pruned by a prefix index built from seed keys. It terminates on the first
// node whose derived address equals the target, exploring Left before Right,
// so reruns with identical inputs visit the same nodes in the same order and
// return the same result.
//
// The search is purely sequential and keeps no shared mutable state, so a
// single instance may be reused across invocations.
type GuidedSearch struct {
	cfg      GuidedConfig
	prefixes *PrefixSet
	deriver  Deriver
	logger   *slog.Logger
}

// NewGuidedSearch validates the configuration and builds the pruning index
// from the configured seeds.
func NewGuidedSearch(cfg GuidedConfig) (*GuidedSearch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid guided config: %w", err)
	}
	return &GuidedSearch{
		cfg:      cfg,
		prefixes: BuildPrefixSet(cfg.Seeds, cfg.MaxPrefixLen, cfg.BitWidth),
		deriver:  AddressDeriver{},
		logger:   NoopLogger(),
	}, nil
}

// WithDeriver sets a custom derivation oracle.
func (g *GuidedSearch) WithDeriver(d Deriver) *GuidedSearch {
	g.deriver = d
	return g
}

// WithLogger sets the logger used for search progress.
func (g *GuidedSearch) WithLogger(logger *slog.Logger) *GuidedSearch {
	g.logger = logger
	return g
}

// Search runs the guided search and returns the first match, or nil when the
// tree was exhausted (or ctx cancelled) without one.
func (g *GuidedSearch) Search(ctx context.Context) *Match {
	g.logger.Info("starting guided search",
		"target", g.cfg.Target,
		"max_depth", g.cfg.MaxDepth,
		"prefixes", g.prefixes.Len(),
	)

	path := make(Path, 0, g.cfg.MaxDepth+1)
	match := g.search(ctx, path, 0)

	if match != nil {
		g.logger.Info("match found", "key", match.Hex, "address", match.Address)
	}
	return match
}

func (g *GuidedSearch) search(ctx context.Context, path Path, depth int) *Match {
	if depth > g.cfg.MaxDepth {
		return nil
	}
	if !g.prefixes.Allows(path) {
		return nil
	}

	select {
	case <-ctx.Done():
		return nil
	default:
	}

	key := PathToKey(path, g.cfg.Range)

	// A derivation failure only skips this node; its children may still
	// hold valid keys.
	addr, err := g.deriver.Derive(key)
	if err == nil && addr == g.cfg.Target {
		return &Match{Key: key, Hex: HexKey(key), Address: addr}
	}

	if match := g.search(ctx, append(path, Left), depth+1); match != nil {
		return match
	}
	return g.search(ctx, append(path, Right), depth+1)
}
