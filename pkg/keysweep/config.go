package keysweep

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidRange is returned when a key range is missing a bound,
	// has End <= Start, or reaches past the curve order.
	ErrInvalidRange = errors.New("invalid key range")

	// ErrNoTarget is returned when no target address (or prefix) is set.
	ErrNoTarget = errors.New("target address is required")
)

// validateRange checks the invariants shared by both engines: both bounds
// set, End strictly greater than Start, End below the curve order.
func validateRange(r KeyRange) error {
	if r.Start == nil || r.End == nil {
		return fmt.Errorf("%w: missing bound", ErrInvalidRange)
	}
	if r.End.Cmp(r.Start) <= 0 {
		return fmt.Errorf("%w: end must be greater than start", ErrInvalidRange)
	}
	if r.End.Cmp(Secp256k1CurveOrder) >= 0 {
		return fmt.Errorf("%w: end must be less than the curve order", ErrInvalidRange)
	}
	return nil
}

// GuidedConfig configures a prefix-guided tree search.
type GuidedConfig struct {
	// Range is the inclusive key range the bisection tree spans.
	Range KeyRange

	// Target is the exact address the search terminates on.
	Target string

	// MaxDepth bounds the recursion; branches below it are abandoned.
	MaxDepth int

	// BitWidth is the path width used to convert seed keys to paths.
	BitWidth int

	// MaxPrefixLen caps the prefix lengths inserted into the pruning index.
	MaxPrefixLen int

	// Seeds are the known keys the pruning index is built from.
	Seeds []*big.Int
}

// DefaultGuidedConfig returns the search parameters for a 32-bit keyspace,
// matching the usual puzzle setup: depth 31, 10-bit pruning prefixes.
func DefaultGuidedConfig() GuidedConfig {
	return GuidedConfig{
		MaxDepth:     31,
		BitWidth:     32,
		MaxPrefixLen: 10,
	}
}

// Validate checks the configuration before any searching begins.
func (c GuidedConfig) Validate() error {
	if err := validateRange(c.Range); err != nil {
		return err
	}
	if c.Target == "" {
		return ErrNoTarget
	}
	if c.MaxDepth <= 0 {
		return errors.New("max depth must be positive")
	}
	if c.BitWidth <= 0 {
		return errors.New("bit width must be positive")
	}
	if c.MaxPrefixLen <= 0 {
		return errors.New("max prefix length must be positive")
	}
	return nil
}

// ScanConfig configures a parallel exhaustive scan.
type ScanConfig struct {
	// Range is the inclusive key range to cover.
	Range KeyRange

	// Target is the address to match: the full address in exact mode, or a
	// leading fragment when MatchPrefix is set.
	Target string

	// MatchPrefix switches from exact address matching to prefix matching.
	// A prefix scan keeps going after a match; an exact scan stops.
	MatchPrefix bool

	// BatchSize is the number of keys covered between checkpoint writes.
	BatchSize uint64

	// Workers is the worker pool size per batch (0 = one per CPU core).
	Workers int

	// MaxResults stops the scan once this many matches were collected
	// (0 = unlimited).
	MaxResults int

	// CheckpointPath is the cursor file enabling resume. Empty disables
	// checkpointing and every run starts from the beginning of the range.
	CheckpointPath string

	// ResultsPath is the append-only match record file. Empty keeps
	// matches in memory only.
	ResultsPath string
}

// DefaultScanConfig returns a configuration with the batch size used by the
// reference scans and auto-detected worker count.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		BatchSize: 10000,
		Workers:   0,
	}
}

// Validate checks the configuration before any scanning begins.
func (c ScanConfig) Validate() error {
	if err := validateRange(c.Range); err != nil {
		return err
	}
	if c.Target == "" {
		return ErrNoTarget
	}
	if c.BatchSize == 0 {
		return errors.New("batch size must be positive")
	}
	if c.Workers < 0 {
		return errors.New("worker count must not be negative")
	}
	if c.MaxResults < 0 {
		return errors.New("max results must not be negative")
	}
	return nil
}
