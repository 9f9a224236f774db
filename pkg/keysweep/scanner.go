package keysweep

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called after every completed batch with the number of keys
// covered so far, the matches collected, and the elapsed time. Progress is
// reported at batch granularity only, to keep overhead off the hot loop.
type ProgressFunc func(processed *big.Int, found int, elapsed time.Duration)

// ScanReport summarizes a finished (or stopped) scan.
type ScanReport struct {
	// Matches holds all collected matches in batch/chunk order.
	Matches []Match

	// Processed is the cursor after the last accounted batch: the count of
	// keys covered relative to the start of the range.
	Processed *big.Int

	// ChunkErrors counts worker chunks that failed and were therefore not
	// fully scanned. Their keys are not re-queued within the run.
	ChunkErrors int

	// Elapsed is the total wall time of the run.
	Elapsed time.Duration
}

// Scanner exhaustively covers a key range in fixed-size batches. Each batch
// is split into contiguous per-worker chunks (the last chunk absorbs the
// remainder, so every key is covered exactly once), and every worker applies
// the run-length filter before paying for address derivation.
//
// Workers share only immutable inputs and each owns its local match list;
// the controller alone touches the result file and the checkpoint, which it
// advances only after a batch is fully accounted for.
type Scanner struct {
	cfg        ScanConfig
	workers    int
	deriver    Deriver
	logger     *slog.Logger
	checkpoint CheckpointStore
	progress   ProgressFunc
}

// NewScanner validates the configuration and prepares a scanner. When the
// config names a checkpoint file, the scan resumes from the cursor stored
// there; otherwise progress is kept in memory only.
func NewScanner(cfg ScanConfig) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan config: %w", err)
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	var store CheckpointStore
	if cfg.CheckpointPath != "" {
		store = NewFileCheckpoint(cfg.CheckpointPath)
	} else {
		store = &memoryCheckpoint{}
	}

	return &Scanner{
		cfg:        cfg,
		workers:    workers,
		deriver:    AddressDeriver{},
		logger:     NoopLogger(),
		checkpoint: store,
	}, nil
}

// WithDeriver sets a custom derivation oracle.
func (s *Scanner) WithDeriver(d Deriver) *Scanner {
	s.deriver = d
	return s
}

// WithLogger sets the logger used for batch progress and worker errors.
func (s *Scanner) WithLogger(logger *slog.Logger) *Scanner {
	s.logger = logger
	return s
}

// WithCheckpoint replaces the checkpoint store chosen by NewScanner.
func (s *Scanner) WithCheckpoint(store CheckpointStore) *Scanner {
	s.checkpoint = store
	return s
}

// WithProgress sets the per-batch progress callback.
func (s *Scanner) WithProgress(fn ProgressFunc) *Scanner {
	s.progress = fn
	return s
}

// chunk is the immutable task descriptor a worker captures: a half-open
// sub-range [start, end) of one batch.
type chunk struct {
	start *big.Int
	end   *big.Int
}

type chunkResult struct {
	matches []Match
	err     error
}

// Run executes the scan until the range is exhausted, an exact-mode match is
// found, MaxResults is reached, or ctx is cancelled. Cancellation returns
// ctx's error together with the report so far; the checkpoint then still
// holds the last fully accounted batch and the scan can be resumed.
func (s *Scanner) Run(ctx context.Context) (*ScanReport, error) {
	cursor, err := s.checkpoint.Load()
	if err != nil {
		return nil, err
	}

	total := s.cfg.Range.Count()
	if cursor.Cmp(total) > 0 {
		return nil, fmt.Errorf("checkpoint cursor %s exceeds range size %s", cursor, total)
	}

	var writer *MatchWriter
	if s.cfg.ResultsPath != "" {
		writer, err = OpenMatchWriter(s.cfg.ResultsPath)
		if err != nil {
			return nil, err
		}
		defer writer.Close()
	}

	s.logger.Info("starting scan",
		"start", s.cfg.Range.Start.Text(16),
		"end", s.cfg.Range.End.Text(16),
		"target", s.cfg.Target,
		"prefix_mode", s.cfg.MatchPrefix,
		"resume_from", cursor.String(),
		"workers", s.workers,
	)

	report := &ScanReport{Processed: new(big.Int).Set(cursor)}
	began := time.Now()
	batchSize := new(big.Int).SetUint64(s.cfg.BatchSize)

	for cursor.Cmp(total) < 0 {
		width := new(big.Int).Sub(total, cursor)
		if width.Cmp(batchSize) > 0 {
			width.Set(batchSize)
		}
		batchStart := new(big.Int).Add(s.cfg.Range.Start, cursor)
		batchEnd := new(big.Int).Add(batchStart, width)

		results := s.runBatch(ctx, splitChunks(batchStart, batchEnd, s.workers))

		if ctx.Err() != nil {
			// The interrupted batch is not accounted; resume replays it.
			report.Elapsed = time.Since(began)
			return report, ctx.Err()
		}

		stop := false
		for _, res := range results {
			if res.err != nil {
				report.ChunkErrors++
				s.logger.Error("worker chunk failed", "error", res.err)
				continue
			}
			for _, m := range res.matches {
				if writer != nil {
					if err := writer.Append(m); err != nil {
						report.Elapsed = time.Since(began)
						return report, err
					}
				}
				report.Matches = append(report.Matches, m)

				if !s.cfg.MatchPrefix && m.Address == s.cfg.Target {
					stop = true
				}
				if s.cfg.MaxResults > 0 && len(report.Matches) >= s.cfg.MaxResults {
					stop = true
				}
			}
		}

		// Matches are on disk; now the batch may be accounted for.
		cursor.Add(cursor, width)
		if err := s.checkpoint.Save(cursor); err != nil {
			report.Elapsed = time.Since(began)
			return report, fmt.Errorf("failed to persist scan cursor: %w", err)
		}
		report.Processed.Set(cursor)

		elapsed := time.Since(began)
		s.logger.Info("batch complete",
			"processed", cursor.String(),
			"found", len(report.Matches),
			"elapsed", elapsed.Round(time.Millisecond),
		)
		if s.progress != nil {
			s.progress(new(big.Int).Set(cursor), len(report.Matches), elapsed)
		}

		if stop {
			break
		}
	}

	report.Elapsed = time.Since(began)
	return report, nil
}

// runBatch fans one batch out over the worker pool and waits for every
// chunk. Worker failures are isolated to their chunk result; they never
// cancel siblings or the controller.
func (s *Scanner) runBatch(ctx context.Context, chunks []chunk) []chunkResult {
	results := make([]chunkResult, len(chunks))

	g := new(errgroup.Group)
	for i := range chunks {
		i := i
		g.Go(func() error {
			results[i] = s.scanChunk(ctx, chunks[i])
			return nil
		})
	}
	// Workers always return nil; failures land in their result slot.
	_ = g.Wait()

	return results
}

// scanChunk checks every key of one chunk in increasing order. It
// short-circuits its own chunk as soon as it finds an exact-mode match; it
// does not know about matches found by sibling chunks.
func (s *Scanner) scanChunk(ctx context.Context, ch chunk) (res chunkResult) {
	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("worker panic: %v", r)
		}
	}()

	key := new(big.Int).Set(ch.start)
	for i := 0; key.Cmp(ch.end) < 0; i++ {
		if i&0xff == 0 {
			select {
			case <-ctx.Done():
				res.err = ctx.Err()
				return res
			default:
			}
		}

		hexKey := HexKey(key)
		if IsValidKey(strings.TrimLeft(hexKey, "0")) {
			addr, err := s.deriver.Derive(key)
			if err == nil && s.matches(addr) {
				res.matches = append(res.matches, Match{
					Key:     new(big.Int).Set(key),
					Hex:     hexKey,
					Address: addr,
				})
				if !s.cfg.MatchPrefix {
					return res
				}
			}
			// Out-of-range scalars and other per-candidate derivation
			// failures are skipped, never fatal.
		}

		key.Add(key, one)
	}
	return res
}

func (s *Scanner) matches(addr string) bool {
	if s.cfg.MatchPrefix {
		return strings.HasPrefix(addr, s.cfg.Target)
	}
	return addr == s.cfg.Target
}

// splitChunks divides the half-open batch [start, end) into at most n
// contiguous equal-width chunks. The final chunk absorbs the division
// remainder, so the chunks cover the batch exactly once with no gaps or
// overlaps. Batches smaller than n produce one single-key chunk per key.
func splitChunks(start, end *big.Int, n int) []chunk {
	count := new(big.Int).Sub(end, start)
	if count.IsUint64() && count.Uint64() < uint64(n) {
		n = int(count.Uint64())
	}
	if n < 1 {
		n = 1
	}

	width := new(big.Int).Div(count, big.NewInt(int64(n)))

	chunks := make([]chunk, n)
	chunkStart := new(big.Int).Set(start)
	for i := 0; i < n; i++ {
		chunkEnd := new(big.Int).Add(chunkStart, width)
		if i == n-1 {
			chunkEnd.Set(end)
		}
		chunks[i] = chunk{start: new(big.Int).Set(chunkStart), end: chunkEnd}
		chunkStart.Set(chunkEnd)
	}
	return chunks
}
