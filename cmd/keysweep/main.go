package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/keysweep/pkg/keysweep"
)

func main() {
	app := &cli.App{
		Name:  "keysweep",
		Usage: "search a secp256k1 keyspace for keys matching a target address",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			scanCommand(),
			guidedCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "exhaustively scan a key range with a resumable worker pool",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "start of the key range (hex)", Required: true},
			&cli.StringFlag{Name: "end", Usage: "end of the key range, inclusive (hex)", Required: true},
			&cli.StringFlag{Name: "target", Usage: "target address, or address prefix with --prefix", Required: true},
			&cli.BoolFlag{Name: "prefix", Usage: "match on address prefix instead of exact address"},
			&cli.Uint64Flag{Name: "batch-size", Usage: "keys per batch between checkpoint writes", Value: 10000},
			&cli.IntFlag{Name: "workers", Usage: "worker pool size (0 = one per CPU core)"},
			&cli.IntFlag{Name: "max-results", Usage: "stop after this many matches (0 = unlimited)"},
			&cli.StringFlag{Name: "checkpoint", Usage: "cursor file for resume", Value: "keysweep.checkpoint"},
			&cli.StringFlag{Name: "out", Usage: "append-only match record file", Value: "matches.csv"},
		},
		Action: runScan,
	}
}

func runScan(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	start, err := parseHexKey(c.String("start"))
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	end, err := parseHexKey(c.String("end"))
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}

	cfg := keysweep.DefaultScanConfig()
	cfg.Range = keysweep.KeyRange{Start: start, End: end}
	cfg.Target = c.String("target")
	cfg.MatchPrefix = c.Bool("prefix")
	cfg.BatchSize = c.Uint64("batch-size")
	cfg.Workers = c.Int("workers")
	cfg.MaxResults = c.Int("max-results")
	cfg.CheckpointPath = c.String("checkpoint")
	cfg.ResultsPath = c.String("out")

	bar := newScanBar(cfg.Range.Count())
	client := keysweep.NewClient().
		WithLogger(newLogger(c.Bool("verbose"))).
		WithProgress(func(processed *big.Int, found int, _ time.Duration) {
			if processed.IsInt64() {
				_ = bar.Set64(processed.Int64())
			}
		})

	report, err := client.Scan(ctx, cfg)
	_ = bar.Finish()
	fmt.Println()

	if err != nil {
		if errors.Is(err, context.Canceled) && report != nil {
			fmt.Printf("Interrupted; checkpoint holds %s processed keys, rerun to resume\n", report.Processed)
			return nil
		}
		return err
	}

	if len(report.Matches) == 0 {
		fmt.Println("No matching addresses found.")
		return nil
	}

	green := color.New(color.FgGreen)
	for _, m := range report.Matches {
		green.Printf("✓ %s\n", m.Address)
		fmt.Printf("  private key: %s\n", m.Hex)
	}
	fmt.Printf("\nScan complete. Found %d match(es), checked %s keys in %s.\n",
		len(report.Matches), report.Processed, report.Elapsed.Round(time.Millisecond))
	if report.ChunkErrors > 0 {
		fmt.Printf("Warning: %d worker chunk(s) failed and were not fully scanned.\n", report.ChunkErrors)
	}
	return nil
}

func guidedCommand() *cli.Command {
	return &cli.Command{
		Name:  "guided",
		Usage: "prefix-guided depth-first search of the bisection tree",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "start of the key range (hex)", Required: true},
			&cli.StringFlag{Name: "end", Usage: "end of the key range, inclusive (hex)", Required: true},
			&cli.StringFlag{Name: "target", Usage: "exact target address", Required: true},
			&cli.StringFlag{Name: "seeds", Usage: "file of known keys, one decimal per line", Required: true},
			&cli.IntFlag{Name: "max-depth", Usage: "maximum search depth", Value: 31},
			&cli.IntFlag{Name: "bit-width", Usage: "path bit width for seed keys", Value: 32},
			&cli.IntFlag{Name: "max-prefix-len", Usage: "maximum pruning prefix length", Value: 10},
		},
		Action: runGuided,
	}
}

func runGuided(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	start, err := parseHexKey(c.String("start"))
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	end, err := parseHexKey(c.String("end"))
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}

	cfg := keysweep.GuidedConfig{
		Range:        keysweep.KeyRange{Start: start, End: end},
		Target:       c.String("target"),
		MaxDepth:     c.Int("max-depth"),
		BitWidth:     c.Int("bit-width"),
		MaxPrefixLen: c.Int("max-prefix-len"),
	}

	client := keysweep.NewClient().WithLogger(newLogger(c.Bool("verbose")))

	match, err := client.FindKeyFromSeedFile(ctx, cfg, c.String("seeds"))
	if err != nil {
		if errors.Is(err, keysweep.ErrNotFound) {
			fmt.Println("No matching key found within depth and prefix constraints.")
			return nil
		}
		return err
	}

	color.New(color.FgGreen).Println("=== MATCH FOUND ===")
	fmt.Printf("Private key (hex): %s\n", match.Hex)
	fmt.Printf("Address: %s\n", match.Address)
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return keysweep.NewTextLogger(level)
}

func newScanBar(total *big.Int) *progressbar.ProgressBar {
	max := int64(-1) // spinner for ranges wider than int64
	if total.IsInt64() {
		max = total.Int64()
	}
	return progressbar.NewOptions64(max,
		progressbar.OptionSetDescription("Scanning keys"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
	)
}

func parseHexKey(s string) (*big.Int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	key, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("%q is not a hex integer", s)
	}
	return key, nil
}
