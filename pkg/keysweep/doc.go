// Package keysweep searches a bounded secp256k1 keyspace for private keys
// whose derived P2PKH address matches a target address or address prefix.
//
// Two engines are provided. The guided search walks the binary bisection
// tree of a key range depth-first, pruned by an index of path prefixes built
// from seed keys. The parallel scanner covers a range exhaustively in
// batches split across a worker pool, filters candidates with a cheap
// hex-run heuristic before deriving addresses, and checkpoints a cursor at
// batch boundaries so long scans survive interruption.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/keysweep/pkg/keysweep"
//
//	client := keysweep.NewClient()
//
//	cfg := keysweep.DefaultScanConfig()
//	cfg.Range = keysweep.KeyRange{Start: big.NewInt(0x10), End: big.NewInt(0x1F)}
//	cfg.Target = "1FRoHA9xewq7DjrZ1psWJVeTer8gHRqEvR"
//	cfg.CheckpointPath = "scan.checkpoint"
//	cfg.ResultsPath = "matches.csv"
//
//	report, err := client.Scan(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range report.Matches {
//	    fmt.Printf("%s -> %s\n", m.Hex, m.Address)
//	}
//
// # Guided search
//
//	cfg := keysweep.DefaultGuidedConfig()
//	cfg.Range = keysweep.KeyRange{Start: start, End: end}
//	cfg.Target = target
//	cfg.Seeds = seeds // known keys the pruning index is built from
//
//	match, err := client.FindKey(ctx, cfg)
//
// # Custom derivation
//
// Both engines call a Deriver to map a key to its address. Implement the
// interface to substitute the derivation pipeline (e.g. for testing):
//
//	type fixedDeriver map[string]string
//
//	func (d fixedDeriver) Derive(key *big.Int) (string, error) {
//	    return d[key.String()], nil
//	}
//
//	client := keysweep.NewClient().WithDeriver(fixedDeriver{...})
package keysweep
