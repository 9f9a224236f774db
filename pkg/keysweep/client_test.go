package keysweep

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FindKey(t *testing.T) {
	client := NewClient().WithDeriver(newStubDeriver())

	match, err := client.FindKey(context.Background(), guidedTestConfig("addr-21", 21))
	require.NoError(t, err)
	assert.Equal(t, int64(21), match.Key.Int64())
	assert.Equal(t, "addr-21", match.Address)
}

func TestClient_FindKey_NotFound(t *testing.T) {
	client := NewClient().WithDeriver(newStubDeriver())

	// Seed in a different subtree: the target's branch is pruned.
	_, err := client.FindKey(context.Background(), guidedTestConfig("addr-21", 0b11000000))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClient_FindKeyFromSeedFile(t *testing.T) {
	seedPath := filepath.Join(t.TempDir(), "numbers.txt")
	require.NoError(t, os.WriteFile(seedPath, []byte("21\n"), 0o644))

	cfg := guidedTestConfig("addr-21")
	client := NewClient().WithDeriver(newStubDeriver())

	match, err := client.FindKeyFromSeedFile(context.Background(), cfg, seedPath)
	require.NoError(t, err)
	assert.Equal(t, int64(21), match.Key.Int64())
}

func TestClient_Scan(t *testing.T) {
	client := NewClient().WithDeriver(newStubDeriver())

	cfg := DefaultScanConfig()
	cfg.Range = KeyRange{Start: big.NewInt(0), End: big.NewInt(31)}
	cfg.Target = "addr-7"
	cfg.Workers = 2

	report, err := client.Scan(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, int64(7), report.Matches[0].Key.Int64())
}

func TestConfigValidation(t *testing.T) {
	valid := KeyRange{Start: big.NewInt(1), End: big.NewInt(100)}

	tests := []struct {
		name string
		cfg  ScanConfig
	}{
		{"missing bounds", ScanConfig{Target: "x", BatchSize: 1}},
		{"end before start", ScanConfig{
			Range:     KeyRange{Start: big.NewInt(100), End: big.NewInt(1)},
			Target:    "x",
			BatchSize: 1,
		}},
		{"end equals start", ScanConfig{
			Range:     KeyRange{Start: big.NewInt(5), End: big.NewInt(5)},
			Target:    "x",
			BatchSize: 1,
		}},
		{"end past curve order", ScanConfig{
			Range:     KeyRange{Start: big.NewInt(1), End: new(big.Int).Set(Secp256k1CurveOrder)},
			Target:    "x",
			BatchSize: 1,
		}},
		{"no target", ScanConfig{Range: valid, BatchSize: 1}},
		{"zero batch size", ScanConfig{Range: valid, Target: "x"}},
		{"negative workers", ScanConfig{Range: valid, Target: "x", BatchSize: 1, Workers: -1}},
		{"negative max results", ScanConfig{Range: valid, Target: "x", BatchSize: 1, MaxResults: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScanner(tt.cfg)
			require.Error(t, err)
		})
	}
}

func TestGuidedConfigValidation(t *testing.T) {
	cfg := DefaultGuidedConfig()
	cfg.Range = KeyRange{Start: big.NewInt(1), End: big.NewInt(100)}

	// Target is required.
	_, err := NewGuidedSearch(cfg)
	require.ErrorIs(t, err, ErrNoTarget)

	cfg.Target = "x"
	cfg.MaxDepth = 0
	_, err = NewGuidedSearch(cfg)
	require.Error(t, err)

	cfg = DefaultGuidedConfig()
	cfg.Range = KeyRange{Start: big.NewInt(1), End: big.NewInt(100)}
	cfg.Target = "x"
	_, err = NewGuidedSearch(cfg)
	require.NoError(t, err)
}
