package keysweep

import (
	"bufio"
	"fmt"
	"math/big"
	"os"
	"strings"
)

// LoadSeeds reads seed keys from a file with one decimal integer per line.
// Blank lines and lines that are not a decimal number are silently skipped,
// so the file may carry comments or stray formatting.
func LoadSeeds(path string) ([]*big.Int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seeds file: %w", err)
	}
	defer f.Close()

	var seeds []*big.Int

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		seed, ok := new(big.Int).SetString(line, 10)
		if !ok || seed.Sign() < 0 {
			continue
		}
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seeds file: %w", err)
	}
	return seeds, nil
}
