package keysweep

import (
	"math/big"
	"strings"
)

// PrefixSet is a pruning index over decision paths, built once from a seed
// collection of known keys and read-only afterwards, so a single set can be
// shared by any number of concurrent searches.
type PrefixSet struct {
	entries map[string]struct{}
	maxLen  int
}

// BuildPrefixSet builds the pruning index: for every seed key, its path at
// the given bit width is computed and every prefix of length
// 1..min(maxPrefixLen, bits) is inserted.
func BuildPrefixSet(seeds []*big.Int, maxPrefixLen, bits int) *PrefixSet {
	ps := &PrefixSet{
		entries: make(map[string]struct{}),
		maxLen:  maxPrefixLen,
	}

	limit := maxPrefixLen
	if bits < limit {
		limit = bits
	}

	for _, seed := range seeds {
		path := KeyToPath(seed, bits).String()
		for length := 1; length <= limit; length++ {
			ps.entries[path[:length]] = struct{}{}
		}
	}
	return ps
}

// Len returns the number of distinct prefixes in the set.
func (ps *PrefixSet) Len() int {
	return len(ps.entries)
}

// Allows reports whether a partial path is still worth exploring. The root
// path is always allowed. Otherwise the path is allowed iff it is consistent
// with some entry from either direction: an entry is a prefix of the path, or
// the path is a prefix of an entry. The probe is O(|set|).
func (ps *PrefixSet) Allows(path Path) bool {
	if len(path) == 0 {
		return true
	}

	s := path.String()
	for entry := range ps.entries {
		if strings.HasPrefix(entry, s) || strings.HasPrefix(s, entry) {
			return true
		}
	}
	return false
}
