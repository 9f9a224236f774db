package keysweep

import (
	"math/big"
	"sync"
)

// stubDeriver is a deterministic in-memory oracle for tests: every key maps
// to "addr-<decimal>". It records derivation calls so coverage and visit
// order can be asserted, and can be told to fail or panic on specific keys.
type stubDeriver struct {
	mu      sync.Mutex
	calls   []string
	failOn  map[string]bool
	panicOn string
}

func newStubDeriver() *stubDeriver {
	return &stubDeriver{failOn: make(map[string]bool)}
}

func (d *stubDeriver) Derive(key *big.Int) (string, error) {
	k := key.String()
	if k == d.panicOn {
		panic("stub deriver exploded")
	}

	d.mu.Lock()
	d.calls = append(d.calls, k)
	d.mu.Unlock()

	if d.failOn[k] {
		return "", ErrKeyOutOfRange
	}
	return "addr-" + k, nil
}

// callCounts returns how often each key was derived.
func (d *stubDeriver) callCounts() map[string]int {
	d.mu.Lock()
	defer d.mu.Unlock()

	counts := make(map[string]int, len(d.calls))
	for _, k := range d.calls {
		counts[k]++
	}
	return counts
}

func (d *stubDeriver) callOrder() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}
