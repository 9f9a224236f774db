package keysweep

import (
	"fmt"
	"math/big"
)

// Direction is one binary choice in the bisection tree over a key range.
type Direction uint8

const (
	// Left narrows the current sub-range to its lower half.
	Left Direction = iota
	// Right narrows the current sub-range to its upper half.
	Right
)

// Path is a sequence of directions encoding a node of the bisection tree.
// The empty path is the root (the midpoint of the whole range).
type Path []Direction

// String renders the path as an 'L'/'R' string, e.g. "LRRL".
func (p Path) String() string {
	buf := make([]byte, len(p))
	for i, d := range p {
		if d == Left {
			buf[i] = 'L'
		} else {
			buf[i] = 'R'
		}
	}
	return string(buf)
}

// KeyRange is an inclusive range of private key scalars.
type KeyRange struct {
	Start *big.Int
	End   *big.Int
}

// Count returns the number of keys in the range (End - Start + 1).
func (r KeyRange) Count() *big.Int {
	n := new(big.Int).Sub(r.End, r.Start)
	return n.Add(n, big.NewInt(1))
}

// Match is a key whose derived address matched the target.
type Match struct {
	Key     *big.Int // Private key scalar
	Hex     string   // 64-char zero-padded hex form of the key
	Address string   // Derived P2PKH address
}

// HexKey formats a key as a fixed 64-character zero-padded hex string.
func HexKey(key *big.Int) string {
	return fmt.Sprintf("%064x", key)
}
