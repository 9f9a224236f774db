package keysweep

import "math/big"

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// PathToKey resolves a path to the key at the corresponding tree node.
//
// Starting from the full range, each direction bisects the current sub-range:
// Left keeps [start, mid], Right keeps [mid+1, end], with mid the floor
// midpoint. The node's key is the floor midpoint of the final sub-range, so
// the empty path maps to the midpoint of the whole range.
//
// The Right branch must start at mid+1, not mid; otherwise sibling sub-ranges
// overlap and the tree stops being a partition.
func PathToKey(path Path, r KeyRange) *big.Int {
	start := new(big.Int).Set(r.Start)
	end := new(big.Int).Set(r.End)
	mid := new(big.Int)

	for _, d := range path {
		mid.Add(start, end)
		mid.Div(mid, two)
		if d == Left {
			end.Set(mid)
		} else {
			start.Add(mid, one)
		}
	}

	mid.Add(start, end)
	return mid.Div(mid, two)
}

// KeyToPath converts a key to its path of the given bit width: the key's
// binary representation most-significant bit first, 0 = Left, 1 = Right.
// The key must fit in bits bits.
func KeyToPath(key *big.Int, bits int) Path {
	path := make(Path, bits)
	for i := 0; i < bits; i++ {
		if key.Bit(bits-1-i) == 1 {
			path[i] = Right
		} else {
			path[i] = Left
		}
	}
	return path
}
