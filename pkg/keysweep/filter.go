package keysweep

// IsValidKey applies the heuristic run-length filter to a candidate key's hex
// form (leading zeros stripped). It is a purely syntactic predicate used to
// skip candidates before the expensive address derivation:
//
//   - three or more identical consecutive digits reject immediately
//   - a restricted digit (6, 9, a, d) may not repeat even once consecutively
//   - no single digit may form two separate double-runs anywhere in the string
//
// Single pass, O(1) extra state. The rules carry no cryptographic meaning;
// callers must treat this as an opaque candidate filter.
func IsValidKey(hexKey string) bool {
	var doubleRuns [16]uint8
	count := 1

	for i := 1; i < len(hexKey); i++ {
		curr, prev := hexKey[i], hexKey[i-1]

		if curr == prev {
			count++
		} else {
			if count == 2 {
				doubleRuns[hexDigit(prev)]++
			}
			count = 1
		}

		if count > 2 {
			return false
		}
		if count > 1 && isRestrictedDigit(curr) {
			return false
		}
	}

	if len(hexKey) > 0 && count == 2 {
		doubleRuns[hexDigit(hexKey[len(hexKey)-1])]++
	}

	for _, runs := range doubleRuns {
		if runs > 1 {
			return false
		}
	}
	return true
}

func isRestrictedDigit(c byte) bool {
	switch c {
	case '6', '9', 'a', 'd':
		return true
	}
	return false
}

func hexDigit(c byte) int {
	if c >= 'a' {
		return int(c-'a') + 10
	}
	return int(c - '0')
}
