package keysweep

import (
	"errors"
	"math/big"
	"testing"
)

func TestAddressDeriver_KnownVector(t *testing.T) {
	// Private key 1 derives the well-known uncompressed P2PKH address of
	// the secp256k1 generator point.
	addr, err := AddressDeriver{}.Derive(big.NewInt(1))
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if addr != "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm" {
		t.Errorf("Expected generator address, got %s", addr)
	}
}

func TestAddressDeriver_Deterministic(t *testing.T) {
	d := AddressDeriver{}
	key := big.NewInt(0x15)

	first, err := d.Derive(key)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	second, err := d.Derive(key)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if first != second {
		t.Errorf("Derivation not deterministic: %s vs %s", first, second)
	}
	if first[0] != '1' {
		t.Errorf("Expected mainnet P2PKH address starting with 1, got %s", first)
	}
}

func TestAddressDeriver_RejectsInvalidScalars(t *testing.T) {
	d := AddressDeriver{}

	for _, key := range []*big.Int{
		big.NewInt(0),
		big.NewInt(-5),
		new(big.Int).Set(Secp256k1CurveOrder),
		new(big.Int).Add(Secp256k1CurveOrder, big.NewInt(1)),
	} {
		_, err := d.Derive(key)
		if !errors.Is(err, ErrKeyOutOfRange) {
			t.Errorf("Derive(%s): expected ErrKeyOutOfRange, got %v", key, err)
		}
	}
}
