package keysweep

import (
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"
)

// Secp256k1CurveOrder is the order of the secp256k1 curve
var Secp256k1CurveOrder, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// ErrKeyOutOfRange is returned by Derive for scalars that are not valid
// secp256k1 private keys (zero or >= the curve order).
var ErrKeyOutOfRange = errors.New("key out of valid secp256k1 range")

// Deriver maps a private key scalar to its derived address. Implementations
// must be deterministic and safe for concurrent use.
type Deriver interface {
	// Derive returns the address for the given key, or an error if the key
	// is not a valid scalar. Derivation errors are per-candidate: callers
	// skip the candidate and continue.
	Derive(key *big.Int) (string, error)
}

// AddressDeriver derives legacy mainnet P2PKH addresses:
// uncompressed public key (0x04 || X || Y), SHA-256, RIPEMD-160, version
// byte 0x00, 4-byte double-SHA-256 checksum, base58.
type AddressDeriver struct{}

// Derive implements the Deriver interface.
func (AddressDeriver) Derive(key *big.Int) (string, error) {
	if key.Sign() <= 0 || key.Cmp(Secp256k1CurveOrder) >= 0 {
		return "", ErrKeyOutOfRange
	}

	var keyBytes [32]byte
	key.FillBytes(keyBytes[:])

	privKey := secp256k1.PrivKeyFromBytes(keyBytes[:])
	pubKey := privKey.PubKey().SerializeUncompressed()

	sha := sha256.Sum256(pubKey)
	h := ripemd160.New()
	h.Write(sha[:])

	payload := append([]byte{0x00}, h.Sum(nil)...)
	check1 := sha256.Sum256(payload)
	check2 := sha256.Sum256(check1[:])

	return base58.Encode(append(payload, check2[:4]...)), nil
}
