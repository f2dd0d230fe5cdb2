package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Modulus is the BN254 scalar field prime, the native field of the target
// circuits. Every committed value is reduced into [0, Modulus).
var Modulus = fr.Modulus()

// Reduce maps an arbitrary integer (negative included) into the canonical
// representative of its residue class mod the field modulus.
func Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, Modulus)
}

// ToBytes32 returns the canonical 32-byte big-endian encoding of a reduced
// field element, the limb format shared by the native hashers.
func ToBytes32(x *big.Int) []byte {
	b := make([]byte, 32)
	Reduce(x).FillBytes(b)
	return b
}

// String encodes a field element as a decimal string, the representation the
// circuit input files use (field arithmetic exceeds machine-integer width).
func String(x *big.Int) string {
	return Reduce(x).String()
}

// FromString parses a decimal-string field element back into a reduced
// big.Int.
func FromString(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid field element %q", s)
	}
	return Reduce(v), nil
}
