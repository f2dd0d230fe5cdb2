// Package mimc provides a native MiMC hasher over the BN254 scalar field.
// It is the member of the hash set that gnark's std/hash/mimc gadget
// reproduces in-circuit, which makes it the default for end-to-end fixture
// validation inside a gnark test circuit.
package mimc

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// TypeHashMiMC identifies the MiMC-BN254 hash.
var TypeHashMiMC = []byte("mimc")

// HashMiMC is a ready-to-use, stateless hasher. Each input is reduced into
// the field and absorbed as a canonical 32-byte big-endian block, matching
// what the gnark gadget does with one frontend.Variable per input.
type HashMiMC struct{}

func (HashMiMC) Type() []byte { return TypeHashMiMC }

func (HashMiMC) Hash(inputs ...*big.Int) (*big.Int, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("mimc: no inputs")
	}
	h := mimc.NewMiMC()
	for _, in := range inputs {
		var e fr.Element
		e.SetBigInt(in)
		b := e.Bytes()
		if _, err := h.Write(b[:]); err != nil {
			return nil, err
		}
	}
	return new(big.Int).SetBytes(h.Sum(nil)), nil
}
