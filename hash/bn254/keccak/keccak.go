// Package keccak provides the placeholder member of the hash set: keccak256
// over canonical 32-byte limbs, reduced into the BN254 scalar field. It is
// meant for structural testing of the commitment engine and is NOT provable
// by the target circuits; production fixtures must use the poseidon hasher.
package keccak

import (
	"fmt"
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/zkfl/circuit-fixtures/field"
)

// TypeHashKeccak identifies the keccak256-mod-P placeholder hash.
var TypeHashKeccak = []byte("keccak")

// HashKeccak is a ready-to-use, stateless hasher.
type HashKeccak struct{}

func (HashKeccak) Type() []byte { return TypeHashKeccak }

func (HashKeccak) Hash(inputs ...*big.Int) (*big.Int, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("keccak: no inputs")
	}
	buf := make([]byte, 0, 32*len(inputs))
	for _, in := range inputs {
		buf = append(buf, field.ToBytes32(in)...)
	}
	return field.Reduce(new(big.Int).SetBytes(ethcrypto.Keccak256(buf))), nil
}
