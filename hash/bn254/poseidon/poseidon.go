// Package poseidon provides the arithmetic-circuit-compatible member of the
// hash set: the circom Poseidon over the BN254 scalar field, computed
// natively via go-iden3-crypto. Fixtures hashed with it verify against
// circuits using the circomlib Poseidon gadgets.
package poseidon

import (
	"fmt"
	"math/big"

	iden3 "github.com/iden3/go-iden3-crypto/poseidon"

	"github.com/zkfl/circuit-fixtures/field"
)

// TypeHashPoseidon identifies the Poseidon-BN254 hash.
var TypeHashPoseidon = []byte("poseidon")

// maxArity is the widest Poseidon permutation go-iden3-crypto provides.
// Longer inputs are folded in chunks of maxArity and the chunk digests are
// hashed again; any circuit consuming such a commitment must apply the same
// chunking.
const maxArity = 16

// HashPoseidon is a ready-to-use, stateless hasher.
type HashPoseidon struct{}

func (HashPoseidon) Type() []byte { return TypeHashPoseidon }

func (h HashPoseidon) Hash(inputs ...*big.Int) (*big.Int, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("poseidon: no inputs")
	}
	reduced := make([]*big.Int, len(inputs))
	for i, in := range inputs {
		reduced[i] = field.Reduce(in)
	}
	if len(reduced) <= maxArity {
		return iden3.Hash(reduced)
	}
	// fold oversized input sets chunk by chunk
	chunks := make([]*big.Int, 0, (len(reduced)+maxArity-1)/maxArity)
	for i := 0; i < len(reduced); i += maxArity {
		end := min(i+maxArity, len(reduced))
		d, err := iden3.Hash(reduced[i:end])
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, d)
	}
	if len(chunks) == 1 {
		return chunks[0], nil
	}
	return h.Hash(chunks...)
}
