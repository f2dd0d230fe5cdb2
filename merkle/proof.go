package merkle

import (
	"fmt"
	"math/big"

	"github.com/zkfl/circuit-fixtures/hash"
)

// Proof is a membership proof for one leaf: the sibling at every level from
// the leaf up to (but excluding) the root, and the matching path-direction
// bits. PathIndices[k] == 1 means the node on the path is the right child at
// level k, so during verification the sibling is the left hash argument.
type Proof struct {
	Siblings    []*big.Int
	PathIndices []int
}

// GenProof walks from the leaf at the given index up to the root, recording
// the sibling (idx^1) and the direction bit (idx&1) at every level. The
// index must address an original leaf, not a padding slot.
func (t *Tree) GenProof(index int) (*Proof, error) {
	if index < 0 || index >= t.n {
		return nil, fmt.Errorf("%w: index %d, leaf count %d", ErrIndexOutOfRange, index, t.n)
	}
	proof := &Proof{
		Siblings:    make([]*big.Int, t.depth),
		PathIndices: make([]int, t.depth),
	}
	idx := index
	for level := 0; level < t.depth; level++ {
		sib := idx ^ 1
		if sib >= len(t.levels[level]) {
			sib = idx // duplicate-self at an odd boundary
		}
		proof.Siblings[level] = t.levels[level][sib]
		proof.PathIndices[level] = idx & 1
		idx >>= 1
	}
	return proof, nil
}

// CheckProof re-derives the root from a raw leaf value and a proof and
// compares it with the expected root. It never fails: malformed or
// mismatched proofs are a normal outcome and simply verify to false.
func CheckProof(hFn hash.Function, leaf *big.Int, proof *Proof, root *big.Int) bool {
	if proof == nil || root == nil || len(proof.Siblings) != len(proof.PathIndices) {
		return false
	}
	current, err := hash.Leaf(hFn, leaf)
	if err != nil {
		return false
	}
	for k, sibling := range proof.Siblings {
		if sibling == nil {
			return false
		}
		if proof.PathIndices[k] == 1 {
			current, err = hash.Pair(hFn, sibling, current)
		} else {
			current, err = hash.Pair(hFn, current, sibling)
		}
		if err != nil {
			return false
		}
	}
	return current.Cmp(root) == 0
}
