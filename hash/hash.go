// Package hash defines the pluggable hash primitive shared by the Merkle
// commitment engine and the gradient pipeline. Implementations live in the
// bn254 subpackages; all of them are stateless and safe for concurrent use.
package hash

import "math/big"

// Function is a one-way compression function over field elements. Hash must
// be deterministic, reduce its output into the field, and treat the argument
// order as significant: the left child is always the first input.
type Function interface {
	// Type identifies the concrete hash so fixtures can record which member
	// of the closed set {placeholder, circuit-compatible} produced them.
	Type() []byte
	Hash(inputs ...*big.Int) (*big.Int, error)
}

// Leaf hashes a single raw value into a level-0 tree node.
func Leaf(h Function, v *big.Int) (*big.Int, error) {
	return h.Hash(v)
}

// Pair combines two child nodes into their parent. The left argument comes
// first; the order encodes tree position and must match the proof's
// path-direction bits.
func Pair(h Function, l, r *big.Int) (*big.Int, error) {
	return h.Hash(l, r)
}
