// Package testutil provides deterministic inputs for the package tests.
package testutil

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"

	"github.com/consensys/gnark-crypto/ecc"
)

// RandomFieldElements returns n uniformly random elements of the BN254
// scalar field.
func RandomFieldElements(n int) ([]*big.Int, error) {
	out := make([]*big.Int, n)
	for i := range out {
		r, err := rand.Int(rand.Reader, ecc.BN254.ScalarField())
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// SeededLeaves returns n reproducible small leaf values from a seeded
// source, for tests that must build the same tree twice.
func SeededLeaves(n int, seed int64) []*big.Int {
	rng := mrand.New(mrand.NewSource(seed))
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = big.NewInt(rng.Int63n(1 << 32))
	}
	return out
}
