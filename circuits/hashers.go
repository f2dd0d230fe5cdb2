package circuits

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
	"github.com/mdehoog/poseidon/circuits/poseidon"
)

// Hasher is an in-circuit hash function over field variables, the circuit
// counterpart of hash.Function.
type Hasher func(frontend.API, ...frontend.Variable) (frontend.Variable, error)

// MiMCHasher hashes the provided data using the gnark MiMC gadget on the
// current compiler field. It reproduces the native bn254 mimc hasher when
// each input is a single field element.
func MiMCHasher(api frontend.API, data ...frontend.Variable) (frontend.Variable, error) {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return 0, err
	}
	h.Write(data...)
	return h.Sum(), nil
}

// PoseidonHasher wraps the circom-compatible Poseidon gadget. It reproduces
// the native bn254 poseidon hasher for up to 16 inputs.
func PoseidonHasher(api frontend.API, data ...frontend.Variable) (frontend.Variable, error) {
	return poseidon.Hash(api, data), nil
}
