// Package circuits holds the in-circuit counterpart of the merkle
// commitment engine, used to validate generated fixtures against the same
// semantics an external proving circuit enforces.
package circuits

import "github.com/consensys/gnark/frontend"

// nextLevel computes the parent of the current node on the proof path given
// its sibling and the path-direction bit at this level.
func nextLevel(api frontend.API, hFn Hasher, current, ipath, sibling frontend.Variable) (frontend.Variable, error) {
	// l, r = path == 1 ? sibling, current : current, sibling
	l, r := api.Select(ipath, sibling, current), api.Select(ipath, current, sibling)
	return hFn(api, l, r)
}

// CheckProof recomputes the commitment root from a raw leaf value, its
// siblings and its path-direction bits, and asserts it equals the provided
// root. Siblings run from the leaf level upwards; pathIndices[k] == 1 means
// the node on the path is the right child at level k.
func CheckProof(api frontend.API, hFn Hasher, leaf, root frontend.Variable, siblings, pathIndices []frontend.Variable) error {
	// leaf hash: H(value)
	current, err := hFn(api, leaf)
	if err != nil {
		return err
	}
	for k := range siblings {
		api.AssertIsBoolean(pathIndices[k])
		if current, err = nextLevel(api, hFn, current, pathIndices[k], siblings[k]); err != nil {
			return err
		}
	}
	api.AssertIsEqual(current, root)
	return nil
}
