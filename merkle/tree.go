// Package merkle implements the commitment engine shared by the balance and
// training-step fixtures: a binary hash tree over an ordered list of field
// elements, padded to a power of two, answering membership-proof queries in
// the siblings/pathIndices form the target circuits consume.
package merkle

import (
	"errors"
	"fmt"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/zkfl/circuit-fixtures/hash"
)

var (
	// ErrEmptyLeaves is returned when building a tree from zero leaves.
	ErrEmptyLeaves = errors.New("merkle: empty leaf list")
	// ErrIndexOutOfRange is returned when a proof is requested for a leaf
	// index beyond the original (unpadded) leaf count.
	ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")
)

// parallelWidth is the level width above which pair hashing fans out across
// a bounded worker group. Below it the goroutine overhead dominates.
const parallelWidth = 256

// Tree is a build-once/read-many Merkle commitment. Level 0 holds the padded
// leaf hashes, each subsequent level halves the previous one, and the final
// level is the single root. Parent, child and sibling relations are pure
// index arithmetic (idx/2, idx^1); no node stores references.
type Tree struct {
	hFn    hash.Function
	n      int // original leaf count
	depth  int
	levels [][]*big.Int
}

// BuildTree hashes every raw leaf with the leaf shape of hFn, pads the
// hashed sequence on the right with hash(0) up to 2^ceil(log2(n)), and
// combines adjacent pairs level by level up to the root.
//
// Padding with the hash of field-element zero is a convention verifiers must
// reproduce. Should a level ever end up with odd length, the lone node is
// paired with itself (duplicate-self policy); with power-of-two padding this
// case is unreachable, but the policy is pinned so that proofs and external
// circuits never disagree on it.
func BuildTree(hFn hash.Function, leaves []*big.Int) (*Tree, error) {
	n := len(leaves)
	if n == 0 {
		return nil, ErrEmptyLeaves
	}
	depth := 0
	for 1<<depth < n {
		depth++
	}

	level := make([]*big.Int, 1<<depth)
	if err := hashLeaves(hFn, leaves, level); err != nil {
		return nil, err
	}
	pad, err := hash.Leaf(hFn, big.NewInt(0))
	if err != nil {
		return nil, fmt.Errorf("merkle: hashing padding leaf: %w", err)
	}
	for i := n; i < len(level); i++ {
		level[i] = pad
	}

	t := &Tree{hFn: hFn, n: n, depth: depth, levels: [][]*big.Int{level}}
	for len(level) > 1 {
		next, err := t.buildLevel(level)
		if err != nil {
			return nil, err
		}
		t.levels = append(t.levels, next)
		level = next
	}
	return t, nil
}

// Root returns the commitment root, the single element of the top level.
func (t *Tree) Root() *big.Int { return t.levels[t.depth][0] }

// Len returns the original (unpadded) leaf count.
func (t *Tree) Len() int { return t.n }

// Depth returns the number of levels above the leaves; 0 for a single leaf.
func (t *Tree) Depth() int { return t.depth }

// PaddedLen returns the width of level 0 after padding.
func (t *Tree) PaddedLen() int { return len(t.levels[0]) }

// Level returns a copy of the nodes at the given level, level 0 being the
// padded leaf hashes.
func (t *Tree) Level(i int) []*big.Int {
	out := make([]*big.Int, len(t.levels[i]))
	copy(out, t.levels[i])
	return out
}

// buildLevel combines adjacent pairs of prev into the next level. Wide
// levels are hashed concurrently; every pair is independent and the hashers
// are stateless, so ordering within a level does not matter.
func (t *Tree) buildLevel(prev []*big.Int) ([]*big.Int, error) {
	next := make([]*big.Int, (len(prev)+1)/2)
	combine := func(i int) error {
		left := prev[2*i]
		right := left // duplicate-self at an odd boundary
		if 2*i+1 < len(prev) {
			right = prev[2*i+1]
		}
		parent, err := hash.Pair(t.hFn, left, right)
		if err != nil {
			return fmt.Errorf("merkle: hashing pair at index %d: %w", i, err)
		}
		next[i] = parent
		return nil
	}

	if len(prev) < parallelWidth {
		for i := range next {
			if err := combine(i); err != nil {
				return nil, err
			}
		}
		return next, nil
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i := range next {
		g.Go(func() error { return combine(i) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return next, nil
}

// hashLeaves fills dst[:len(leaves)] with the leaf hashes of the raw values,
// fanning out for large leaf sets.
func hashLeaves(hFn hash.Function, leaves []*big.Int, dst []*big.Int) error {
	one := func(i int) error {
		h, err := hash.Leaf(hFn, leaves[i])
		if err != nil {
			return fmt.Errorf("merkle: hashing leaf %d: %w", i, err)
		}
		dst[i] = h
		return nil
	}
	if len(leaves) < parallelWidth {
		for i := range leaves {
			if err := one(i); err != nil {
				return err
			}
		}
		return nil
	}
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i := range leaves {
		g.Go(func() error { return one(i) })
	}
	return g.Wait()
}
