package fixture

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/zkfl/circuit-fixtures/field"
	"github.com/zkfl/circuit-fixtures/fixedpoint"
	"github.com/zkfl/circuit-fixtures/hash"
)

// Dataset is a synthetic labeled dataset used to demonstrate fixture
// generation. Features are uniform in [-1, 1]; the binary label follows a
// linear decision boundary on the feature sum, so a linear model can fit it.
type Dataset struct {
	Features [][]float64
	Labels   []int
}

// SynthesizeDataset deterministically generates size samples of the given
// dimension from a seeded source. The same seed always yields the same
// dataset, which keeps fixture generation reproducible end to end.
func SynthesizeDataset(size, dim int, seed int64) (*Dataset, error) {
	if size <= 0 || dim <= 0 {
		return nil, fmt.Errorf("fixture: invalid dataset shape %dx%d", size, dim)
	}
	rng := rand.New(rand.NewSource(seed))
	ds := &Dataset{
		Features: make([][]float64, size),
		Labels:   make([]int, size),
	}
	for i := range ds.Features {
		feat := make([]float64, dim)
		sum := 0.0
		for j := range feat {
			feat[j] = rng.Float64()*2 - 1
			sum += feat[j]
		}
		ds.Features[i] = feat
		if sum > 0 {
			ds.Labels[i] = 1
		}
	}
	return ds, nil
}

// Leaves maps every sample to its commitment leaf:
// hash(encode(f_1), ..., encode(f_d), label).
func (ds *Dataset) Leaves(hFn hash.Function, codec fixedpoint.Codec) ([]*big.Int, error) {
	leaves := make([]*big.Int, len(ds.Features))
	for i, feat := range ds.Features {
		inputs := make([]*big.Int, 0, len(feat)+1)
		for _, f := range feat {
			inputs = append(inputs, field.Reduce(codec.Encode(f)))
		}
		inputs = append(inputs, big.NewInt(int64(ds.Labels[i])))
		leaf, err := hFn.Hash(inputs...)
		if err != nil {
			return nil, fmt.Errorf("fixture: hashing sample %d: %w", i, err)
		}
		leaves[i] = leaf
	}
	return leaves, nil
}
