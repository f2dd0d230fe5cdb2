package fixture

import (
	"encoding/json"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/zkfl/circuit-fixtures/field"
	"github.com/zkfl/circuit-fixtures/fixedpoint"
	"github.com/zkfl/circuit-fixtures/gradient"
	"github.com/zkfl/circuit-fixtures/hash/bn254/keccak"
	"github.com/zkfl/circuit-fixtures/hash/bn254/poseidon"
	"github.com/zkfl/circuit-fixtures/merkle"
)

var hFn = keccak.HashKeccak{}

func decodeProof(c *qt.C, siblings, pathIndices []string) *merkle.Proof {
	proof := &merkle.Proof{
		Siblings:    make([]*big.Int, len(siblings)),
		PathIndices: make([]int, len(pathIndices)),
	}
	for k := range siblings {
		s, err := field.FromString(siblings[k])
		c.Assert(err, qt.IsNil)
		proof.Siblings[k] = s
		idx, err := strconv.Atoi(pathIndices[k])
		c.Assert(err, qt.IsNil)
		proof.PathIndices[k] = idx
	}
	return proof
}

func TestBalanceFixture(t *testing.T) {
	c := qt.New(t)
	bits := []int{0, 1, 1, 0, 1, 1, 1, 0}
	f, err := NewBalanceFixture(hFn, 1, bits)
	c.Assert(err, qt.IsNil)

	c.Assert(f.ClientID, qt.Equals, "1")
	c.Assert(f.NPublic, qt.Equals, "8")
	c.Assert(f.C0, qt.Equals, "3")
	c.Assert(f.C1, qt.Equals, "5")
	c.Assert(f.Bits, qt.HasLen, 8)
	c.Assert(f.Siblings, qt.HasLen, 8)

	// every emitted proof must verify against the emitted root
	root, err := field.FromString(f.Root)
	c.Assert(err, qt.IsNil)
	for i, b := range bits {
		proof := decodeProof(c, f.Siblings[i], f.PathIndices[i])
		c.Assert(proof.Siblings, qt.HasLen, 3)
		c.Assert(merkle.CheckProof(hFn, big.NewInt(int64(b)), proof, root), qt.IsTrue)
	}
}

func TestBalanceFixtureRejectsNonBits(t *testing.T) {
	c := qt.New(t)
	_, err := NewBalanceFixture(hFn, 1, []int{0, 2})
	c.Assert(err, qt.IsNotNil)
	_, err = NewBalanceFixture(hFn, 1, nil)
	c.Assert(err, qt.ErrorIs, merkle.ErrEmptyLeaves)
}

func trainingConfig() TrainingConfig {
	return TrainingConfig{
		ClientID:      1,
		BatchSize:     4,
		ModelDim:      8,
		DatasetSize:   32,
		LearningRate:  0.01,
		ClipThreshold: 1.0,
		Seed:          42,
		Hash:          hFn,
		Codec:         fixedpoint.Default,
	}
}

func TestTrainingStepFixture(t *testing.T) {
	c := qt.New(t)
	cfg := trainingConfig()
	f, err := NewTrainingStepFixture(cfg)
	c.Assert(err, qt.IsNil)

	c.Assert(f.WeightsOld, qt.HasLen, cfg.ModelDim)
	c.Assert(f.Features, qt.HasLen, cfg.BatchSize)
	c.Assert(f.Labels, qt.HasLen, cfg.BatchSize)
	c.Assert(f.Alpha, qt.Equals, "10")
	c.Assert(f.Tau, qt.Equals, "1000")

	// membership proofs verify against the dataset root
	ds, err := SynthesizeDataset(cfg.DatasetSize, cfg.ModelDim, cfg.Seed)
	c.Assert(err, qt.IsNil)
	leaves, err := ds.Leaves(cfg.Hash, cfg.Codec)
	c.Assert(err, qt.IsNil)
	rootD, err := field.FromString(f.RootD)
	c.Assert(err, qt.IsNil)
	for k, idx := range f.BatchIndices {
		proof := decodeProof(c, f.Siblings[k], f.PathIndices[k])
		c.Assert(merkle.CheckProof(cfg.Hash, leaves[idx], proof, rootD), qt.IsTrue)
	}

	// the clipped gradient respects the threshold and R_G recommits
	c.Assert(gradient.L2Norm(f.ClippedGradient) <= cfg.ClipThreshold+1e-9, qt.IsTrue)
	rootG, err := gradient.Commit(cfg.Hash, cfg.Codec, f.ClippedGradient)
	c.Assert(err, qt.IsNil)
	c.Assert(field.String(rootG), qt.Equals, f.RootG)

	// weights_new is one descent step from weights_old
	for i := range f.WeightsNew {
		old, err := strconv.ParseInt(f.WeightsOld[i], 10, 64)
		c.Assert(err, qt.IsNil)
		reconstructed := cfg.Codec.Decode(big.NewInt(old)) - cfg.LearningRate*f.ClippedGradient[i]
		c.Assert(math.Abs(reconstructed-f.WeightsNew[i]) <= 1.0/float64(cfg.Codec.Scale), qt.IsTrue)
	}
}

func TestTrainingStepFixtureDeterminism(t *testing.T) {
	c := qt.New(t)
	f1, err := NewTrainingStepFixture(trainingConfig())
	c.Assert(err, qt.IsNil)
	f2, err := NewTrainingStepFixture(trainingConfig())
	c.Assert(err, qt.IsNil)
	c.Assert(f1.RootD, qt.Equals, f2.RootD)
	c.Assert(f1.RootG, qt.Equals, f2.RootG)
	c.Assert(f1.WeightsOld, qt.DeepEquals, f2.WeightsOld)
	c.Assert(f1.BatchIndices, qt.DeepEquals, f2.BatchIndices)
}

func TestTrainingStepFixtureValidation(t *testing.T) {
	c := qt.New(t)

	cfg := trainingConfig()
	cfg.ClipThreshold = 0
	_, err := NewTrainingStepFixture(cfg)
	c.Assert(err, qt.ErrorIs, gradient.ErrInvalidThreshold)

	cfg = trainingConfig()
	cfg.BatchSize = cfg.DatasetSize + 1
	_, err = NewTrainingStepFixture(cfg)
	c.Assert(err, qt.IsNotNil)

	cfg = trainingConfig()
	cfg.Hash = nil
	_, err = NewTrainingStepFixture(cfg)
	c.Assert(err, qt.IsNotNil)
}

func TestTrainingStepFixturePoseidonLeaves(t *testing.T) {
	c := qt.New(t)
	// the production hash path, exercising input chunking on dim+1 inputs
	cfg := trainingConfig()
	cfg.ModelDim = 20
	cfg.Hash = poseidon.HashPoseidon{}
	f, err := NewTrainingStepFixture(cfg)
	c.Assert(err, qt.IsNil)
	c.Assert(f.RootD, qt.Not(qt.Equals), "")
}

func TestWriteFile(t *testing.T) {
	c := qt.New(t)
	f, err := NewBalanceFixture(hFn, 1, []int{1, 0, 1})
	c.Assert(err, qt.IsNil)

	path := filepath.Join(t.TempDir(), "test_input.json")
	c.Assert(f.WriteFile(path), qt.IsNil)

	var decoded BalanceFixture
	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(json.Unmarshal(data, &decoded), qt.IsNil)
	c.Assert(decoded.Root, qt.Equals, f.Root)
	c.Assert(decoded.PathIndices, qt.DeepEquals, f.PathIndices)
}
