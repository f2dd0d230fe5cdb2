package fixture

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/zkfl/circuit-fixtures/field"
	"github.com/zkfl/circuit-fixtures/fixedpoint"
	"github.com/zkfl/circuit-fixtures/gradient"
	"github.com/zkfl/circuit-fixtures/hash"
	"github.com/zkfl/circuit-fixtures/merkle"
)

// TrainingConfig parameterizes one training-step fixture generation run.
type TrainingConfig struct {
	ClientID      int
	BatchSize     int
	ModelDim      int
	DatasetSize   int
	LearningRate  float64
	ClipThreshold float64
	Seed          int64
	Hash          hash.Function
	Codec         fixedpoint.Codec
}

func (cfg TrainingConfig) validate() error {
	if cfg.Hash == nil {
		return fmt.Errorf("fixture: nil hash function")
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > cfg.DatasetSize {
		return fmt.Errorf("fixture: batch size %d out of range for dataset size %d", cfg.BatchSize, cfg.DatasetSize)
	}
	if cfg.ModelDim <= 0 {
		return fmt.Errorf("fixture: model dimension %d", cfg.ModelDim)
	}
	return nil
}

// TrainingStepFixture is the input record of the training-integrity circuit:
// one clipped-SGD step over a batch sampled from a committed dataset.
// ClientID, RootD, RootG, Alpha and Tau are public; the rest of the JSON
// fields are private witness. The untagged result fields are assembled for
// callers and tests, they are not circuit inputs.
type TrainingStepFixture struct {
	ClientID    string     `json:"client_id"`
	RootD       string     `json:"root_D"`
	RootG       string     `json:"root_G"`
	Alpha       string     `json:"alpha"`
	Tau         string     `json:"tau"`
	WeightsOld  []string   `json:"weights_old"`
	Features    [][]string `json:"features"`
	Labels      []string   `json:"labels"`
	Siblings    [][]string `json:"siblings"`
	PathIndices [][]string `json:"pathIndices"`

	BatchIndices    []int     `json:"-"`
	WeightsNew      []float64 `json:"-"`
	ClippedGradient []float64 `json:"-"`
	GradientNorm    float64   `json:"-"`
	Clipped         bool      `json:"-"`
}

// NewTrainingStepFixture synthesizes a dataset, commits to it, samples a
// batch with inclusion proofs, runs one clipped gradient-descent step and
// commits to the clipped gradient. Everything derives deterministically from
// the seed.
func NewTrainingStepFixture(cfg TrainingConfig) (*TrainingStepFixture, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.ClipThreshold <= 0 {
		return nil, gradient.ErrInvalidThreshold
	}

	ds, err := SynthesizeDataset(cfg.DatasetSize, cfg.ModelDim, cfg.Seed)
	if err != nil {
		return nil, err
	}
	leaves, err := ds.Leaves(cfg.Hash, cfg.Codec)
	if err != nil {
		return nil, err
	}
	tree, err := merkle.BuildTree(cfg.Hash, leaves)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed + 1))
	batch := rng.Perm(cfg.DatasetSize)[:cfg.BatchSize]
	weightsOld := make([]float64, cfg.ModelDim)
	for i := range weightsOld {
		weightsOld[i] = rng.Float64()*0.2 - 0.1
	}

	grads := make([][]float64, cfg.BatchSize)
	for k, idx := range batch {
		g, err := gradient.Gradient(weightsOld, ds.Features[idx], float64(ds.Labels[idx]))
		if err != nil {
			return nil, err
		}
		grads[k] = g
	}
	avg, err := gradient.AverageGradient(grads)
	if err != nil {
		return nil, err
	}
	clipped, err := gradient.Clip(avg, cfg.ClipThreshold)
	if err != nil {
		return nil, err
	}
	weightsNew, err := gradient.UpdateWeights(weightsOld, clipped, cfg.LearningRate)
	if err != nil {
		return nil, err
	}
	rootG, err := gradient.Commit(cfg.Hash, cfg.Codec, clipped)
	if err != nil {
		return nil, err
	}

	f := &TrainingStepFixture{
		ClientID:    strconv.Itoa(cfg.ClientID),
		RootD:       field.String(tree.Root()),
		RootG:       field.String(rootG),
		Alpha:       cfg.Codec.Encode(cfg.LearningRate).String(),
		Tau:         cfg.Codec.Encode(cfg.ClipThreshold).String(),
		WeightsOld:  encodeFixedVector(cfg.Codec, weightsOld),
		Features:    make([][]string, cfg.BatchSize),
		Labels:      make([]string, cfg.BatchSize),
		Siblings:    make([][]string, cfg.BatchSize),
		PathIndices: make([][]string, cfg.BatchSize),

		BatchIndices:    batch,
		WeightsNew:      weightsNew,
		ClippedGradient: clipped,
		GradientNorm:    gradient.L2Norm(avg),
		Clipped:         gradient.L2Norm(avg) > cfg.ClipThreshold,
	}
	for k, idx := range batch {
		proof, err := tree.GenProof(idx)
		if err != nil {
			return nil, err
		}
		f.Features[k] = encodeFixedVector(cfg.Codec, ds.Features[idx])
		f.Labels[k] = strconv.Itoa(ds.Labels[idx])
		f.Siblings[k], f.PathIndices[k] = encodeProof(proof)
	}
	return f, nil
}

// WriteFile serializes the fixture as indented JSON at the given path.
func (f *TrainingStepFixture) WriteFile(path string) error {
	return writeJSON(path, f)
}

// encodeFixedVector emits fixed-point components as signed decimal strings,
// the convention the reference circuits consume for private reals.
func encodeFixedVector(codec fixedpoint.Codec, xs []float64) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = codec.Encode(x).String()
	}
	return out
}
