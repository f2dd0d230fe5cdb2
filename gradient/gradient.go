// Package gradient implements the fixed-point training-step pipeline: the
// per-sample squared-loss gradient, batch averaging, L2-norm clipping, the
// weight update, and the gradient commitment consumed by the training-step
// circuit.
package gradient

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/zkfl/circuit-fixtures/field"
	"github.com/zkfl/circuit-fixtures/fixedpoint"
	"github.com/zkfl/circuit-fixtures/hash"
)

var (
	// ErrDimensionMismatch is returned when vectors consumed together do
	// not share the model dimension.
	ErrDimensionMismatch = errors.New("gradient: dimension mismatch")
	// ErrEmptyBatch is returned when averaging zero gradients.
	ErrEmptyBatch = errors.New("gradient: empty batch")
	// ErrInvalidThreshold is returned for a non-positive clip threshold.
	ErrInvalidThreshold = errors.New("gradient: clip threshold must be positive")
)

// Gradient computes the gradient of the squared loss (y - w·x)²/2 for one
// sample: -e·x with e = label - w·x.
func Gradient(weights, features []float64, label float64) ([]float64, error) {
	if len(weights) != len(features) {
		return nil, fmt.Errorf("%w: %d weights, %d features", ErrDimensionMismatch, len(weights), len(features))
	}
	prediction := 0.0
	for i, w := range weights {
		prediction += w * features[i]
	}
	e := label - prediction
	grad := make([]float64, len(features))
	for i, x := range features {
		grad[i] = -e * x
	}
	return grad, nil
}

// AverageGradient returns the element-wise mean of a batch of gradients.
func AverageGradient(batch [][]float64) ([]float64, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}
	dim := len(batch[0])
	avg := make([]float64, dim)
	for k, g := range batch {
		if len(g) != dim {
			return nil, fmt.Errorf("%w: gradient %d has %d components, expected %d", ErrDimensionMismatch, k, len(g), dim)
		}
		for i, v := range g {
			avg[i] += v
		}
	}
	for i := range avg {
		avg[i] /= float64(len(batch))
	}
	return avg, nil
}

// L2Norm returns sqrt(sum(v_i²)).
func L2Norm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Clip rescales v so its L2 norm does not exceed tau, preserving direction:
// unchanged when the norm is already within the threshold, otherwise every
// component is scaled by tau/norm.
func Clip(v []float64, tau float64) ([]float64, error) {
	if tau <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, tau)
	}
	norm := L2Norm(v)
	out := make([]float64, len(v))
	if norm <= tau {
		copy(out, v)
		return out, nil
	}
	scale := tau / norm
	for i, x := range v {
		out[i] = scale * x
	}
	return out, nil
}

// UpdateWeights applies one descent step: w_i - alpha*g_i.
func UpdateWeights(weights, clipped []float64, alpha float64) ([]float64, error) {
	if len(weights) != len(clipped) {
		return nil, fmt.Errorf("%w: %d weights, %d gradient components", ErrDimensionMismatch, len(weights), len(clipped))
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w - alpha*clipped[i]
	}
	return out, nil
}

// Commit hashes the fixed-point encoding of a clipped gradient into the
// gradient-commitment root R_G. Negative encodings are reduced into the
// field before hashing, matching how the circuit receives them.
func Commit(hFn hash.Function, codec fixedpoint.Codec, clipped []float64) (*big.Int, error) {
	if len(clipped) == 0 {
		return nil, ErrEmptyBatch
	}
	encoded := make([]*big.Int, len(clipped))
	for i, g := range clipped {
		encoded[i] = field.Reduce(codec.Encode(g))
	}
	root, err := hFn.Hash(encoded...)
	if err != nil {
		return nil, fmt.Errorf("gradient: committing: %w", err)
	}
	return root, nil
}
