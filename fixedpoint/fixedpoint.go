// Package fixedpoint converts between real numbers and the scaled integers
// the target circuits do exact arithmetic on.
package fixedpoint

import (
	"math"
	"math/big"
)

// DefaultScale is the precision factor shared with the reference circuits.
const DefaultScale = 1000

// Codec encodes reals as round(x*Scale) and decodes by dividing back.
// Value semantics; the zero value is unusable, use New or Default.
type Codec struct {
	Scale int64
}

// Default is the codec at the circuit's observed precision.
var Default = Codec{Scale: DefaultScale}

// New returns a codec at the given precision factor.
func New(scale int64) Codec { return Codec{Scale: scale} }

// Encode returns round(x*Scale), rounding half away from zero. The mode is
// pinned: a circuit doing exact integer arithmetic rejects fixtures encoded
// under any other convention. decode(encode(x)) may differ from x by up to
// 0.5/Scale; that error is accepted and bounded, not a defect.
func (c Codec) Encode(x float64) *big.Int {
	return big.NewInt(int64(math.Round(x * float64(c.Scale))))
}

// Decode maps a scaled integer back to the real it approximates.
func (c Codec) Decode(v *big.Int) float64 {
	return float64(v.Int64()) / float64(c.Scale)
}

// EncodeVector encodes every component of a real vector.
func (c Codec) EncodeVector(xs []float64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = c.Encode(x)
	}
	return out
}
