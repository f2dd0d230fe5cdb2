package fixedpoint

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestEncodeRounding(t *testing.T) {
	c := qt.New(t)
	cases := map[float64]int64{
		0:       0,
		0.01:    10,
		1.0:     1000,
		0.0004:  0,
		0.0005:  1, // half rounds away from zero
		-0.0005: -1,
		-1.2345: -1235,
		2.7184:  2718,
	}
	for x, want := range cases {
		c.Assert(Default.Encode(x).Int64(), qt.Equals, want, qt.Commentf("x=%v", x))
	}
}

func TestRoundTripBound(t *testing.T) {
	c := qt.New(t)
	bound := 0.5 / float64(Default.Scale)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		got := Default.Decode(Default.Encode(x))
		c.Assert(math.Abs(got-x) <= bound, qt.IsTrue, qt.Commentf("x=%v got=%v", x, got))
	}
}

func TestCustomScale(t *testing.T) {
	c := qt.New(t)
	codec := New(1 << 16)
	c.Assert(codec.Encode(0.5).Int64(), qt.Equals, int64(1<<15))
	c.Assert(codec.Decode(big.NewInt(1<<16)), qt.Equals, 1.0)
}

func TestEncodeVector(t *testing.T) {
	c := qt.New(t)
	vs := Default.EncodeVector([]float64{0.5, -0.25})
	c.Assert(vs, qt.HasLen, 2)
	c.Assert(vs[0].Int64(), qt.Equals, int64(500))
	c.Assert(vs[1].Int64(), qt.Equals, int64(-250))
}
