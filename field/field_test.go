package field

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestReduce(t *testing.T) {
	c := qt.New(t)
	c.Assert(Reduce(big.NewInt(42)).Int64(), qt.Equals, int64(42))

	// negatives map to the canonical non-negative representative
	r := Reduce(big.NewInt(-1))
	c.Assert(r.Sign() > 0, qt.IsTrue)
	c.Assert(new(big.Int).Add(r, big.NewInt(1)).Cmp(Modulus), qt.Equals, 0)

	// values at or above the modulus wrap
	c.Assert(Reduce(new(big.Int).Set(Modulus)).Sign(), qt.Equals, 0)
}

func TestStringRoundTrip(t *testing.T) {
	c := qt.New(t)
	v := big.NewInt(123456789)
	got, err := FromString(String(v))
	c.Assert(err, qt.IsNil)
	c.Assert(got.Cmp(v), qt.Equals, 0)

	_, err = FromString("not-a-number")
	c.Assert(err, qt.IsNotNil)
}

func TestToBytes32(t *testing.T) {
	c := qt.New(t)
	b := ToBytes32(big.NewInt(1))
	c.Assert(b, qt.HasLen, 32)
	c.Assert(b[31], qt.Equals, byte(1))
	c.Assert(new(big.Int).SetBytes(ToBytes32(big.NewInt(-1))).Cmp(Reduce(big.NewInt(-1))), qt.Equals, 0)
}
