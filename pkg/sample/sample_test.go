package sample

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiehuis/libhcs-go/pkg/drbg"
)

func newState(t *testing.T) *drbg.RandomState {
	t.Helper()
	rs, err := drbg.New()
	require.NoError(t, err)
	return rs
}

func TestUniformBounded(t *testing.T) {
	rs := newState(t)
	n := saferith.ModulusFromUint64(3 * 11 * 65519)
	for i := 0; i < 20; i++ {
		x := Uniform(rs, n)
		_, _, lt := x.CmpMod(n)
		assert.EqualValues(t, 1, lt, "sampled value should be strictly less than n")
	}
}

func TestUnitModNIsCoprime(t *testing.T) {
	rs := newState(t)
	n := saferith.ModulusFromUint64(3 * 11 * 65519)
	for i := 0; i < 20; i++ {
		u := UnitModN(rs, n)
		assert.EqualValues(t, 1, u.IsUnit(n), "sampled value should be a unit mod n")
	}
}
