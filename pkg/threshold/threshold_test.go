package threshold_test

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiehuis/libhcs-go/pkg/drbg"
	"github.com/Tiehuis/libhcs-go/pkg/threshold"
)

// S1: encrypt-decrypt round-trip.
func TestScenarioEncryptDecrypt(t *testing.T) {
	d := deal(t, testBits, 3, 5)
	rs, err := drbg.New()
	require.NoError(t, err)

	m := new(saferith.Nat).SetUint64(42)
	ct, _ := d.pk.Encrypt(rs, m)

	plaintext, err := threshold.Combine(d.pk, d.partials(ct, 0, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), plaintext.Big().Uint64())
}

// S2: homomorphic add, decrypted by a different quorum than S1 used.
func TestScenarioHomomorphicAdd(t *testing.T) {
	d := deal(t, testBits, 3, 5)
	rs, err := drbg.New()
	require.NoError(t, err)

	c1, _ := d.pk.Encrypt(rs, new(saferith.Nat).SetUint64(17))
	c2, _ := d.pk.Encrypt(rs, new(saferith.Nat).SetUint64(25))
	sum := d.pk.AddCipherCipher(c1, c2)

	plaintext, err := threshold.Combine(d.pk, d.partials(sum, 0, 2, 4))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), plaintext.Big().Uint64())
}

// S3: scalar multiplication.
func TestScenarioScalarMul(t *testing.T) {
	d := deal(t, testBits, 3, 5)
	rs, err := drbg.New()
	require.NoError(t, err)

	c, _ := d.pk.Encrypt(rs, new(saferith.Nat).SetUint64(6))
	scaled := d.pk.MulCipherPlain(c, new(saferith.Nat).SetUint64(7))

	plaintext, err := threshold.Combine(d.pk, d.partials(scaled, 1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), plaintext.Big().Uint64())
}

// S4: under-quorum combination does not recover the plaintext.
func TestScenarioUnderQuorum(t *testing.T) {
	d := deal(t, testBits, 3, 5)
	rs, err := drbg.New()
	require.NoError(t, err)

	mismatches := 0
	for i := 0; i < 50; i++ {
		m := uint64(i + 1)
		ct, _ := d.pk.Encrypt(rs, new(saferith.Nat).SetUint64(m))

		plaintext, err := threshold.Combine(d.pk, d.partials(ct, 0, 1))
		require.NoError(t, err)
		if plaintext.Big().Uint64() != m {
			mismatches++
		}
	}
	assert.Equal(t, 50, mismatches, "combining fewer than w shares should never recover the plaintext")
}

// S5: every w-subset of l servers recovers the same plaintext.
func TestScenarioSubsetInvariance(t *testing.T) {
	d := deal(t, testBits, 3, 5)
	rs, err := drbg.New()
	require.NoError(t, err)

	m := new(saferith.Nat).SetUint64(42)
	ct, _ := d.pk.Encrypt(rs, m)

	subsets := [][]int{
		{0, 1, 2}, {0, 1, 3}, {0, 1, 4}, {0, 2, 3}, {0, 2, 4},
		{0, 3, 4}, {1, 2, 3}, {1, 2, 4}, {1, 3, 4}, {2, 3, 4},
	}
	for _, s := range subsets {
		plaintext, err := threshold.Combine(d.pk, d.partials(ct, s...))
		require.NoError(t, err)
		assert.Equal(t, uint64(42), plaintext.Big().Uint64())
	}
}

// S6: reencryption hides the original ciphertext value but preserves the
// plaintext.
func TestScenarioReencryptHidesOriginal(t *testing.T) {
	d := deal(t, testBits, 3, 5)
	rs, err := drbg.New()
	require.NoError(t, err)

	m := new(saferith.Nat).SetUint64(42)
	ct, _ := d.pk.Encrypt(rs, m)
	reenc := d.pk.Reencrypt(rs, ct)

	assert.False(t, ct.Equal(reenc))

	plaintext, err := threshold.Combine(d.pk, d.partials(reenc, 0, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), plaintext.Big().Uint64())
}

// Edge cases: m = 0, m = n-1, l = w, w = 1.
func TestEdgeCasePlaintextZero(t *testing.T) {
	d := deal(t, testBits, 3, 5)
	rs, err := drbg.New()
	require.NoError(t, err)

	ct, _ := d.pk.Encrypt(rs, new(saferith.Nat).SetUint64(0))
	plaintext, err := threshold.Combine(d.pk, d.partials(ct, 0, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), plaintext.Big().Uint64())
}

func TestEdgeCasePlaintextNMinusOne(t *testing.T) {
	d := deal(t, testBits, 3, 5)
	rs, err := drbg.New()
	require.NoError(t, err)

	one := new(saferith.Nat).SetUint64(1)
	nMinusOne := new(saferith.Nat).ModSub(new(saferith.Nat).SetUint64(0), one, d.pk.N().Modulus)

	ct, _ := d.pk.Encrypt(rs, nMinusOne)
	plaintext, err := threshold.Combine(d.pk, d.partials(ct, 2, 3, 4))
	require.NoError(t, err)

	_, eq, _ := plaintext.Cmp(nMinusOne)
	assert.EqualValues(t, 1, eq)
}

func TestEdgeCaseUniqueQuorum(t *testing.T) {
	// l = w: every server must take part.
	d := deal(t, testBits, 4, 4)
	rs, err := drbg.New()
	require.NoError(t, err)

	ct, _ := d.pk.Encrypt(rs, new(saferith.Nat).SetUint64(42))
	plaintext, err := threshold.Combine(d.pk, d.partials(ct, 0, 1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), plaintext.Big().Uint64())
}

func TestEdgeCaseTrivialSharing(t *testing.T) {
	// w = 1: a single server suffices.
	d := deal(t, testBits, 1, 3)
	rs, err := drbg.New()
	require.NoError(t, err)

	ct, _ := d.pk.Encrypt(rs, new(saferith.Nat).SetUint64(42))
	plaintext, err := threshold.Combine(d.pk, d.partials(ct, 1))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), plaintext.Big().Uint64())
}

func TestEdgeCaseCorruptedShareNeverPanics(t *testing.T) {
	d := deal(t, testBits, 3, 5)
	rs, err := drbg.New()
	require.NoError(t, err)

	ct, _ := d.pk.Encrypt(rs, new(saferith.Nat).SetUint64(42))
	parts := d.partials(ct, 0, 1, 2)

	// Replace server 1's contribution with one derived from a bogus share,
	// simulating a malicious or corrupted AuthServer. Combine must either
	// return a wrong plaintext or a clean InvertError - never crash.
	bogus := threshold.NewAuthServer()
	bogus.Set(new(saferith.Nat).SetUint64(999999937), 1)
	parts[1] = bogus.PartialDecrypt(d.pk, ct)

	assert.NotPanics(t, func() {
		plaintext, err := threshold.Combine(d.pk, parts)
		if err == nil {
			assert.NotEqual(t, uint64(42), plaintext.Big().Uint64())
		} else {
			assert.ErrorIs(t, err, threshold.ErrInvert)
		}
	})
}
