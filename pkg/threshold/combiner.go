package threshold

import (
	"math/big"
	"sort"

	"github.com/cronokirby/saferith"

	"github.com/Tiehuis/libhcs-go/pkg/arith"
	"github.com/Tiehuis/libhcs-go/pkg/paillier"
)

// Combine reconstructs the plaintext from a set of partial decryptions via
// integer Lagrange interpolation at 0, using the Δ=l! trick to keep every
// coefficient an exact integer.
//
// A nil entry, or one whose value is zero, marks an absent server and is
// skipped. shares must contain at least w present entries for the result to
// be meaningful;
// Combine does not check this itself (callers and wrapping protocols must),
// matching the combiner this was derived from - with fewer than w shares
// present the call still returns a value, just not the real plaintext.
// Combine is order-independent: the result does not depend on the order of
// shares.
//
// The signed Lagrange-coefficient bookkeeping below uses math/big rather
// than the saferith engine used everywhere else in this module: these
// coefficients are public, derived only from server identities (never from
// secret shares), and math/big's Quo/Neg/Abs map directly onto the
// truncated-division, negate, and absolute-value steps the coefficient
// computation performs.
func Combine(pk *paillier.PublicKey, shares []*PartialDecryption) (*saferith.Nat, error) {
	present := make(map[int]*PartialDecryption, len(shares))
	indices := make([]int, 0, len(shares))
	for _, s := range shares {
		if s == nil || s.value == nil || s.value.EqZero() == 1 {
			continue
		}
		present[s.index] = s
		indices = append(indices, s.index)
	}
	sort.Ints(indices)

	n2 := pk.NSquared()
	deltaBig := pk.Delta().Big()

	acc := new(saferith.Nat).SetUint64(1)
	for _, i := range indices {
		ci := present[i]

		lambda := new(big.Int).Set(deltaBig)
		for _, j := range indices {
			if j == i {
				continue
			}
			v := j - i
			av := v
			if av < 0 {
				av = -av
			}
			lambda.Quo(lambda, big.NewInt(int64(av)))
			if v < 0 {
				lambda.Neg(lambda)
			}
			lambda.Mul(lambda, big.NewInt(int64(j+1)))
		}

		a := new(big.Int).Abs(lambda)
		twoA := new(big.Int).Lsh(a, 1)
		exponent := new(saferith.Nat).SetBig(twoA, twoA.BitLen())

		t := n2.Exp(ci.value, exponent)
		if lambda.Sign() < 0 {
			inv, err := arith.Invert(t, n2.Modulus)
			if err != nil {
				return nil, ErrInvert
			}
			t = inv
		}

		acc.ModMul(acc, t, n2.Modulus)
	}

	x := arith.L(acc, pk.N())

	deltaSquared := new(saferith.Nat).Mul(pk.Delta(), pk.Delta(), -1)
	four := new(saferith.Nat).SetUint64(4)
	k := new(saferith.Nat).Mul(four, deltaSquared, -1)

	kInv, err := arith.Invert(k, pk.N().Modulus)
	if err != nil {
		return nil, ErrInvert
	}

	result := new(saferith.Nat).ModMul(x, kInv, pk.N().Modulus)
	return result, nil
}
