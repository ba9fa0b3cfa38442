package arith

import (
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

// Error is the closed set of failures this package can raise.
type Error string

func (e Error) Error() string { return fmt.Sprintf("arith: %s", string(e)) }

// ErrNotInvertible is returned by Invert when a has no inverse mod m.
const ErrNotInvertible Error = "value has no inverse modulo m"

// Invert returns a⁻¹ (mod m), or ErrNotInvertible if gcd(a, m) != 1. The
// threshold combiner uses it for the per-share inversion mod n² and for
// (4·Δ²)⁻¹ mod n, and reports a failure of either as a malformed share.
func Invert(a *saferith.Nat, m *saferith.Modulus) (*saferith.Nat, error) {
	if a.IsUnit(m) != 1 {
		return nil, ErrNotInvertible
	}
	return new(saferith.Nat).ModInverse(a, m), nil
}

// Factorial returns l! as a saferith.Nat, grounded in libhcs's use of GMP's
// mpz_fac_ui to compute Δ = l! for the w-out-of-l threshold scheme.
func Factorial(l int) *saferith.Nat {
	acc := big.NewInt(1)
	term := new(big.Int)
	for i := 2; i <= l; i++ {
		term.SetInt64(int64(i))
		acc.Mul(acc, term)
	}
	return new(saferith.Nat).SetBig(acc, acc.BitLen())
}

// L implements the Paillier decryption reduction L(x) = (x-1)/n, valid only
// when x ≡ 1 (mod n). n here is the public modulus, not n² - the quotient
// is always taken with respect to the first power.
//
// This mirrors the static dlog_s helper in libhcs's pcs.c: compute x-1,
// divide exactly by n, and reduce the quotient mod n. The division is exact
// by construction (the threshold decryption invariant guarantees x ≡ 1 mod
// n before L is ever applied), so plain integer division is correct here,
// not just an approximation.
func L(x *saferith.Nat, n *Modulus) *saferith.Nat {
	xBig := x.Big()
	one := big.NewInt(1)
	xBig.Sub(xBig, one)
	nBig := n.Nat().Big()
	xBig.Div(xBig, nBig)
	xBig.Mod(xBig, nBig)
	return new(saferith.Nat).SetBig(xBig, n.BitLen())
}

// TwoModulusCRT recombines a value known mod p and mod q (with p, q
// coprime) into its unique representative mod p*q, via
//
//	x = xp + p * ((xq - xp) * p⁻¹ mod q)
//
// This is the two-modulus case of libhcs's mpz_2crt, used during key
// generation to build the dealer's secret d from its residues 1 mod n and
// 0 mod m, and is general enough to reuse for any coprime modulus pair.
func TwoModulusCRT(xp, p, xq, q *saferith.Nat) *saferith.Nat {
	qMod := saferith.ModulusFromNat(q)
	pInvQ := new(saferith.Nat).ModInverse(p, qMod)

	diff := new(saferith.Nat).ModSub(xq, xp, qMod)
	diff.ModMul(diff, pInvQ, qMod)

	pq := new(saferith.Nat).Mul(p, q, -1)
	pqMod := saferith.ModulusFromNat(pq)

	term := new(saferith.Nat).Mul(p, diff, -1)
	term.Mod(term, pqMod)
	result := new(saferith.Nat).ModAdd(xp, term, pqMod)
	return result
}
