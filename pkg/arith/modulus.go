// Package arith holds the number-theoretic machinery the threshold Paillier
// scheme is built from: a CRT-accelerated modulus type, the two-modulus CRT
// combine used to build the dealer's secret d, a factorial for Δ = l!, the
// Paillier L(x) = (x-1)/n reduction, and modular inversion.
package arith

import (
	"github.com/cronokirby/saferith"
)

// Modulus wraps a saferith.Modulus and enables faster modular exponentiation
// when the factorization is known: xᵉ (mod n) can be computed with two
// exponentiations mod p and mod q respectively, combined via CRT, instead of
// one exponentiation mod the (much larger) n.
//
// pkg/paillier deliberately does not use the factored form for n or n²: both
// live on the shared PublicKey, so storing p or q alongside either would
// leak exactly the secret a threshold scheme exists to keep split across
// shares, even though the dealer briefly knows p and q during KeyGen. The
// accelerated form exists here as general-purpose infrastructure for a
// caller that holds a modulus's factorization privately and never shares
// the modulus value itself; ModulusFromN and ModulusFromFactors produce
// interchangeable values from the caller's perspective, so adopting the
// accelerated form later is a drop-in change, not a rewrite.
type Modulus struct {
	*saferith.Modulus
	// p, q such that n = p*q.
	p, q *saferith.Modulus
	// pNat is p as a Nat, pInv = p⁻¹ (mod q).
	pNat, pInv *saferith.Nat
}

// ModulusFromN wraps a plain modulus with no known factorization.
func ModulusFromN(n *saferith.Modulus) *Modulus {
	return &Modulus{Modulus: n}
}

// ModulusFromFactors builds the accelerated form of n = p*q.
func ModulusFromFactors(p, q *saferith.Nat) *Modulus {
	nNat := new(saferith.Nat).Mul(p, q, -1)
	nMod := saferith.ModulusFromNat(nNat)
	pMod := saferith.ModulusFromNat(p)
	qMod := saferith.ModulusFromNat(q)
	pInvQ := new(saferith.Nat).ModInverse(p, qMod)
	pNat := new(saferith.Nat).SetNat(p)
	return &Modulus{
		Modulus: nMod,
		p:       pMod,
		q:       qMod,
		pNat:    pNat,
		pInv:    pInvQ,
	}
}

func (n Modulus) hasFactorization() bool {
	return n.p != nil && n.q != nil && n.pNat != nil && n.pInv != nil
}

// Exp returns xᵉ (mod n), taking the CRT shortcut when the factorization is
// known.
func (n *Modulus) Exp(x, e *saferith.Nat) *saferith.Nat {
	if n.hasFactorization() {
		var xp, xq saferith.Nat
		xp.Exp(x, e, n.p)
		xq.Exp(x, e, n.q)
		r := xq.ModSub(&xq, &xp, n.Modulus)
		r.ModMul(r, n.pInv, n.Modulus)
		r.ModMul(r, n.pNat, n.Modulus)
		r.ModAdd(r, &xp, n.Modulus)
		return r
	}
	return new(saferith.Nat).Exp(x, e, n.Modulus)
}

// ExpI returns xᵉ (mod n) for a signed exponent e, inverting the base when
// e is negative.
func (n *Modulus) ExpI(x *saferith.Nat, e *saferith.Int) *saferith.Nat {
	if n.hasFactorization() {
		y := n.Exp(x, e.Abs())
		inverted := new(saferith.Nat).ModInverse(y, n.Modulus)
		y.CondAssign(e.IsNegative(), inverted)
		return y
	}
	return new(saferith.Nat).ExpI(x, e, n.Modulus)
}
