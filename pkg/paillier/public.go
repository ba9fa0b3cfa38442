// Package paillier implements the Paillier cryptosystem used by the
// threshold scheme: key generation over safe-prime moduli, probabilistic
// encryption, and the ciphertext-level homomorphic operations the additive
// scheme is built from. Partial decryption and share combination, which
// require the dealer's split secret, live in pkg/threshold.
package paillier

import (
	"github.com/cronokirby/saferith"

	"github.com/Tiehuis/libhcs-go/pkg/arith"
	"github.com/Tiehuis/libhcs-go/pkg/drbg"
	"github.com/Tiehuis/libhcs-go/pkg/sample"
)

// PublicKey is the public half of a threshold Paillier key. It is immutable
// once constructed and safe to share freely across goroutines.
type PublicKey struct {
	// n = p*q.
	n *arith.Modulus
	// nSquared = n².
	nSquared *arith.Modulus
	// g = n+1, the canonical generator used by Encrypt/EncryptWithRandomness.
	g *saferith.Nat
	// delta = l!, used by partial decryption and share combination.
	delta *saferith.Nat
	// l is the total number of auth servers, w the decryption quorum.
	l, w int
}

// N returns n = p*q. The returned value must not be mutated.
func (pk *PublicKey) N() *arith.Modulus { return pk.n }

// NSquared returns n². The returned value must not be mutated.
func (pk *PublicKey) NSquared() *arith.Modulus { return pk.nSquared }

// G returns the generator g = n+1.
func (pk *PublicKey) G() *saferith.Nat { return pk.g }

// Delta returns Δ = l!.
func (pk *PublicKey) Delta() *saferith.Nat { return pk.delta }

// L returns the total number of auth servers.
func (pk *PublicKey) L() int { return pk.l }

// W returns the decryption quorum.
func (pk *PublicKey) W() int { return pk.w }

// Equal reports whether pk and other share the same modulus.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	_, eq, _ := pk.n.Nat().Cmp(other.n.Nat())
	return eq == 1
}

// Nonce samples a fresh encryption nonce ρ ∈ (ℤ/nℤ)*.
func (pk *PublicKey) Nonce(rs *drbg.RandomState) *saferith.Nat {
	return sample.UnitModN(rs, pk.n.Modulus)
}

// Encrypt returns a fresh probabilistic encryption of m under pk, sampling
// its own nonce. The nonce used is returned alongside the ciphertext so
// callers that need it (e.g. for a later proof) don't have to re-derive it.
//
// c = gᵐ · ρⁿ (mod n²)
func (pk *PublicKey) Encrypt(rs *drbg.RandomState, m *saferith.Nat) (*Ciphertext, *saferith.Nat) {
	rho := pk.Nonce(rs)
	return pk.EncryptWithRandomness(rho, m), rho
}

// EncryptWithRandomness is the deterministic variant of Encrypt, taking the
// nonce ρ as an explicit argument. It exists for callers (e.g. zero-
// knowledge proofs) that need control over the randomness used.
//
// c = gᵐ · ρⁿ (mod n²)
func (pk *PublicKey) EncryptWithRandomness(rho, m *saferith.Nat) *Ciphertext {
	gm := pk.nSquared.Exp(pk.g, m)
	rhoN := pk.nSquared.Exp(rho, pk.n.Nat())
	c := new(saferith.Nat).ModMul(gm, rhoN, pk.nSquared.Modulus)
	return &Ciphertext{c: c}
}
