package paillier

import (
	"github.com/cronokirby/saferith"

	"github.com/Tiehuis/libhcs-go/pkg/drbg"
)

// Ciphertext is an element of (ℤ/n²ℤ)*. It carries no identity beyond its
// numeric value - two ciphertexts with equal value are indistinguishable,
// even if produced by different encryption calls.
type Ciphertext struct {
	c *saferith.Nat
}

// Nat returns the raw ciphertext value. The returned value must not be
// mutated.
func (ct *Ciphertext) Nat() *saferith.Nat { return ct.c }

// Equal reports whether ct and other carry the same value mod n².
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	_, eq, _ := ct.c.Cmp(other.c)
	return eq == 1
}

// Clone returns a copy of ct that shares no backing storage.
func (ct *Ciphertext) Clone() *Ciphertext {
	return &Ciphertext{c: new(saferith.Nat).SetNat(ct.c)}
}

// Reencrypt multiplies ct by a freshly sampled ρⁿ, preserving the
// underlying plaintext while producing an unlinkable ciphertext value.
//
// c' = c · ρⁿ (mod n²)
func (pk *PublicKey) Reencrypt(rs *drbg.RandomState, ct *Ciphertext) *Ciphertext {
	rho := pk.Nonce(rs)
	rhoN := pk.nSquared.Exp(rho, pk.n.Nat())
	c := new(saferith.Nat).ModMul(ct.c, rhoN, pk.nSquared.Modulus)
	return &Ciphertext{c: c}
}

// AddCipherPlain homomorphically adds the plaintext m to the value
// encrypted by ct.
//
// c' = c · gᵐ (mod n²)
func (pk *PublicKey) AddCipherPlain(ct *Ciphertext, m *saferith.Nat) *Ciphertext {
	gm := pk.nSquared.Exp(pk.g, m)
	c := new(saferith.Nat).ModMul(ct.c, gm, pk.nSquared.Modulus)
	return &Ciphertext{c: c}
}

// AddCipherCipher homomorphically adds the two encrypted values together.
//
// c' = c₁ · c₂ (mod n²)
func (pk *PublicKey) AddCipherCipher(ct1, ct2 *Ciphertext) *Ciphertext {
	c := new(saferith.Nat).ModMul(ct1.c, ct2.c, pk.nSquared.Modulus)
	return &Ciphertext{c: c}
}

// MulCipherPlain homomorphically multiplies the encrypted value by the
// plaintext scalar m.
//
// c' = cᵐ (mod n²)
func (pk *PublicKey) MulCipherPlain(ct *Ciphertext, m *saferith.Nat) *Ciphertext {
	c := pk.nSquared.Exp(ct.c, m)
	return &Ciphertext{c: c}
}
