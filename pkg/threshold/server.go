// Package threshold implements the per-server partial decryption and the
// share-combination step that together let any quorum of w auth servers
// jointly decrypt a Paillier ciphertext without ever reconstructing the
// dealer's private key.
package threshold

import (
	"fmt"

	"github.com/cronokirby/saferith"

	"github.com/Tiehuis/libhcs-go/pkg/paillier"
)

// Error is the closed set of failures this package can raise.
type Error string

func (e Error) Error() string { return fmt.Sprintf("threshold: %s", string(e)) }

// ErrInvert is returned by Combine when a required modular inverse does not
// exist - the hallmark of a corrupted or malformed share.
const ErrInvert Error = "required modular inverse does not exist"

// AuthServer holds one share sᵢ of the dealer's split private key, along
// with the server's identity i. It is long-lived: unlike PrivateKey and
// Polynomial, an AuthServer persists for the life of the deployment, and
// sᵢ is its long-term secret.
type AuthServer struct {
	i  int
	si *saferith.Nat
}

// NewAuthServer allocates an uninitialized auth server. Call Set before
// using it to partially decrypt anything.
func NewAuthServer() *AuthServer {
	return &AuthServer{}
}

// Set installs the share sᵢ and 0-based identity i produced by the dealer's
// Polynomial.Evaluate(i).
func (au *AuthServer) Set(si *saferith.Nat, i int) {
	au.si = new(saferith.Nat).SetNat(si)
	au.i = i
}

// Index returns the server's 0-based identity.
func (au *AuthServer) Index() int { return au.i }

// PartialDecrypt computes this server's contribution toward decrypting ct:
//
//	cᵢ = c^(2·Δ·sᵢ) (mod n²)
func (au *AuthServer) PartialDecrypt(pk *paillier.PublicKey, ct *paillier.Ciphertext) *PartialDecryption {
	exponent := new(saferith.Nat).Mul(pk.Delta(), au.si, -1)
	exponent.Mul(exponent, new(saferith.Nat).SetUint64(2), -1)

	value := pk.NSquared().Exp(ct.Nat(), exponent)
	return &PartialDecryption{index: au.i, value: value}
}

// Destroy zeroizes this server's share. It is safe to call multiple times.
func (au *AuthServer) Destroy() {
	if au.si != nil {
		au.si.SetUint64(0)
	}
}

// PartialDecryption is one AuthServer's contribution toward decrypting a
// specific ciphertext, tagged with the identity that produced it.
type PartialDecryption struct {
	index int
	value *saferith.Nat
}

// Index returns the 0-based identity of the server that produced this
// partial decryption.
func (pd *PartialDecryption) Index() int { return pd.index }

// Value returns the raw contribution cᵢ (mod n²).
func (pd *PartialDecryption) Value() *saferith.Nat { return pd.value }
