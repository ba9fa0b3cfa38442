// Package sharing builds and evaluates the degree-(w-1) polynomial the
// trusted dealer uses to split a Paillier private key into l shares, any w
// of which suffice to reconstruct a decryption.
package sharing

import (
	"github.com/cronokirby/saferith"

	"github.com/Tiehuis/libhcs-go/pkg/drbg"
	"github.com/Tiehuis/libhcs-go/pkg/paillier"
	"github.com/Tiehuis/libhcs-go/pkg/pool"
	"github.com/Tiehuis/libhcs-go/pkg/sample"
)

// Polynomial is f(x) = c0 + c1*x + ... + c_{w-1}*x^(w-1), with coefficients
// in ℤ/(n·m)ℤ and c0 equal to the dealer's secret d. It exists only during
// the dealing phase: once every AuthServer has its share, the dealer calls
// Destroy and discards it.
type Polynomial struct {
	coeffs  []*saferith.Nat
	modulus *saferith.Modulus
}

// Build draws a fresh random polynomial whose constant term is sk's secret
// d, with the remaining w-1 coefficients sampled uniformly from ℤ/(n·m)ℤ.
func Build(rs *drbg.RandomState, sk *paillier.PrivateKey) *Polynomial {
	w := sk.W()
	modulus := sk.NM().Modulus

	coeffs := make([]*saferith.Nat, w)
	coeffs[0] = new(saferith.Nat).SetNat(sk.D())
	for i := 1; i < w; i++ {
		coeffs[i] = sample.Uniform(rs, modulus)
	}

	return &Polynomial{coeffs: coeffs, modulus: modulus}
}

// Evaluate computes the share for the 0-based server index i: y = f(i+1).
// The polynomial is never evaluated at 0, since f(0) = d would hand the
// dealer's secret directly to a server.
func (p *Polynomial) Evaluate(i int) *saferith.Nat {
	x := new(saferith.Nat).SetUint64(uint64(i + 1))

	result := new(saferith.Nat).SetUint64(0)
	for k := len(p.coeffs) - 1; k >= 0; k-- {
		result.ModMul(result, x, p.modulus)
		result.ModAdd(result, p.coeffs[k], p.modulus)
	}
	return result
}

// EvaluateAll computes the shares for all l auth servers, indices 0..l-1,
// in parallel via pl. A nil pl runs the evaluations serially on the
// current goroutine.
func (p *Polynomial) EvaluateAll(pl *pool.Pool, l int) []*saferith.Nat {
	raw := pl.Parallelize(l, func(i int) interface{} {
		return p.Evaluate(i)
	})
	shares := make([]*saferith.Nat, l)
	for i, r := range raw {
		shares[i] = r.(*saferith.Nat)
	}
	return shares
}

// Destroy zeroizes every coefficient, including the constant term carrying
// the dealer's secret d.
func (p *Polynomial) Destroy() {
	for _, c := range p.coeffs {
		c.SetUint64(0)
	}
}
