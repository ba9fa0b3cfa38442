package paillier

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"golang.org/x/sync/errgroup"

	"github.com/Tiehuis/libhcs-go/pkg/arith"
	"github.com/Tiehuis/libhcs-go/pkg/drbg"
	"github.com/Tiehuis/libhcs-go/pkg/sample"
)

// Error is the closed set of failures this package can raise.
type Error string

func (e Error) Error() string { return fmt.Sprintf("paillier: %s", string(e)) }

// ErrInvalidThreshold is returned by KeyGen when 0 < w <= l does not hold.
const ErrInvalidThreshold Error = "quorum w must satisfy 0 < w <= l"

// PrivateKey is the trusted dealer's transient state produced during key
// generation. It exists only for the lifetime of the dealing phase: once
// the polynomial built from D (its constant term) has been evaluated and
// its shares distributed to every AuthServer, the dealer destroys this
// value and retains nothing.
type PrivateKey struct {
	*PublicKey
	// m = p'*q', the sharing modulus's second factor (n is the first).
	m *saferith.Nat
	// nm = n*m, the modulus the sharing polynomial's coefficients live in.
	nm *arith.Modulus
	// d is the polynomial's constant term: d ≡ 1 (mod n), d ≡ 0 (mod m).
	d *saferith.Nat
}

// M returns p'*q'.
func (sk *PrivateKey) M() *saferith.Nat { return sk.m }

// NM returns the sharing modulus n*m.
func (sk *PrivateKey) NM() *arith.Modulus { return sk.nm }

// D returns the dealing polynomial's constant term.
func (sk *PrivateKey) D() *saferith.Nat { return sk.d }

// Destroy zeroizes the dealer's secret material. It is safe to call
// multiple times, and must be called once every share has been handed to
// its AuthServer.
func (sk *PrivateKey) Destroy() {
	if sk.d != nil {
		sk.d.SetUint64(0)
	}
	if sk.m != nil {
		sk.m.SetUint64(0)
	}
}

// KeyGen produces a new threshold Paillier key pair: a PublicKey usable by
// any party to encrypt, and a PrivateKey held by the trusted dealer only
// long enough to build and distribute shares from it.
//
// bits is the bit length of the public modulus n; w and l are the
// decryption quorum and total number of auth servers respectively, with
// 0 < w <= l required. For production use, bits should be at least 2048.
//
// The two safe-prime searches run concurrently, each owning its own
// RandomState seeded independently from OS entropy - mirroring the rule
// that a RandomState is single-owner and callers needing parallelism
// instantiate one per goroutine.
func KeyGen(bits, w, l int) (*PublicKey, *PrivateKey, error) {
	if w <= 0 || w > l {
		return nil, nil, ErrInvalidThreshold
	}

	primeBits := (bits + 1) / 2

	var p, pPrime, q, qPrime *saferith.Nat
	for {
		var eg errgroup.Group
		eg.Go(func() error {
			rs, err := drbg.New()
			if err != nil {
				return err
			}
			p, pPrime, err = sample.SafePrime(rs, primeBits)
			return err
		})
		eg.Go(func() error {
			rs, err := drbg.New()
			if err != nil {
				return err
			}
			q, qPrime, err = sample.SafePrime(rs, primeBits)
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, nil, err
		}
		if p.Eq(q) != 1 {
			break
		}
	}

	one := new(saferith.Nat).SetUint64(1)
	zero := new(saferith.Nat).SetUint64(0)

	// n and n² are built unfactored: PublicKey is shared freely with
	// encryptors, auth servers and the combiner, none of whom may learn p
	// or q, so the CRT-accelerated form of arith.Modulus (which stores the
	// factorization) is never appropriate here even though the dealer
	// knows p and q at this point.
	nNat := new(saferith.Nat).Mul(p, q, -1)
	n := arith.ModulusFromN(saferith.ModulusFromNat(nNat))
	nSquaredNat := new(saferith.Nat).Mul(nNat, nNat, -1)
	nSquared := arith.ModulusFromN(saferith.ModulusFromNat(nSquaredNat))

	g := new(saferith.Nat).Add(n.Nat(), one, -1)
	delta := arith.Factorial(l)

	mNat := new(saferith.Nat).Mul(pPrime, qPrime, -1)
	nmNat := new(saferith.Nat).Mul(n.Nat(), mNat, -1)
	nm := arith.ModulusFromN(saferith.ModulusFromNat(nmNat))

	d := arith.TwoModulusCRT(one, n.Nat(), zero, mNat)

	pk := &PublicKey{
		n:        n,
		nSquared: nSquared,
		g:        g,
		delta:    delta,
		l:        l,
		w:        w,
	}
	sk := &PrivateKey{
		PublicKey: pk,
		m:         mNat,
		nm:        nm,
		d:         d,
	}
	return pk, sk, nil
}
