// Package sample draws uniformly-distributed values needed by the Paillier
// threshold scheme: elements of ℤ/nℤ, elements of (ℤ/nℤ)*, and safe primes.
//
// Every function takes an explicit *drbg.RandomState rather than reaching
// for a package-level generator, mirroring pkg/math/sample's convention of
// threading an io.Reader through every call.
package sample

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"

	"github.com/Tiehuis/libhcs-go/pkg/drbg"
)

const maxIterations = 255

// ErrMaxIterations is the value this package panics with when reading from
// the RandomState fails maxIterations times in a row, or when UnitModN draws
// maxIterations candidates none of which is a unit. In practice this only
// happens if the RandomState itself is broken, since the density of units
// mod n (or of values < n within a slightly larger byte buffer) is never
// small enough to make this a realistic outcome otherwise.
var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func mustReadBits(rs *drbg.RandomState, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rs, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// Uniform samples an element of ℤ/nℤ, i.e. r ∈ [0, n).
func Uniform(rs *drbg.RandomState, n *saferith.Modulus) *saferith.Nat {
	out := new(saferith.Nat)
	buf := make([]byte, (n.BitLen()+7)/8)
	for {
		mustReadBits(rs, buf)
		out.SetBytes(buf)
		_, _, lt := out.CmpMod(n)
		if lt == 1 {
			return out
		}
	}
}

// UnitModN samples r ∈ (ℤ/nℤ)*, by repeated rejection sampling of Uniform
// until the result is coprime to n.
func UnitModN(rs *drbg.RandomState, n *saferith.Modulus) *saferith.Nat {
	for i := 0; i < maxIterations; i++ {
		r := Uniform(rs, n)
		if r.IsUnit(n) == 1 {
			return r
		}
	}
	panic(ErrMaxIterations)
}
