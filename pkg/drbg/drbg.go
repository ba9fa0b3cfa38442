// Package drbg provides the seeded random-state abstraction consumed by
// every probabilistic operation in pkg/paillier, pkg/sharing and
// pkg/threshold.
//
// A RandomState wraps a sha3.ShakeHash: a 256-bit seed is drawn from the
// operating system's entropy source once at construction (and again on
// Reseed), after which the XOF is read as an arbitrarily long pseudorandom
// byte stream. This is the same pattern pkg/hash.Hash uses to turn a
// sha3.ShakeHash into an io.Reader, applied here to randomness instead of
// a transcript.
package drbg

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
)

// SeedBits is the number of bits of OS entropy drawn per seed/reseed.
const SeedBits = 256

const seedBytes = SeedBits / 8

// domain separates this DRBG's cSHAKE instances from any other user of
// SHAKE in the process.
const domain = "libhcs/drbg"

// Error is the closed set of failures this package can raise.
type Error string

func (e Error) Error() string { return fmt.Sprintf("drbg: %s", string(e)) }

// ErrEntropy is returned when the OS entropy source refuses or short-reads.
const ErrEntropy Error = "failed to read entropy from operating system"

// RandomState is a stateful PRNG handle. It is not safe for concurrent use:
// callers needing parallelism must construct one RandomState per goroutine.
type RandomState struct {
	xof sha3.ShakeHash
}

// New allocates a RandomState and seeds it with SeedBits of OS entropy.
func New() (*RandomState, error) {
	rs := &RandomState{xof: sha3.NewCShake128(nil, []byte(domain))}
	if err := rs.Reseed(); err != nil {
		return nil, err
	}
	return rs, nil
}

// Reseed draws a fresh 256-bit seed from the OS and replaces the XOF state
// with a new sponge absorbing both that seed and a block drained from the
// old one. A sha3.ShakeHash panics if written to after it has been read
// from, so a live RandomState cannot be reseeded by writing into its
// existing sponge once squeezing has started; building a fresh cSHAKE128
// instance each time sidesteps that restriction while still folding the
// prior state's output in, so a reseed never loses entropy relative to the
// state before the call.
func (rs *RandomState) Reseed() error {
	seed := make([]byte, seedBytes)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return ErrEntropy
	}

	old := make([]byte, seedBytes)
	if rs.xof != nil {
		if _, err := rs.xof.Read(old); err != nil {
			return ErrEntropy
		}
	}

	fresh := sha3.NewCShake128(nil, []byte(domain))
	if _, err := fresh.Write(old); err != nil {
		return ErrEntropy
	}
	if _, err := fresh.Write(seed); err != nil {
		return ErrEntropy
	}
	rs.xof = fresh
	return nil
}

// Read implements io.Reader by draining pseudorandom bytes from the XOF.
// RandomState is therefore usable directly anywhere an io.Reader of
// randomness is expected.
func (rs *RandomState) Read(p []byte) (int, error) {
	return rs.xof.Read(p)
}
