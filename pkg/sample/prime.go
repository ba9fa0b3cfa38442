package sample

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"sync"

	"github.com/cronokirby/saferith"

	"github.com/Tiehuis/libhcs-go/pkg/drbg"
)

// primes generates an array containing all the odd prime numbers < below.
func primes(below uint32) []uint32 {
	sieve := make([]bool, below)
	for i := 2; i < len(sieve); i++ {
		sieve[i] = true
	}
	for p := 2; p*p < len(sieve); p++ {
		if !sieve[p] {
			continue
		}
		for i := p << 1; i < len(sieve); i += p {
			sieve[i] = false
		}
	}
	nF := float64(below)
	out := make([]uint32, 0, int(nF/math.Log(nF)))
	for p := uint32(3); p < below; p++ {
		if sieve[p] {
			out = append(out, p)
		}
	}
	return out
}

// sieveSize is the number of candidates to check after our initial guess.
const sieveSize = 1 << 18

// primeBound is the upper bound on the trial-division prime table.
const primeBound = 1 << 20

// safePrimalityIterations is the number of Miller-Rabin rounds used when
// checking the primality of a candidate and of (candidate-1)/2. 20 is the
// same number Go's own math/big.ProbablyPrime recommends for untrusted
// input.
const safePrimalityIterations = 20

var thePrimes []uint32
var initPrimes sync.Once

var sievePool = sync.Pool{
	New: func() interface{} {
		sieve := make([]bool, sieveSize)
		return &sieve
	},
}

// trySafePrime draws one candidate of the requested bit length and returns
// p if p = 2p'+1 with both prime, or nil if the candidate (and its sieved
// neighbourhood) didn't pan out.
//
// Adapted from pkg/math/sample/prime.go's tryBlumPrime: that function
// additionally forces p ≡ 3 (mod 4), the defining property of a "Blum"
// prime. For any safe prime p > 5, this is already implied by p = 2q+1
// with q an odd prime, so the sieve here produces exactly the same
// candidates while documenting what we actually need: safe primes, not
// Blum primes.
func trySafePrime(rs *drbg.RandomState, bits int) *saferith.Nat {
	initPrimes.Do(func() {
		thePrimes = primes(primeBound)
	})

	bytes := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rs, bytes); err != nil {
		return nil
	}

	// Force p ≡ 3 (mod 4): the least significant two bits set.
	bytes[len(bytes)-1] |= 3
	// Force the top two bits set, so that p·q always has exactly 2*bits bits.
	bytes[0] |= 0xC0
	base := new(big.Int).SetBytes(bytes)

	sievePtr := sievePool.Get().(*[]bool)
	sieve := *sievePtr
	defer sievePool.Put(sievePtr)
	for i := range sieve {
		sieve[i] = true
	}
	// Exclude candidates not ≡ 3 (mod 4): base is already 3 mod 4, and we
	// step by 4, so only delta ≡ 0 (mod 4) keeps that congruence - the
	// other three residues mod 4 are therefore never safe primes.
	for i := 1; i+2 < len(sieve); i += 4 {
		sieve[i] = false
		sieve[i+1] = false
		sieve[i+2] = false
	}

	remainder := new(big.Int)
	for _, prime := range thePrimes {
		remainder.SetUint64(uint64(prime))
		remainder.Mod(base, remainder)
		r := int(remainder.Uint64())
		primeInt := int(prime)
		firstMultiple := primeInt - r
		if r == 0 {
			firstMultiple = 0
		}
		// If x ≡ 0 (mod prime), x isn't prime; if x ≡ 1 (mod prime),
		// (x-1)/2 ≡ 0 (mod prime), so x can't be a safe prime either.
		for i := firstMultiple; i+1 < len(sieve); i += primeInt {
			sieve[i] = false
			sieve[i+1] = false
		}
	}

	p := new(big.Int)
	q := new(big.Int)
	for delta := 0; delta < len(sieve); delta++ {
		if !sieve[delta] {
			continue
		}
		p.SetUint64(uint64(delta))
		p.Add(p, base)
		if p.BitLen() > bits {
			return nil
		}
		q.Rsh(p, 1)
		if !q.ProbablyPrime(safePrimalityIterations) {
			continue
		}
		if !p.ProbablyPrime(0) {
			continue
		}
		return new(saferith.Nat).SetBig(p, bits)
	}
	return nil
}

// maxPrimeIterations bounds retries when searching for a safe prime:
// larger than maxIterations, because safe primes are far sparser than
// ordinary primes.
const maxPrimeIterations = 100_000

// ErrMaxPrimeIterations is returned when SafePrime fails to find a
// candidate within its iteration budget.
var ErrMaxPrimeIterations = fmt.Errorf("sample: failed to generate a safe prime after %d attempts", maxPrimeIterations)

// SafePrime returns p of the given bit length such that p = 2p'+1 with
// p' also prime, along with p' itself. Both are verified via a
// probabilistic (Miller-Rabin) primality test.
func SafePrime(rs *drbg.RandomState, bits int) (p, pPrime *saferith.Nat, err error) {
	for i := 0; i < maxPrimeIterations; i++ {
		candidate := trySafePrime(rs, bits)
		if candidate == nil {
			continue
		}
		pBig := candidate.Big()
		qBig := new(big.Int).Rsh(pBig, 1)
		return candidate, new(saferith.Nat).SetBig(qBig, bits-1), nil
	}
	return nil, nil, ErrMaxPrimeIterations
}
