package field

import (
	"fmt"
	"math/big"
)

// PrimeFactors returns the prime factorization of x as parallel slices of
// primes (ascending) and their multiplicities. x must be at least 2.
func PrimeFactors(x uint64) ([]uint64, []int, error) {
	if x < 2 {
		return nil, nil, fmt.Errorf("%w: cannot factor %d", ErrInvalidValue, x)
	}

	var primes []uint64
	var powers []int
	add := func(p uint64, k int) {
		primes = append(primes, p)
		powers = append(powers, k)
	}

	for _, p := range []uint64{2, 3} {
		if k := strip(&x, p); k > 0 {
			add(p, k)
		}
	}

	// Trial division by candidates of the form 6i +/- 1, stopping early once
	// the cofactor is prime.
	done := x == 1 || isProbablePrime(x)
	for d := uint64(5); !done && d <= x/d; d += 6 {
		found := false
		for _, c := range []uint64{d, d + 2} {
			if k := strip(&x, c); k > 0 {
				add(c, k)
				found = true
			}
		}
		if found {
			done = x == 1 || isProbablePrime(x)
		}
	}
	if x > 1 {
		add(x, 1)
	}

	return primes, powers, nil
}

// IsPrime reports whether x is prime.
func IsPrime(x uint64) bool {
	if x < 2 {
		return false
	}
	return isProbablePrime(x)
}

func strip(x *uint64, p uint64) int {
	k := 0
	for *x%p == 0 {
		*x /= p
		k++
	}
	return k
}

// isProbablePrime is exact for 64-bit inputs: ProbablyPrime applies a
// Baillie-PSW test, which has no known counterexamples below 2^64.
func isProbablePrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// primePower splits q = p^m, failing when q is not a prime power.
func primePower(q uint64) (uint64, uint64, error) {
	primes, powers, err := PrimeFactors(q)
	if err != nil {
		return 0, 0, err
	}
	if len(primes) != 1 {
		return 0, 0, fmt.Errorf("%w: field order %d is not a prime power", ErrInvalidValue, q)
	}
	return primes[0], uint64(powers[0]), nil
}
