package field

import (
	"fmt"
	"slices"
)

// BerlekampMassey returns the shortest linear-feedback shift register that
// generates seq: the connection polynomial
//
//	C(x) = 1 + c_1 x + ... + c_L x^L
//
// with s_n = -(c_1 s_{n-1} + ... + c_L s_{n-L}) for every n >= L, and its
// linear complexity L. For a BCH syndrome sequence C is the error-locator
// polynomial.
func BerlekampMassey(f *Field, seq []Element) (Poly, int, error) {
	for _, s := range seq {
		if !f.Contains(s) {
			return Poly{}, 0, fmt.Errorf("%w: %d is not in %s", ErrInvalidValue, s, f)
		}
	}

	// Ascending coefficients while iterating
	c := make([]Element, len(seq)+1)
	b := make([]Element, len(seq)+1)
	c[0], b[0] = 1, 1
	L, m := 0, 1
	last := Element(1)

	for n := range seq {
		d := seq[n]
		for i := 1; i <= L; i++ {
			d = f.Add(d, f.Mul(c[i], seq[n-i]))
		}
		if d == 0 {
			m++
			continue
		}

		coef := f.Mul(d, f.arith.reciprocal(last))
		prev := slices.Clone(c)
		for i := 0; i+m < len(c); i++ {
			c[i+m] = f.Sub(c[i+m], f.Mul(coef, b[i]))
		}
		if 2*L <= n {
			L = n + 1 - L
			b = prev
			last = d
			m = 1
		} else {
			m++
		}
	}

	sigma := slices.Clone(c[:L+1])
	slices.Reverse(sigma)
	return newPoly(f, sigma), L, nil
}

// ChienSearch returns, in increasing order, the exponents e in [0, q-1)
// for which sigma(primitive^-e) = 0. sigma is evaluated at primitive^i for
// every i by multiplying each term by a fixed power per step.
func ChienSearch(sigma Poly) []uint64 {
	if sigma.IsZero() {
		return nil
	}
	order := sigma.field.q - 1
	found := sigma.powerRoots()
	out := make([]uint64, len(found))
	for j, i := range found {
		out[j] = (order - i) % order
	}
	slices.Sort(out)
	return out
}
