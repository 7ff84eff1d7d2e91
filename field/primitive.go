package field

import "fmt"

// IsIrreducible reports whether poly, a polynomial over a prime field, is
// irreducible. Constant polynomials are not irreducible.
func IsIrreducible(poly Poly) bool {
	if !poly.field.IsPrimeField() || poly.Degree() < 1 {
		return false
	}
	if poly.Degree() == 1 {
		return true
	}
	monic, _ := poly.Monic()
	return isIrreducible(ascending(monic), poly.field.p, uint64(poly.Degree()))
}

// IsPrimitive reports whether poly, a polynomial over a prime field, is
// primitive: irreducible, with a root that generates the multiplicative
// group of the extension field it defines.
func IsPrimitive(poly Poly) bool {
	if !poly.field.IsPrimeField() || poly.Degree() < 1 {
		return false
	}
	monic, _ := poly.Monic()
	p, m := poly.field.p, uint64(poly.Degree())
	factors, _, err := groupFactors(ipow(p, m))
	if err != nil {
		return false
	}
	if m == 1 {
		// x + c has the root -c
		calc := newCalculator(p, 1, []uint64{0, 1})
		root := Element(subMod(0, uint64(monic.coeffs[1]), p))
		return root != 0 && isPrimitiveElement(calc, root, factors)
	}
	return isPrimitivePoly(ascending(monic), p, m, factors)
}

// PrimitivePoly returns the lexicographically smallest monic primitive
// polynomial of degree m over GF(p).
func PrimitivePoly(p, m uint64) (Poly, error) {
	if !IsPrime(p) {
		return Poly{}, fmt.Errorf("%w: characteristic %d is not prime", ErrInvalidValue, p)
	}
	if m < 1 {
		return Poly{}, fmt.Errorf("%w: degree must be at least 1, not %d", ErrInvalidValue, m)
	}
	base, err := New(p, nil)
	if err != nil {
		return Poly{}, err
	}
	var poly []uint64
	if m == 1 {
		factors, _, err := groupFactors(p)
		if err != nil {
			return Poly{}, err
		}
		calc := newCalculator(p, 1, []uint64{0, 1})
		// x + c ordered by c: the smallest c whose negation is primitive
		for c := uint64(0); c < p; c++ {
			if root := Element(subMod(0, c, p)); root != 0 && isPrimitiveElement(calc, root, factors) {
				poly = []uint64{c, 1}
				break
			}
		}
	} else if poly, err = registry.smallestPrimitivePoly(p, m); err != nil {
		return Poly{}, err
	}
	return newPoly(base, descending(poly)), nil
}

func isPrimitiveElement(calc *calculator, g Element, factors []uint64) bool {
	if g == 0 || uint64(g) >= calc.q {
		return false
	}
	order := calc.q - 1
	for _, r := range factors {
		if calc.power(g, order/r) == 1 {
			return false
		}
	}
	return calc.power(g, order) == 1
}

func smallestPrimitiveElement(calc *calculator, factors []uint64) Element {
	for g := Element(1); uint64(g) < calc.q; g++ {
		if isPrimitiveElement(calc, g, factors) {
			return g
		}
	}
	// A finite field always has a primitive element
	panic(fmt.Sprintf("field: no primitive element in GF(%d)", calc.q))
}

// isPrimitivePoly tests whether x has multiplicative order p^m - 1 modulo
// poly. That only happens when poly is irreducible, so no separate
// irreducibility test is needed.
func isPrimitivePoly(poly []uint64, p, m uint64, factors []uint64) bool {
	if poly[0] == 0 {
		return false
	}
	calc := newCalculator(p, m, poly)
	return isPrimitiveElement(calc, Element(p), factors)
}

// findPrimitivePoly walks monic degree-m polynomials in lexicographic order
// of their coefficients, highest degree first.
func findPrimitivePoly(p, m uint64) ([]uint64, error) {
	q := ipow(p, m)
	factors, _, err := groupFactors(q)
	if err != nil {
		return nil, err
	}
	for v := uint64(1); v < q; v++ {
		if v%p == 0 {
			continue
		}
		poly := make([]uint64, m+1)
		rest := v
		for i := uint64(0); i < m; i++ {
			poly[i] = rest % p
			rest /= p
		}
		poly[m] = 1
		if isPrimitivePoly(poly, p, m, factors) {
			return poly, nil
		}
	}
	return nil, fmt.Errorf("%w: no primitive polynomial of degree %d over GF(%d)", ErrInvalidValue, m, p)
}

// isIrreducible is Rabin's test for a monic poly of degree m >= 2: poly
// divides x^(p^m) - x and is coprime to x^(p^(m/r)) - x for every prime r
// dividing m.
func isIrreducible(poly []uint64, p, m uint64) bool {
	if poly[0] == 0 {
		return false
	}
	primes, _, err := PrimeFactors(m)
	if err != nil {
		return false
	}
	check := make(map[uint64]bool, len(primes))
	for _, r := range primes {
		check[m/r] = true
	}

	calc := newCalculator(p, m, poly)
	x := Element(p)
	h := x
	for k := uint64(1); k <= m; k++ {
		h = calc.power(h, p)
		if !check[k] {
			continue
		}
		diff := gfpSub(calc.digits(h), calc.digits(x), p)
		if g := gfpGCD(append([]uint64(nil), poly...), diff, p); len(g) != 1 {
			return false
		}
	}
	return h == x
}

func ascending(poly Poly) []uint64 {
	out := make([]uint64, len(poly.coeffs))
	for i, c := range poly.coeffs {
		out[len(out)-1-i] = uint64(c)
	}
	return out
}

func descending(poly []uint64) []Element {
	out := make([]Element, len(poly))
	for i, c := range poly {
		out[len(out)-1-i] = Element(c)
	}
	return out
}
