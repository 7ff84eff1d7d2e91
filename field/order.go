package field

import (
	"fmt"
	"slices"
)

// MultiplicativeOrder returns the smallest k >= 1 with a^k = 1.
func (f *Field) MultiplicativeOrder(a Element) (uint64, error) {
	if a == 0 || !f.Contains(a) {
		return 0, fmt.Errorf("%w: %d has no multiplicative order in %s", ErrInvalidValue, a, f)
	}
	factors, _, err := groupFactors(f.q)
	if err != nil {
		return 0, err
	}
	return f.order(a, factors), nil
}

// order strips every prime factor of q-1 from the exponent for as long as
// a still reaches 1.
func (f *Field) order(a Element, factors []uint64) uint64 {
	order := f.q - 1
	for _, r := range factors {
		for order%r == 0 && f.arith.power(a, order/r) == 1 {
			order /= r
		}
	}
	return order
}

// MultiplicativeOrder returns the order of every element, flattened in
// row-major order. Zero entries are rejected.
func (a *Array) MultiplicativeOrder() ([]uint64, error) {
	factors, _, err := groupFactors(a.field.q)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, len(a.data))
	for i, v := range a.data {
		if v == 0 {
			return nil, fmt.Errorf("%w: 0 has no multiplicative order in %s", ErrInvalidValue, a.field)
		}
		out[i] = a.field.order(v, factors)
	}
	return out, nil
}

// PrimitiveElements returns every generator of the multiplicative group
// in increasing order. There are phi(q-1) of them, so this is limited to
// fields no larger than the explicit table bound.
func (f *Field) PrimitiveElements() ([]Element, error) {
	if f.q > maxTableOrder {
		return nil, fmt.Errorf("%w: refusing to enumerate the primitive elements of %s", ErrInvalidValue, f)
	}
	n := f.q - 1
	var out []Element
	g := Element(1)
	for k := uint64(1); k <= n; k++ {
		g = f.arith.mul(g, f.primitive)
		if gcd(k, n) == 1 {
			out = append(out, g)
		}
	}
	slices.Sort(out)
	return out, nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
