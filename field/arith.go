package field

import (
	"math"
	"math/bits"
)

// arithmetic is the capability set shared by every arithmetic strategy.
// Inputs are assumed to be elements of the field; zero checks are done by
// Field before dispatching.
type arithmetic interface {
	add(a, b Element) Element
	sub(a, b Element) Element
	neg(a Element) Element
	mul(a, b Element) Element
	reciprocal(a Element) Element
	power(a Element, e uint64) Element
	log(a Element) uint64
}

// calculator computes directly with polynomials over GF(p) reduced modulo
// the defining polynomial. An element's base-p digits are the coefficients
// of its polynomial representation, lowest degree first.
//
// The calculator does not rely on the defining polynomial being
// irreducible, so it also serves as ring arithmetic in GF(p)[x]/f(x) when
// testing candidate polynomials.
type calculator struct {
	p, m, q   uint64
	poly      []uint64 // monic defining polynomial, ascending, len m+1
	polyInt   uint64   // characteristic 2 only: bit i is the x^i coefficient
	primitive Element
}

func newCalculator(p, m uint64, poly []uint64) *calculator {
	c := &calculator{
		p:    p,
		m:    m,
		q:    ipow(p, m),
		poly: poly,
	}
	if p == 2 {
		for i, v := range poly {
			c.polyInt |= v << uint(i)
		}
	}
	return c
}

func (c *calculator) digits(a Element) []uint64 {
	d := make([]uint64, c.m)
	v := uint64(a)
	for i := range d {
		d[i] = v % c.p
		v /= c.p
	}
	return d
}

func (c *calculator) fromDigits(d []uint64) Element {
	var v uint64
	for i := len(d) - 1; i >= 0; i-- {
		v = v*c.p + d[i]
	}
	return Element(v)
}

func (c *calculator) add(a, b Element) Element {
	switch {
	case c.p == 2:
		return a ^ b
	case c.m == 1:
		return Element(addMod(uint64(a), uint64(b), c.p))
	}
	x, y := uint64(a), uint64(b)
	var v, place uint64 = 0, 1
	for i := uint64(0); i < c.m; i++ {
		v += addMod(x%c.p, y%c.p, c.p) * place
		x /= c.p
		y /= c.p
		place *= c.p
	}
	return Element(v)
}

func (c *calculator) neg(a Element) Element {
	switch {
	case c.p == 2:
		return a
	case c.m == 1:
		return Element(subMod(0, uint64(a), c.p))
	}
	d := c.digits(a)
	for i := range d {
		d[i] = subMod(0, d[i], c.p)
	}
	return c.fromDigits(d)
}

func (c *calculator) sub(a, b Element) Element {
	return c.add(a, c.neg(b))
}

func (c *calculator) mul(a, b Element) Element {
	switch {
	case c.p == 2:
		return Element(c.mulBinary(uint64(a), uint64(b)))
	case c.m == 1:
		return Element(mulMod(uint64(a), uint64(b), c.p))
	}
	prod := gfpMul(c.digits(a), c.digits(b), c.p)
	for len(prod) < int(2*c.m-1) {
		prod = append(prod, 0)
	}
	// Reduce by the monic defining polynomial, highest degree first
	m := int(c.m)
	for i := len(prod) - 1; i >= m; i-- {
		coef := prod[i]
		if coef == 0 {
			continue
		}
		for j := 0; j <= m; j++ {
			prod[i-m+j] = subMod(prod[i-m+j], mulMod(coef, c.poly[j], c.p), c.p)
		}
	}
	return c.fromDigits(prod[:m])
}

// mulBinary is carry-less multiplication with interleaved reduction.
func (c *calculator) mulBinary(a, b uint64) uint64 {
	var r uint64
	top := uint64(1) << c.m
	for b > 0 {
		if b&1 == 1 {
			r ^= a
		}
		b >>= 1
		a <<= 1
		if a&top != 0 {
			a ^= c.polyInt
		}
	}
	return r
}

// reciprocal uses the extended Euclidean algorithm on polynomials. a must
// be nonzero and coprime to the defining polynomial.
func (c *calculator) reciprocal(a Element) Element {
	switch {
	case c.p == 2:
		return Element(c.reciprocalBinary(uint64(a)))
	case c.m == 1:
		return Element(powMod(uint64(a), c.p-2, c.p))
	}

	r0 := gfpTrim(append([]uint64(nil), c.poly...))
	r1 := gfpTrim(c.digits(a))
	var s0, s1 []uint64 = nil, []uint64{1}
	for len(r1) > 0 {
		q, r := gfpDivMod(r0, r1, c.p)
		r0, r1 = r1, r
		s0, s1 = s1, gfpSub(s0, gfpMul(q, s1, c.p), c.p)
	}

	// r0 is now a nonzero constant; normalize so that a * s0 = 1
	inv := powMod(r0[0], c.p-2, c.p)
	for i := range s0 {
		s0[i] = mulMod(s0[i], inv, c.p)
	}
	return c.fromDigits(s0)
}

func (c *calculator) reciprocalBinary(a uint64) uint64 {
	r0, r1 := c.polyInt, a
	var s0, s1 uint64 = 0, 1
	for r1 != 0 {
		q, r := clDivMod(r0, r1)
		r0, r1 = r1, r
		s0, s1 = s1, s0^clMul(q, s1)
	}
	return s0
}

func (c *calculator) power(a Element, e uint64) Element {
	result := Element(1)
	for e > 0 {
		if e&1 == 1 {
			result = c.mul(result, a)
		}
		a = c.mul(a, a)
		e >>= 1
	}
	return result
}

// log solves primitive^x = a with baby-step giant-step.
func (c *calculator) log(a Element) uint64 {
	order := c.q - 1
	s := isqrt(order)
	if s*s < order {
		s++
	}

	baby := make(map[Element]uint64, s)
	g := Element(1)
	for j := uint64(0); j < s; j++ {
		if _, ok := baby[g]; !ok {
			baby[g] = j
		}
		g = c.mul(g, c.primitive)
	}

	giant := c.power(c.reciprocal(c.primitive), s)
	y := a
	for i := uint64(0); i <= s; i++ {
		if j, ok := baby[y]; ok {
			return (i*s + j) % order
		}
		y = c.mul(y, giant)
	}
	panic("field: element is not a power of the primitive element")
}

// Arithmetic in GF(p). Operands are reduced, p < 2^63.

func addMod(a, b, p uint64) uint64 {
	s := a + b
	if s >= p {
		s -= p
	}
	return s
}

func subMod(a, b, p uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + (p - b)
}

func mulMod(a, b, p uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, p)
}

func powMod(a, e, p uint64) uint64 {
	result := uint64(1) % p
	for e > 0 {
		if e&1 == 1 {
			result = mulMod(result, a, p)
		}
		a = mulMod(a, a, p)
		e >>= 1
	}
	return result
}

// Polynomials over GF(p) as ascending coefficient slices. A trimmed slice
// has a nonzero last entry; the zero polynomial is the empty slice.

func gfpTrim(a []uint64) []uint64 {
	for len(a) > 0 && a[len(a)-1] == 0 {
		a = a[:len(a)-1]
	}
	return a
}

func gfpSub(a, b []uint64, p uint64) []uint64 {
	out := make([]uint64, max(len(a), len(b)))
	copy(out, a)
	for i, v := range b {
		out[i] = subMod(out[i], v, p)
	}
	return gfpTrim(out)
}

func gfpMul(a, b []uint64, p uint64) []uint64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]uint64, len(a)+len(b)-1)
	for i, x := range a {
		if x == 0 {
			continue
		}
		for j, y := range b {
			out[i+j] = addMod(out[i+j], mulMod(x, y, p), p)
		}
	}
	return gfpTrim(out)
}

// gfpDivMod divides a by a nonzero trimmed b.
func gfpDivMod(a, b []uint64, p uint64) ([]uint64, []uint64) {
	r := append([]uint64(nil), a...)
	r = gfpTrim(r)
	if len(r) < len(b) {
		return nil, r
	}
	q := make([]uint64, len(r)-len(b)+1)
	inv := powMod(b[len(b)-1], p-2, p)
	for i := len(r) - len(b); i >= 0; i-- {
		coef := mulMod(r[i+len(b)-1], inv, p)
		q[i] = coef
		if coef == 0 {
			continue
		}
		for j, v := range b {
			r[i+j] = subMod(r[i+j], mulMod(coef, v, p), p)
		}
	}
	return gfpTrim(q), gfpTrim(r[:len(b)-1])
}

func gfpGCD(a, b []uint64, p uint64) []uint64 {
	a, b = gfpTrim(a), gfpTrim(b)
	for len(b) > 0 {
		_, r := gfpDivMod(a, b, p)
		a, b = b, r
	}
	return a
}

// Polynomials over GF(2) packed into machine words.

func clMul(a, b uint64) uint64 {
	var r uint64
	for b > 0 {
		if b&1 == 1 {
			r ^= a
		}
		a <<= 1
		b >>= 1
	}
	return r
}

func clDivMod(a, b uint64) (uint64, uint64) {
	if b == 0 {
		panic("field: division by zero polynomial")
	}
	var q uint64
	db := bits.Len64(b) - 1
	for a != 0 && bits.Len64(a)-1 >= db {
		shift := bits.Len64(a) - 1 - db
		q |= 1 << uint(shift)
		a ^= b << uint(shift)
	}
	return q, a
}

func ipow(b, e uint64) uint64 {
	r := uint64(1)
	for ; e > 0; e-- {
		r *= b
	}
	return r
}

func isqrt(x uint64) uint64 {
	r := uint64(math.Sqrt(float64(x)))
	for r*r > x {
		r--
	}
	for (r+1)*(r+1) <= x {
		r++
	}
	return r
}
