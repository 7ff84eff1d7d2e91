package field

import (
	"fmt"
	"math/big"
	"slices"
	"strings"
)

// Poly is a polynomial over a finite field. Coefficients are stored highest
// degree first and trimmed, so the leading coefficient is nonzero unless the
// polynomial is zero, which is stored as [0].
type Poly struct {
	field  *Field
	coeffs []Element
}

// NewPoly returns the polynomial with the given coefficients, highest
// degree first.
func NewPoly(f *Field, coeffs ...Element) (Poly, error) {
	for _, c := range coeffs {
		if !f.Contains(c) {
			return Poly{}, fmt.Errorf("%w: coefficient %d is not in %s", ErrInvalidValue, c, f)
		}
	}
	return newPoly(f, slices.Clone(coeffs)), nil
}

// MustPoly is like NewPoly but panics on error.
func MustPoly(f *Field, coeffs ...Element) Poly {
	p, err := NewPoly(f, coeffs...)
	if err != nil {
		panic(err)
	}
	return p
}

// newPoly takes ownership of coeffs.
func newPoly(f *Field, coeffs []Element) Poly {
	i := 0
	for i < len(coeffs)-1 && coeffs[i] == 0 {
		i++
	}
	if len(coeffs) == 0 {
		coeffs = []Element{0}
	}
	return Poly{field: f, coeffs: coeffs[i:]}
}

// PolyFromInt decodes the integer representation of a polynomial: the
// base-q digits of v are its coefficients, lowest degree first. Over GF(2)
// this is the usual bit mask, e.g. 0x13 = x^4 + x + 1.
func PolyFromInt(f *Field, v uint64) Poly {
	var coeffs []Element
	for v > 0 {
		coeffs = append(coeffs, Element(v%f.q))
		v /= f.q
	}
	slices.Reverse(coeffs)
	return newPoly(f, coeffs)
}

// PolyFromRoots returns the monic polynomial (x - r_0)(x - r_1)...(x - r_n).
func PolyFromRoots(f *Field, roots []Element) (Poly, error) {
	coeffs := []Element{1}
	for _, r := range roots {
		if !f.Contains(r) {
			return Poly{}, fmt.Errorf("%w: root %d is not in %s", ErrInvalidValue, r, f)
		}
		next := make([]Element, len(coeffs)+1)
		next[0] = coeffs[0]
		for i := 1; i < len(coeffs); i++ {
			next[i] = f.Sub(coeffs[i], f.Mul(r, coeffs[i-1]))
		}
		next[len(coeffs)] = f.Neg(f.Mul(r, coeffs[len(coeffs)-1]))
		coeffs = next
	}
	return newPoly(f, coeffs), nil
}

// Field returns the field of the coefficients.
func (p Poly) Field() *Field { return p.field }

// Degree returns the degree; the zero polynomial has degree 0.
func (p Poly) Degree() int { return len(p.coeffs) - 1 }

// Coeffs returns a copy of the coefficients, highest degree first.
func (p Poly) Coeffs() []Element { return slices.Clone(p.coeffs) }

// Coeff returns the coefficient of x^d.
func (p Poly) Coeff(d int) Element {
	if d < 0 || d > p.Degree() {
		return 0
	}
	return p.coeffs[p.Degree()-d]
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool { return len(p.coeffs) == 1 && p.coeffs[0] == 0 }

// Int returns the integer representation of p, see PolyFromInt.
func (p Poly) Int() *big.Int {
	q := new(big.Int).SetUint64(p.field.q)
	v := new(big.Int)
	for _, c := range p.coeffs {
		v.Mul(v, q)
		v.Add(v, new(big.Int).SetUint64(uint64(c)))
	}
	return v
}

// Equal reports whether p and o are the same polynomial over the same field.
func (p Poly) Equal(o Poly) bool {
	return p.field == o.field && slices.Equal(p.coeffs, o.coeffs)
}

func (p Poly) String() string {
	var terms []string
	for i, c := range p.coeffs {
		if c == 0 {
			continue
		}
		d := p.Degree() - i
		coef := ""
		if c != 1 || d == 0 {
			coef = fmt.Sprint(uint64(c))
		}
		switch d {
		case 0:
			terms = append(terms, coef)
		case 1:
			terms = append(terms, coef+"x")
		default:
			terms = append(terms, fmt.Sprintf("%sx^%d", coef, d))
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

func (p Poly) sameField(o Poly) error {
	if p.field != o.field {
		return fmt.Errorf("%w: polynomials over %s and %s", ErrInvalidType, p.field, o.field)
	}
	return nil
}

// Add returns p + o.
func (p Poly) Add(o Poly) (Poly, error) {
	if err := p.sameField(o); err != nil {
		return Poly{}, err
	}
	return p.combine(o, p.field.Add), nil
}

// Sub returns p - o.
func (p Poly) Sub(o Poly) (Poly, error) {
	if err := p.sameField(o); err != nil {
		return Poly{}, err
	}
	return p.combine(o, p.field.Sub), nil
}

// combine pads the shorter operand with leading zeros.
func (p Poly) combine(o Poly, op func(a, b Element) Element) Poly {
	n := max(len(p.coeffs), len(o.coeffs))
	out := make([]Element, n)
	for i := range out {
		out[i] = op(p.Coeff(n-1-i), o.Coeff(n-1-i))
	}
	return newPoly(p.field, out)
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	out := make([]Element, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = p.field.Neg(c)
	}
	return newPoly(p.field, out)
}

// Mul returns p * o.
func (p Poly) Mul(o Poly) (Poly, error) {
	if err := p.sameField(o); err != nil {
		return Poly{}, err
	}
	f := p.field
	out := make([]Element, len(p.coeffs)+len(o.coeffs)-1)
	for i, a := range p.coeffs {
		if a == 0 {
			continue
		}
		for j, b := range o.coeffs {
			out[i+j] = f.Add(out[i+j], f.Mul(a, b))
		}
	}
	return newPoly(f, out), nil
}

// Scale returns c * p.
func (p Poly) Scale(c Element) Poly {
	out := make([]Element, len(p.coeffs))
	for i, v := range p.coeffs {
		out[i] = p.field.Mul(c, v)
	}
	return newPoly(p.field, out)
}

// DivMod returns the quotient and remainder of p / o.
func (p Poly) DivMod(o Poly) (Poly, Poly, error) {
	if err := p.sameField(o); err != nil {
		return Poly{}, Poly{}, err
	}
	if o.IsZero() {
		return Poly{}, Poly{}, fmt.Errorf("%w: polynomial division by zero", ErrDivisionByZero)
	}
	f := p.field
	if p.Degree() < o.Degree() {
		return newPoly(f, nil), p, nil
	}

	inv := f.arith.reciprocal(o.coeffs[0])
	r := slices.Clone(p.coeffs)
	q := make([]Element, len(r)-len(o.coeffs)+1)
	for i := range q {
		if r[i] == 0 {
			continue
		}
		q[i] = f.Mul(r[i], inv)
		for j, b := range o.coeffs {
			r[i+j] = f.Sub(r[i+j], f.Mul(q[i], b))
		}
	}
	return newPoly(f, q), newPoly(f, r[len(q):]), nil
}

// Div returns the quotient of p / o.
func (p Poly) Div(o Poly) (Poly, error) {
	q, _, err := p.DivMod(o)
	return q, err
}

// Mod returns the remainder of p / o.
func (p Poly) Mod(o Poly) (Poly, error) {
	_, r, err := p.DivMod(o)
	return r, err
}

// Monic divides p by its leading coefficient.
func (p Poly) Monic() (Poly, error) {
	if p.IsZero() {
		return Poly{}, fmt.Errorf("%w: the zero polynomial cannot be made monic", ErrDivisionByZero)
	}
	return p.Scale(p.field.arith.reciprocal(p.coeffs[0])), nil
}

// Reverse returns the reciprocal polynomial x^d p(1/x).
func (p Poly) Reverse() Poly {
	out := slices.Clone(p.coeffs)
	slices.Reverse(out)
	return newPoly(p.field, out)
}

// Derivative returns the formal derivative of p.
func (p Poly) Derivative() Poly {
	f := p.field
	d := p.Degree()
	if d == 0 {
		return newPoly(f, nil)
	}
	out := make([]Element, d)
	for i := 0; i < d; i++ {
		// Multiplying by the integer degree reduces it mod p
		k := Element(uint64(d-i) % f.p)
		out[i] = f.Mul(k, p.coeffs[i])
	}
	return newPoly(f, out)
}

// Evaluate returns p(x) by Horner's rule.
func (p Poly) Evaluate(x Element) Element {
	f := p.field
	acc := p.coeffs[0]
	for _, c := range p.coeffs[1:] {
		acc = f.Add(f.Mul(acc, x), c)
	}
	return acc
}

// EvaluateArray evaluates p at every entry of x, preserving its shape.
func (p Poly) EvaluateArray(x *Array) (*Array, error) {
	if x.field != p.field {
		return nil, fmt.Errorf("%w: evaluating a polynomial over %s at an array over %s", ErrInvalidType, p.field, x.field)
	}
	out := make([]Element, len(x.data))
	for i, v := range x.data {
		out[i] = p.Evaluate(v)
	}
	return newArray(p.field, out, x.shape), nil
}

// Convert re-expresses the coefficients in another field, which must
// contain every coefficient value (e.g. GF(2^m) coefficients that lie in
// GF(2)).
func (p Poly) Convert(f *Field) (Poly, error) {
	for _, c := range p.coeffs {
		if !f.Contains(c) {
			return Poly{}, fmt.Errorf("%w: coefficient %d of %s is not in %s", ErrInvalidValue, c, p, f)
		}
	}
	return newPoly(f, slices.Clone(p.coeffs)), nil
}

// Roots returns the distinct roots of p in its field, in increasing order.
// The zero polynomial has no well-defined root set and returns nil.
func (p Poly) Roots() []Element {
	if p.IsZero() {
		return nil
	}
	f := p.field
	var roots []Element
	if p.coeffs[len(p.coeffs)-1] == 0 {
		roots = append(roots, 0)
	}
	for _, i := range p.powerRoots() {
		roots = append(roots, f.Exp(int64(i)))
	}
	slices.Sort(roots)
	return roots
}

// powerRoots returns the exponents i in [0, q-1) for which
// p(primitive^i) = 0, stopping once deg(p) roots are found. Each nonzero
// term is advanced by primitive^degree per step instead of re-evaluating p.
func (p Poly) powerRoots() []uint64 {
	f := p.field
	var degrees []int64
	var terms []Element
	for i, c := range p.coeffs {
		if c != 0 {
			degrees = append(degrees, int64(p.Degree()-i))
			terms = append(terms, c)
		}
	}
	steps := make([]Element, len(degrees))
	for j, d := range degrees {
		steps[j] = f.Exp(d)
	}

	var found []uint64
	// Nonzero roots of a polynomial with a zero constant term are roots of
	// its nonzero part, so the count bound is the number of nonzero roots.
	limit := p.Degree()
	if len(degrees) > 0 {
		limit -= int(degrees[len(degrees)-1])
	}
	order := f.q - 1
	for i := uint64(0); i < order && len(found) < limit; i++ {
		var sum Element
		for j := range terms {
			sum = f.Add(sum, terms[j])
		}
		if sum == 0 {
			found = append(found, i)
		}
		for j := range terms {
			terms[j] = f.Mul(terms[j], steps[j])
		}
	}
	return found
}
