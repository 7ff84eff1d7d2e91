// Package field implements arithmetic over finite fields GF(p^m), together
// with arrays, matrices and polynomials whose entries live in such a field.
package field

import (
	"fmt"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("field")

// Element is a field element: an integer in [0, q) whose base-p digits are
// the coefficients of its polynomial representation, lowest degree first.
type Element uint64

// Strategy selects how a field performs its arithmetic. It never changes
// results, only speed and memory.
type Strategy int

const (
	// StrategyAuto uses lookup tables for small fields and direct
	// calculation otherwise.
	StrategyAuto Strategy = iota
	// StrategyTable precomputes exponential, logarithm and Zech tables.
	StrategyTable
	// StrategyCalculate computes with polynomials modulo the defining polynomial.
	StrategyCalculate
)

// TableThreshold is the largest order for which StrategyAuto builds tables.
const TableThreshold = 1 << 20

// maxTableOrder bounds explicitly requested tables.
const maxTableOrder = 1 << 24

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyTable:
		return "table"
	case StrategyCalculate:
		return "calculate"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Config contains the optional parameters of a field
type Config struct {
	// Defining (irreducible) polynomial over GF(p) of degree m. Nil selects
	// the lexicographically smallest primitive polynomial for extension
	// fields and x - primitive for prime fields.
	DefiningPoly *Poly
	// Generator of the multiplicative group. Zero selects the smallest one.
	PrimitiveElement Element
	// Arithmetic strategy
	Strategy Strategy
}

// Field is the finite field GF(p^m). A Field is immutable and safe for
// concurrent use; fields are cached process-wide, so constructing the same
// field twice returns the same pointer.
type Field struct {
	p, m, q   uint64
	poly      []uint64 // defining polynomial, ascending coefficients
	primitive Element
	strategy  Strategy
	arith     arithmetic
	calc      *calculator
}

// Characteristic returns p.
func (f *Field) Characteristic() uint64 { return f.p }

// Degree returns m.
func (f *Field) Degree() uint64 { return f.m }

// Order returns q = p^m.
func (f *Field) Order() uint64 { return f.q }

// PrimitiveElement returns the generator of the multiplicative group.
func (f *Field) PrimitiveElement() Element { return f.primitive }

// Strategy returns the arithmetic strategy in use.
func (f *Field) Strategy() Strategy { return f.strategy }

// IsPrimeField reports whether m = 1.
func (f *Field) IsPrimeField() bool { return f.m == 1 }

// DefiningPoly returns the defining polynomial over GF(p).
func (f *Field) DefiningPoly() Poly {
	base := f
	if f.m > 1 {
		base = MustNew(f.p, nil)
	}
	return newPoly(base, descending(f.poly))
}

// Contains reports whether a is an element of the field.
func (f *Field) Contains(a Element) bool {
	return uint64(a) < f.q
}

func (f *Field) String() string {
	if f.m == 1 {
		return fmt.Sprintf("GF(%d)", f.p)
	}
	return fmt.Sprintf("GF(%d^%d)", f.p, f.m)
}

// Add returns a + b.
func (f *Field) Add(a, b Element) Element { return f.arith.add(a, b) }

// Sub returns a - b.
func (f *Field) Sub(a, b Element) Element { return f.arith.sub(a, b) }

// Neg returns -a.
func (f *Field) Neg(a Element) Element { return f.arith.neg(a) }

// Mul returns a * b.
func (f *Field) Mul(a, b Element) Element { return f.arith.mul(a, b) }

// Reciprocal returns a^-1.
func (f *Field) Reciprocal(a Element) (Element, error) {
	if a == 0 {
		return 0, fmt.Errorf("%w: reciprocal of 0 in %s", ErrDivisionByZero, f)
	}
	return f.arith.reciprocal(a), nil
}

// Div returns a / b.
func (f *Field) Div(a, b Element) (Element, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %d / 0 in %s", ErrDivisionByZero, a, f)
	}
	if a == 0 {
		return 0, nil
	}
	return f.arith.mul(a, f.arith.reciprocal(b)), nil
}

// Power returns a^e. 0^0 is 1 and 0 raised to a negative power is a
// division by zero.
func (f *Field) Power(a Element, e int64) (Element, error) {
	if e == 0 {
		return 1, nil
	}
	if a == 0 {
		if e < 0 {
			return 0, fmt.Errorf("%w: 0^%d in %s", ErrDivisionByZero, e, f)
		}
		return 0, nil
	}
	var u uint64
	if e < 0 {
		a = f.arith.reciprocal(a)
		u = uint64(-(e + 1)) + 1
	} else {
		u = uint64(e)
	}
	// The multiplicative group has order q-1
	return f.arith.power(a, u%(f.q-1)), nil
}

// Log returns the discrete logarithm of a with respect to the primitive
// element, in [0, q-1).
func (f *Field) Log(a Element) (uint64, error) {
	if a == 0 {
		return 0, fmt.Errorf("%w: logarithm of 0 in %s", ErrInvalidValue, f)
	}
	return f.arith.log(a), nil
}

// Exp returns primitive^i for any integer i.
func (f *Field) Exp(i int64) Element {
	order := int64(f.q - 1)
	r := i % order
	if r < 0 {
		r += order
	}
	return f.arith.power(f.primitive, uint64(r))
}

// Frobenius returns a^p.
func (f *Field) Frobenius(a Element) Element {
	return f.arith.power(a, f.p)
}

// Elements returns every element of the field in increasing order. Only
// sensible for small fields.
func (f *Field) Elements() []Element {
	out := make([]Element, f.q)
	for i := range out {
		out[i] = Element(i)
	}
	return out
}

// New returns GF(order). A nil config selects the default defining
// polynomial, primitive element and strategy.
func New(order uint64, config *Config) (*Field, error) {
	if config == nil {
		config = &Config{}
	}
	if order >= 1<<63 {
		return nil, fmt.Errorf("%w: field order %d is too large", ErrInvalidValue, order)
	}
	p, m, err := primePower(order)
	if err != nil {
		return nil, err
	}

	strategy := config.Strategy
	switch strategy {
	case StrategyAuto:
		strategy = StrategyCalculate
		if order <= TableThreshold {
			strategy = StrategyTable
		}
	case StrategyTable:
		if order > maxTableOrder {
			return nil, fmt.Errorf("%w: lookup tables for order %d exceed the %d limit", ErrInvalidValue, order, maxTableOrder)
		}
	case StrategyCalculate:
	default:
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvalidValue, int(strategy))
	}

	if config.PrimitiveElement != 0 && uint64(config.PrimitiveElement) >= order {
		return nil, fmt.Errorf("%w: primitive element %d is not in GF(%d)", ErrInvalidValue, config.PrimitiveElement, order)
	}

	if m == 1 {
		return newPrimeField(p, config, strategy)
	}
	return newExtensionField(p, m, config, strategy)
}

// MustNew is like New but panics on error.
func MustNew(order uint64, config *Config) *Field {
	f, err := New(order, config)
	if err != nil {
		panic(err)
	}
	return f
}

// GF2 returns the binary field.
func GF2() *Field {
	return MustNew(2, nil)
}

func newPrimeField(p uint64, config *Config, strategy Strategy) (*Field, error) {
	// Reduction never triggers for constants, so any monic linear
	// polynomial gives the arithmetic of GF(p).
	calc := newCalculator(p, 1, []uint64{0, 1})

	alpha := config.PrimitiveElement
	factors, _, err := groupFactors(p)
	if err != nil {
		return nil, err
	}
	if alpha == 0 {
		alpha = smallestPrimitiveElement(calc, factors)
	} else if !isPrimitiveElement(calc, alpha, factors) {
		return nil, fmt.Errorf("%w: %d is not a primitive element of GF(%d)", ErrInvalidValue, alpha, p)
	}

	poly := []uint64{subMod(0, uint64(alpha)%p, p), 1}
	if config.DefiningPoly != nil {
		given, err := checkDefiningPoly(*config.DefiningPoly, p, 1)
		if err != nil {
			return nil, err
		}
		poly = given
	}
	calc.poly = poly
	if p == 2 {
		calc.polyInt = poly[0] | poly[1]<<1
	}
	calc.primitive = alpha

	return registry.get(calc, strategy), nil
}

func newExtensionField(p, m uint64, config *Config, strategy Strategy) (*Field, error) {
	var poly []uint64
	if config.DefiningPoly != nil {
		given, err := checkDefiningPoly(*config.DefiningPoly, p, m)
		if err != nil {
			return nil, err
		}
		if !isIrreducible(given, p, m) {
			return nil, fmt.Errorf("%w: %s is not irreducible over GF(%d)", ErrInvalidValue, config.DefiningPoly, p)
		}
		poly = given
	} else {
		var err error
		if poly, err = registry.smallestPrimitivePoly(p, m); err != nil {
			return nil, err
		}
	}

	calc := newCalculator(p, m, poly)
	factors, _, err := groupFactors(calc.q)
	if err != nil {
		return nil, err
	}
	alpha := config.PrimitiveElement
	if alpha == 0 {
		alpha = smallestPrimitiveElement(calc, factors)
	} else if !isPrimitiveElement(calc, alpha, factors) {
		return nil, fmt.Errorf("%w: %d is not a primitive element of GF(%d^%d)", ErrInvalidValue, alpha, p, m)
	}
	calc.primitive = alpha

	return registry.get(calc, strategy), nil
}

// checkDefiningPoly validates a user-supplied polynomial and returns its
// ascending coefficients.
func checkDefiningPoly(poly Poly, p, m uint64) ([]uint64, error) {
	if poly.field == nil || poly.field.q != p {
		return nil, fmt.Errorf("%w: defining polynomial must be over GF(%d)", ErrInvalidType, p)
	}
	if uint64(poly.Degree()) != m {
		return nil, fmt.Errorf("%w: defining polynomial %s must have degree %d", ErrInvalidValue, poly, m)
	}
	if poly.coeffs[0] != 1 {
		return nil, fmt.Errorf("%w: defining polynomial %s must be monic", ErrInvalidValue, poly)
	}
	return ascending(poly), nil
}

// groupFactors factors q-1, the order of the multiplicative group.
func groupFactors(q uint64) ([]uint64, []int, error) {
	if q == 2 {
		return nil, nil, nil
	}
	return PrimeFactors(q - 1)
}
