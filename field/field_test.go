package field

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

// smallFields are exercised exhaustively or by sampling in most tests.
var smallFields = []uint64{2, 3, 4, 5, 7, 8, 9, 16, 25, 27, 32, 49, 64, 81, 125, 256}

func mustField(t *testing.T, order uint64, strategy Strategy) *Field {
	t.Helper()
	f, err := New(order, &Config{Strategy: strategy})
	if err != nil {
		t.Fatalf("New(%d): %v", order, err)
	}
	return f
}

// TestStrategiesAgree checks that the lookup tables are a cache of the
// calculator for every pair of elements.
func TestStrategiesAgree(t *testing.T) {
	for _, q := range smallFields {
		t.Run(fmt.Sprintf("GF(%d)", q), func(t *testing.T) {
			tf := mustField(t, q, StrategyTable)
			cf := mustField(t, q, StrategyCalculate)
			if tf.Strategy() != StrategyTable || cf.Strategy() != StrategyCalculate {
				t.Fatalf("unexpected strategies %s and %s", tf.Strategy(), cf.Strategy())
			}
			if tf.PrimitiveElement() != cf.PrimitiveElement() {
				t.Fatalf("primitive elements differ: %d vs %d", tf.PrimitiveElement(), cf.PrimitiveElement())
			}
			for _, a := range tf.Elements() {
				for _, b := range tf.Elements() {
					if x, y := tf.Add(a, b), cf.Add(a, b); x != y {
						t.Fatalf("%d + %d: table %d, calculate %d", a, b, x, y)
					}
					if x, y := tf.Sub(a, b), cf.Sub(a, b); x != y {
						t.Fatalf("%d - %d: table %d, calculate %d", a, b, x, y)
					}
					if x, y := tf.Mul(a, b), cf.Mul(a, b); x != y {
						t.Fatalf("%d * %d: table %d, calculate %d", a, b, x, y)
					}
				}
				if a == 0 {
					continue
				}
				x, _ := tf.Reciprocal(a)
				y, _ := cf.Reciprocal(a)
				if x != y {
					t.Fatalf("1/%d: table %d, calculate %d", a, x, y)
				}
				lx, _ := tf.Log(a)
				ly, _ := cf.Log(a)
				if lx != ly {
					t.Fatalf("log %d: table %d, calculate %d", a, lx, ly)
				}
			}
		})
	}
}

// TestFieldIdentities checks the Frobenius identity, Fermat's little
// theorem and exp/log round trips.
func TestFieldIdentities(t *testing.T) {
	for _, q := range smallFields {
		for _, s := range []Strategy{StrategyTable, StrategyCalculate} {
			f := mustField(t, q, s)
			p := int64(f.Characteristic())
			for _, a := range f.Elements() {
				for _, b := range f.Elements() {
					lhs, _ := f.Power(f.Add(a, b), p)
					ap, _ := f.Power(a, p)
					bp, _ := f.Power(b, p)
					if rhs := f.Add(ap, bp); lhs != rhs {
						t.Fatalf("%s: (%d+%d)^p = %d, a^p+b^p = %d", f, a, b, lhs, rhs)
					}
				}
				if a == 0 {
					continue
				}
				if x, _ := f.Power(a, int64(q-1)); x != 1 {
					t.Fatalf("%s: %d^(q-1) = %d", f, a, x)
				}
				l, err := f.Log(a)
				if err != nil {
					t.Fatalf("%s: log %d: %v", f, a, err)
				}
				if x := f.Exp(int64(l)); x != a {
					t.Fatalf("%s: alpha^log(%d) = %d", f, a, x)
				}
				inv, _ := f.Reciprocal(a)
				if f.Mul(a, inv) != 1 {
					t.Fatalf("%s: %d * %d != 1", f, a, inv)
				}
				if f.Add(a, f.Neg(a)) != 0 {
					t.Fatalf("%s: %d + (-%d) != 0", f, a, a)
				}
				if f.Frobenius(a) != ap(f, a) {
					t.Fatalf("%s: Frobenius(%d) disagrees with Power", f, a)
				}
			}
		}
	}
}

func ap(f *Field, a Element) Element {
	x, _ := f.Power(a, int64(f.Characteristic()))
	return x
}

func TestZeroHandling(t *testing.T) {
	f := mustField(t, 16, StrategyAuto)

	if _, err := f.Reciprocal(0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Reciprocal(0) should fail with ErrDivisionByZero, got %v", err)
	}
	if _, err := f.Div(3, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Div(3, 0) should fail with ErrDivisionByZero, got %v", err)
	}
	if _, err := f.Power(0, -1); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Power(0, -1) should fail with ErrDivisionByZero, got %v", err)
	}
	if x, err := f.Power(0, 0); err != nil || x != 1 {
		t.Errorf("0^0 = %d, %v; expected 1", x, err)
	}
	if x, err := f.Power(0, 5); err != nil || x != 0 {
		t.Errorf("0^5 = %d, %v; expected 0", x, err)
	}
	if _, err := f.Log(0); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Log(0) should fail with ErrInvalidValue, got %v", err)
	}
	if x, err := f.Div(0, 7); err != nil || x != 0 {
		t.Errorf("0/7 = %d, %v; expected 0", x, err)
	}
}

func TestNegativePowers(t *testing.T) {
	f := mustField(t, 27, StrategyCalculate)
	for _, a := range f.Elements()[1:] {
		inv, _ := f.Reciprocal(a)
		for e := int64(1); e < 30; e++ {
			x, _ := f.Power(a, -e)
			y, _ := f.Power(inv, e)
			if x != y {
				t.Fatalf("%d^-%d = %d, (1/%d)^%d = %d", a, e, x, a, e, y)
			}
		}
	}
	if x := f.Exp(-1); f.Mul(x, f.PrimitiveElement()) != 1 {
		t.Errorf("Exp(-1) is not the inverse of the primitive element")
	}
}

// TestDefaultDefiningPolys checks the lexicographically smallest primitive
// polynomials in characteristic 2.
func TestDefaultDefiningPolys(t *testing.T) {
	cases := []struct {
		m    uint64
		poly int64
	}{
		{1, 0x3},
		{2, 0x7},
		{3, 0xB},
		{4, 0x13},
		{5, 0x25},
		{6, 0x43},
		{7, 0x83},
		{8, 0x11D},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("m=%d", c.m), func(t *testing.T) {
			f := MustNew(1<<c.m, nil)
			if got := f.DefiningPoly().Int().Int64(); got != c.poly {
				t.Errorf("defining polynomial of %s is %#x, expected %#x", f, got, c.poly)
			}
			if c.m > 1 && f.PrimitiveElement() != 2 {
				t.Errorf("primitive element of %s is %d, expected 2", f, f.PrimitiveElement())
			}
			pp, err := PrimitivePoly(2, c.m)
			if err != nil {
				t.Fatalf("PrimitivePoly: %v", err)
			}
			if got := pp.Int().Int64(); got != c.poly {
				t.Errorf("PrimitivePoly(2, %d) = %#x, expected %#x", c.m, got, c.poly)
			}
			if !IsPrimitive(pp) {
				t.Errorf("%s should be primitive", pp)
			}
		})
	}
}

func TestOddCharacteristicDefaults(t *testing.T) {
	f := MustNew(9, nil)
	// x^2 + x + 2
	if got := f.DefiningPoly().Int().Int64(); got != 14 {
		t.Errorf("defining polynomial of GF(9) encodes as %d, expected 14", got)
	}
	g := MustNew(7, nil)
	if g.PrimitiveElement() != 3 {
		t.Errorf("primitive element of GF(7) is %d, expected 3", g.PrimitiveElement())
	}
	// x - 3 = x + 4
	if got := g.DefiningPoly().Coeffs(); len(got) != 2 || got[1] != 4 {
		t.Errorf("defining polynomial of GF(7) is %v", g.DefiningPoly())
	}
}

func TestCustomDefiningPoly(t *testing.T) {
	gf2 := GF2()

	// x^8 + x^4 + x^3 + x + 1 is irreducible but not primitive
	aes := PolyFromInt(gf2, 0x11B)
	if !IsIrreducible(aes) {
		t.Fatalf("%s should be irreducible", aes)
	}
	if IsPrimitive(aes) {
		t.Fatalf("%s should not be primitive", aes)
	}
	f, err := New(256, &Config{DefiningPoly: &aes})
	if err != nil {
		t.Fatalf("New with %s: %v", aes, err)
	}
	// x has order 51 modulo the AES polynomial, 3 is the smallest generator
	if f.PrimitiveElement() != 3 {
		t.Errorf("primitive element is %d, expected 3", f.PrimitiveElement())
	}
	if x := f.Mul(0x57, 0x83); x != 0xC1 {
		t.Errorf("0x57 * 0x83 = %#x, expected 0xc1", x)
	}

	reducible := PolyFromInt(gf2, 0x15) // x^4 + x^2 + 1 = (x^2 + x + 1)^2
	if _, err := New(16, &Config{DefiningPoly: &reducible}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("reducible polynomial should fail with ErrInvalidValue, got %v", err)
	}
	wrongDegree := PolyFromInt(gf2, 0x13)
	if _, err := New(32, &Config{DefiningPoly: &wrongDegree}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("wrong degree should fail with ErrInvalidValue, got %v", err)
	}
	wrongField := PolyFromInt(MustNew(3, nil), 5)
	if _, err := New(16, &Config{DefiningPoly: &wrongField}); !errors.Is(err, ErrInvalidType) {
		t.Errorf("polynomial over GF(3) should fail with ErrInvalidType, got %v", err)
	}
	if _, err := New(16, &Config{PrimitiveElement: 1}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("1 is not primitive, got %v", err)
	}
	if _, err := New(16, &Config{PrimitiveElement: 16}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("16 is not in GF(16), got %v", err)
	}
}

func TestNewRejectsNonPrimePowers(t *testing.T) {
	for _, q := range []uint64{0, 1, 6, 10, 12, 100, 1 << 63} {
		if _, err := New(q, nil); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("New(%d) should fail with ErrInvalidValue, got %v", q, err)
		}
	}
	if _, err := New(1<<25, &Config{Strategy: StrategyTable}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("oversized tables should be refused, got %v", err)
	}
}

func TestFieldCache(t *testing.T) {
	a := MustNew(64, nil)
	b := MustNew(64, &Config{Strategy: StrategyTable})
	if a != b {
		t.Errorf("auto and table construction of GF(64) should share one field")
	}
	c := MustNew(64, &Config{Strategy: StrategyCalculate})
	if a == c {
		t.Errorf("calculate strategy should be cached separately")
	}
	if MustNew(1<<21, nil).Strategy() != StrategyCalculate {
		t.Errorf("large fields should calculate by default")
	}
}

// TestLargeField exercises the calculator where tables are not built.
func TestLargeField(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, q := range []uint64{1 << 32, 65537 * 65537, 4294967291} {
		f := MustNew(q, &Config{Strategy: StrategyCalculate})
		for i := 0; i < 50; i++ {
			a := Element(rng.Uint64()%(q-1)) + 1
			inv, _ := f.Reciprocal(a)
			if f.Mul(a, inv) != 1 {
				t.Fatalf("%s: %d * %d != 1", f, a, inv)
			}
			if x, _ := f.Power(a, int64(q-1)); x != 1 {
				t.Fatalf("%s: %d^(q-1) = %d", f, a, x)
			}
		}
	}
}

func TestPrimeFactors(t *testing.T) {
	cases := []struct {
		x      uint64
		primes []uint64
		exps   []int
	}{
		{2, []uint64{2}, []int{1}},
		{12, []uint64{2, 3}, []int{2, 1}},
		{255, []uint64{3, 5, 17}, []int{1, 1, 1}},
		{1 << 20, []uint64{2}, []int{20}},
		{4294967295, []uint64{3, 5, 17, 257, 65537}, []int{1, 1, 1, 1, 1}},
		{4294967291, []uint64{4294967291}, []int{1}},
	}
	for _, c := range cases {
		primes, exps, err := PrimeFactors(c.x)
		if err != nil {
			t.Fatalf("PrimeFactors(%d): %v", c.x, err)
		}
		if fmt.Sprint(primes) != fmt.Sprint(c.primes) || fmt.Sprint(exps) != fmt.Sprint(c.exps) {
			t.Errorf("PrimeFactors(%d) = %v^%v, expected %v^%v", c.x, primes, exps, c.primes, c.exps)
		}
	}
	if _, _, err := PrimeFactors(1); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("PrimeFactors(1) should fail, got %v", err)
	}
}
