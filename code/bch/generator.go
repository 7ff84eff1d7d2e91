package bch

import (
	"fmt"
	"slices"

	"github.com/ppopth/bch-codec/code"
	"github.com/ppopth/bch-codec/field"
)

// Params describes one valid (n, k) BCH code and its error-correcting
// capability t.
type Params struct {
	N, K, T int
}

func (p Params) String() string {
	return fmt.Sprintf("BCH(%d, %d) t=%d", p.N, p.K, p.T)
}

// extensionField returns GF(2^m) for n = 2^m - 1 and validates c.
func extensionField(n, c int, cfg *Config) (*field.Field, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n must have the form 2^m - 1, not %d", field.ErrInvalidValue, n)
	}
	primes, powers, err := field.PrimeFactors(uint64(n) + 1)
	if err != nil {
		return nil, err
	}
	if len(primes) != 1 || primes[0] != 2 {
		return nil, fmt.Errorf("%w: n must have the form 2^m - 1, not %d", field.ErrInvalidValue, n)
	}
	if c < 1 {
		return nil, fmt.Errorf("%w: c must be at least 1, not %d", field.ErrInvalidValue, c)
	}
	return field.New(uint64(1)<<powers[0], &field.Config{
		DefiningPoly:     cfg.DefiningPoly,
		PrimitiveElement: cfg.PrimitiveElement,
		Strategy:         cfg.Strategy,
	})
}

// conjugates is the union of the Frobenius orbits of a set of powers of
// the primitive element, tracked by exponent modulo n = q - 1.
type conjugates struct {
	n, m    int
	members map[int]struct{}
}

func newConjugates(n, m int) *conjugates {
	return &conjugates{n: n, m: m, members: make(map[int]struct{})}
}

// add inserts primitive^e and its conjugates primitive^(e 2^j), j < m.
func (s *conjugates) add(e int) {
	e %= s.n
	for j := 0; j < s.m; j++ {
		if _, ok := s.members[e]; ok {
			return
		}
		s.members[e] = struct{}{}
		e = 2 * e % s.n
	}
}

// addRange adds the exponents [lo, hi).
func (s *conjugates) addRange(lo, hi int) {
	for e := lo; e < hi; e++ {
		s.add(e)
	}
}

func (s *conjugates) size() int { return len(s.members) }

func (s *conjugates) exponents() []int {
	out := make([]int, 0, len(s.members))
	for e := range s.members {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// search finds the largest t for which the roots primitive^c ...
// primitive^(c+2t-1) generate a code of dimension k. It returns t and the
// exponents of every root of the generator polynomial.
func search(f *field.Field, n, k, c int) (int, []int, error) {
	if k < 1 || k >= n {
		return 0, nil, fmt.Errorf("%w: k must satisfy 1 <= k < %d, not %d", field.ErrInvalidValue, n, k)
	}
	m := int(f.Degree())
	target := n - k

	t := (target + m - 1) / m
	set := newConjugates(n, m)
	set.addRange(c, c+2*t)

	best := 0
	var bestExps []int
	for {
		d := set.size()
		switch {
		case d < target:
		case d == target:
			// A larger t may give the same degree, keep looking
			best = t
			bestExps = set.exponents()
		case best > 0:
			log.Debugf("BCH(%d, %d) c=%d: t=%d, generator degree %d", n, k, c, best, target)
			return best, bestExps, nil
		default:
			return 0, nil, fmt.Errorf("%w: the code BCH(%d, %d) with c=%d does not exist", field.ErrInvalidValue, n, k, c)
		}
		set.addRange(c+2*t, c+2*t+2)
		t++
	}
}

// generator runs the search and builds g over GF(2) together with the 2t
// consecutive roots.
func generator(n, k int, cfg *Config) (*field.Field, field.Poly, *field.Array, int, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	f, err := extensionField(n, cfg.C, cfg)
	if err != nil {
		return nil, field.Poly{}, nil, 0, err
	}
	t, exps, err := search(f, n, k, cfg.C)
	if err != nil {
		return nil, field.Poly{}, nil, 0, err
	}

	all := make([]field.Element, len(exps))
	for i, e := range exps {
		all[i] = f.Exp(int64(e))
	}
	g, err := field.PolyFromRoots(f, all)
	if err != nil {
		return nil, field.Poly{}, nil, 0, err
	}
	// The conjugate closure puts every coefficient in GF(2)
	g, err = g.Convert(field.GF2())
	if err != nil {
		return nil, field.Poly{}, nil, 0, err
	}

	consecutive := make([]field.Element, 2*t)
	for i := range consecutive {
		consecutive[i] = f.Exp(int64(cfg.C + i))
	}
	roots, err := field.NewVector(f, consecutive...)
	if err != nil {
		return nil, field.Poly{}, nil, 0, err
	}
	return f, g, roots, t, nil
}

// ValidCodes returns the narrow-sense primitive BCH codes of length n with
// t >= tMin. When several values of t give the same k, only the largest is
// listed. The list ends with the repetition code (k = 1).
func ValidCodes(n, tMin int) ([]Params, error) {
	if tMin < 1 {
		return nil, fmt.Errorf("%w: t must be at least 1, not %d", field.ErrInvalidValue, tMin)
	}
	f, err := extensionField(n, 1, DefaultConfig())
	if err != nil {
		return nil, err
	}
	m := int(f.Degree())

	set := newConjugates(n, m)
	set.addRange(1, 1+2*tMin)
	var codes []Params
	for t := tMin; ; t++ {
		if t > tMin {
			set.addRange(1+2*(t-1), 1+2*t)
		}
		k := n - set.size()
		if k < 1 {
			break
		}
		if len(codes) > 0 && codes[len(codes)-1].K == k {
			codes[len(codes)-1].T = t
		} else {
			codes = append(codes, Params{N: n, K: k, T: t})
		}
	}
	return codes, nil
}

// GeneratorPoly returns the generator polynomial over GF(2) of the BCH(n, k)
// code. A nil config selects DefaultConfig.
func GeneratorPoly(n, k int, cfg *Config) (field.Poly, error) {
	_, g, _, _, err := generator(n, k, cfg)
	return g, err
}

// GeneratorPolyRoots is like GeneratorPoly but also returns the 2t
// consecutive roots primitive^c ... primitive^(c+2t-1) in GF(2^m).
func GeneratorPolyRoots(n, k int, cfg *Config) (field.Poly, *field.Array, error) {
	_, g, roots, _, err := generator(n, k, cfg)
	return g, roots, err
}

// GeneratorMatrix returns the k×n generator matrix over GF(2).
func GeneratorMatrix(n, k int, cfg *Config) (*field.Array, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	g, err := GeneratorPoly(n, k, cfg)
	if err != nil {
		return nil, err
	}
	return code.GeneratorPolyToMatrix(n, g, cfg.Systematic)
}

// ParityCheckMatrix returns the 2t×n parity-check matrix over GF(2^m).
func ParityCheckMatrix(n, k int, cfg *Config) (*field.Array, error) {
	_, roots, err := GeneratorPolyRoots(n, k, cfg)
	if err != nil {
		return nil, err
	}
	return code.RootsToParityCheckMatrix(n, roots)
}
