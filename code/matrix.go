package code

import (
	"fmt"

	"github.com/ppopth/bch-codec/field"
)

// GeneratorPolyToMatrix returns the k×n generator matrix of the cyclic code
// of length n generated by g, where k = n - deg(g). Column j of a codeword
// holds the coefficient of x^(n-1-j).
//
// The non-systematic matrix has x^(k-1-i) g(x) in row i. The systematic
// matrix is [I_k | P] where row i of P is -(x^(n-1-i) mod g), so that
// every row is a multiple of g.
func GeneratorPolyToMatrix(n int, g field.Poly, systematic bool) (*field.Array, error) {
	f := g.Field()
	d := g.Degree()
	if g.IsZero() || n < 1 || d >= n {
		return nil, fmt.Errorf("%w: generator %s does not define a code of length %d", field.ErrInvalidValue, g, n)
	}
	k := n - d
	coeffs := g.Coeffs()

	if !systematic {
		G := field.Zeros(f, k, n)
		for i := 0; i < k; i++ {
			for j, c := range coeffs {
				G.Set(c, i, i+j)
			}
		}
		return G, nil
	}

	if d == 0 {
		return field.Identity(f, k), nil
	}

	// gHat[i] is the x^i coefficient of g divided by its leading
	// coefficient, so that x^d = -gHat(x) mod g.
	lead, err := f.Reciprocal(coeffs[0])
	if err != nil {
		return nil, err
	}
	gHat := make([]field.Element, d)
	for i := 0; i < d; i++ {
		gHat[i] = f.Mul(coeffs[d-i], lead)
	}

	// rem holds x^(d+s) mod g, ascending, starting from s = 0
	P := field.Zeros(f, k, d)
	rem := make([]field.Element, d)
	for i := range rem {
		rem[i] = f.Neg(gHat[i])
	}
	for s := 0; s < k; s++ {
		if s > 0 {
			top := rem[d-1]
			copy(rem[1:], rem[:d-1])
			rem[0] = 0
			for i := range rem {
				rem[i] = f.Sub(rem[i], f.Mul(top, gHat[i]))
			}
		}
		row := k - 1 - s
		for j := 0; j < d; j++ {
			P.Set(f.Neg(rem[d-1-j]), row, j)
		}
	}
	return field.HStack(field.Identity(f, k), P)
}

// RootsToParityCheckMatrix returns the parity-check matrix whose row i
// evaluates a codeword polynomial at roots[i]: H[i][j] = roots[i]^(n-1-j).
// A word c satisfies cH^T = 0 exactly when every root is a root of c(x).
func RootsToParityCheckMatrix(n int, roots *field.Array) (*field.Array, error) {
	if roots.Ndim() != 1 {
		return nil, fmt.Errorf("%w: roots must be a vector, got shape %v", field.ErrInvalidValue, roots.Shape())
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: code length must be positive, not %d", field.ErrInvalidValue, n)
	}
	f := roots.Field()
	values := roots.Values()
	H := field.Zeros(f, len(values), n)
	for i, r := range values {
		x := field.Element(1)
		for j := n - 1; j >= 0; j-- {
			H.Set(x, i, j)
			x = f.Mul(x, r)
		}
	}
	return H, nil
}
