// Package bch implements primitive binary BCH codes: the search for the
// generator polynomial, generator and parity-check matrices, encoding, and
// syndrome decoding with Berlekamp-Massey and Chien search.
package bch

import (
	"fmt"

	"github.com/ppopth/bch-codec/code"
	"github.com/ppopth/bch-codec/field"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("bch")

var _ code.LinearBlock = (*Code)(nil)

// Code is a primitive binary BCH(n, k) code with n = 2^m - 1. All derived
// values are computed by New, after which a Code is immutable and safe for
// concurrent use.
type Code struct {
	n, k, c, t int
	systematic bool
	workers    int

	field *field.Field // GF(2^m)
	g     field.Poly   // over GF(2)
	roots *field.Array // primitive^c ... primitive^(c+2t-1)

	G, H  *field.Array
	gRows [][]field.Element // rows of G, or of its parity block when systematic
	hRows [][]field.Element
}

// New constructs the BCH(n, k) code. A nil config selects DefaultConfig.
func New(n, k int, cfg *Config) (*Code, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	f, g, roots, t, err := generator(n, k, cfg)
	if err != nil {
		return nil, err
	}
	G, err := code.GeneratorPolyToMatrix(n, g, cfg.Systematic)
	if err != nil {
		return nil, err
	}
	H, err := code.RootsToParityCheckMatrix(n, roots)
	if err != nil {
		return nil, err
	}

	c := &Code{
		n:          n,
		k:          k,
		c:          cfg.C,
		t:          t,
		systematic: cfg.Systematic,
		workers:    cfg.Workers,
		field:      f,
		g:          g,
		roots:      roots,
		G:          G,
		H:          H,
	}

	encoding := G
	if c.systematic {
		if encoding, err = G.Columns(k, n); err != nil {
			return nil, err
		}
	}
	c.gRows = matrixRows(encoding)
	c.hRows = matrixRows(H)

	log.Debugf("constructed %s over %s, g(x) = %s", c, f, g)
	return c, nil
}

func matrixRows(a *field.Array) [][]field.Element {
	values := a.Values()
	cols := a.Cols()
	rows := make([][]field.Element, a.Rows())
	for i := range rows {
		rows[i] = values[i*cols : (i+1)*cols]
	}
	return rows
}

func (c *Code) String() string {
	return fmt.Sprintf("BCH(%d, %d)", c.n, c.k)
}

// N returns the codeword length.
func (c *Code) N() int { return c.n }

// K returns the message length.
func (c *Code) K() int { return c.k }

// T returns the number of bit errors the code is guaranteed to correct.
func (c *Code) T() int { return c.t }

// C returns the first consecutive root power.
func (c *Code) C() int { return c.c }

// Systematic reports whether codewords start with their message.
func (c *Code) Systematic() bool { return c.systematic }

// NarrowSense reports whether the roots start at primitive^1.
func (c *Code) NarrowSense() bool { return c.c == 1 }

// Field returns GF(2^m), the field of the roots and syndromes.
func (c *Code) Field() *field.Field { return c.field }

// GeneratorPoly returns g(x) over GF(2).
func (c *Code) GeneratorPoly() field.Poly { return c.g }

// Roots returns the 2t consecutive roots of g(x).
func (c *Code) Roots() *field.Array { return c.roots.Clone() }

// GeneratorMatrix returns the k×n generator matrix over GF(2).
func (c *Code) GeneratorMatrix() *field.Array { return c.G.Clone() }

// ParityCheckMatrix returns the 2t×n parity-check matrix over GF(2^m).
func (c *Code) ParityCheckMatrix() *field.Array { return c.H.Clone() }

// Params returns (n, k, t).
func (c *Code) Params() Params { return Params{N: c.n, K: c.k, T: c.t} }
