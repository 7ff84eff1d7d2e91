package bch

import "github.com/ppopth/bch-codec/field"

// Config contains the optional parameters of a BCH code
type Config struct {
	// First consecutive power of the primitive element among the roots of
	// the generator polynomial. 1 gives a narrow-sense code.
	C int
	// Primitive polynomial over GF(2) defining GF(2^m). Nil selects the
	// lexicographically smallest primitive polynomial of degree m.
	DefiningPoly *field.Poly
	// Primitive element of GF(2^m) whose powers are the roots. Zero selects
	// the smallest primitive element.
	PrimitiveElement field.Element
	// Arithmetic strategy of GF(2^m)
	Strategy field.Strategy
	// Whether codewords start with the message followed by parity bits
	Systematic bool
	// Number of goroutines for batched encoding and decoding. Zero or less
	// selects GOMAXPROCS.
	Workers int
}

// DefaultConfig returns a narrow-sense systematic configuration.
func DefaultConfig() *Config {
	return &Config{
		C:          1,
		Systematic: true,
	}
}
