// Package code contains building blocks shared by linear block codes: the
// conversion of a generator polynomial or a root set into generator and
// parity-check matrices, and a row-parallel runner for batched encoding
// and decoding.
package code

import (
	"fmt"

	"github.com/ppopth/bch-codec/field"
)

// LinearBlock defines the interface of an (n, k) linear block code over
// GF(2). Messages and codewords are arrays whose trailing dimension is k
// and n respectively; any leading dimensions form a batch.
type LinearBlock interface {
	// N returns the codeword length
	N() int
	// K returns the message length
	K() int
	// GeneratorMatrix returns the k×n matrix G such that c = mG
	GeneratorMatrix() *field.Array
	// ParityCheckMatrix returns the matrix H such that cH^T = 0 for every codeword
	ParityCheckMatrix() *field.Array
	// Encode maps messages to codewords
	Encode(message *field.Array) (*field.Array, error)
	// Decode corrects codewords and extracts their messages
	Decode(codeword *field.Array) (*field.Array, error)
}

// SplitRows flattens the leading dimensions of a so that it becomes a
// rows×width matrix. It returns the matrix and the leading dimensions,
// which the caller uses to restore the shape of the result.
func SplitRows(a *field.Array, width int) (*field.Array, []int, error) {
	shape := a.Shape()
	if width < 1 || len(shape) == 0 || shape[len(shape)-1] != width {
		return nil, nil, fmt.Errorf("%w: trailing dimension must be %d, got shape %v", field.ErrInvalidValue, width, shape)
	}
	flat, err := a.Reshape(-1, width)
	if err != nil {
		return nil, nil, err
	}
	return flat, shape[:len(shape)-1], nil
}

// JoinRows restores the leading dimensions removed by SplitRows.
func JoinRows(a *field.Array, leading []int) (*field.Array, error) {
	shape := append(append([]int(nil), leading...), a.Cols())
	return a.Reshape(shape...)
}
