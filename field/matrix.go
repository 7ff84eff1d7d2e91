package field

import (
	"fmt"
	"slices"
)

// Matrix operations over finite fields. Every function here takes 2-D
// arrays.

func (a *Array) requireMatrix(op string) error {
	if len(a.shape) != 2 {
		return fmt.Errorf("%w: %s needs a 2-D array, got shape %v", ErrInvalidValue, op, a.shape)
	}
	return nil
}

// Rows returns the number of rows of a 2-D array.
func (a *Array) Rows() int { return a.shape[0] }

// Cols returns the number of columns of a 2-D array.
func (a *Array) Cols() int { return a.shape[1] }

// MatMul computes a × o. a is m×n, o is n×p, the result is m×p.
func (a *Array) MatMul(o *Array) (*Array, error) {
	if a.field != o.field {
		return nil, fmt.Errorf("%w: arrays over %s and %s", ErrInvalidType, a.field, o.field)
	}
	if err := a.requireMatrix("MatMul"); err != nil {
		return nil, err
	}
	if err := o.requireMatrix("MatMul"); err != nil {
		return nil, err
	}
	m, n, p := a.shape[0], a.shape[1], o.shape[1]
	if o.shape[0] != n {
		return nil, fmt.Errorf("%w: matrix dimensions mismatch: %d×%d and %d×%d", ErrInvalidValue, m, n, o.shape[0], p)
	}

	f := a.field
	out := make([]Element, m*p)
	for i := 0; i < m; i++ {
		row := a.data[i*n : (i+1)*n]
		dst := out[i*p : (i+1)*p]
		for k, x := range row {
			if x == 0 {
				continue
			}
			src := o.data[k*p : (k+1)*p]
			for j, y := range src {
				dst[j] = f.Add(dst[j], f.Mul(x, y))
			}
		}
	}
	return newArray(f, out, []int{m, p}), nil
}

// Transpose returns the transpose of a 2-D array.
func (a *Array) Transpose() (*Array, error) {
	if err := a.requireMatrix("Transpose"); err != nil {
		return nil, err
	}
	m, n := a.shape[0], a.shape[1]
	out := make([]Element, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			out[j*m+i] = a.data[i*n+j]
		}
	}
	return newArray(a.field, out, []int{n, m}), nil
}

// Columns returns columns [lo, hi) of a 2-D array.
func (a *Array) Columns(lo, hi int) (*Array, error) {
	if err := a.requireMatrix("Columns"); err != nil {
		return nil, err
	}
	m, n := a.shape[0], a.shape[1]
	if lo < 0 || hi > n || lo > hi {
		return nil, fmt.Errorf("%w: columns [%d, %d) out of range for %d columns", ErrInvalidValue, lo, hi, n)
	}
	w := hi - lo
	out := make([]Element, 0, m*w)
	for i := 0; i < m; i++ {
		out = append(out, a.data[i*n+lo:i*n+hi]...)
	}
	return newArray(a.field, out, []int{m, w}), nil
}

// Row returns row i of a 2-D array as a vector.
func (a *Array) Row(i int) (*Array, error) {
	if err := a.requireMatrix("Row"); err != nil {
		return nil, err
	}
	if i < 0 || i >= a.shape[0] {
		return nil, fmt.Errorf("%w: row %d out of range for %d rows", ErrInvalidValue, i, a.shape[0])
	}
	n := a.shape[1]
	return newArray(a.field, slices.Clone(a.data[i*n:(i+1)*n]), []int{n}), nil
}

// HStack concatenates 2-D arrays with the same number of rows side by side.
func HStack(arrays ...*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("%w: nothing to stack", ErrInvalidValue)
	}
	f := arrays[0].field
	rows, cols := -1, 0
	for _, a := range arrays {
		if a.field != f {
			return nil, fmt.Errorf("%w: arrays over %s and %s", ErrInvalidType, f, a.field)
		}
		if err := a.requireMatrix("HStack"); err != nil {
			return nil, err
		}
		if rows >= 0 && a.shape[0] != rows {
			return nil, fmt.Errorf("%w: cannot stack %d rows with %d rows", ErrInvalidValue, rows, a.shape[0])
		}
		rows = a.shape[0]
		cols += a.shape[1]
	}
	out := make([]Element, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for _, a := range arrays {
			n := a.shape[1]
			out = append(out, a.data[i*n:(i+1)*n]...)
		}
	}
	return newArray(f, out, []int{rows, cols}), nil
}

// Rank returns the rank of a 2-D array using forward elimination.
func (a *Array) Rank() (int, error) {
	if err := a.requireMatrix("Rank"); err != nil {
		return 0, err
	}
	f := a.field
	n, m := a.shape[0], a.shape[1]
	A := make([][]Element, n)
	for i := range A {
		A[i] = slices.Clone(a.data[i*m : (i+1)*m])
	}

	rank := 0
	for col := 0; col < m && rank < n; col++ {
		// Find pivot
		pivot := -1
		for i := rank; i < n; i++ {
			if A[i][col] != 0 {
				pivot = i
				break
			}
		}
		if pivot == -1 {
			continue
		}
		A[rank], A[pivot] = A[pivot], A[rank]

		// Eliminate below only
		inv := f.arith.reciprocal(A[rank][col])
		for i := rank + 1; i < n; i++ {
			if A[i][col] == 0 {
				continue
			}
			factor := f.Mul(A[i][col], inv)
			for j := col; j < m; j++ {
				A[i][j] = f.Sub(A[i][j], f.Mul(factor, A[rank][j]))
			}
		}
		rank++
	}
	return rank, nil
}
