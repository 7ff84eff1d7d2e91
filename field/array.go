package field

import (
	"fmt"
	"slices"
	"strings"
)

// Array is an n-dimensional array of elements of one field, stored flat in
// row-major order. The field handle is borrowed; arrays over different
// fields never mix.
type Array struct {
	field *Field
	shape []int
	data  []Element
}

// NewArray returns an array with the given shape holding a copy of values.
func NewArray(f *Field, shape []int, values []Element) (*Array, error) {
	size, err := shapeSize(shape)
	if err != nil {
		return nil, err
	}
	if size != len(values) {
		return nil, fmt.Errorf("%w: %d values do not fill shape %v", ErrInvalidValue, len(values), shape)
	}
	for _, v := range values {
		if !f.Contains(v) {
			return nil, fmt.Errorf("%w: %d is not in %s", ErrInvalidValue, v, f)
		}
	}
	return newArray(f, slices.Clone(values), shape), nil
}

// NewVector returns a 1-D array.
func NewVector(f *Field, values ...Element) (*Array, error) {
	return NewArray(f, []int{len(values)}, values)
}

// NewMatrix returns a 2-D array from equal-length rows.
func NewMatrix(f *Field, rows [][]Element) (*Array, error) {
	if len(rows) == 0 {
		return newArray(f, nil, []int{0, 0}), nil
	}
	cols := len(rows[0])
	values := make([]Element, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidValue, i, len(row), cols)
		}
		values = append(values, row...)
	}
	return NewArray(f, []int{len(rows), cols}, values)
}

// newArray takes ownership of data and copies shape.
func newArray(f *Field, data []Element, shape []int) *Array {
	if data == nil {
		data = []Element{}
	}
	return &Array{field: f, shape: slices.Clone(shape), data: data}
}

func shapeSize(shape []int) (int, error) {
	size := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative dimension in shape %v", ErrInvalidValue, shape)
		}
		size *= d
	}
	return size, nil
}

// Zeros returns an array of zeros.
func Zeros(f *Field, shape ...int) *Array {
	size, err := shapeSize(shape)
	if err != nil {
		panic(err)
	}
	return newArray(f, make([]Element, size), shape)
}

// Ones returns an array of ones.
func Ones(f *Field, shape ...int) *Array {
	a := Zeros(f, shape...)
	for i := range a.data {
		a.data[i] = 1
	}
	return a
}

// Identity returns the n×n identity matrix.
func Identity(f *Field, n int) *Array {
	a := Zeros(f, n, n)
	for i := 0; i < n; i++ {
		a.data[i*n+i] = 1
	}
	return a
}

// Scalar returns a 0-dimensional array.
func Scalar(f *Field, v Element) (*Array, error) {
	return NewArray(f, nil, []Element{v})
}

func (a *Array) Field() *Field { return a.field }

// Shape returns a copy of the dimensions.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// Ndim returns the number of dimensions.
func (a *Array) Ndim() int { return len(a.shape) }

// Size returns the number of elements.
func (a *Array) Size() int { return len(a.data) }

// Values returns a copy of the elements in row-major order.
func (a *Array) Values() []Element { return slices.Clone(a.data) }

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("field: %d indices for an array of shape %v", len(idx), a.shape))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= a.shape[i] {
			panic(fmt.Sprintf("field: index %v out of range for shape %v", idx, a.shape))
		}
		off = off*a.shape[i] + x
	}
	return off
}

// At returns the element at idx. It panics if idx is out of range.
func (a *Array) At(idx ...int) Element { return a.data[a.offset(idx)] }

// Set stores v at idx. It panics if idx is out of range or v is not in the
// field.
func (a *Array) Set(v Element, idx ...int) {
	if !a.field.Contains(v) {
		panic(fmt.Sprintf("field: %d is not in %s", v, a.field))
	}
	a.data[a.offset(idx)] = v
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array { return newArray(a.field, slices.Clone(a.data), a.shape) }

// Reshape returns a copy with a new shape. At most one dimension may be -1,
// in which case it is inferred.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	shape = slices.Clone(shape)
	infer := -1
	known := 1
	for i, d := range shape {
		switch {
		case d == -1 && infer == -1:
			infer = i
		case d < 0:
			return nil, fmt.Errorf("%w: invalid shape %v", ErrInvalidValue, shape)
		default:
			known *= d
		}
	}
	if infer >= 0 {
		if known == 0 || len(a.data)%known != 0 {
			return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrInvalidValue, a.shape, shape)
		}
		shape[infer] = len(a.data) / known
	} else if known != len(a.data) {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrInvalidValue, a.shape, shape)
	}
	return newArray(a.field, slices.Clone(a.data), shape), nil
}

// View re-expresses the values in another field, e.g. a GF(2) codeword as
// GF(2^m) elements. Every value must be in range.
func (a *Array) View(f *Field) (*Array, error) {
	for _, v := range a.data {
		if !f.Contains(v) {
			return nil, fmt.Errorf("%w: %d is not in %s", ErrInvalidValue, v, f)
		}
	}
	return newArray(f, slices.Clone(a.data), a.shape), nil
}

// Equal reports whether a and o have the same field, shape and values.
func (a *Array) Equal(o *Array) bool {
	return a.field == o.field && slices.Equal(a.shape, o.shape) && slices.Equal(a.data, o.data)
}

func (a *Array) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%v[", a.field, a.shape)
	for i, v := range a.data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, uint64(v))
	}
	b.WriteByte(']')
	return b.String()
}

// broadcastShape applies the usual right-aligned broadcasting rule: two
// dimensions are compatible when equal or when one of them is 1.
func broadcastShape(x, y []int) ([]int, error) {
	n := max(len(x), len(y))
	out := make([]int, n)
	for i := 0; i < n; i++ {
		dx, dy := 1, 1
		if j := len(x) - n + i; j >= 0 {
			dx = x[j]
		}
		if j := len(y) - n + i; j >= 0 {
			dy = y[j]
		}
		switch {
		case dx == dy, dy == 1:
			out[i] = dx
		case dx == 1:
			out[i] = dy
		default:
			return nil, fmt.Errorf("%w: shapes %v and %v cannot be broadcast", ErrInvalidValue, x, y)
		}
	}
	return out, nil
}

// broadcastStrides returns the strides of a, aligned to out, with zero
// strides on broadcast dimensions.
func (a *Array) broadcastStrides(out []int) []int {
	strides := make([]int, len(out))
	stride := 1
	for i := len(a.shape) - 1; i >= 0; i-- {
		j := len(out) - len(a.shape) + i
		if a.shape[i] != 1 {
			strides[j] = stride
		}
		stride *= a.shape[i]
	}
	return strides
}

// zip applies op element-wise with broadcasting. op may fail, which aborts
// the whole operation.
func (a *Array) zip(o *Array, op func(x, y Element) (Element, error)) (*Array, error) {
	if a.field != o.field {
		return nil, fmt.Errorf("%w: arrays over %s and %s", ErrInvalidType, a.field, o.field)
	}
	shape, err := broadcastShape(a.shape, o.shape)
	if err != nil {
		return nil, err
	}
	size, _ := shapeSize(shape)
	out := make([]Element, size)
	sa, so := a.broadcastStrides(shape), o.broadcastStrides(shape)
	idx := make([]int, len(shape))
	ia, io := 0, 0
	for n := 0; n < size; n++ {
		v, err := op(a.data[ia], o.data[io])
		if err != nil {
			return nil, err
		}
		out[n] = v
		// Advance the multi-index like an odometer
		for d := len(shape) - 1; d >= 0; d-- {
			idx[d]++
			ia += sa[d]
			io += so[d]
			if idx[d] < shape[d] {
				break
			}
			ia -= sa[d] * shape[d]
			io -= so[d] * shape[d]
			idx[d] = 0
		}
	}
	return newArray(a.field, out, shape), nil
}

func (a *Array) apply(op func(x Element) (Element, error)) (*Array, error) {
	out := make([]Element, len(a.data))
	for i, v := range a.data {
		r, err := op(v)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return newArray(a.field, out, a.shape), nil
}

func lift(op func(x, y Element) Element) func(x, y Element) (Element, error) {
	return func(x, y Element) (Element, error) { return op(x, y), nil }
}

// Add returns a + o with broadcasting.
func (a *Array) Add(o *Array) (*Array, error) { return a.zip(o, lift(a.field.Add)) }

// Sub returns a - o with broadcasting.
func (a *Array) Sub(o *Array) (*Array, error) { return a.zip(o, lift(a.field.Sub)) }

// Mul returns the element-wise product with broadcasting.
func (a *Array) Mul(o *Array) (*Array, error) { return a.zip(o, lift(a.field.Mul)) }

// Div returns the element-wise quotient with broadcasting. Any zero divisor
// fails the whole operation with ErrDivisionByZero.
func (a *Array) Div(o *Array) (*Array, error) { return a.zip(o, a.field.Div) }

// Neg returns -a.
func (a *Array) Neg() *Array {
	out, _ := a.apply(func(x Element) (Element, error) { return a.field.Neg(x), nil })
	return out
}

// Reciprocal returns the element-wise inverse.
func (a *Array) Reciprocal() (*Array, error) { return a.apply(a.field.Reciprocal) }

// Power raises every element to e.
func (a *Array) Power(e int64) (*Array, error) {
	return a.apply(func(x Element) (Element, error) { return a.field.Power(x, e) })
}

// Log returns the discrete logarithm of every element, in row-major order.
func (a *Array) Log() ([]uint64, error) {
	out := make([]uint64, len(a.data))
	for i, v := range a.data {
		l, err := a.field.Log(v)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}
