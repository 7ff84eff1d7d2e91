package field

import (
	"fmt"
	"slices"
)

// LFSR is a Fibonacci linear-feedback shift register over a finite field.
// Its connection polynomial C(x) = 1 + c_1 x + ... + c_L x^L defines the
// recurrence
//
//	y_n = -(c_1 y_{n-1} + ... + c_L y_{n-L})
//
// which is the form BerlekampMassey returns. The state holds the next L
// outputs, oldest first.
type LFSR struct {
	field      *Field
	connection Poly
	taps       []Element // taps[i] = -c_{i+1}
	initial    []Element
	state      []Element
}

// NewLFSR returns a register with the given connection polynomial and
// initial state. The state must have one element per degree of the
// polynomial and the constant term must be 1.
func NewLFSR(connection Poly, state []Element) (*LFSR, error) {
	f := connection.field
	if f == nil {
		return nil, fmt.Errorf("%w: connection polynomial has no field", ErrInvalidType)
	}
	if connection.Coeff(0) != 1 {
		return nil, fmt.Errorf("%w: connection polynomial %s must have constant term 1", ErrInvalidValue, connection)
	}
	L := connection.Degree()
	if len(state) != L {
		return nil, fmt.Errorf("%w: state has %d elements, connection polynomial %s needs %d", ErrInvalidValue, len(state), connection, L)
	}
	for _, s := range state {
		if !f.Contains(s) {
			return nil, fmt.Errorf("%w: %d is not in %s", ErrInvalidValue, s, f)
		}
	}

	taps := make([]Element, L)
	for i := range taps {
		taps[i] = f.Neg(connection.Coeff(i + 1))
	}
	return &LFSR{
		field:      f,
		connection: connection,
		taps:       taps,
		initial:    slices.Clone(state),
		state:      slices.Clone(state),
	}, nil
}

// LFSRFromSequence returns the shortest register that generates seq, reset
// to the start of seq.
func LFSRFromSequence(f *Field, seq []Element) (*LFSR, error) {
	c, L, err := BerlekampMassey(f, seq)
	if err != nil {
		return nil, err
	}
	return NewLFSR(c, seq[:L])
}

// Step shifts the register n times and returns the n outputs.
func (r *LFSR) Step(n int) ([]Element, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: number of steps must be at least 1, not %d", ErrInvalidValue, n)
	}
	out := make([]Element, n)
	L := len(r.state)
	if L == 0 {
		return out, nil
	}
	f := r.field
	for i := range out {
		out[i] = r.state[0]
		next := Element(0)
		for j, t := range r.taps {
			next = f.Add(next, f.Mul(t, r.state[L-1-j]))
		}
		copy(r.state, r.state[1:])
		r.state[L-1] = next
	}
	return out, nil
}

// Reset restores the initial state.
func (r *LFSR) Reset() { copy(r.state, r.initial) }

// State returns the next Degree() outputs without advancing.
func (r *LFSR) State() []Element { return slices.Clone(r.state) }

func (r *LFSR) Connection() Poly { return r.connection }
func (r *LFSR) Field() *Field    { return r.field }
func (r *LFSR) Degree() int      { return len(r.taps) }

func (r *LFSR) String() string {
	return fmt.Sprintf("Fibonacci LFSR: poly=%s over %s", r.connection, r.field)
}
