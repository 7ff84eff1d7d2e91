package bch

import (
	"fmt"

	"github.com/ppopth/bch-codec/code"
	"github.com/ppopth/bch-codec/field"
)

// DecodeResult holds the decoded messages of a batch and the number of
// bits corrected in each row, or -1 where the row was uncorrectable.
type DecodeResult struct {
	Message *field.Array
	Errors  []int
}

// Uncorrectable returns the indices of the rows that could not be corrected.
func (r *DecodeResult) Uncorrectable() []int {
	var rows []int
	for i, e := range r.Errors {
		if e < 0 {
			rows = append(rows, i)
		}
	}
	return rows
}

// Err returns an error wrapping ErrUncorrectable if any row could not be
// corrected, and nil otherwise.
func (r *DecodeResult) Err() error {
	if rows := r.Uncorrectable(); len(rows) > 0 {
		return fmt.Errorf("%w: rows %v", ErrUncorrectable, rows)
	}
	return nil
}

// Decode corrects up to t bit errors per codeword and returns the messages.
// The trailing dimension of codeword must be n; leading dimensions are
// preserved. Uncorrectable rows are decoded as received.
func (c *Code) Decode(codeword *field.Array) (*field.Array, error) {
	res, err := c.DecodeResult(codeword)
	if err != nil {
		return nil, err
	}
	return res.Message, nil
}

// DecodeWithErrors is like Decode but also returns the number of corrected
// bits per row, in row-major order of the leading dimensions. A count of -1
// marks an uncorrectable row.
func (c *Code) DecodeWithErrors(codeword *field.Array) (*field.Array, []int, error) {
	res, err := c.DecodeResult(codeword)
	if err != nil {
		return nil, nil, err
	}
	return res.Message, res.Errors, nil
}

// DecodeResult decodes every row and collects the per-row outcome. Rows
// are independent and decoded concurrently.
func (c *Code) DecodeResult(codeword *field.Array) (*DecodeResult, error) {
	if err := checkBinary(codeword); err != nil {
		return nil, err
	}
	flat, leading, err := code.SplitRows(codeword, c.n)
	if err != nil {
		return nil, err
	}
	rows := flat.Rows()
	words := flat.Values()

	msgs := make([]field.Element, rows*c.k)
	counts := make([]int, rows)
	err = code.ParallelRows(rows, c.workers, func(lo, hi int) error {
		syndrome := make([]field.Element, len(c.hRows))
		for r := lo; r < hi; r++ {
			word := words[r*c.n : (r+1)*c.n]
			counts[r] = c.correct(word, syndrome)
			if err := c.extract(word, msgs[r*c.k:(r+1)*c.k]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &DecodeResult{Errors: counts}
	if n := len(res.Uncorrectable()); n > 0 {
		log.Debugf("%s: decoded %d rows, %d uncorrectable", c, rows, n)
	} else {
		log.Debugf("%s: decoded %d rows", c, rows)
	}

	message, err := field.NewArray(field.GF2(), []int{rows, c.k}, msgs)
	if err != nil {
		return nil, err
	}
	if res.Message, err = code.JoinRows(message, leading); err != nil {
		return nil, err
	}
	return res, nil
}

// correct fixes word in place and returns the number of flipped bits, or
// -1 without touching word when the errors cannot be located.
func (c *Code) correct(word, syndrome []field.Element) int {
	f := c.field
	zero := true
	for i, h := range c.hRows {
		var s field.Element
		for j, bit := range word {
			if bit != 0 {
				s = f.Add(s, h[j])
			}
		}
		syndrome[i] = s
		zero = zero && s == 0
	}
	if zero {
		return 0
	}

	sigma, L, err := field.BerlekampMassey(f, syndrome)
	if err != nil || L > c.t {
		return -1
	}
	// Exponents e with sigma(primitive^-e) = 0 locate errors at x^e
	locations := field.ChienSearch(sigma)
	if len(locations) != L {
		return -1
	}
	for _, e := range locations {
		word[c.n-1-int(e)] ^= 1
	}
	return len(locations)
}

// extract writes the message of a (corrected) codeword into dst.
func (c *Code) extract(word, dst []field.Element) error {
	if c.systematic {
		copy(dst, word[:c.k])
		return nil
	}
	received, err := field.NewPoly(c.g.Field(), word...)
	if err != nil {
		return err
	}
	q, err := received.Div(c.g)
	if err != nil {
		return err
	}
	// Right-align the quotient, its leading zeros were trimmed
	coeffs := q.Coeffs()
	clear(dst)
	copy(dst[len(dst)-len(coeffs):], coeffs)
	return nil
}
