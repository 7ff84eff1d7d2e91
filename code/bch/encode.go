package bch

import (
	"fmt"

	"github.com/ppopth/bch-codec/code"
	"github.com/ppopth/bch-codec/field"
)

func checkBinary(a *field.Array) error {
	if a.Field().Order() != 2 {
		return fmt.Errorf("%w: expected an array over GF(2), got %s", field.ErrInvalidType, a.Field())
	}
	return nil
}

// Encode maps messages to codewords. The trailing dimension of message
// must be k; leading dimensions are preserved. Systematic codewords are
// the message followed by n-k parity bits.
func (c *Code) Encode(message *field.Array) (*field.Array, error) {
	return c.encode(message, false)
}

// EncodeParity returns only the n-k parity bits of the systematic
// codewords. It fails for non-systematic codes.
func (c *Code) EncodeParity(message *field.Array) (*field.Array, error) {
	if !c.systematic {
		return nil, fmt.Errorf("%w: parity-only encoding needs a systematic code", field.ErrInvalidValue)
	}
	return c.encode(message, true)
}

func (c *Code) encode(message *field.Array, parityOnly bool) (*field.Array, error) {
	if err := checkBinary(message); err != nil {
		return nil, err
	}
	flat, leading, err := code.SplitRows(message, c.k)
	if err != nil {
		return nil, err
	}
	rows := flat.Rows()
	msgs := flat.Values()

	// The product is either the full codeword or the parity block
	product := len(c.gRows[0])
	width := product
	prefix := 0
	if c.systematic && !parityOnly {
		width = c.n
		prefix = c.k
	}

	gf2 := field.GF2()
	out := make([]field.Element, rows*width)
	err = code.ParallelRows(rows, c.workers, func(lo, hi int) error {
		for r := lo; r < hi; r++ {
			msg := msgs[r*c.k : (r+1)*c.k]
			dst := out[r*width : (r+1)*width]
			copy(dst, msg[:prefix])
			parity := dst[prefix:]
			for i, bit := range msg {
				if bit == 0 {
					continue
				}
				for j, v := range c.gRows[i] {
					parity[j] = gf2.Add(parity[j], v)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("%s: encoded %d rows", c, rows)

	encoded, err := field.NewArray(gf2, []int{rows, width}, out)
	if err != nil {
		return nil, err
	}
	return code.JoinRows(encoded, leading)
}
