// Package pb contains the wire format used to exchange batches of
// messages and codewords, and helpers converting it to and from GF(2)
// arrays.
package pb

import (
	"fmt"

	"github.com/gogo/protobuf/proto"

	"github.com/ppopth/bch-codec/field"
)

// NewFrame packs a 2-D GF(2) array into a frame. errors may be nil.
func NewFrame(kind Frame_Kind, n, k int, rows *field.Array, errors []int) (*Frame, error) {
	if rows.Field().Order() != 2 || rows.Ndim() != 2 {
		return nil, fmt.Errorf("%w: frames carry 2-D arrays over GF(2), got %v over %s", field.ErrInvalidValue, rows.Shape(), rows.Field())
	}
	if errors != nil && len(errors) != rows.Rows() {
		return nil, fmt.Errorf("%w: %d error counts for %d rows", field.ErrInvalidValue, len(errors), rows.Rows())
	}

	frame := &Frame{
		N:     proto.Uint32(uint32(n)),
		K:     proto.Uint32(uint32(k)),
		Kind:  kind.Enum(),
		Rows:  proto.Uint32(uint32(rows.Rows())),
		Width: proto.Uint32(uint32(rows.Cols())),
		Bits:  field.ElementsToBytes(rows.Values(), 1),
	}
	for _, e := range errors {
		frame.Errors = append(frame.Errors, int32(e))
	}
	return frame, nil
}

// Array unpacks the rows of the frame.
func (m *Frame) Array() (*field.Array, error) {
	rows, width := uint64(m.GetRows()), uint64(m.GetWidth())
	// Both factors fit in 32 bits, so the product cannot wrap
	total := rows * width
	if total > uint64(len(m.GetBits()))*8 {
		return nil, fmt.Errorf("%w: %d bytes cannot hold %d×%d bits", field.ErrInvalidValue, len(m.GetBits()), rows, width)
	}
	bits := field.SplitBitsToElements(m.GetBits(), 1)[:total]
	return field.NewArray(field.GF2(), []int{int(rows), int(width)}, bits)
}

// ErrorCounts returns the per-row error counts, or nil if none were sent.
func (m *Frame) ErrorCounts() []int {
	if len(m.GetErrors()) == 0 {
		return nil
	}
	out := make([]int, len(m.Errors))
	for i, e := range m.Errors {
		out[i] = int(e)
	}
	return out
}

// Encode serializes the frame.
func Encode(m *Frame) ([]byte, error) {
	return m.Marshal()
}

// Decode parses a serialized frame.
func Decode(data []byte) (*Frame, error) {
	m := &Frame{}
	if err := m.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal frame: %w", err)
	}
	return m, nil
}
