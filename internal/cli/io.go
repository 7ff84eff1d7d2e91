package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ppopth/bch-codec/field"
	"github.com/ppopth/bch-codec/internal/config"
	"github.com/ppopth/bch-codec/pb"
)

// readRows reads a 2-D GF(2) array in the given format and checks that
// its rows have the expected width. Frames must be of the given kind.
func readRows(r io.Reader, format string, width int, kind pb.Frame_Kind) (*field.Array, error) {
	var (
		rows *field.Array
		err  error
	)
	switch format {
	case config.FormatText:
		rows, err = readTextRows(r)
	case config.FormatFrame:
		rows, err = readFrameRows(r, kind)
	default:
		return nil, fmt.Errorf("%w: unknown input format %q", field.ErrInvalidValue, format)
	}
	if err != nil {
		return nil, err
	}
	if rows.Cols() != width {
		return nil, fmt.Errorf("%w: rows have %d bits, expected %d", field.ErrInvalidValue, rows.Cols(), width)
	}
	return rows, nil
}

// readTextRows parses one row of 0 and 1 characters per line. Blank lines
// and lines starting with # are skipped; spaces, tabs and commas inside a
// row are ignored.
func readTextRows(r io.Reader) (*field.Array, error) {
	scanner := bufio.NewScanner(r)
	var values []field.Element
	rows, width := 0, -1
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		bits := 0
		for _, ch := range text {
			switch ch {
			case '0', '1':
				values = append(values, field.Element(ch-'0'))
				bits++
			case ' ', '\t', ',':
			default:
				return nil, fmt.Errorf("%w: line %d: unexpected character %q", field.ErrInvalidValue, line, ch)
			}
		}
		if bits == 0 || (width >= 0 && bits != width) {
			return nil, fmt.Errorf("%w: line %d has %d bits, expected %d", field.ErrInvalidValue, line, bits, width)
		}
		width = bits
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: no input rows", field.ErrInvalidValue)
	}
	return field.NewArray(field.GF2(), []int{rows, width}, values)
}

func readFrameRows(r io.Reader, kind pb.Frame_Kind) (*field.Array, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	frame, err := pb.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := checkKind(frame, kind); err != nil {
		return nil, err
	}
	return frame.Array()
}

func writeFrame(w io.Writer, frame *pb.Frame) error {
	data, err := pb.Encode(frame)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func bitString(a *field.Array, i int) string {
	var sb strings.Builder
	for j := 0; j < a.Cols(); j++ {
		sb.WriteByte('0' + byte(a.At(i, j)))
	}
	return sb.String()
}

// writeTextRows writes a 2-D GF(2) array, one row of bits per line.
func writeTextRows(w io.Writer, a *field.Array) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < a.Rows(); i++ {
		bw.WriteString(bitString(a, i))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// writeDecoded writes each decoded message followed by its error count.
func writeDecoded(w io.Writer, messages *field.Array, errors []int) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < messages.Rows(); i++ {
		fmt.Fprintf(bw, "%s %d\n", bitString(messages, i), errors[i])
	}
	return bw.Flush()
}

// writeElementRows writes a matrix over any field as space-separated integers.
func writeElementRows(w io.Writer, a *field.Array) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatUint(uint64(a.At(i, j)), 10))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
