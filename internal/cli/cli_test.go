package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppopth/bch-codec/code/bch"
	"github.com/ppopth/bch-codec/field"
	"github.com/ppopth/bch-codec/pb"
)

func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidCodesCmd(t *testing.T) {
	out, err := run(t, nil, "valid-codes", "15")
	require.NoError(t, err)
	assert.Equal(t, "BCH(15, 11) t=1\nBCH(15, 7) t=2\nBCH(15, 5) t=3\nBCH(15, 1) t=7\n", out)

	out, err = run(t, nil, "valid-codes", "--n", "31", "--t-min", "5")
	require.NoError(t, err)
	assert.Equal(t, "BCH(31, 11) t=5\nBCH(31, 6) t=7\nBCH(31, 1) t=15\n", out)

	_, err = run(t, nil, "valid-codes", "fifteen")
	require.ErrorIs(t, err, field.ErrInvalidType)
	_, err = run(t, nil, "valid-codes", "16")
	require.ErrorIs(t, err, field.ErrInvalidValue)
}

func TestGeneratorCmd(t *testing.T) {
	out, err := run(t, nil, "generator", "--n", "15", "--k", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "BCH(15, 7)\n")
	assert.Contains(t, out, "field: GF(2^4), defining polynomial x^4 + x + 1\n")
	assert.Contains(t, out, "g(x) = x^8 + x^7 + x^6 + x^4 + 1\n")
	assert.Contains(t, out, "g = 0x1d1\n")
	assert.Contains(t, out, "roots: 2 4 8 3\n")

	_, err = run(t, nil, "generator", "--n", "15", "--k", "6")
	require.ErrorIs(t, err, field.ErrInvalidValue)
}

func TestMatrixCmd(t *testing.T) {
	out, err := run(t, nil, "matrix", "generator", "--n", "15", "--k", "7")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	for i, line := range lines {
		require.Len(t, line, 15)
		assert.Equal(t, strings.Repeat("0", i)+"1"+strings.Repeat("0", 6-i), line[:7])
	}

	out, err = run(t, nil, "matrix", "parity-check", "--n", "15", "--k", "7")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		entries := strings.Fields(line)
		require.Len(t, entries, 15)
		assert.Equal(t, "1", entries[14])
	}

	_, err = run(t, nil, "matrix", "parity-check", "--n", "15", "--k", "7", "-o", "frame")
	require.ErrorIs(t, err, field.ErrInvalidValue)
	_, err = run(t, nil, "matrix", "inverse", "--n", "15", "--k", "7")
	require.ErrorIs(t, err, field.ErrInvalidValue)
}

func TestEncodeDecodeText(t *testing.T) {
	c, err := bch.New(15, 7, nil)
	require.NoError(t, err)
	messages, err := field.NewMatrix(field.GF2(), [][]field.Element{
		{1, 0, 1, 1, 0, 0, 1},
		{0, 0, 0, 0, 0, 0, 1},
	})
	require.NoError(t, err)
	want, err := c.Encode(messages)
	require.NoError(t, err)

	out, err := run(t, []byte("1011001\n# comment\n\n0 0 0 0 0 0 1\n"), "encode", "--n", "15", "--k", "7")
	require.NoError(t, err)
	assert.Equal(t, bitString(want, 0)+"\n"+bitString(want, 1)+"\n", out)

	parity, err := run(t, []byte("1011001\n"), "encode", "--n", "15", "--k", "7", "--parity")
	require.NoError(t, err)
	assert.Equal(t, bitString(want, 0)[7:]+"\n", parity)

	// Two errors in the first row, none in the second
	rows := strings.Split(strings.TrimSpace(out), "\n")
	corrupted := []byte(rows[0])
	corrupted[2] ^= 1
	corrupted[12] ^= 1
	in := string(corrupted) + "\n" + rows[1] + "\n"

	out, err = run(t, []byte(in), "decode", "--n", "15", "--k", "7")
	require.NoError(t, err)
	assert.Equal(t, "1011001 2\n0000001 0\n", out)
}

func TestDecodeUncorrectable(t *testing.T) {
	in := []byte("110001000000000\n")
	out, err := run(t, in, "decode", "--n", "15", "--k", "7")
	require.NoError(t, err)
	assert.Equal(t, "1100010 -1\n", out)

	out, err = run(t, in, "decode", "--n", "15", "--k", "7", "--strict")
	require.ErrorIs(t, err, bch.ErrUncorrectable)
	assert.Equal(t, 2, ExitCode(err))
	assert.Equal(t, "1100010 -1\n", out)
}

func TestEncodeDecodeFrame(t *testing.T) {
	encoded, err := run(t, []byte("1011001\n1111111\n"), "encode", "--n", "15", "--k", "7", "-o", "frame")
	require.NoError(t, err)
	frame, err := pb.Decode([]byte(encoded))
	require.NoError(t, err)
	assert.Equal(t, pb.Frame_CODEWORD, frame.GetKind())
	assert.Equal(t, uint32(2), frame.GetRows())
	assert.Equal(t, uint32(15), frame.GetWidth())

	decoded, err := run(t, []byte(encoded), "decode", "--n", "15", "--k", "7", "--input", "frame", "-o", "frame")
	require.NoError(t, err)
	frame, err = pb.Decode([]byte(decoded))
	require.NoError(t, err)
	assert.Equal(t, pb.Frame_MESSAGE, frame.GetKind())
	assert.Equal(t, []int{0, 0}, frame.ErrorCounts())
	messages, err := frame.Array()
	require.NoError(t, err)
	assert.Equal(t, "1011001", bitString(messages, 0))
	assert.Equal(t, "1111111", bitString(messages, 1))

	// A message frame is not accepted as received codewords
	_, err = run(t, []byte(decoded), "decode", "--n", "15", "--k", "7", "--input", "frame")
	require.ErrorIs(t, err, field.ErrInvalidValue)
}

func TestReadTextRows_Errors(t *testing.T) {
	tests := []struct {
		name, in string
	}{
		{"empty", "\n\n"},
		{"bad character", "1012\n"},
		{"ragged", "101\n10\n"},
		{"only separators", ",,\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := readTextRows(strings.NewReader(tc.in))
			require.ErrorIs(t, err, field.ErrInvalidValue)
		})
	}

	_, err := run(t, []byte("101\n"), "encode", "--n", "15", "--k", "7")
	require.ErrorIs(t, err, field.ErrInvalidValue)
	_, err = run(t, []byte("1011001\n"), "encode", "--n", "15", "--k", "7", "--input", "csv")
	require.ErrorIs(t, err, field.ErrInvalidValue)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bchctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("code:\n  n: 31\n  k: 16\n"), 0o600))

	out, err := run(t, nil, "generator", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "BCH(31, 16)\n")

	// Flags override the file
	out, err = run(t, nil, "generator", "--config", path, "--k", "21")
	require.NoError(t, err)
	assert.Contains(t, out, "BCH(31, 21)\n")

	_, err = run(t, nil, "generator", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
	_, err = run(t, nil, "generator", "--log-level", "loud")
	require.Error(t, err)
}

func TestConfigInitShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "bch31.yaml")
	out, err := run(t, nil, "config", "init", "--n", "31", "--k", "16", "--workers", "3", path)
	require.NoError(t, err)
	assert.Equal(t, "Configuration written to "+path+"\n", out)

	out, err = run(t, nil, "generator", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "BCH(31, 16)\n")

	out, err = run(t, nil, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "n: 31\n")
	assert.Contains(t, out, "k: 16\n")
	assert.Contains(t, out, "workers: 3\n")

	// Existing files need --force
	_, err = run(t, nil, "config", "init", "--k", "21", path)
	require.ErrorIs(t, err, os.ErrExist)
	_, err = run(t, nil, "config", "init", "--force", "--config", path, "--k", "21", path)
	require.NoError(t, err)
	out, err = run(t, nil, "generator", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "BCH(31, 21)\n")
}

func TestFieldCmd(t *testing.T) {
	out, err := run(t, nil, "field", "256", "--poly", "0x11b", "--primitive", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "GF(2^8)\n")
	assert.Contains(t, out, "defining polynomial: x^8 + x^4 + x^3 + x + 1\n")
	assert.Contains(t, out, "primitive element: 3\n")

	out, err = run(t, nil, "field", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "characteristic: 3\n")
	assert.Contains(t, out, "degree: 2\n")

	_, err = run(t, nil, "field", "12")
	require.ErrorIs(t, err, field.ErrInvalidValue)
	_, err = run(t, nil, "field", "nine")
	require.ErrorIs(t, err, field.ErrInvalidType)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(field.ErrInvalidValue))
}
