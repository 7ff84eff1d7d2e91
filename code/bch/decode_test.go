package bch_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppopth/bch-codec/code/bch"
	"github.com/ppopth/bch-codec/field"
)

func newCode(t *testing.T, n, k int, systematic bool) *bch.Code {
	t.Helper()
	cfg := bch.DefaultConfig()
	cfg.Systematic = systematic
	c, err := bch.New(n, k, cfg)
	require.NoError(t, err)
	return c
}

func TestRoundTrip_15_7(t *testing.T) {
	t.Parallel()
	c := newCode(t, 15, 7, true)
	assert.Equal(t, 2, c.T())
	assert.Equal(t, bch.Params{N: 15, K: 7, T: 2}, c.Params())
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 10; trial++ {
		msg := randomBits(rng, 7)
		cw, err := c.Encode(msg)
		require.NoError(t, err)
		assert.Equal(t, []int{15}, cw.Shape())

		dec, n, err := c.DecodeWithErrors(cw)
		require.NoError(t, err)
		assert.True(t, dec.Equal(msg))
		assert.Equal(t, []int{0}, n)

		for i := 0; i < 15; i++ {
			dec, n, err := c.DecodeWithErrors(flip(t, cw, i))
			require.NoError(t, err)
			assert.True(t, dec.Equal(msg), "single error at %d", i)
			assert.Equal(t, []int{1}, n, "single error at %d", i)
		}
		for i := 0; i < 15; i++ {
			for j := i + 1; j < 15; j++ {
				dec, n, err := c.DecodeWithErrors(flip(t, cw, i, j))
				require.NoError(t, err)
				assert.True(t, dec.Equal(msg), "errors at %d, %d", i, j)
				assert.Equal(t, []int{2}, n, "errors at %d, %d", i, j)
			}
		}
	}
}

func TestUncorrectable(t *testing.T) {
	t.Parallel()
	c := newCode(t, 15, 7, true)
	msg := randomBits(rand.New(rand.NewSource(2)), 7)
	cw, err := c.Encode(msg)
	require.NoError(t, err)

	received := flip(t, cw, 0, 1, 5)
	res, err := c.DecodeResult(received)
	require.NoError(t, err)
	assert.Equal(t, []int{-1}, res.Errors)
	require.ErrorIs(t, res.Err(), bch.ErrUncorrectable)
	assert.Equal(t, []int{0}, res.Uncorrectable())

	// The received bits are passed through unchanged
	prefix, err := received.Reshape(1, 15)
	require.NoError(t, err)
	prefix, err = prefix.Columns(0, 7)
	require.NoError(t, err)
	assert.Equal(t, prefix.Values(), res.Message.Values())

	// Some patterns of t+1 errors are always detected
	detected := 0
	for i := 0; i < 15; i++ {
		_, n, err := c.DecodeWithErrors(flip(t, cw, i, (i+1)%15, (i+5)%15))
		require.NoError(t, err)
		if n[0] == -1 {
			detected++
		}
	}
	assert.Positive(t, detected)
}

func TestBatchEquivalence(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(3))
	for _, systematic := range []bool{true, false} {
		c := newCode(t, 31, 11, systematic)
		msgs := randomBits(rng, 40, 11)
		cws, err := c.Encode(msgs)
		require.NoError(t, err)
		require.Equal(t, []int{40, 31}, cws.Shape())

		// Corrupt each row with 0 to 7 errors, beyond t = 5 for some rows
		for r := 0; r < 40; r++ {
			for _, p := range rng.Perm(31)[:r%8] {
				cws.Set(cws.At(r, p)^1, r, p)
			}
		}

		batch, counts, err := c.DecodeWithErrors(cws)
		require.NoError(t, err)
		require.Len(t, counts, 40)
		for r := 0; r < 40; r++ {
			row, err := cws.Row(r)
			require.NoError(t, err)
			single, n, err := c.DecodeWithErrors(row)
			require.NoError(t, err)
			want, err := batch.Row(r)
			require.NoError(t, err)
			assert.True(t, single.Equal(want), "row %d", r)
			assert.Equal(t, counts[r], n[0], "row %d", r)
			if r%8 <= 5 {
				assert.Equal(t, r%8, counts[r], "row %d", r)
				m, err := msgs.Row(r)
				require.NoError(t, err)
				assert.True(t, want.Equal(m), "row %d", r)
			}
		}
	}
}

func TestLeadingDimensions(t *testing.T) {
	t.Parallel()
	c := newCode(t, 15, 5, true)
	msgs := randomBits(rand.New(rand.NewSource(4)), 2, 3, 5)
	cws, err := c.Encode(msgs)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 15}, cws.Shape())

	dec, err := c.Decode(cws)
	require.NoError(t, err)
	assert.True(t, dec.Equal(msgs))

	empty := field.Zeros(field.GF2(), 0, 5)
	out, err := c.Encode(empty)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 15}, out.Shape())
}

func TestSystematicEncoding(t *testing.T) {
	t.Parallel()
	c := newCode(t, 63, 36, true)
	msgs := randomBits(rand.New(rand.NewSource(6)), 8, 36)
	cws, err := c.Encode(msgs)
	require.NoError(t, err)
	parity, err := c.EncodeParity(msgs)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 27}, parity.Shape())

	head, err := cws.Columns(0, 36)
	require.NoError(t, err)
	assert.True(t, head.Equal(msgs))
	tail, err := cws.Columns(36, 63)
	require.NoError(t, err)
	assert.True(t, tail.Equal(parity))
}

func TestNonSystematic(t *testing.T) {
	t.Parallel()
	c := newCode(t, 15, 7, false)
	assert.False(t, c.Systematic())
	msg := randomBits(rand.New(rand.NewSource(7)), 7)

	_, err := c.EncodeParity(msg)
	require.ErrorIs(t, err, field.ErrInvalidValue)

	cw, err := c.Encode(msg)
	require.NoError(t, err)
	// c(x) = m(x) g(x)
	m := field.MustPoly(field.GF2(), msg.Values()...)
	want, err := m.Mul(c.GeneratorPoly())
	require.NoError(t, err)
	got := field.MustPoly(field.GF2(), cw.Values()...)
	assert.True(t, got.Equal(want), "%s != %s", got, want)

	dec, n, err := c.DecodeWithErrors(flip(t, cw, 3, 14))
	require.NoError(t, err)
	assert.True(t, dec.Equal(msg))
	assert.Equal(t, []int{2}, n)
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()
	c := newCode(t, 15, 7, true)
	_, err := c.Encode(field.Zeros(field.GF2(), 8))
	require.ErrorIs(t, err, field.ErrInvalidValue)
	_, err = c.Encode(field.Zeros(field.MustNew(16, nil), 7))
	require.ErrorIs(t, err, field.ErrInvalidType)
	_, err = c.Decode(field.Zeros(field.GF2(), 14))
	require.ErrorIs(t, err, field.ErrInvalidValue)
}

func TestNonNarrowSense(t *testing.T) {
	t.Parallel()
	cfg := bch.DefaultConfig()
	cfg.C = 2
	c, err := bch.New(31, 11, cfg)
	require.NoError(t, err)
	assert.False(t, c.NarrowSense())
	assert.Equal(t, 4, c.T())
	roots := c.Roots()
	assert.Equal(t, c.Field().Exp(2), roots.Values()[0])

	_, err = bch.New(31, 21, cfg)
	require.ErrorIs(t, err, field.ErrInvalidValue)

	rng := rand.New(rand.NewSource(8))
	msg := randomBits(rng, 11)
	cw, err := c.Encode(msg)
	require.NoError(t, err)
	for trial := 0; trial < 20; trial++ {
		pos := rng.Perm(31)[:c.T()]
		dec, n, err := c.DecodeWithErrors(flip(t, cw, pos...))
		require.NoError(t, err)
		assert.True(t, dec.Equal(msg), "errors at %v", pos)
		assert.Equal(t, []int{c.T()}, n)
	}
}
