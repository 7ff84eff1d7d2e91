package bch

import "errors"

// ErrUncorrectable reports that at least one received word had more errors
// than the code can correct. Decoding itself never fails with it; see
// DecodeResult.Err.
var ErrUncorrectable = errors.New("bch: uncorrectable codeword")
