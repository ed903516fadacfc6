package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/frame"
)

func TestWrapUnwrapRoundTrip(t *testing.T) {
	payload := []byte("some columnar-packed bytes, repeated repeated repeated")

	cases := []frame.Algorithm{frame.AlgorithmNone, frame.AlgorithmZstd, frame.AlgorithmS2, frame.AlgorithmLZ4}
	for _, alg := range cases {
		t.Run(alg.String(), func(t *testing.T) {
			blob, err := frame.Wrap(payload, frame.WithAlgorithm(alg))
			require.NoError(t, err)

			got, err := frame.Unwrap(blob)
			require.NoError(t, err)
			assert.Equal(t, payload, got.Bytes())
		})
	}
}

func TestUnwrapBorrowsOnlyForAlgorithmNone(t *testing.T) {
	payload := []byte("borrow me")

	none, err := frame.Wrap(payload, frame.WithAlgorithm(frame.AlgorithmNone))
	require.NoError(t, err)
	gotNone, err := frame.Unwrap(none)
	require.NoError(t, err)
	assert.False(t, gotNone.IsOwned())

	zstd, err := frame.Wrap(payload, frame.WithAlgorithm(frame.AlgorithmZstd))
	require.NoError(t, err)
	gotZstd, err := frame.Unwrap(zstd)
	require.NoError(t, err)
	assert.True(t, gotZstd.IsOwned())
}

func TestUnwrapValidatesChecksum(t *testing.T) {
	payload := []byte("checked bytes")

	// AlgorithmNone so the mutated byte below corrupts the payload without
	// also breaking decompression itself.
	blob, err := frame.Wrap(payload, frame.WithChecksum())
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0xFF

	_, err = frame.Unwrap(blob)
	require.Error(t, err)
	assert.ErrorIs(t, err, codecerr.ErrInvalidPacking)
}

func TestUnwrapRejectsTruncatedHeader(t *testing.T) {
	_, err := frame.Unwrap([]byte{0x00})
	require.Error(t, err)
	assert.ErrorIs(t, err, codecerr.ErrEOF)
}
