package variant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/variant"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		tags []byte
		n    int
	}{
		{"option", []byte{0, 1, 1, 0, 1, 0, 0, 1}, 2},
		{"three variants", []byte{0, 1, 2, 1, 0, 2, 2}, 3},
		{"single variant", []byte{0, 0, 0}, 1},
		{"empty", nil, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			encoded, err := variant.Encode(c.tags, c.n)
			require.NoError(t, err)

			tags, histogram, consumed, err := variant.Decode(encoded, c.n, len(c.tags))
			require.NoError(t, err)
			assert.Equal(t, c.tags, tags)
			assert.Equal(t, len(encoded), consumed)

			want := make([]int, c.n)
			for _, tag := range c.tags {
				want[tag]++
			}
			assert.Equal(t, want, histogram)
		})
	}
}

func TestEncodeRejectsOutOfRangeTag(t *testing.T) {
	_, err := variant.Encode([]byte{0, 1, 2}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, codecerr.ErrInvalidVariant)
}

func TestDecodeHistogramFastPathMatchesGeneric(t *testing.T) {
	tags := []byte{1, 0, 1, 1, 0, 0, 1, 1, 1, 0, 1}
	encoded, err := variant.Encode(tags, 2)
	require.NoError(t, err)

	_, histogram, _, err := variant.Decode(encoded, 2, len(tags))
	require.NoError(t, err)

	want := []int{0, 0}
	for _, tag := range tags {
		want[tag]++
	}
	assert.Equal(t, want, histogram)
}

func TestDecodeTruncated(t *testing.T) {
	tags := []byte{0, 1, 2, 0, 1, 2}
	encoded, err := variant.Encode(tags, 3)
	require.NoError(t, err)

	_, _, _, err = variant.Decode(encoded[:len(encoded)-1], 3, len(tags))
	require.Error(t, err)
	assert.ErrorIs(t, err, codecerr.ErrEOF)
}
