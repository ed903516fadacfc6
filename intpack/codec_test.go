package intpack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/columnar/intpack"
)

func TestPackUnpackRoundTripWidths(t *testing.T) {
	t.Run("degenerate single value", func(t *testing.T) {
		values := []uint64{7}
		blob := intpack.Pack(values)
		out, consumed, err := intpack.Unpack[uint64](blob, len(values))
		require.NoError(t, err)
		assert.Equal(t, values, out)
		assert.Equal(t, len(blob), consumed)
	})

	t.Run("degenerate all fit a byte", func(t *testing.T) {
		values := []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
		blob := intpack.Pack(values)
		out, _, err := intpack.Unpack[uint32](blob, len(values))
		require.NoError(t, err)
		assert.Equal(t, values, out)
	})

	t.Run("w16 plain", func(t *testing.T) {
		values := []uint32{1000, 2000, 3000, 65000, 40000, 1, 2, 3, 4, 5, 6}
		blob := intpack.Pack(values)
		out, _, err := intpack.Unpack[uint32](blob, len(values))
		require.NoError(t, err)
		assert.Equal(t, values, out)
	})

	t.Run("w32 offset preferred", func(t *testing.T) {
		base := uint64(1 << 40)
		values := []uint64{base, base + 1, base + 2, base + 3, base + 4, base + 5, base + 6}
		blob := intpack.Pack(values)
		out, _, err := intpack.Unpack[uint64](blob, len(values))
		require.NoError(t, err)
		assert.Equal(t, values, out)
		// Offsetting collapses the spread to W8, far tighter than plain W64.
		assert.Less(t, len(blob), 1+8*len(values))
	})

	t.Run("w64 plain", func(t *testing.T) {
		values := []uint64{1, 1 << 63, 2, 3}
		blob := intpack.Pack(values)
		out, _, err := intpack.Unpack[uint64](blob, len(values))
		require.NoError(t, err)
		assert.Equal(t, values, out)
	})

	t.Run("empty", func(t *testing.T) {
		blob := intpack.Pack([]uint64{})
		out, consumed, err := intpack.Unpack[uint64](blob, 0)
		require.NoError(t, err)
		assert.Nil(t, out)
		assert.Equal(t, 1, consumed)
	})

	t.Run("sample fooled by late outlier triggers full scan", func(t *testing.T) {
		values := make([]uint32, 20)
		for i := range values[:19] {
			values[i] = uint32(i)
		}
		values[19] = 70000
		blob := intpack.Pack(values)
		out, _, err := intpack.Unpack[uint32](blob, len(values))
		require.NoError(t, err)
		assert.Equal(t, values, out)
	})
}

func TestUnpackTruncated(t *testing.T) {
	values := []uint32{1000, 2000, 3000, 4000, 5000, 6000}
	blob := intpack.Pack(values)
	_, _, err := intpack.Unpack[uint32](blob[:len(blob)-1], len(values))
	require.Error(t, err)
}
