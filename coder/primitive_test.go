package coder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/columnar/coder"
)

func TestIntEncoderRoundTripSigned(t *testing.T) {
	enc := coder.NewIntEncoder[int32]()
	values := []int32{-5, -1, 0, 1, 5, 1000, -1000, 1 << 20, -(1 << 20)}
	enc.WriteSlice(values)

	out := enc.Bytes()
	dec := coder.IntDecoder[int32]{}

	var got []int32
	for v, err := range dec.All(out, len(values)) {
		require.NoError(t, err)
		got = append(got, v)
	}

	assert.Equal(t, values, got)
}

func TestIntEncoderRoundTripUnsigned(t *testing.T) {
	enc := coder.NewIntEncoder[uint64]()
	values := []uint64{0, 1, 2, 1 << 40, 1 << 63}
	enc.WriteSlice(values)

	out := enc.Bytes()
	dec := coder.IntDecoder[uint64]{}

	for i, v := range values {
		got, err := dec.At(out, len(values), i)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
