package coder_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/columnar/coder"
	"github.com/go-columnar/columnar/endian"
)

func TestFloat64EncoderRoundTrip(t *testing.T) {
	values := []float64{0, 1.5, -1.5, math.Pi, math.Inf(1), math.Inf(-1)}

	enc := coder.NewFloat64Encoder(endian.GetLittleEndianEngine())
	enc.WriteSlice(values)
	out := enc.Bytes()

	dec := coder.Float64Decoder{Engine: endian.GetLittleEndianEngine()}
	for i, v := range values {
		got, err := dec.At(out, len(values), i)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestFloat32EncoderRoundTrip(t *testing.T) {
	values := []float32{0, 1.5, -1.5, float32(math.Pi), 1e30, -1e-30}

	enc := coder.NewFloat32Encoder()
	enc.WriteSlice(values)
	out := enc.Bytes()

	dec := coder.Float32Decoder{}
	var got []float32
	for v, err := range dec.All(out, len(values)) {
		require.NoError(t, err)
		got = append(got, v)
	}

	assert.Equal(t, values, got)
}
