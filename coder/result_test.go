package coder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/columnar/coder"
)

func TestResultEncoderRoundTrip(t *testing.T) {
	enc := coder.NewResultEncoder[uint32, string](coder.NewIntEncoder[uint32](), coder.NewStringEncoder())

	values := []coder.Result[uint32, string]{
		coder.Ok[uint32, string](7),
		coder.Err[uint32, string]("boom"),
		coder.Ok[uint32, string](9001),
	}
	enc.WriteSlice(values)
	out := enc.Bytes()

	dec := coder.ResultDecoder[uint32, string]{
		OkChild:  coder.IntDecoder[uint32]{},
		ErrChild: coder.StringDecoder{},
	}

	var got []coder.Result[uint32, string]
	for v, err := range dec.All(out, len(values)) {
		require.NoError(t, err)
		got = append(got, v)
	}

	require.Len(t, got, 3)

	v0, ok0 := got[0].Value()
	assert.True(t, ok0)
	assert.Equal(t, uint32(7), v0)

	e1, ok1 := got[1].Error()
	assert.True(t, ok1)
	assert.Equal(t, "boom", e1)

	v2, ok2 := got[2].Value()
	assert.True(t, ok2)
	assert.Equal(t, uint32(9001), v2)
}
