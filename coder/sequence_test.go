package coder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/columnar/coder"
)

func TestSequenceEncoderRoundTrip(t *testing.T) {
	enc := coder.NewSequenceEncoder[uint16](coder.NewIntEncoder[uint16]())

	values := [][]uint16{
		{1, 2, 3},
		{},
		{42},
		{7, 8, 9, 10, 11},
	}
	enc.WriteSlice(values)
	out := enc.Bytes()

	dec := coder.SequenceDecoder[uint16]{Child: coder.IntDecoder[uint16]{}}

	var got [][]uint16
	for v, err := range dec.All(out, len(values)) {
		require.NoError(t, err)
		got = append(got, v)
	}

	assert.Equal(t, values, got)
}

func TestSequenceOfSequencesLengthSoundness(t *testing.T) {
	inner := coder.NewSequenceEncoder[uint8](coder.NewIntEncoder[uint8]())
	outer := coder.NewSequenceEncoder[[]uint8](inner)

	values := [][][]uint8{
		{{1, 2}, {3}},
		{{4, 5, 6}},
	}
	outer.WriteSlice(values)
	out := outer.Bytes()

	innerDec := coder.SequenceDecoder[uint8]{Child: coder.IntDecoder[uint8]{}}
	outerDec := coder.SequenceDecoder[[]uint8]{Child: innerDec}

	got, err := outerDec.At(out, len(values), 0)
	require.NoError(t, err)
	assert.Equal(t, values[0], got)
}
