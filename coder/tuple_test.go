package coder_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/columnar/coder"
)

func TestTuple3RoundTrip(t *testing.T) {
	enc := coder.NewTuple3Encoder[uint8, bool, string](
		coder.NewIntEncoder[uint8](), coder.NewBoolEncoder(), coder.NewStringEncoder(),
	)

	values := []coder.Tuple3[uint8, bool, string]{
		{First: 1, Second: true, Third: "one"},
		{First: 2, Second: false, Third: "two"},
	}
	for _, v := range values {
		enc.Write(v)
	}
	out := enc.Bytes()

	dec := coder.NewTuple3Decoder[uint8, bool, string](
		coder.IntDecoder[uint8]{}, coder.BoolDecoder{}, coder.StringDecoder{},
	)

	var got []coder.Tuple3[uint8, bool, string]
	for v, err := range dec.All(out, len(values)) {
		require.NoError(t, err)
		got = append(got, v)
	}

	assert.Equal(t, values, got)
}

type point struct {
	X, Y int32
	Name string
}

func TestStructEncoderArbitraryStruct(t *testing.T) {
	enc := coder.NewStructEncoder[point](
		coder.Field(func(p point) int32 { return p.X }, coder.NewIntEncoder[int32]()),
		coder.Field(func(p point) int32 { return p.Y }, coder.NewIntEncoder[int32]()),
		coder.Field(func(p point) string { return p.Name }, coder.NewStringEncoder()),
	)

	values := []point{{X: 1, Y: 2, Name: "origin"}, {X: -5, Y: 10, Name: "far"}}
	enc.WriteSlice(values)
	out := enc.Bytes()

	dec := coder.NewStructDecoder[point](
		coder.DecodeField(func(p *point, v int32) { p.X = v }, coder.IntDecoder[int32]{}),
		coder.DecodeField(func(p *point, v int32) { p.Y = v }, coder.IntDecoder[int32]{}),
		coder.DecodeField(func(p *point, v string) { p.Name = v }, coder.StringDecoder{}),
	)

	var got []point
	for v, err := range dec.All(out, len(values)) {
		require.NoError(t, err)
		got = append(got, v)
	}

	if diff := cmp.Diff(values, got); diff != "" {
		t.Errorf("decoded struct slice mismatch (-want +got):\n%s", diff)
	}
}
