package coder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/coder"
)

// These follow the small scenarios used to pin down the codec's wire
// format during design: false/true checked byte for byte as single
// bytes, then round trips of a pair of bools, Some(42u8), a vec of
// Option<u8> routing None/None/Some(7) back out in order, and a
// three-variant enum whose decoder rejects an out-of-range index.

func TestGoldenBoolFalseTrue(t *testing.T) {
	enc := coder.NewBoolEncoder()
	enc.Write(false)
	assert.Equal(t, []byte{0x00}, enc.Bytes())

	enc.Reset()
	enc.Write(true)
	assert.Equal(t, []byte{0x01}, enc.Bytes())
}

func TestGoldenBoolPair(t *testing.T) {
	first := coder.NewBoolEncoder()
	first.Write(false)

	second := coder.NewBoolEncoder()
	second.Write(true)

	pairEnc := coder.NewTuple2Encoder[bool, bool](first, second)
	pairEnc.Write(coder.Tuple2[bool, bool]{First: false, Second: true})

	out := pairEnc.Bytes()

	dec := coder.NewTuple2Decoder[bool, bool](coder.BoolDecoder{}, coder.BoolDecoder{})
	got, err := dec.At(out, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, coder.Tuple2[bool, bool]{First: false, Second: true}, got)
}

func TestGoldenOptionSome(t *testing.T) {
	enc := coder.NewOptionEncoder[uint8](coder.NewIntEncoder[uint8]())
	v := uint8(42)
	enc.Write(&v)

	out := enc.Bytes()

	dec := coder.OptionDecoder[uint8]{Child: coder.IntDecoder[uint8]{}}
	got, err := dec.At(out, 1, 0)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint8(42), *got)
}

func TestGoldenOptionNoneNoneSome(t *testing.T) {
	enc := coder.NewOptionEncoder[uint8](coder.NewIntEncoder[uint8]())
	seven := uint8(7)
	enc.Write(nil)
	enc.Write(nil)
	enc.Write(&seven)

	out := enc.Bytes()
	dec := coder.OptionDecoder[uint8]{Child: coder.IntDecoder[uint8]{}}

	var got []*uint8
	for v, err := range dec.All(out, 3) {
		require.NoError(t, err)
		got = append(got, v)
	}

	require.Len(t, got, 3)
	assert.Nil(t, got[0])
	assert.Nil(t, got[1])
	require.NotNil(t, got[2])
	assert.Equal(t, uint8(7), *got[2])
}

func TestGoldenThreeVariantEnumRoundTrip(t *testing.T) {
	enc := coder.NewEnum3Encoder[uint8, bool, string](
		coder.NewIntEncoder[uint8](), coder.NewBoolEncoder(), coder.NewStringEncoder(),
	)
	enc.Write(coder.NewEnum3A[uint8, bool, string](1))
	enc.Write(coder.NewEnum3B[uint8, bool, string](true))
	enc.Write(coder.NewEnum3A[uint8, bool, string](2))

	out := enc.Bytes()

	dec := coder.Enum3Decoder[uint8, bool, string]{
		ChildA: coder.IntDecoder[uint8]{}, ChildB: coder.BoolDecoder{}, ChildC: coder.StringDecoder{},
	}

	first, err := dec.At(out, 3, 0)
	require.NoError(t, err)
	v, ok := first.A()
	require.True(t, ok)
	assert.Equal(t, uint8(1), v)

	_, err = dec.At(out, 3, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, codecerr.ErrEOF)
}
