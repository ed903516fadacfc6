package columnar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/columnar"
	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/coder"
	"github.com/go-columnar/columnar/frame"
)

func TestEncodeDecodeRoundTripUncompressed(t *testing.T) {
	values := []uint32{1, 2, 3, 1000, 70000, 0}

	blob, err := columnar.Encode[uint32](coder.NewIntEncoder[uint32](), values)
	require.NoError(t, err)

	got, err := columnar.Decode[uint32](coder.IntDecoder[uint32]{}, blob, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestEncodeDecodeRoundTripCompressedWithChecksum(t *testing.T) {
	values := []uint32{5, 5, 5, 5, 5, 5, 5, 5, 9, 9}

	blob, err := columnar.Encode[uint32](coder.NewIntEncoder[uint32](), values,
		frame.WithAlgorithm(frame.AlgorithmZstd), frame.WithChecksum())
	require.NoError(t, err)

	got, err := columnar.Decode[uint32](coder.IntDecoder[uint32]{}, blob, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestEncodeDecodeStrings(t *testing.T) {
	values := []string{"alpha", "", "beta gamma", "delta"}

	blob, err := columnar.Encode[string](coder.NewStringEncoder(), values, frame.WithAlgorithm(frame.AlgorithmS2))
	require.NoError(t, err)

	got, err := columnar.Decode[string](coder.StringDecoder{}, blob, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestEncodeBufferReusesCachedEncoder(t *testing.T) {
	build := func() coder.Encoder[uint16] { return coder.NewIntEncoder[uint16]() }

	first, err := columnar.EncodeBuffer[uint16](build, []uint16{1, 2, 3})
	require.NoError(t, err)

	second, err := columnar.EncodeBuffer[uint16](build, []uint16{9, 9})
	require.NoError(t, err)

	decodeBuild := func() coder.Decoder[uint16] { return coder.IntDecoder[uint16]{} }

	gotFirst, err := columnar.DecodeBuffer[uint16](decodeBuild, first, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 3}, gotFirst)

	gotSecond, err := columnar.DecodeBuffer[uint16](decodeBuild, second, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint16{9, 9}, gotSecond)
}

func TestDecodeRejectsTruncatedEnvelope(t *testing.T) {
	_, err := columnar.Decode[uint32](coder.IntDecoder[uint32]{}, []byte{0x00}, 1)
	assert.Error(t, err)
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	enc := coder.NewIntEncoder[uint32]()
	enc.WriteSlice([]uint32{1, 2, 3})

	column := append(enc.Bytes(), 0xFF)
	blob, err := frame.Wrap(column)
	require.NoError(t, err)

	_, err = columnar.Decode[uint32](coder.IntDecoder[uint32]{}, blob, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, codecerr.ErrExpectedEOF)
}
