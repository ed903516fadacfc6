package coder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/coder"
)

func TestStringEncoderRoundTrip(t *testing.T) {
	values := []string{"abc", "", "hello, world", "日本語", "a"}

	enc := coder.NewStringEncoder()
	enc.WriteSlice(values)
	out := enc.Bytes()

	dec := coder.StringDecoder{}
	var got []string
	for v, err := range dec.All(out, len(values)) {
		require.NoError(t, err)
		got = append(got, v)
	}

	assert.Equal(t, values, got)
}

func TestStringDecoderRejectsInvalidUTF8(t *testing.T) {
	enc := coder.NewStringEncoder()
	enc.Write("abc")
	out := enc.Bytes()

	// Corrupt a raw payload byte into 0xFF, which never occurs in valid UTF-8.
	corrupted := append([]byte(nil), out...)
	corrupted[len(corrupted)-1] = 0xFF

	_, err := coder.StringDecoder{}.At(corrupted, 1, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, codecerr.ErrInvalidUTF8)
}
