// Package columnar provides convenient top-level wrappers around the
// codec's per-type coders (package coder) and its outer frame envelope
// (package frame), for callers who just want to turn a slice of values
// into bytes and back without wiring the two together by hand.
//
// # Basic usage
//
// Encoding a column of integers, optionally compressed:
//
//	enc := coder.NewIntEncoder[uint32]()
//	blob, _ := columnar.Encode[uint32](enc, values, frame.WithAlgorithm(frame.AlgorithmZstd))
//
// Decoding it back:
//
//	dec := coder.IntDecoder[uint32]{}
//	values, _ := columnar.Decode[uint32](dec, blob, len(values))
//
// # Package structure
//
// Package coder implements the actual per-type column encoding; package
// frame implements the optional outer compression/checksum envelope;
// this package only composes the two for the common case. For advanced
// usage — composite types, custom coder registries, direct buffer
// control — use those packages directly.
package columnar

import (
	"fmt"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/coder"
	"github.com/go-columnar/columnar/frame"
	"github.com/go-columnar/columnar/registry"
)

// Encode writes every value in values through enc, then wraps the
// resulting column in the frame envelope described by opts (no
// compression or checksum by default).
func Encode[T any](enc coder.Encoder[T], values []T, opts ...frame.Option) ([]byte, error) {
	enc.Reset()
	enc.WriteSlice(values)

	wrapped, err := frame.Wrap(enc.Bytes(), opts...)
	if err != nil {
		return nil, fmt.Errorf("columnar: %w", err)
	}

	return wrapped, nil
}

// Decode unwraps data's frame envelope and decodes exactly count values
// out of the resulting column through dec. The envelope is unwrapped
// into a cow.Bytes so the common AlgorithmNone case reads straight out
// of data instead of copying; only a real compression algorithm forces
// an owned buffer. If dec reports how many bytes it consumed (see
// coder.SizedDecoder), Decode verifies that consumption reached the end
// of the unwrapped column and returns codecerr.ErrExpectedEOF if
// trailing bytes remain.
func Decode[T any](dec coder.Decoder[T], data []byte, count int) ([]T, error) {
	wrapped, err := frame.Unwrap(data)
	if err != nil {
		return nil, fmt.Errorf("columnar: %w", err)
	}
	raw := wrapped.Bytes()

	if sized, ok := dec.(coder.SizedDecoder[T]); ok {
		consumed, err := sized.ConsumedLen(raw, count)
		if err != nil {
			return nil, fmt.Errorf("columnar: %w", err)
		}
		if consumed != len(raw) {
			return nil, fmt.Errorf("columnar: %w: consumed %d of %d bytes", codecerr.ErrExpectedEOF, consumed, len(raw))
		}
	}

	out := make([]T, 0, count)
	for v, err := range dec.All(raw, count) {
		if err != nil {
			return nil, fmt.Errorf("columnar: %w", err)
		}
		out = append(out, v)
	}

	return out, nil
}

// EncodeBuffer is Encode using a process-wide encoder cached by type T,
// for hot paths that repeatedly encode the same type and would rather
// not pay for a fresh coder (and its internal buffers) every call.
// build is only invoked the first time T is requested.
func EncodeBuffer[T any](build func() coder.Encoder[T], values []T, opts ...frame.Option) ([]byte, error) {
	enc := registry.GetOrCreateGlobal(build)

	return Encode(enc, values, opts...)
}

// DecodeBuffer is Decode using a process-wide decoder cached by type T.
func DecodeBuffer[T any](build func() coder.Decoder[T], data []byte, count int) ([]T, error) {
	dec := registry.GetOrCreateGlobal(build)

	return Decode(dec, data, count)
}
