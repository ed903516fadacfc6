// Package coder implements the codec's per-type coders: buffered
// encoders that accumulate values column-wise and view-based decoders
// that read straight out of the wire buffer. Every coder — primitive,
// option, result, enum, sequence, map, or tuple — satisfies the same
// two small contracts, so composite coders can hold and drive child
// coders without caring what's underneath.
package coder

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/internal/pool"
)

// Encoder buffers values of type T and produces their packed column
// encoding on demand.
type Encoder[T any] interface {
	// Write appends a single value to the encoder's internal buffer.
	Write(val T)
	// WriteSlice appends many values at once, letting the encoder
	// pre-size its internal buffer for the whole batch.
	WriteSlice(values []T)
	// Bytes returns the column's encoded form so far. The returned
	// slice is valid until the next Write, WriteSlice, or Reset.
	Bytes() []byte
	// Len returns the number of values written so far.
	Len() int
	// Reset clears accumulated values but keeps the internal buffer
	// for reuse.
	Reset()
}

// Decoder reads a packed column view without copying it up front.
type Decoder[T any] interface {
	// At decodes the value at index idx out of data, which must be the
	// byte slice a matching Encoder produced for count values.
	At(data []byte, count, idx int) (T, error)
	// All returns an iterator over every value in data, in declared
	// order. Iteration stops and yields an error if the data is
	// malformed partway through.
	All(data []byte, count int) iter.Seq2[T, error]
}

// SizedDecoder is the optional capability a Decoder implements when it
// can report exactly how many leading bytes of data a count-value
// column occupies, without decoding every value. Every coder in this
// package implements it; top-level callers (see columnar.Decode) use it
// to verify a decode consumed all of its input instead of silently
// accepting trailing bytes.
type SizedDecoder[T any] interface {
	Decoder[T]
	// ConsumedLen returns how many bytes at the front of data the
	// count-value column occupies.
	ConsumedLen(data []byte, count int) (int, error)
}

// NewBuffer returns a pooled byte buffer for an encoder's internal
// accumulation; callers return it to the pool via pool.PutBlobBuffer
// when the encoder is discarded.
func NewBuffer() *pool.ByteBuffer {
	return pool.GetBlobBuffer()
}

// writeFramed appends a uvarint length prefix followed by payload,
// the wire shape composite coders use to lay child columns back to back
// inside one flat buffer so a decoder can walk the boundaries back out.
func writeFramed(buf *pool.ByteBuffer, payload []byte) {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(payload)))
	buf.MustWrite(lenBuf[:n])
	buf.MustWrite(payload)
}

// readFramed reverses writeFramed, returning the framed payload and the
// total number of bytes (prefix + payload) consumed from data.
func readFramed(data []byte) (payload []byte, consumed int, err error) {
	n, varintLen := binary.Uvarint(data)
	if varintLen <= 0 {
		return nil, 0, fmt.Errorf("coder: %w: malformed frame length", codecerr.ErrEOF)
	}

	need := varintLen + int(n)
	if len(data) < need {
		return nil, 0, fmt.Errorf("coder: %w: need %d framed bytes, have %d", codecerr.ErrEOF, need, len(data))
	}

	return data[varintLen:need], need, nil
}
