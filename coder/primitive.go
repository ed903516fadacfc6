package coder

import (
	"fmt"
	"iter"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/intpack"
)

// Integer is the set of native integer types IntEncoder/IntDecoder
// accept. Signed values are zigzag-mapped onto uint64 before reaching
// intpack, which only ever deals in unsigned magnitudes.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

func toZigzag[T Integer](v T) uint64 {
	switch any(v).(type) {
	case int8, int16, int32, int64:
		return zigzagEncode(int64FromAny(v))
	default:
		return uint64FromAny(v)
	}
}

func int64FromAny[T Integer](v T) int64 {
	switch x := any(v).(type) {
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	default:
		return 0
	}
}

func uint64FromAny[T Integer](v T) uint64 {
	switch x := any(v).(type) {
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	default:
		return 0
	}
}

func fromZigzag[T Integer](u uint64) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return any(int8(zigzagDecode(u))).(T)
	case int16:
		return any(int16(zigzagDecode(u))).(T)
	case int32:
		return any(int32(zigzagDecode(u))).(T)
	case int64:
		return any(zigzagDecode(u)).(T)
	case uint8:
		return any(uint8(u)).(T)
	case uint16:
		return any(uint16(u)).(T)
	case uint32:
		return any(uint32(u)).(T)
	default:
		return any(u).(T)
	}
}

// IntEncoder buffers a column of any native integer type, zigzag-mapping
// signed values so intpack's range-packer always sees an unsigned
// magnitude to narrow.
type IntEncoder[T Integer] struct {
	values []uint64
}

var _ Encoder[int32] = (*IntEncoder[int32])(nil)

func NewIntEncoder[T Integer]() *IntEncoder[T] {
	return &IntEncoder[T]{}
}

func (e *IntEncoder[T]) Write(val T) {
	e.values = append(e.values, toZigzag(val))
}

func (e *IntEncoder[T]) WriteSlice(values []T) {
	e.values = append(e.values, make([]uint64, len(values))...)
	base := len(e.values) - len(values)
	for i, v := range values {
		e.values[base+i] = toZigzag(v)
	}
}

func (e *IntEncoder[T]) Bytes() []byte {
	return intpack.Pack(e.values)
}

func (e *IntEncoder[T]) Len() int { return len(e.values) }

func (e *IntEncoder[T]) Reset() { e.values = e.values[:0] }

// IntDecoder reads a column IntEncoder produced.
type IntDecoder[T Integer] struct{}

var _ Decoder[int32] = IntDecoder[int32]{}

func (IntDecoder[T]) decodeAll(data []byte, count int) ([]T, error) {
	raw, _, err := intpack.Unpack[uint64](data, count)
	if err != nil {
		return nil, fmt.Errorf("coder: %w", err)
	}

	out := make([]T, count)
	for i, u := range raw {
		out[i] = fromZigzag[T](u)
	}

	return out, nil
}

// ConsumedLen reports how many bytes of data the count-value intpack
// column occupies.
func (d IntDecoder[T]) ConsumedLen(data []byte, count int) (int, error) {
	_, consumed, err := intpack.Unpack[uint64](data, count)
	if err != nil {
		return 0, fmt.Errorf("coder: %w", err)
	}

	return consumed, nil
}

func (d IntDecoder[T]) At(data []byte, count, idx int) (T, error) {
	var zero T
	if idx < 0 || idx >= count {
		return zero, fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	values, err := d.decodeAll(data, count)
	if err != nil {
		return zero, err
	}

	return values[idx], nil
}

func (d IntDecoder[T]) All(data []byte, count int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		values, err := d.decodeAll(data, count)
		if err != nil {
			var zero T
			yield(zero, err)

			return
		}

		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	}
}
