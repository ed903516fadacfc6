package coder

import (
	"fmt"
	"iter"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/internal/pool"
	"github.com/go-columnar/columnar/variant"
)

// OptionEncoder stores a column of *T as a two-way tag column (0 = nil,
// 1 = present) plus a child column holding only the present values, in
// occurrence order. Absent values cost one bit each and contribute
// nothing to the child column.
type OptionEncoder[T any] struct {
	tags  []byte
	child Encoder[T]
}

var _ Encoder[*int] = (*OptionEncoder[int])(nil)

func NewOptionEncoder[T any](child Encoder[T]) *OptionEncoder[T] {
	return &OptionEncoder[T]{child: child}
}

func (e *OptionEncoder[T]) Write(val *T) {
	if val == nil {
		e.tags = append(e.tags, 0)

		return
	}

	e.tags = append(e.tags, 1)
	e.child.Write(*val)
}

func (e *OptionEncoder[T]) WriteSlice(values []*T) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *OptionEncoder[T]) Bytes() []byte {
	tagBlob, err := variant.Encode(e.tags, 2)
	if err != nil {
		panic(fmt.Sprintf("coder: option tag column: %v", err))
	}

	buf := NewBuffer()
	defer pool.PutBlobBuffer(buf)

	writeFramed(buf, tagBlob)
	writeFramed(buf, e.child.Bytes())

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

func (e *OptionEncoder[T]) Len() int { return len(e.tags) }

func (e *OptionEncoder[T]) Reset() {
	e.tags = e.tags[:0]
	e.child.Reset()
}

// OptionDecoder reads a column OptionEncoder produced.
type OptionDecoder[T any] struct {
	Child Decoder[T]
}

var _ Decoder[*int] = OptionDecoder[int]{}

func (d OptionDecoder[T]) decodeAll(data []byte, count int) ([]*T, error) {
	tagBlob, consumed, err := readFramed(data)
	if err != nil {
		return nil, fmt.Errorf("coder: option tags: %w", err)
	}

	tags, _, _, err := variant.Decode(tagBlob, 2, count)
	if err != nil {
		return nil, fmt.Errorf("coder: %w", err)
	}

	childBlob, _, err := readFramed(data[consumed:])
	if err != nil {
		return nil, fmt.Errorf("coder: option child: %w", err)
	}

	someCount := 0
	for _, t := range tags {
		if t == 1 {
			someCount++
		}
	}

	values := make([]T, 0, someCount)
	for v, err := range d.Child.All(childBlob, someCount) {
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	out := make([]*T, count)
	vi := 0
	for i, t := range tags {
		if t == 1 {
			val := values[vi]
			out[i] = &val
			vi++
		}
	}

	return out, nil
}

// ConsumedLen reports how many bytes of data the tag and child frames
// occupy together, without decoding either.
func (OptionDecoder[T]) ConsumedLen(data []byte, count int) (int, error) {
	_, consumed, err := readFramed(data)
	if err != nil {
		return 0, fmt.Errorf("coder: option tags: %w", err)
	}

	_, n, err := readFramed(data[consumed:])
	if err != nil {
		return 0, fmt.Errorf("coder: option child: %w", err)
	}

	return consumed + n, nil
}

func (d OptionDecoder[T]) At(data []byte, count, idx int) (*T, error) {
	if idx < 0 || idx >= count {
		return nil, fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	values, err := d.decodeAll(data, count)
	if err != nil {
		return nil, err
	}

	return values[idx], nil
}

func (d OptionDecoder[T]) All(data []byte, count int) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		values, err := d.decodeAll(data, count)
		if err != nil {
			yield(nil, err)

			return
		}

		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	}
}
