package coder

import (
	"fmt"
	"iter"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/internal/pool"
	"github.com/go-columnar/columnar/length"
)

// SequenceEncoder stores a column of []T values as a length column
// (one length per occurrence) followed by every element of every
// sequence, flattened in occurrence order, through a single child
// coder — exactly how a struct field that happens to be a slice is laid
// out, just without the surrounding struct.
type SequenceEncoder[T any] struct {
	lengths []int
	child   Encoder[T]
}

var _ Encoder[[]int] = (*SequenceEncoder[int])(nil)

func NewSequenceEncoder[T any](child Encoder[T]) *SequenceEncoder[T] {
	return &SequenceEncoder[T]{child: child}
}

func (e *SequenceEncoder[T]) Write(val []T) {
	e.lengths = append(e.lengths, len(val))
	e.child.WriteSlice(val)
}

func (e *SequenceEncoder[T]) WriteSlice(values [][]T) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *SequenceEncoder[T]) Bytes() []byte {
	lengthBlob, err := length.Encode(e.lengths)
	if err != nil {
		panic(fmt.Sprintf("coder: sequence length column: %v", err))
	}

	buf := NewBuffer()
	defer pool.PutBlobBuffer(buf)

	buf.MustWrite(lengthBlob)
	writeFramed(buf, e.child.Bytes())

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

func (e *SequenceEncoder[T]) Len() int { return len(e.lengths) }

func (e *SequenceEncoder[T]) Reset() {
	e.lengths = e.lengths[:0]
	e.child.Reset()
}

// SequenceDecoder reads a column SequenceEncoder produced.
type SequenceDecoder[T any] struct {
	Child Decoder[T]
}

var _ Decoder[[]int] = SequenceDecoder[int]{}

func (d SequenceDecoder[T]) decodeAll(data []byte, count int) ([][]T, error) {
	lengths, consumed, err := length.Decode(data, count)
	if err != nil {
		return nil, fmt.Errorf("coder: %w", err)
	}

	childBlob, _, err := readFramed(data[consumed:])
	if err != nil {
		return nil, fmt.Errorf("coder: sequence elements: %w", err)
	}

	total := 0
	for _, l := range lengths {
		total += l
	}

	flat := make([]T, 0, total)
	for v, err := range d.Child.All(childBlob, total) {
		if err != nil {
			return nil, err
		}
		flat = append(flat, v)
	}

	out := make([][]T, count)
	offset := 0
	for i, l := range lengths {
		out[i] = flat[offset : offset+l]
		offset += l
	}

	return out, nil
}

// ConsumedLen reports how many bytes of data the length column and
// element frame occupy together, without decoding the elements.
func (SequenceDecoder[T]) ConsumedLen(data []byte, count int) (int, error) {
	_, consumed, err := length.Decode(data, count)
	if err != nil {
		return 0, fmt.Errorf("coder: %w", err)
	}

	_, n, err := readFramed(data[consumed:])
	if err != nil {
		return 0, fmt.Errorf("coder: sequence elements: %w", err)
	}

	return consumed + n, nil
}

func (d SequenceDecoder[T]) At(data []byte, count, idx int) ([]T, error) {
	if idx < 0 || idx >= count {
		return nil, fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	values, err := d.decodeAll(data, count)
	if err != nil {
		return nil, err
	}

	return values[idx], nil
}

func (d SequenceDecoder[T]) All(data []byte, count int) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
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
