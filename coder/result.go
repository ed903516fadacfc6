package coder

import (
	"fmt"
	"iter"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/internal/pool"
	"github.com/go-columnar/columnar/variant"
)

// Result holds either an Ok value of type T or an Err value of type E,
// never both.
type Result[T, E any] struct {
	ok    T
	err   E
	isErr bool
}

// Ok builds a Result holding a success value.
func Ok[T, E any](val T) Result[T, E] { return Result[T, E]{ok: val} }

// Err builds a Result holding a failure value.
func Err[T, E any](err E) Result[T, E] { return Result[T, E]{err: err, isErr: true} }

// IsErr reports whether r holds an Err value.
func (r Result[T, E]) IsErr() bool { return r.isErr }

// Value returns the success value and whether r actually holds one.
func (r Result[T, E]) Value() (T, bool) { return r.ok, !r.isErr }

// Error returns the failure value and whether r actually holds one.
func (r Result[T, E]) Error() (E, bool) { return r.err, r.isErr }

// ResultEncoder stores a column of Result[T,E] values as a two-way tag
// column (0 = Ok, 1 = Err) plus one densely packed child column per
// branch, each holding only the occurrences that took that branch.
type ResultEncoder[T, E any] struct {
	tags    []byte
	okChild  Encoder[T]
	errChild Encoder[E]
}

var _ Encoder[Result[int, string]] = (*ResultEncoder[int, string])(nil)

func NewResultEncoder[T, E any](okChild Encoder[T], errChild Encoder[E]) *ResultEncoder[T, E] {
	return &ResultEncoder[T, E]{okChild: okChild, errChild: errChild}
}

func (e *ResultEncoder[T, E]) Write(val Result[T, E]) {
	if val.isErr {
		e.tags = append(e.tags, 1)
		e.errChild.Write(val.err)

		return
	}

	e.tags = append(e.tags, 0)
	e.okChild.Write(val.ok)
}

func (e *ResultEncoder[T, E]) WriteSlice(values []Result[T, E]) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *ResultEncoder[T, E]) Bytes() []byte {
	tagBlob, err := variant.Encode(e.tags, 2)
	if err != nil {
		panic(fmt.Sprintf("coder: result tag column: %v", err))
	}

	buf := NewBuffer()
	defer pool.PutBlobBuffer(buf)

	writeFramed(buf, tagBlob)
	writeFramed(buf, e.okChild.Bytes())
	writeFramed(buf, e.errChild.Bytes())

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

func (e *ResultEncoder[T, E]) Len() int { return len(e.tags) }

func (e *ResultEncoder[T, E]) Reset() {
	e.tags = e.tags[:0]
	e.okChild.Reset()
	e.errChild.Reset()
}

// ResultDecoder reads a column ResultEncoder produced.
type ResultDecoder[T, E any] struct {
	OkChild  Decoder[T]
	ErrChild Decoder[E]
}

func (d ResultDecoder[T, E]) decodeAll(data []byte, count int) ([]Result[T, E], error) {
	tagBlob, consumed, err := readFramed(data)
	if err != nil {
		return nil, fmt.Errorf("coder: result tags: %w", err)
	}

	tags, _, _, err := variant.Decode(tagBlob, 2, count)
	if err != nil {
		return nil, fmt.Errorf("coder: %w", err)
	}

	okBlob, n, err := readFramed(data[consumed:])
	if err != nil {
		return nil, fmt.Errorf("coder: result ok child: %w", err)
	}
	consumed += n

	errBlob, _, err := readFramed(data[consumed:])
	if err != nil {
		return nil, fmt.Errorf("coder: result err child: %w", err)
	}

	okCount, errCount := 0, 0
	for _, t := range tags {
		if t == 1 {
			errCount++
		} else {
			okCount++
		}
	}

	okValues := make([]T, 0, okCount)
	for v, err := range d.OkChild.All(okBlob, okCount) {
		if err != nil {
			return nil, err
		}
		okValues = append(okValues, v)
	}

	errValues := make([]E, 0, errCount)
	for v, err := range d.ErrChild.All(errBlob, errCount) {
		if err != nil {
			return nil, err
		}
		errValues = append(errValues, v)
	}

	out := make([]Result[T, E], count)
	oi, ei := 0, 0
	for i, t := range tags {
		if t == 1 {
			out[i] = Err[T, E](errValues[ei])
			ei++
		} else {
			out[i] = Ok[T, E](okValues[oi])
			oi++
		}
	}

	return out, nil
}

// ConsumedLen reports how many bytes of data the tag and both child
// frames occupy together, without decoding any of them.
func (ResultDecoder[T, E]) ConsumedLen(data []byte, count int) (int, error) {
	_, consumed, err := readFramed(data)
	if err != nil {
		return 0, fmt.Errorf("coder: result tags: %w", err)
	}

	_, n, err := readFramed(data[consumed:])
	if err != nil {
		return 0, fmt.Errorf("coder: result ok child: %w", err)
	}
	consumed += n

	_, n, err = readFramed(data[consumed:])
	if err != nil {
		return 0, fmt.Errorf("coder: result err child: %w", err)
	}

	return consumed + n, nil
}

func (d ResultDecoder[T, E]) At(data []byte, count, idx int) (Result[T, E], error) {
	var zero Result[T, E]
	if idx < 0 || idx >= count {
		return zero, fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	values, err := d.decodeAll(data, count)
	if err != nil {
		return zero, err
	}

	return values[idx], nil
}

func (d ResultDecoder[T, E]) All(data []byte, count int) iter.Seq2[Result[T, E], error] {
	return func(yield func(Result[T, E], error) bool) {
		values, err := d.decodeAll(data, count)
		if err != nil {
			var zero Result[T, E]
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
