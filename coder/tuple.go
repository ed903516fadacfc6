package coder

import (
	"fmt"
	"iter"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/internal/pool"
)

// structField boxes a single field's accessor and child encoder so
// StructEncoder can hold fields of differing payload types in one
// slice; S is common to every field in a given struct, F varies per
// field and never escapes the interface.
type structField[S any] interface {
	writeFrom(s S)
	bytes() []byte
	reset()
}

type fieldEncoder[S, F any] struct {
	get func(S) F
	enc Encoder[F]
}

func (f *fieldEncoder[S, F]) writeFrom(s S) { f.enc.Write(f.get(s)) }
func (f *fieldEncoder[S, F]) bytes() []byte { return f.enc.Bytes() }
func (f *fieldEncoder[S, F]) reset()        { f.enc.Reset() }

// Field declares one struct field for a StructEncoder: get extracts the
// field's value from S, and enc is the child coder for its type.
func Field[S, F any](get func(S) F, enc Encoder[F]) structField[S] {
	return &fieldEncoder[S, F]{get: get, enc: enc}
}

// StructEncoder composes child coders for each of a struct's fields,
// in declared order, generalizing tuples and fixed-shape structs alike:
// a tuple is just a struct whose fields happen to be unnamed.
type StructEncoder[S any] struct {
	fields []structField[S]
	count  int
}

var _ Encoder[struct{}] = (*StructEncoder[struct{}])(nil)

func NewStructEncoder[S any](fields ...structField[S]) *StructEncoder[S] {
	return &StructEncoder[S]{fields: fields}
}

func (e *StructEncoder[S]) Write(val S) {
	e.count++
	for _, f := range e.fields {
		f.writeFrom(val)
	}
}

func (e *StructEncoder[S]) WriteSlice(values []S) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *StructEncoder[S]) Bytes() []byte {
	buf := NewBuffer()
	defer pool.PutBlobBuffer(buf)

	for _, f := range e.fields {
		writeFramed(buf, f.bytes())
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

func (e *StructEncoder[S]) Len() int { return e.count }

func (e *StructEncoder[S]) Reset() {
	e.count = 0
	for _, f := range e.fields {
		f.reset()
	}
}

// structFieldDecoder is Field's decode-side counterpart: it applies a
// decoded column back onto the matching field of every element of out.
type structFieldDecoder[S any] interface {
	applyAll(blob []byte, count int, out []S) error
}

type fieldDecoder[S, F any] struct {
	set func(*S, F)
	dec Decoder[F]
}

func (f *fieldDecoder[S, F]) applyAll(blob []byte, count int, out []S) error {
	i := 0
	for v, err := range f.dec.All(blob, count) {
		if err != nil {
			return err
		}
		f.set(&out[i], v)
		i++
	}

	return nil
}

// DecodeField declares one struct field for a StructDecoder: set writes
// the decoded field value back into S, and dec is the child decoder for
// its type.
func DecodeField[S, F any](set func(*S, F), dec Decoder[F]) structFieldDecoder[S] {
	return &fieldDecoder[S, F]{set: set, dec: dec}
}

// StructDecoder reads a column StructEncoder produced.
type StructDecoder[S any] struct {
	fields []structFieldDecoder[S]
}

func NewStructDecoder[S any](fields ...structFieldDecoder[S]) *StructDecoder[S] {
	return &StructDecoder[S]{fields: fields}
}

func (d *StructDecoder[S]) decodeAll(data []byte, count int) ([]S, error) {
	out := make([]S, count)
	pos := 0

	for i, f := range d.fields {
		blob, n, err := readFramed(data[pos:])
		if err != nil {
			return nil, fmt.Errorf("coder: struct field %d: %w", i, err)
		}

		if err := f.applyAll(blob, count, out); err != nil {
			return nil, fmt.Errorf("coder: struct field %d: %w", i, err)
		}
		pos += n
	}

	return out, nil
}

// ConsumedLen reports how many bytes of data every field's frame
// occupies together, without applying any decoded values.
func (d *StructDecoder[S]) ConsumedLen(data []byte, count int) (int, error) {
	pos := 0
	for i := range d.fields {
		_, n, err := readFramed(data[pos:])
		if err != nil {
			return 0, fmt.Errorf("coder: struct field %d: %w", i, err)
		}
		pos += n
	}

	return pos, nil
}

func (d *StructDecoder[S]) At(data []byte, count, idx int) (S, error) {
	var zero S
	if idx < 0 || idx >= count {
		return zero, fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	values, err := d.decodeAll(data, count)
	if err != nil {
		return zero, err
	}

	return values[idx], nil
}

func (d *StructDecoder[S]) All(data []byte, count int) iter.Seq2[S, error] {
	return func(yield func(S, error) bool) {
		values, err := d.decodeAll(data, count)
		if err != nil {
			var zero S
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

// Tuple2 and Tuple3 are the fixed-arity tuple shapes hand written here
// as StructEncoder/StructDecoder instances over plain field-index
// structs; wider tuples nest a further Tuple2/Tuple3 as the last field
// instead of a dedicated Tuple4..TupleN type.

// Tuple2 is a pair of values encoded as two columns in declared order.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

// NewTuple2Encoder builds a StructEncoder for Tuple2 out of child coders
// for each field.
func NewTuple2Encoder[A, B any](a Encoder[A], b Encoder[B]) *StructEncoder[Tuple2[A, B]] {
	return NewStructEncoder(
		Field(func(t Tuple2[A, B]) A { return t.First }, a),
		Field(func(t Tuple2[A, B]) B { return t.Second }, b),
	)
}

// NewTuple2Decoder builds a StructDecoder for Tuple2 out of child
// decoders for each field.
func NewTuple2Decoder[A, B any](a Decoder[A], b Decoder[B]) *StructDecoder[Tuple2[A, B]] {
	return NewStructDecoder(
		DecodeField(func(t *Tuple2[A, B], v A) { t.First = v }, a),
		DecodeField(func(t *Tuple2[A, B], v B) { t.Second = v }, b),
	)
}

// Tuple3 is a 3-tuple encoded as three columns in declared order.
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// NewTuple3Encoder builds a StructEncoder for Tuple3 out of child
// coders for each field.
func NewTuple3Encoder[A, B, C any](a Encoder[A], b Encoder[B], c Encoder[C]) *StructEncoder[Tuple3[A, B, C]] {
	return NewStructEncoder(
		Field(func(t Tuple3[A, B, C]) A { return t.First }, a),
		Field(func(t Tuple3[A, B, C]) B { return t.Second }, b),
		Field(func(t Tuple3[A, B, C]) C { return t.Third }, c),
	)
}

// NewTuple3Decoder builds a StructDecoder for Tuple3 out of child
// decoders for each field.
func NewTuple3Decoder[A, B, C any](a Decoder[A], b Decoder[B], c Decoder[C]) *StructDecoder[Tuple3[A, B, C]] {
	return NewStructDecoder(
		DecodeField(func(t *Tuple3[A, B, C], v A) { t.First = v }, a),
		DecodeField(func(t *Tuple3[A, B, C], v B) { t.Second = v }, b),
		DecodeField(func(t *Tuple3[A, B, C], v C) { t.Third = v }, c),
	)
}
