package coder

import (
	"fmt"
	"iter"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/internal/pool"
	"github.com/go-columnar/columnar/variant"
)

// Enum3 holds exactly one of three differently typed payloads, the
// generalization of Option/Result to N>2 variants. Go generics have no
// variadic type parameter, so only the three-variant shape is hand
// written here; callers needing more variants nest an Enum3 value as a
// payload of another Enum3.
type Enum3[A, B, C any] struct {
	tag      int
	a        A
	b        B
	c        C
}

func NewEnum3A[A, B, C any](v A) Enum3[A, B, C] { return Enum3[A, B, C]{tag: 0, a: v} }
func NewEnum3B[A, B, C any](v B) Enum3[A, B, C] { return Enum3[A, B, C]{tag: 1, b: v} }
func NewEnum3C[A, B, C any](v C) Enum3[A, B, C] { return Enum3[A, B, C]{tag: 2, c: v} }

// Tag returns which variant e holds (0, 1, or 2).
func (e Enum3[A, B, C]) Tag() int { return e.tag }

// A returns e's payload and whether e actually holds variant A.
func (e Enum3[A, B, C]) A() (A, bool) { return e.a, e.tag == 0 }

// B returns e's payload and whether e actually holds variant B.
func (e Enum3[A, B, C]) B() (B, bool) { return e.b, e.tag == 1 }

// C returns e's payload and whether e actually holds variant C.
func (e Enum3[A, B, C]) C() (C, bool) { return e.c, e.tag == 2 }

// Enum3Encoder stores a column of Enum3 values as an N-way tag column
// plus one densely packed child column per variant.
type Enum3Encoder[A, B, C any] struct {
	tags    []byte
	childA  Encoder[A]
	childB  Encoder[B]
	childC  Encoder[C]
}

var _ Encoder[Enum3[int, string, bool]] = (*Enum3Encoder[int, string, bool])(nil)

func NewEnum3Encoder[A, B, C any](childA Encoder[A], childB Encoder[B], childC Encoder[C]) *Enum3Encoder[A, B, C] {
	return &Enum3Encoder[A, B, C]{childA: childA, childB: childB, childC: childC}
}

func (e *Enum3Encoder[A, B, C]) Write(val Enum3[A, B, C]) {
	e.tags = append(e.tags, byte(val.tag))
	switch val.tag {
	case 0:
		e.childA.Write(val.a)
	case 1:
		e.childB.Write(val.b)
	default:
		e.childC.Write(val.c)
	}
}

func (e *Enum3Encoder[A, B, C]) WriteSlice(values []Enum3[A, B, C]) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *Enum3Encoder[A, B, C]) Bytes() []byte {
	tagBlob, err := variant.Encode(e.tags, 3)
	if err != nil {
		panic(fmt.Sprintf("coder: enum tag column: %v", err))
	}

	buf := NewBuffer()
	defer pool.PutBlobBuffer(buf)

	writeFramed(buf, tagBlob)
	writeFramed(buf, e.childA.Bytes())
	writeFramed(buf, e.childB.Bytes())
	writeFramed(buf, e.childC.Bytes())

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

func (e *Enum3Encoder[A, B, C]) Len() int { return len(e.tags) }

func (e *Enum3Encoder[A, B, C]) Reset() {
	e.tags = e.tags[:0]
	e.childA.Reset()
	e.childB.Reset()
	e.childC.Reset()
}

// Enum3Decoder reads a column Enum3Encoder produced.
type Enum3Decoder[A, B, C any] struct {
	ChildA Decoder[A]
	ChildB Decoder[B]
	ChildC Decoder[C]
}

func (d Enum3Decoder[A, B, C]) decodeAll(data []byte, count int) ([]Enum3[A, B, C], error) {
	tagBlob, consumed, err := readFramed(data)
	if err != nil {
		return nil, fmt.Errorf("coder: enum tags: %w", err)
	}

	tags, histogram, _, err := variant.Decode(tagBlob, 3, count)
	if err != nil {
		return nil, fmt.Errorf("coder: %w", err)
	}

	blobA, n, err := readFramed(data[consumed:])
	if err != nil {
		return nil, fmt.Errorf("coder: enum variant 0: %w", err)
	}
	consumed += n

	blobB, n, err := readFramed(data[consumed:])
	if err != nil {
		return nil, fmt.Errorf("coder: enum variant 1: %w", err)
	}
	consumed += n

	blobC, _, err := readFramed(data[consumed:])
	if err != nil {
		return nil, fmt.Errorf("coder: enum variant 2: %w", err)
	}

	valuesA := make([]A, 0, histogram[0])
	for v, err := range d.ChildA.All(blobA, histogram[0]) {
		if err != nil {
			return nil, err
		}
		valuesA = append(valuesA, v)
	}

	valuesB := make([]B, 0, histogram[1])
	for v, err := range d.ChildB.All(blobB, histogram[1]) {
		if err != nil {
			return nil, err
		}
		valuesB = append(valuesB, v)
	}

	valuesC := make([]C, 0, histogram[2])
	for v, err := range d.ChildC.All(blobC, histogram[2]) {
		if err != nil {
			return nil, err
		}
		valuesC = append(valuesC, v)
	}

	out := make([]Enum3[A, B, C], count)
	ia, ib, ic := 0, 0, 0
	for i, t := range tags {
		switch t {
		case 0:
			out[i] = NewEnum3A[A, B, C](valuesA[ia])
			ia++
		case 1:
			out[i] = NewEnum3B[A, B, C](valuesB[ib])
			ib++
		default:
			out[i] = NewEnum3C[A, B, C](valuesC[ic])
			ic++
		}
	}

	return out, nil
}

// ConsumedLen reports how many bytes of data the tag and all three
// child frames occupy together, without decoding any of them.
func (Enum3Decoder[A, B, C]) ConsumedLen(data []byte, count int) (int, error) {
	_, consumed, err := readFramed(data)
	if err != nil {
		return 0, fmt.Errorf("coder: enum tags: %w", err)
	}

	for i := range 3 {
		_, n, err := readFramed(data[consumed:])
		if err != nil {
			return 0, fmt.Errorf("coder: enum variant %d: %w", i, err)
		}
		consumed += n
	}

	return consumed, nil
}

func (d Enum3Decoder[A, B, C]) At(data []byte, count, idx int) (Enum3[A, B, C], error) {
	var zero Enum3[A, B, C]
	if idx < 0 || idx >= count {
		return zero, fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	values, err := d.decodeAll(data, count)
	if err != nil {
		return zero, err
	}

	return values[idx], nil
}

func (d Enum3Decoder[A, B, C]) All(data []byte, count int) iter.Seq2[Enum3[A, B, C], error] {
	return func(yield func(Enum3[A, B, C], error) bool) {
		values, err := d.decodeAll(data, count)
		if err != nil {
			var zero Enum3[A, B, C]
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
