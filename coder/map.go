package coder

import (
	"fmt"
	"iter"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/internal/pool"
	"github.com/go-columnar/columnar/length"
)

// OrderedMap is a map-like value that keeps its entries in the order
// they were inserted, for callers that need that distinction — an
// ordinary Go map gives no such guarantee, which is also why
// MapEncoder/MapDecoder reconstruct a plain map[K]V and never promise
// anything about entry order.
type OrderedMap[K comparable, V any] struct {
	Keys   []K
	Values []V
}

// Put appends an entry, preserving insertion order even if the key was
// already present.
func (m *OrderedMap[K, V]) Put(k K, v V) {
	m.Keys = append(m.Keys, k)
	m.Values = append(m.Values, v)
}

func writeMapEntries(buf *pool.ByteBuffer, lengths []int, keyBytes, valBytes []byte) {
	lengthBlob, err := length.Encode(lengths)
	if err != nil {
		panic(fmt.Sprintf("coder: map length column: %v", err))
	}

	buf.MustWrite(lengthBlob)
	writeFramed(buf, keyBytes)
	writeFramed(buf, valBytes)
}

func readMapEntries(data []byte, count int) (lengths []int, keyBlob, valBlob []byte, consumed int, err error) {
	lengths, consumed, err = length.Decode(data, count)
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("coder: %w", err)
	}

	keyBlob, n, err := readFramed(data[consumed:])
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("coder: map keys: %w", err)
	}
	consumed += n

	var n2 int
	valBlob, n2, err = readFramed(data[consumed:])
	if err != nil {
		return nil, nil, nil, 0, fmt.Errorf("coder: map values: %w", err)
	}
	consumed += n2

	return lengths, keyBlob, valBlob, consumed, nil
}

// MapEncoder stores a column of map[K]V values as a length column (one
// entry count per occurrence) followed by every key and every value,
// each flattened through its own child coder in the same relative order.
type MapEncoder[K comparable, V any] struct {
	lengths  []int
	keyChild Encoder[K]
	valChild Encoder[V]
}

var _ Encoder[map[string]int] = (*MapEncoder[string, int])(nil)

func NewMapEncoder[K comparable, V any](keyChild Encoder[K], valChild Encoder[V]) *MapEncoder[K, V] {
	return &MapEncoder[K, V]{keyChild: keyChild, valChild: valChild}
}

func (e *MapEncoder[K, V]) Write(m map[K]V) {
	e.lengths = append(e.lengths, len(m))
	for k, v := range m {
		e.keyChild.Write(k)
		e.valChild.Write(v)
	}
}

func (e *MapEncoder[K, V]) WriteSlice(values []map[K]V) {
	for _, m := range values {
		e.Write(m)
	}
}

func (e *MapEncoder[K, V]) Bytes() []byte {
	buf := NewBuffer()
	defer pool.PutBlobBuffer(buf)

	writeMapEntries(buf, e.lengths, e.keyChild.Bytes(), e.valChild.Bytes())

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

func (e *MapEncoder[K, V]) Len() int { return len(e.lengths) }

func (e *MapEncoder[K, V]) Reset() {
	e.lengths = e.lengths[:0]
	e.keyChild.Reset()
	e.valChild.Reset()
}

// MapDecoder reads a column MapEncoder produced.
type MapDecoder[K comparable, V any] struct {
	KeyChild Decoder[K]
	ValChild Decoder[V]
}

func (d MapDecoder[K, V]) decodeAll(data []byte, count int) ([]map[K]V, error) {
	lengths, keyBlob, valBlob, _, err := readMapEntries(data, count)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, l := range lengths {
		total += l
	}

	keys := make([]K, 0, total)
	for k, err := range d.KeyChild.All(keyBlob, total) {
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	values := make([]V, 0, total)
	for v, err := range d.ValChild.All(valBlob, total) {
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	out := make([]map[K]V, count)
	offset := 0
	for i, l := range lengths {
		m := make(map[K]V, l)
		for j := range l {
			m[keys[offset+j]] = values[offset+j]
		}
		out[i] = m
		offset += l
	}

	return out, nil
}

// ConsumedLen reports how many bytes of data the length column and
// key/value frames occupy together, without decoding any entries.
func (MapDecoder[K, V]) ConsumedLen(data []byte, count int) (int, error) {
	_, _, _, consumed, err := readMapEntries(data, count)
	if err != nil {
		return 0, err
	}

	return consumed, nil
}

func (d MapDecoder[K, V]) At(data []byte, count, idx int) (map[K]V, error) {
	if idx < 0 || idx >= count {
		return nil, fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	values, err := d.decodeAll(data, count)
	if err != nil {
		return nil, err
	}

	return values[idx], nil
}

func (d MapDecoder[K, V]) All(data []byte, count int) iter.Seq2[map[K]V, error] {
	return func(yield func(map[K]V, error) bool) {
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

// OrderedMapEncoder is MapEncoder's order-preserving counterpart: it
// stores the same length+keys+values layout but reads an OrderedMap
// directly instead of ranging over a Go map, so insertion order survives
// the round trip.
type OrderedMapEncoder[K comparable, V any] struct {
	lengths  []int
	keyChild Encoder[K]
	valChild Encoder[V]
}

var _ Encoder[OrderedMap[string, int]] = (*OrderedMapEncoder[string, int])(nil)

func NewOrderedMapEncoder[K comparable, V any](keyChild Encoder[K], valChild Encoder[V]) *OrderedMapEncoder[K, V] {
	return &OrderedMapEncoder[K, V]{keyChild: keyChild, valChild: valChild}
}

func (e *OrderedMapEncoder[K, V]) Write(m OrderedMap[K, V]) {
	e.lengths = append(e.lengths, len(m.Keys))
	e.keyChild.WriteSlice(m.Keys)
	e.valChild.WriteSlice(m.Values)
}

func (e *OrderedMapEncoder[K, V]) WriteSlice(values []OrderedMap[K, V]) {
	for _, m := range values {
		e.Write(m)
	}
}

func (e *OrderedMapEncoder[K, V]) Bytes() []byte {
	buf := NewBuffer()
	defer pool.PutBlobBuffer(buf)

	writeMapEntries(buf, e.lengths, e.keyChild.Bytes(), e.valChild.Bytes())

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

func (e *OrderedMapEncoder[K, V]) Len() int { return len(e.lengths) }

func (e *OrderedMapEncoder[K, V]) Reset() {
	e.lengths = e.lengths[:0]
	e.keyChild.Reset()
	e.valChild.Reset()
}

// OrderedMapDecoder reads a column OrderedMapEncoder produced.
type OrderedMapDecoder[K comparable, V any] struct {
	KeyChild Decoder[K]
	ValChild Decoder[V]
}

func (d OrderedMapDecoder[K, V]) decodeAll(data []byte, count int) ([]OrderedMap[K, V], error) {
	lengths, keyBlob, valBlob, _, err := readMapEntries(data, count)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, l := range lengths {
		total += l
	}

	keys := make([]K, 0, total)
	for k, err := range d.KeyChild.All(keyBlob, total) {
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	values := make([]V, 0, total)
	for v, err := range d.ValChild.All(valBlob, total) {
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	out := make([]OrderedMap[K, V], count)
	offset := 0
	for i, l := range lengths {
		out[i] = OrderedMap[K, V]{
			Keys:   keys[offset : offset+l],
			Values: values[offset : offset+l],
		}
		offset += l
	}

	return out, nil
}

// ConsumedLen reports how many bytes of data the length column and
// key/value frames occupy together, without decoding any entries.
func (OrderedMapDecoder[K, V]) ConsumedLen(data []byte, count int) (int, error) {
	_, _, _, consumed, err := readMapEntries(data, count)
	if err != nil {
		return 0, err
	}

	return consumed, nil
}

func (d OrderedMapDecoder[K, V]) At(data []byte, count, idx int) (OrderedMap[K, V], error) {
	if idx < 0 || idx >= count {
		return OrderedMap[K, V]{}, fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	values, err := d.decodeAll(data, count)
	if err != nil {
		return OrderedMap[K, V]{}, err
	}

	return values[idx], nil
}

func (d OrderedMapDecoder[K, V]) All(data []byte, count int) iter.Seq2[OrderedMap[K, V], error] {
	return func(yield func(OrderedMap[K, V], error) bool) {
		values, err := d.decodeAll(data, count)
		if err != nil {
			yield(OrderedMap[K, V]{}, err)

			return
		}

		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	}
}
