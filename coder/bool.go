package coder

import (
	"fmt"
	"iter"

	"github.com/go-columnar/columnar/bytepack"
	"github.com/go-columnar/columnar/codecerr"
)

// BoolEncoder packs a column of booleans at one bit per value via
// bytepack's Band2 "less than 2" specialization — the same machinery the
// variant coder uses for its tag column, reused here as a plain value
// column instead of a routing one.
type BoolEncoder struct {
	values []byte
}

var _ Encoder[bool] = (*BoolEncoder)(nil)

func NewBoolEncoder() *BoolEncoder { return &BoolEncoder{} }

func (e *BoolEncoder) Write(val bool) {
	e.values = append(e.values, boolToByte(val))
}

func (e *BoolEncoder) WriteSlice(values []bool) {
	for _, v := range values {
		e.values = append(e.values, boolToByte(v))
	}
}

func (e *BoolEncoder) Bytes() []byte {
	return bytepack.PackLessThan(e.values, 2)
}

func (e *BoolEncoder) Len() int { return len(e.values) }

func (e *BoolEncoder) Reset() { e.values = e.values[:0] }

func boolToByte(v bool) byte {
	if v {
		return 1
	}

	return 0
}

// BoolDecoder reads a column BoolEncoder produced.
type BoolDecoder struct{}

var _ Decoder[bool] = BoolDecoder{}

func (BoolDecoder) decodeAll(data []byte, count int) ([]bool, error) {
	raw, err := bytepack.UnpackLessThan(data, 2, count)
	if err != nil {
		return nil, fmt.Errorf("coder: %w", err)
	}

	out := make([]bool, count)
	for i, b := range raw {
		out[i] = b != 0
	}

	return out, nil
}

// ConsumedLen reports how many bytes of data the count-value boolean
// column occupies.
func (BoolDecoder) ConsumedLen(data []byte, count int) (int, error) {
	need := bytepack.PayloadLenForN(2, count)
	if len(data) < need {
		return 0, fmt.Errorf("coder: %w: need %d bytes, have %d", codecerr.ErrEOF, need, len(data))
	}

	return need, nil
}

func (d BoolDecoder) At(data []byte, count, idx int) (bool, error) {
	if idx < 0 || idx >= count {
		return false, fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	values, err := d.decodeAll(data, count)
	if err != nil {
		return false, err
	}

	return values[idx], nil
}

func (d BoolDecoder) All(data []byte, count int) iter.Seq2[bool, error] {
	return func(yield func(bool, error) bool) {
		values, err := d.decodeAll(data, count)
		if err != nil {
			yield(false, err)

			return
		}

		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	}
}
