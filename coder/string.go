package coder

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/go-columnar/columnar/bytepack"
	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/length"
)

// StringEncoder stores a column of strings as a length column (via
// length.Encode) followed by the concatenated raw bytes of every string,
// itself run through bytepack so narrow alphabets (all-ASCII digit
// strings, for instance) still benefit from sub-byte packing.
type StringEncoder struct {
	values []string
}

var _ Encoder[string] = (*StringEncoder)(nil)

func NewStringEncoder() *StringEncoder { return &StringEncoder{} }

func (e *StringEncoder) Write(val string) { e.values = append(e.values, val) }

func (e *StringEncoder) WriteSlice(values []string) {
	e.values = append(e.values, values...)
}

func (e *StringEncoder) Bytes() []byte {
	lengths := make([]int, len(e.values))
	var raw []byte
	for i, s := range e.values {
		lengths[i] = len(s)
		raw = append(raw, s...)
	}

	lengthBlob, err := length.Encode(lengths)
	if err != nil {
		panic(fmt.Sprintf("coder: string length column: %v", err))
	}

	header, min, payload := bytepack.Pack(raw)

	out := make([]byte, 0, len(lengthBlob)+2+len(payload))
	out = append(out, lengthBlob...)
	out = append(out, header, min)
	out = append(out, payload...)

	return out
}

func (e *StringEncoder) Len() int { return len(e.values) }

func (e *StringEncoder) Reset() { e.values = e.values[:0] }

// StringDecoder reads a column StringEncoder produced, validating every
// string as UTF-8 on the way out.
type StringDecoder struct{}

var _ Decoder[string] = StringDecoder{}

func (StringDecoder) decodeAll(data []byte, count int) ([]string, error) {
	lengths, pos, err := length.Decode(data, count)
	if err != nil {
		return nil, fmt.Errorf("coder: %w", err)
	}

	if len(data) < pos+2 {
		return nil, fmt.Errorf("coder: %w: missing string byte-column header", codecerr.ErrEOF)
	}
	header, min := data[pos], data[pos+1]
	pos += 2

	total := 0
	for _, l := range lengths {
		total += l
	}

	need, err := bytepack.PayloadLen(header, total)
	if err != nil {
		return nil, fmt.Errorf("coder: %w", err)
	}
	if len(data) < pos+need {
		return nil, fmt.Errorf("coder: %w: need %d raw bytes, have %d", codecerr.ErrEOF, need, len(data)-pos)
	}

	raw, err := bytepack.Unpack(header, min, data[pos:pos+need], total)
	if err != nil {
		return nil, fmt.Errorf("coder: %w", err)
	}

	out := make([]string, count)
	offset := 0
	for i, l := range lengths {
		chunk := raw[offset : offset+l]
		if !utf8.Valid(chunk) {
			return nil, fmt.Errorf("coder: %w: string %d", codecerr.ErrInvalidUTF8, i)
		}
		out[i] = string(chunk)
		offset += l
	}

	return out, nil
}

// ConsumedLen reports how many bytes of data the length column and
// byte column occupy together, without unpacking or validating the
// string bytes.
func (StringDecoder) ConsumedLen(data []byte, count int) (int, error) {
	lengths, pos, err := length.Decode(data, count)
	if err != nil {
		return 0, fmt.Errorf("coder: %w", err)
	}

	if len(data) < pos+2 {
		return 0, fmt.Errorf("coder: %w: missing string byte-column header", codecerr.ErrEOF)
	}
	header := data[pos]
	pos += 2

	total := 0
	for _, l := range lengths {
		total += l
	}

	need, err := bytepack.PayloadLen(header, total)
	if err != nil {
		return 0, fmt.Errorf("coder: %w", err)
	}
	if len(data) < pos+need {
		return 0, fmt.Errorf("coder: %w: need %d raw bytes, have %d", codecerr.ErrEOF, need, len(data)-pos)
	}

	return pos + need, nil
}

func (d StringDecoder) At(data []byte, count, idx int) (string, error) {
	if idx < 0 || idx >= count {
		return "", fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	values, err := d.decodeAll(data, count)
	if err != nil {
		return "", err
	}

	return values[idx], nil
}

func (d StringDecoder) All(data []byte, count int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		values, err := d.decodeAll(data, count)
		if err != nil {
			yield("", err)

			return
		}

		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	}
}
