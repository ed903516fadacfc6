package coder

import (
	"fmt"
	"iter"
	"math"

	"github.com/go-columnar/columnar/bytepack"
	"github.com/go-columnar/columnar/codecerr"
)

// Float32Encoder splits each value's 32-bit IEEE 754 representation into
// a 3-byte mantissa column and a 1-byte sign+exponent column, instead of
// storing 4 contiguous bytes per value. The sign+exponent column is then
// run through bytepack: real-world float32 columns rarely use more than
// a handful of distinct exponents, so this column's alphabet is usually
// narrow even when the mantissa bytes are effectively random, and
// bytepack is what actually captures that low entropy rather than
// leaving it for an optional, off-by-default outer compressor to find.
type Float32Encoder struct {
	mantissa []byte
	signExp  []byte
}

var _ Encoder[float32] = (*Float32Encoder)(nil)

func NewFloat32Encoder() *Float32Encoder { return &Float32Encoder{} }

func (e *Float32Encoder) Write(val float32) {
	bits := math.Float32bits(val)
	e.mantissa = append(e.mantissa, byte(bits), byte(bits>>8), byte(bits>>16))
	e.signExp = append(e.signExp, byte(bits>>24))
}

func (e *Float32Encoder) WriteSlice(values []float32) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *Float32Encoder) Bytes() []byte {
	header, min, payload := bytepack.Pack(e.signExp)

	out := make([]byte, 0, len(e.mantissa)+2+len(payload))
	out = append(out, e.mantissa...)
	out = append(out, header, min)
	out = append(out, payload...)

	return out
}

func (e *Float32Encoder) Len() int { return len(e.signExp) }

func (e *Float32Encoder) Reset() {
	e.mantissa = e.mantissa[:0]
	e.signExp = e.signExp[:0]
}

// Float32Decoder reads a column Float32Encoder produced.
type Float32Decoder struct{}

var _ Decoder[float32] = Float32Decoder{}

func (Float32Decoder) split(data []byte, count int) (mantissa, signExp []byte, err error) {
	mantissaLen := count * 3
	if len(data) < mantissaLen+2 {
		return nil, nil, fmt.Errorf("coder: %w: need %d mantissa bytes plus header, have %d", codecerr.ErrEOF, mantissaLen, len(data))
	}
	mantissa = data[:mantissaLen]

	header, min := data[mantissaLen], data[mantissaLen+1]
	pos := mantissaLen + 2

	need, err := bytepack.PayloadLen(header, count)
	if err != nil {
		return nil, nil, fmt.Errorf("coder: %w", err)
	}
	if len(data) < pos+need {
		return nil, nil, fmt.Errorf("coder: %w: need %d sign/exponent bytes, have %d", codecerr.ErrEOF, need, len(data)-pos)
	}

	signExp, err = bytepack.Unpack(header, min, data[pos:pos+need], count)
	if err != nil {
		return nil, nil, fmt.Errorf("coder: %w", err)
	}

	return mantissa, signExp, nil
}

// ConsumedLen reports how many bytes of data the count-value column
// occupies, without unpacking the sign+exponent payload.
func (Float32Decoder) ConsumedLen(data []byte, count int) (int, error) {
	mantissaLen := count * 3
	if len(data) < mantissaLen+2 {
		return 0, fmt.Errorf("coder: %w: need %d mantissa bytes plus header, have %d", codecerr.ErrEOF, mantissaLen, len(data))
	}

	header := data[mantissaLen]
	pos := mantissaLen + 2

	need, err := bytepack.PayloadLen(header, count)
	if err != nil {
		return 0, fmt.Errorf("coder: %w", err)
	}
	if len(data) < pos+need {
		return 0, fmt.Errorf("coder: %w: need %d sign/exponent bytes, have %d", codecerr.ErrEOF, need, len(data)-pos)
	}

	return pos + need, nil
}

func decodeFloat32At(mantissa, signExp []byte, idx int) float32 {
	bits := uint32(mantissa[idx*3]) | uint32(mantissa[idx*3+1])<<8 | uint32(mantissa[idx*3+2])<<16
	bits |= uint32(signExp[idx]) << 24

	return math.Float32frombits(bits)
}

func (d Float32Decoder) At(data []byte, count, idx int) (float32, error) {
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	mantissa, signExp, err := d.split(data, count)
	if err != nil {
		return 0, err
	}

	return decodeFloat32At(mantissa, signExp, idx), nil
}

func (d Float32Decoder) All(data []byte, count int) iter.Seq2[float32, error] {
	return func(yield func(float32, error) bool) {
		mantissa, signExp, err := d.split(data, count)
		if err != nil {
			yield(0, err)

			return
		}

		for i := range count {
			if !yield(decodeFloat32At(mantissa, signExp, i), nil) {
				return
			}
		}
	}
}
