package coder

import (
	"fmt"
	"iter"
	"math"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/endian"
	"github.com/go-columnar/columnar/internal/pool"
)

// Float64Encoder stores float64 values in their native IEEE 754 bit
// pattern, 8 bytes per value, at the given endianness — the codec's
// floats have no meaningful range to narrow the way integers do, so the
// column is simply packed at full width.
type Float64Encoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ Encoder[float64] = (*Float64Encoder)(nil)

func NewFloat64Encoder(engine endian.EndianEngine) *Float64Encoder {
	return &Float64Encoder{engine: engine, buf: pool.GetBlobBuffer()}
}

func (e *Float64Encoder) Write(val float64) {
	e.buf.Grow(8)
	e.writeOne(val)
	e.count++
}

func (e *Float64Encoder) WriteSlice(values []float64) {
	if len(values) == 0 {
		return
	}

	e.buf.Grow(len(values) * 8)
	for _, v := range values {
		e.writeOne(v)
	}
	e.count += len(values)
}

func (e *Float64Encoder) writeOne(val float64) {
	bits := math.Float64bits(val)
	start := e.buf.Len()
	e.buf.Extend(8)
	e.engine.PutUint64(e.buf.Slice(start, start+8), bits)
}

func (e *Float64Encoder) Bytes() []byte { return e.buf.Bytes() }

func (e *Float64Encoder) Len() int { return e.count }

func (e *Float64Encoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

// Float64Decoder reads a column Float64Encoder produced.
type Float64Decoder struct {
	Engine endian.EndianEngine
}

var _ Decoder[float64] = Float64Decoder{}

// ConsumedLen reports how many bytes of data the count-value column
// occupies: a fixed 8 bytes per value, no header.
func (Float64Decoder) ConsumedLen(data []byte, count int) (int, error) {
	need := count * 8
	if len(data) < need {
		return 0, fmt.Errorf("coder: %w: need %d bytes, have %d", codecerr.ErrEOF, need, len(data))
	}

	return need, nil
}

func (d Float64Decoder) At(data []byte, count, idx int) (float64, error) {
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("coder: %w: index %d out of range [0,%d)", codecerr.ErrEOF, idx, count)
	}

	need := (idx + 1) * 8
	if len(data) < need {
		return 0, fmt.Errorf("coder: %w: need %d bytes, have %d", codecerr.ErrEOF, need, len(data))
	}

	bits := d.Engine.Uint64(data[idx*8 : need])

	return math.Float64frombits(bits), nil
}

func (d Float64Decoder) All(data []byte, count int) iter.Seq2[float64, error] {
	return func(yield func(float64, error) bool) {
		need := count * 8
		if len(data) < need {
			yield(0, fmt.Errorf("coder: %w: need %d bytes, have %d", codecerr.ErrEOF, need, len(data)))

			return
		}

		for i := range count {
			bits := d.Engine.Uint64(data[i*8 : i*8+8])
			if !yield(math.Float64frombits(bits), nil) {
				return
			}
		}
	}
}
