package intpack

import (
	"encoding/binary"
	"fmt"

	"github.com/go-columnar/columnar/bitwidth"
	"github.com/go-columnar/columnar/bytepack"
	"github.com/go-columnar/columnar/codecerr"
)

const sampleSize = 16

// minOffsetRun is the run length offset packing only applies above; at
// or below it the header+min overhead is never worth it.
const minOffsetRun = 5

func sampleMinMax[T Unsigned](values []T) (lo, hi uint64) {
	n := len(values)
	s := n
	if s > sampleSize {
		s = sampleSize
	}

	lo, hi = uint64(values[0]), uint64(values[0])
	for _, v := range values[:s] {
		u := uint64(v)
		if u < lo {
			lo = u
		}
		if u > hi {
			hi = u
		}
	}

	return lo, hi
}

func fullMinMax[T Unsigned](values []T) (lo, hi uint64) {
	lo, hi = uint64(values[0]), uint64(values[0])
	for _, v := range values[1:] {
		u := uint64(v)
		if u < lo {
			lo = u
		}
		if u > hi {
			hi = u
		}
	}

	return lo, hi
}

func appendUint(out []byte, v uint64, w bitwidth.Width) []byte {
	switch w {
	case bitwidth.W8:
		return append(out, byte(v))
	case bitwidth.W16:
		return binary.LittleEndian.AppendUint16(out, uint16(v))
	case bitwidth.W32:
		return binary.LittleEndian.AppendUint32(out, uint32(v))
	default:
		return binary.LittleEndian.AppendUint64(out, v)
	}
}

func readUint(data []byte, w bitwidth.Width) uint64 {
	switch w {
	case bitwidth.W8:
		return uint64(data[0])
	case bitwidth.W16:
		return uint64(binary.LittleEndian.Uint16(data))
	case bitwidth.W32:
		return uint64(binary.LittleEndian.Uint32(data))
	default:
		return binary.LittleEndian.Uint64(data)
	}
}

// Pack encodes values into a self-contained blob: a header byte, an
// optional per-run minimum at the resolved width, and the packed
// payload. The first sampleSize values decide the width; when the run is
// longer than the sample, a full scan runs unless the sample alone
// already proves W64 is required and offset packing would not apply.
func Pack[T Unsigned](values []T) []byte {
	if len(values) == 0 {
		return []byte{EncodeHeader(bitwidth.W8, false)}
	}

	sampleLo, sampleHi := sampleMinMax(values)
	lo, hi := sampleLo, sampleHi
	if len(values) > sampleSize && bitwidth.Of(sampleHi) != bitwidth.W64 {
		lo, hi = fullMinMax(values)
	}

	if len(values) <= 1 || bitwidth.Of(hi) == bitwidth.W8 {
		return packDegenerate(values)
	}

	plainWidth := bitwidth.Of(hi)
	offsetWidth := bitwidth.Of(hi - lo)
	useOffset := lo != 0 && len(values) > minOffsetRun && offsetWidth < plainWidth
	if useOffset && len(values) > sampleSize && bitwidth.Of(sampleHi) == bitwidth.W64 {
		// The offset needs the run's real minimum, not the sample's.
		lo, hi = fullMinMax(values)
		offsetWidth = bitwidth.Of(hi - lo)
		useOffset = lo != 0 && offsetWidth < plainWidth
	}

	width := plainWidth
	if useOffset {
		width = offsetWidth
	}

	out := make([]byte, 0, 1+width.Bytes()*(len(values)+1))
	out = append(out, EncodeHeader(width, useOffset))
	if useOffset {
		out = appendUint(out, lo, width)
	}

	for _, v := range values {
		u := uint64(v)
		if useOffset {
			u -= lo
		}
		out = appendUint(out, u, width)
	}

	return out
}

func packDegenerate[T Unsigned](values []T) []byte {
	bytes := make([]byte, len(values))
	for i, v := range values {
		bytes[i] = byte(v)
	}

	bh, bm, bp := bytepack.Pack(bytes)

	out := make([]byte, 0, 3+len(bp))
	out = append(out, EncodeHeader(bitwidth.W8, false), bh, bm)
	out = append(out, bp...)

	return out
}

// Unpack reverses Pack, reading exactly the bytes count values need from
// the front of data and returning how many bytes it consumed so callers
// packing several columns back to back can keep slicing forward.
func Unpack[T Unsigned](data []byte, count int) (values []T, consumed int, err error) {
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("intpack: %w: missing header byte", codecerr.ErrEOF)
	}

	width, offset, err := DecodeHeader(data[0])
	if err != nil {
		return nil, 0, err
	}
	pos := 1

	if count == 0 {
		return nil, pos, nil
	}

	if width == bitwidth.W8 {
		return unpackDegenerate[T](data, pos, count)
	}

	var minVal uint64
	if offset {
		if len(data) < pos+width.Bytes() {
			return nil, 0, fmt.Errorf("intpack: %w: truncated minimum", codecerr.ErrEOF)
		}
		minVal = readUint(data[pos:], width)
		pos += width.Bytes()
	}

	need := width.Bytes() * count
	if len(data) < pos+need {
		return nil, 0, fmt.Errorf("intpack: %w: need %d payload bytes, have %d", codecerr.ErrEOF, need, len(data)-pos)
	}

	out := make([]T, count)
	for i := range count {
		u := readUint(data[pos+i*width.Bytes():], width)
		if offset {
			u += minVal
		}
		out[i] = T(u)
	}
	pos += need

	return out, pos, nil
}

func unpackDegenerate[T Unsigned](data []byte, pos, count int) ([]T, int, error) {
	if len(data) < pos+2 {
		return nil, 0, fmt.Errorf("intpack: %w: truncated bytepack sub-header", codecerr.ErrEOF)
	}

	bh, bm := data[pos], data[pos+1]
	pos += 2

	need, err := bytepack.PayloadLen(bh, count)
	if err != nil {
		return nil, 0, err
	}
	if len(data) < pos+need {
		return nil, 0, fmt.Errorf("intpack: %w: need %d packed bytes, have %d", codecerr.ErrEOF, need, len(data)-pos)
	}

	bytes, err := bytepack.Unpack(bh, bm, data[pos:pos+need], count)
	if err != nil {
		return nil, 0, err
	}
	pos += need

	out := make([]T, count)
	for i, b := range bytes {
		out[i] = T(b)
	}

	return out, pos, nil
}
