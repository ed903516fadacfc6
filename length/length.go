// Package length implements the codec's length coder: a column of
// per-occurrence lengths (for sequences, strings, maps) is stored as a
// bytepack-packed small column, one byte per length before packing, with
// the sentinel 255 marking an entry whose real value overflows into an
// auxiliary intpack-packed column instead. Most real-world lengths are
// small and cluster in a narrow range, so the common case costs well
// under a byte per occurrence once bytepack narrows the small column,
// and the overflow machinery never runs.
package length

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-columnar/columnar/bytepack"
	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/intpack"
)

// Sentinel marks a small-column entry whose real value lives in the
// overflow column instead.
const Sentinel = 255

// Ceiling is the largest length the coder accepts. Lengths are never
// allowed to approach the addressable range of a packed buffer, so a
// single malformed huge length can't be used to force a multi-gigabyte
// allocation during decode.
const Ceiling = int64(math.MaxInt64) / 4096

// Encode packs lengths into a bytepack-packed small column plus an
// optional overflow column, returning ErrHugeLength for any value past
// Ceiling. Overflow presence is never recorded separately: a decoder
// derives it from whether the unpacked small column contains a Sentinel
// byte, the same way it derives which occurrences need a child value in
// every other sum-shaped coder in this module.
func Encode(lengths []int) ([]byte, error) {
	small := make([]byte, len(lengths))

	var overflow []uint64
	for i, l := range lengths {
		if l < 0 {
			return nil, fmt.Errorf("length: %w: negative length %d", codecerr.ErrInvalidPacking, l)
		}
		if int64(l) > Ceiling {
			return nil, fmt.Errorf("length: %w: length %d exceeds ceiling %d", codecerr.ErrHugeLength, l, Ceiling)
		}

		if l < Sentinel {
			small[i] = byte(l)
		} else {
			small[i] = Sentinel
			overflow = append(overflow, uint64(l))
		}
	}

	header, min, payload := bytepack.Pack(small)

	out := make([]byte, 0, 2+len(payload)+9)
	out = append(out, header, min)
	out = append(out, payload...)

	if len(overflow) > 0 {
		blob := intpack.Pack(overflow)

		var lenBuf [binary.MaxVarintLen64]byte
		n := binary.PutUvarint(lenBuf[:], uint64(len(blob)))
		out = append(out, lenBuf[:n]...)
		out = append(out, blob...)
	}

	return out, nil
}

// Decode reverses Encode, returning the decoded lengths and the number
// of bytes of data it consumed. It returns ErrHugeLength when a length,
// or the running sum of the lengths, exceeds Ceiling.
func Decode(data []byte, count int) ([]int, int, error) {
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("length: %w: missing small column header", codecerr.ErrEOF)
	}
	header, min := data[0], data[1]
	pos := 2

	need, err := bytepack.PayloadLen(header, count)
	if err != nil {
		return nil, 0, fmt.Errorf("length: %w", err)
	}
	if len(data) < pos+need {
		return nil, 0, fmt.Errorf("length: %w: need %d small bytes, have %d", codecerr.ErrEOF, need, len(data)-pos)
	}
	small, err := bytepack.Unpack(header, min, data[pos:pos+need], count)
	if err != nil {
		return nil, 0, fmt.Errorf("length: %w", err)
	}
	pos += need

	overflowCount := 0
	for _, b := range small {
		if b == Sentinel {
			overflowCount++
		}
	}

	var overflow []uint64
	if overflowCount > 0 {
		blobLen, n := binary.Uvarint(data[pos:])
		if n <= 0 {
			return nil, 0, fmt.Errorf("length: %w: malformed overflow length varint", codecerr.ErrEOF)
		}
		pos += n

		if len(data) < pos+int(blobLen) {
			return nil, 0, fmt.Errorf("length: %w: truncated overflow column", codecerr.ErrEOF)
		}
		blob := data[pos : pos+int(blobLen)]

		vals, _, err := intpack.Unpack[uint64](blob, overflowCount)
		if err != nil {
			return nil, 0, err
		}
		overflow = vals
		pos += int(blobLen)
	}

	out := make([]int, count)
	oi := 0
	var total uint64
	for i, b := range small {
		v := uint64(b)
		if b == Sentinel {
			v = overflow[oi]
			oi++
		}
		if v > uint64(Ceiling) || total+v > uint64(Ceiling) {
			return nil, 0, fmt.Errorf("length: %w: lengths exceed ceiling %d", codecerr.ErrHugeLength, Ceiling)
		}
		total += v
		out[i] = int(v)
	}

	return out, pos, nil
}

// AnyLengthGreaterThan reports whether any length in the column exceeds
// n, without materializing the overflow column unless n itself falls in
// overflow range — the small column alone already answers the common
// case, since a sentinel byte is always > any n < Sentinel.
func AnyLengthGreaterThan(data []byte, count int, n int) (bool, error) {
	if len(data) < 2 {
		return false, fmt.Errorf("length: %w: missing small column header", codecerr.ErrEOF)
	}
	header, min := data[0], data[1]

	if n < Sentinel {
		need, err := bytepack.PayloadLen(header, count)
		if err != nil {
			return false, fmt.Errorf("length: %w", err)
		}
		if len(data) < 2+need {
			return false, fmt.Errorf("length: %w: need %d small bytes, have %d", codecerr.ErrEOF, need, len(data)-2)
		}

		small, err := bytepack.Unpack(header, min, data[2:2+need], count)
		if err != nil {
			return false, fmt.Errorf("length: %w", err)
		}

		for _, b := range small {
			if int(b) > n {
				return true, nil
			}
		}

		return false, nil
	}

	lengths, _, err := Decode(data, count)
	if err != nil {
		return false, err
	}
	for _, l := range lengths {
		if l > n {
			return true, nil
		}
	}

	return false, nil
}
