package bytepack

import (
	"fmt"
	"math/bits"

	"github.com/go-columnar/columnar/codecerr"
)

// minOffsetRun is the run length offset packing only applies above; at
// or below it the header+min byte overhead is never worth it.
const minOffsetRun = 5

func minMax(values []byte) (lo, hi byte) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi
}

// Pack chooses the tightest band for values, optionally offsetting by a
// per-run min, and returns a self-describing header byte, the min byte
// (valid only when the header's offset bit is set), and the packed
// payload. Empty input packs to a zero-length Band256 payload.
func Pack(values []byte) (header byte, min byte, payload []byte) {
	if len(values) == 0 {
		return EncodeHeader(Band256, false), 0, nil
	}

	lo, hi := minMax(values)
	plainBand := bandForAlphabet(int(hi) + 1)
	offsetBand := bandForAlphabet(int(hi-lo) + 1)

	// Tie-breaking: equal bands favor plain, saving the min byte.
	if lo != 0 && len(values) > minOffsetRun && offsetBand.tighterThan(plainBand) {
		shifted := make([]byte, len(values))
		for i, v := range values {
			shifted[i] = v - lo
		}

		return EncodeHeader(offsetBand, true), lo, packBand(shifted, offsetBand)
	}

	return EncodeHeader(plainBand, false), 0, packBand(values, plainBand)
}

// Unpack reverses Pack, given the header byte, the min byte (ignored
// unless the header carries an offset), the packed payload, and the
// expected value count.
func Unpack(header byte, min byte, payload []byte, count int) ([]byte, error) {
	band, offset, err := DecodeHeader(header)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, nil
	}

	need := payloadLen(band, count)
	if len(payload) < need {
		return nil, fmt.Errorf("bytepack: %w: need %d packed bytes, have %d", codecerr.ErrEOF, need, len(payload))
	}

	out := unpackBand(payload, band, count)
	if offset {
		for i := range out {
			out[i] += min
		}
	}

	return out, nil
}

// PayloadLen returns the number of packed bytes a count-value run needs
// under the band header describes, letting callers that embed a
// bytepack blob inside a larger buffer (intpack's W8 degeneration, for
// instance) find exactly where the payload ends.
func PayloadLen(header byte, count int) (int, error) {
	band, _, err := DecodeHeader(header)
	if err != nil {
		return 0, err
	}

	return payloadLen(band, count), nil
}

// BandForN returns the band PackLessThan/UnpackLessThan use for a
// statically known alphabet bound n.
func BandForN(n int) Band {
	if n < 1 {
		n = 1
	}

	return bandForAlphabet(n)
}

// PayloadLenForN returns the number of packed bytes a count-value run
// needs when packed with bound n, letting callers slice an unheadered
// PackLessThan blob out of a larger buffer.
func PayloadLenForN(n, count int) int {
	return payloadLen(BandForN(n), count)
}

// PackLessThan packs values, each known to be < n, at the band n implies.
// No header is written; the caller (and the matching UnpackLessThan) must
// already agree on n out of band, exactly as the variant coder's tag
// column does.
func PackLessThan(values []byte, n int) []byte {
	return packBand(values, BandForN(n))
}

// UnpackLessThan reverses PackLessThan and validates that every unpacked
// value is < n, returning ErrInvalidPacking otherwise.
func UnpackLessThan(payload []byte, n int, count int) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}

	band := BandForN(n)
	need := payloadLen(band, count)
	if len(payload) < need {
		return nil, fmt.Errorf("bytepack: %w: need %d packed bytes, have %d", codecerr.ErrEOF, need, len(payload))
	}

	out := unpackBand(payload, band, count)
	for _, v := range out {
		if int(v) >= n {
			return nil, fmt.Errorf("bytepack: %w: value %d >= bound %d", codecerr.ErrInvalidPacking, v, n)
		}
	}

	return out, nil
}

// PopcountHistogram computes, for a Band2-packed run of count values,
// the number of 1-valued occurrences directly from the packed bytes via
// math/bits.OnesCount8 — one popcount per byte instead of one branch per
// value. It is the portable equivalent of the BMI2 popcount fast path:
// every Go-supported architecture lowers OnesCount8 to a single
// instruction where the hardware has one, and to a small De Bruijn-style
// sequence otherwise.
func PopcountHistogram(payload []byte, count int) (ones int) {
	full := count / 8
	for i := range full {
		ones += bits.OnesCount8(payload[i])
	}

	if rem := count % 8; rem != 0 {
		mask := byte(1<<uint(rem) - 1)
		ones += bits.OnesCount8(payload[full] & mask)
	}

	return ones
}
