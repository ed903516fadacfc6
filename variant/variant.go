// Package variant implements the codec's variant coder: the tag column
// that routes each occurrence of an option, result, or enum value to its
// child coder. Tags are packed via bytepack's unheadered "less than N"
// specialization — the number of variants N is always known from the
// type being coded, so no header byte is spent on it — and decoding
// additionally produces a histogram of how many occurrences landed on
// each variant, which the enum coder needs up front to know how many
// values to pull from each per-variant child column.
package variant

import (
	"fmt"

	"github.com/go-columnar/columnar/bytepack"
	"github.com/go-columnar/columnar/codecerr"
)

// Encode packs tags, each required to be < n, with no header.
func Encode(tags []byte, n int) ([]byte, error) {
	for _, t := range tags {
		if int(t) >= n {
			return nil, fmt.Errorf("variant: %w: tag %d >= variant count %d", codecerr.ErrInvalidVariant, t, n)
		}
	}

	return bytepack.PackLessThan(tags, n), nil
}

// Decode reverses Encode, returning the unpacked tags, a histogram of
// occurrence counts per variant, and the number of bytes consumed.
func Decode(data []byte, n, count int) (tags []byte, histogram []int, consumed int, err error) {
	if n < 1 {
		return nil, nil, 0, fmt.Errorf("variant: %w: non-positive variant count %d", codecerr.ErrInvalidVariant, n)
	}

	need := bytepack.PayloadLenForN(n, count)
	if len(data) < need {
		return nil, nil, 0, fmt.Errorf("variant: %w: need %d bytes, have %d", codecerr.ErrEOF, need, len(data))
	}
	payload := data[:need]

	tags, err = bytepack.UnpackLessThan(payload, n, count)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("variant: %w", err)
	}

	if n == 2 {
		ones := bytepack.PopcountHistogram(payload, count)
		histogram = []int{count - ones, ones}
	} else {
		histogram = make([]int, n)
		for _, t := range tags {
			histogram[t]++
		}
	}

	return tags, histogram, need, nil
}
