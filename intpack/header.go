// Package intpack implements the codec's integer range-packer: given a
// run of same-typed unsigned integers, it samples the first values (and
// falls back to a full scan when the sample alone can't confirm the
// narrowest width), then stores the run at the narrowest of {8,16,32,64}
// bits, optionally offsetting by a per-run minimum. A 128-bit band is not
// offered — Go has no native 128-bit integer type and nothing in the
// retrieved corpus needs one (see DESIGN.md).
//
// A run whose values all fit a single byte — or that has zero or one
// value — degenerates entirely to the byte packer: intpack contributes
// only its header byte, and bytepack performs the actual sub-byte
// packing on the resulting byte column.
package intpack

import (
	"fmt"

	"github.com/go-columnar/columnar/bitwidth"
	"github.com/go-columnar/columnar/codecerr"
)

// Unsigned is the set of native unsigned integer types intpack accepts.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// EncodeHeader builds intpack's header byte from a resolved width and
// whether a per-run minimum follows it, using the same
// code*2-offsetBit scheme bytepack uses for its bands: (W8, offset=true)
// is unrepresentable by construction, since width W8 always degenerates
// to the byte packer instead.
func EncodeHeader(w bitwidth.Width, offset bool) byte {
	h := w.Index() * 2
	if offset {
		h--
	}

	return byte(h)
}

// DecodeHeader reverses EncodeHeader, rejecting any header byte outside
// the 7 values {0..6} that EncodeHeader can ever produce.
func DecodeHeader(h byte) (w bitwidth.Width, offset bool, err error) {
	if h > 6 {
		return 0, false, fmt.Errorf("intpack: %w: header byte %d out of range", codecerr.ErrInvalidPacking, h)
	}

	var idx int
	if h%2 == 1 {
		idx = (int(h) + 1) / 2
		offset = true
	} else {
		idx = int(h) / 2
		offset = false
	}

	return bitwidth.FromIndex(idx), offset, nil
}
