package bytepack

import (
	"fmt"

	"github.com/go-columnar/columnar/codecerr"
)

// EncodeHeader builds the packer's header byte. The combination
// (Band256, offset=true) is unrepresentable by construction: plain
// packing at the loosest band never benefits from an offset, so callers
// must never request it (Pack never does).
func EncodeHeader(band Band, offset bool) byte {
	h := band.code() * 2
	if offset {
		h--
	}

	return byte(h)
}

// DecodeHeader reverses EncodeHeader, rejecting header bytes outside the
// 11 values {0..10} that EncodeHeader can ever produce — in particular,
// it rejects the unrepresentable "no packing + offset" combination
// instead of silently accepting it.
func DecodeHeader(h byte) (band Band, offset bool, err error) {
	if h > 10 {
		return 0, false, fmt.Errorf("bytepack: %w: header byte %d out of range", codecerr.ErrInvalidPacking, h)
	}

	var code int
	if h%2 == 1 {
		code = (int(h) + 1) / 2
		offset = true
	} else {
		code = int(h) / 2
		offset = false
	}

	band, ok := bandFromCode(code)
	if !ok {
		return 0, false, fmt.Errorf("bytepack: %w: header byte %d", codecerr.ErrInvalidPacking, h)
	}

	return band, offset, nil
}
