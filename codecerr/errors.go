// Package codecerr defines the codec's error taxonomy as package-level
// sentinel values, compared with errors.Is at call sites, in the plain
// error style the teacher repo uses throughout (errors.New/fmt.Errorf,
// no custom error struct hierarchy, no debug/release dual representation).
package codecerr

import "errors"

var (
	// ErrEOF means the input was truncated before a decoder could claim
	// the bytes a populate call required.
	ErrEOF = errors.New("EOF")

	// ErrExpectedEOF means a top-level decode finished but the input had
	// trailing bytes.
	ErrExpectedEOF = errors.New("expected EOF")

	// ErrInvalidPacking means a header byte, or a value derived from it,
	// is not a legal encoding.
	ErrInvalidPacking = errors.New("invalid packing")

	// ErrInvalidVariant means an enum/option tag was >= the number of
	// variants the decoder was built for.
	ErrInvalidVariant = errors.New("invalid variant")

	// ErrInvalidUTF8 means string bytes, or an internal string boundary,
	// failed UTF-8 validation.
	ErrInvalidUTF8 = errors.New("invalid utf8")

	// ErrInvalidBitPattern means a checked-bit-pattern value (a ranged
	// integer, a non-zero type) received an out-of-range representation.
	ErrInvalidBitPattern = errors.New("invalid bit pattern")

	// ErrLengthOverflow means a decoded length value does not fit the
	// platform's int range.
	ErrLengthOverflow = errors.New("length overflow")

	// ErrHugeLength means a sequence/map/string length, or on decode a
	// length column's running sum, exceeded the huge-length ceiling (see
	// length.Ceiling).
	ErrHugeLength = errors.New("huge length")
)
