// Package cow provides a small copy-on-write byte slice. frame.Unwrap
// returns one: a borrowed view into the wire buffer when the envelope is
// uncompressed, and an owned slice when decompression produced new bytes.
package cow

// Bytes is either a borrowed view into someone else's buffer or an
// owned slice the holder is free to mutate.
type Bytes struct {
	data  []byte
	owned bool
}

// Borrowed wraps data without copying it. Callers must not mutate data
// afterwards while the Bytes is alive.
func Borrowed(data []byte) Bytes {
	return Bytes{data: data}
}

// Owned wraps data as an already-owned slice, with no future copy
// needed on mutation.
func Owned(data []byte) Bytes {
	return Bytes{data: data, owned: true}
}

// IsOwned reports whether mutating Bytes() is safe without copying.
func (b Bytes) IsOwned() bool { return b.owned }

// Len returns the number of bytes.
func (b Bytes) Len() int { return len(b.data) }

// Bytes returns the underlying slice, borrowed or owned.
func (b Bytes) Bytes() []byte { return b.data }

// Slice returns a sub-view, borrowed or owned according to b.
func (b Bytes) Slice(lo, hi int) []byte { return b.data[lo:hi] }

// ToOwned returns a Bytes backed by a private copy, copying only when b
// is currently borrowed.
func (b Bytes) ToOwned() Bytes {
	if b.owned {
		return b
	}

	out := make([]byte, len(b.data))
	copy(out, b.data)

	return Owned(out)
}
