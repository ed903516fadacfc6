// Package frame implements the optional outer envelope around an already
// columnar-packed buffer: an algorithm byte, a flags byte, an optional
// xxHash64 checksum, a uvarint original length, and the payload.
//
// The envelope is strictly an outer layer. No coder calls into it — it
// wraps the fully assembled bytes an encoder's Bytes method returns, as
// the top-level columnar.Encode does, the same way
// the teacher package wraps an already columnar-encoded blob with optional
// compression. Four algorithms are supported: None, Zstd, S2, and LZ4.
package frame
