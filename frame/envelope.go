package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/go-columnar/columnar/codecerr"
	"github.com/go-columnar/columnar/cow"
	"github.com/go-columnar/columnar/internal/options"
	"github.com/go-columnar/columnar/internal/pool"
)

// flagChecksum marks that an 8-byte xxHash64 of the original payload
// follows the algorithm/flags byte pair.
const flagChecksum = 0x01

// Option configures Wrap/Unwrap.
type Option = options.Option[*config]

type config struct {
	algorithm Algorithm
	checksum  bool
}

// WithAlgorithm selects the compression algorithm applied to the frame.
// The default, when no Option is given, is AlgorithmNone.
func WithAlgorithm(alg Algorithm) Option {
	return options.NoError[*config](func(c *config) { c.algorithm = alg })
}

// WithChecksum enables an xxHash64 checksum of the original payload,
// the frame envelope's analogue of the teacher's per-blob CRC32 field.
func WithChecksum() Option {
	return options.NoError[*config](func(c *config) { c.checksum = true })
}

// Wrap applies the optional compression algorithm and checksum to an
// already fully collected column buffer. No coder calls it; callers
// invoke it once on the byte slice an encoder's Bytes method produced.
func Wrap(data []byte, opts ...Option) ([]byte, error) {
	cfg := config{algorithm: AlgorithmNone}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}

	codec, err := CodecFor(cfg.algorithm)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("frame: compress: %w", err)
	}

	out := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(out)

	headerLen := 2
	if cfg.checksum {
		headerLen += 8
	}
	out.Grow(headerLen + binary.MaxVarintLen64 + len(compressed))
	out.MustWrite([]byte{byte(cfg.algorithm), flagsFor(cfg)})

	if cfg.checksum {
		var sum [8]byte
		binary.LittleEndian.PutUint64(sum[:], xxhash.Sum64(data))
		out.MustWrite(sum[:])
	}

	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(data)))
	out.MustWrite(lenBuf[:n])
	out.MustWrite(compressed)

	result := make([]byte, out.Len())
	copy(result, out.Bytes())

	return result, nil
}

func flagsFor(cfg config) byte {
	var f byte
	if cfg.checksum {
		f |= flagChecksum
	}

	return f
}

// Unwrap reverses Wrap, returning the original (still columnar-packed)
// buffer as a cow.Bytes. It validates the checksum, when present, before
// returning. When the frame carries AlgorithmNone, the result borrows
// directly out of data with no copy; any real compression algorithm
// always allocates a fresh buffer while decompressing, so the result
// comes back already owned.
func Unwrap(data []byte) (cow.Bytes, error) {
	if len(data) < 2 {
		return cow.Bytes{}, fmt.Errorf("frame: %w: truncated envelope header", codecerr.ErrEOF)
	}

	alg := Algorithm(data[0])
	flags := data[1]
	rest := data[2:]

	var wantChecksum uint64
	hasChecksum := flags&flagChecksum != 0
	if hasChecksum {
		if len(rest) < 8 {
			return cow.Bytes{}, fmt.Errorf("frame: %w: truncated checksum", codecerr.ErrEOF)
		}
		wantChecksum = binary.LittleEndian.Uint64(rest[:8])
		rest = rest[8:]
	}

	originalLen, n := binary.Uvarint(rest)
	if n <= 0 {
		return cow.Bytes{}, fmt.Errorf("frame: %w: malformed length prefix", codecerr.ErrEOF)
	}
	rest = rest[n:]

	codec, err := CodecFor(alg)
	if err != nil {
		return cow.Bytes{}, fmt.Errorf("frame: %w: %v", codecerr.ErrInvalidPacking, err)
	}

	original, err := codec.Decompress(rest)
	if err != nil {
		return cow.Bytes{}, fmt.Errorf("frame: decompress: %w", err)
	}

	if uint64(len(original)) != originalLen {
		return cow.Bytes{}, fmt.Errorf("frame: %w: decompressed length %d != header length %d",
			codecerr.ErrInvalidPacking, len(original), originalLen)
	}

	if hasChecksum {
		if got := xxhash.Sum64(original); got != wantChecksum {
			return cow.Bytes{}, fmt.Errorf("frame: %w: checksum mismatch", codecerr.ErrInvalidPacking)
		}
	}

	if alg == AlgorithmNone {
		return cow.Borrowed(original), nil
	}

	return cow.Owned(original), nil
}
