package frame

import "fmt"

// Algorithm identifies the compression algorithm used by the frame envelope.
type Algorithm uint8

const (
	AlgorithmNone Algorithm = iota
	AlgorithmZstd
	AlgorithmS2
	AlgorithmLZ4
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "None"
	case AlgorithmZstd:
		return "Zstd"
	case AlgorithmS2:
		return "S2"
	case AlgorithmLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses an already-packed payload.
//
// Implementations must not modify the input slice. NoOpCodec returns the
// input slice itself; the other built-in codecs return a newly allocated
// result.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Algorithm]Codec{
	AlgorithmNone: NewNoOpCodec(),
	AlgorithmZstd: NewZstdCodec(),
	AlgorithmS2:   NewS2Codec(),
	AlgorithmLZ4:  NewLZ4Codec(),
}

// CodecFor returns the built-in Codec for the given algorithm.
func CodecFor(alg Algorithm) (Codec, error) {
	codec, ok := builtinCodecs[alg]
	if !ok {
		return nil, fmt.Errorf("frame: unsupported compression algorithm %d", alg)
	}

	return codec, nil
}
