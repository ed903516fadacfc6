package frame

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdCodec gives the best compression ratio of the four algorithms at
// the cost of speed; best suited to cold storage of encoded frames.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// zstdDecoderPool and zstdEncoderPool hold warmed-up klauspost/compress
// encoders/decoders; the library is explicitly designed for this kind of
// reuse to avoid allocating on every call.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("frame: failed to create zstd decoder: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("frame: failed to create zstd encoder: %v", err))
		}

		return encoder
	},
}

func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder) //nolint:errcheck
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder) //nolint:errcheck
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("frame: zstd decompression failed: %w", err)
	}

	return decompressed, nil
}
