package frame

// NoOpCodec bypasses compression entirely, sharing the input's backing array.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a codec that passes data through unchanged, without copying it.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
