package compress

// ZstdCodec reads and writes Zstandard streams. It is the recommended archive
// container for budget files: ratios of 4:1 to 10:1 are typical for float32
// flow terms, and decompression keeps up with disk reads.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstandard codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
