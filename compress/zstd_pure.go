//go:build !(cgo && gozstd)

package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewReader returns a streaming Zstandard decoder over r.
func (ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, err
	}

	return dec.IOReadCloser(), nil
}

// NewWriter returns a streaming Zstandard encoder into w.
func (ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
}
