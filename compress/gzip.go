package compress

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipCodec reads and writes gzip streams, the most common archive format for
// older model runs.
type GzipCodec struct{}

var _ Codec = GzipCodec{}

func NewGzipCodec() GzipCodec {
	return GzipCodec{}
}

func (GzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func (GzipCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}
