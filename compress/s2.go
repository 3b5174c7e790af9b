package compress

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// S2Codec reads and writes S2 streams, trading ratio for decode speed.
type S2Codec struct{}

var _ Codec = S2Codec{}

func NewS2Codec() S2Codec {
	return S2Codec{}
}

func (S2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}

func (S2Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w), nil
}
