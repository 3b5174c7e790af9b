package compress

import "io"

// NoOpCodec passes bytes through unchanged.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

func (NoOpCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func (NoOpCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}
