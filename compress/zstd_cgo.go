//go:build cgo && gozstd

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// NewReader returns a streaming Zstandard decoder over r backed by libzstd.
func (ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return &gozstdReader{zr: gozstd.NewReader(r)}, nil
}

// NewWriter returns a streaming Zstandard encoder into w backed by libzstd.
func (ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return &gozstdWriter{zw: gozstd.NewWriterLevel(w, 3)}, nil
}

type gozstdReader struct {
	zr *gozstd.Reader
}

func (r *gozstdReader) Read(p []byte) (int, error) {
	return r.zr.Read(p)
}

func (r *gozstdReader) Close() error {
	r.zr.Release()
	return nil
}

type gozstdWriter struct {
	zw *gozstd.Writer
}

func (w *gozstdWriter) Write(p []byte) (int, error) {
	return w.zw.Write(p)
}

func (w *gozstdWriter) Close() error {
	err := w.zw.Close()
	w.zw.Release()

	return err
}
