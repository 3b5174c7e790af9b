package compress

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/format"
)

// Decompressor wraps a compressed stream.
type Decompressor interface {
	// NewReader returns a reader producing the decompressed bytes of r. Closing
	// it releases decoder resources but does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Compressor wraps a destination stream.
type Compressor interface {
	// NewWriter returns a writer compressing into w. Close flushes the stream
	// but does not close w.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
	format.CompressionGzip: NewGzipCodec(),
}

// GetCodec retrieves the built-in Codec for the compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// OpenFile opens path and wraps it with the decompressor for compressionType.
// Closing the returned reader closes the file as well.
func OpenFile(path string, compressionType format.CompressionType) (io.ReadCloser, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if compressionType == format.CompressionNone {
		return f, nil
	}

	rc, err := codec.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open %s stream: %w", compressionType, err)
	}

	return &fileReader{ReadCloser: rc, file: f}, nil
}

// fileReader closes the decoder first and the file second.
type fileReader struct {
	io.ReadCloser
	file *os.File
}

func (r *fileReader) Close() error {
	err := r.ReadCloser.Close()
	if ferr := r.file.Close(); err == nil {
		err = ferr
	}

	return err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
