package cbc

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/hydrocube/endian"
	"github.com/arloliu/hydrocube/errs"
)

// Writer produces cell-budget records. It is used to build fixtures and to
// re-export decoded cubes.
type Writer struct {
	w      io.Writer
	engine endian.EndianEngine
	buf    []byte
}

// NewWriter creates a Writer. A nil engine selects little endian.
func NewWriter(w io.Writer, engine endian.EndianEngine) *Writer {
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	return &Writer{w: w, engine: engine}
}

// WriteRecord writes one record. Count is taken from len(values).
func (w *Writer) WriteRecord(h Header, values []float32) error {
	if len(values) > MaxRecordValues {
		return fmt.Errorf("%w: %d values", errs.ErrMalformedRecord, len(values))
	}
	h.Count = int32(len(values)) //nolint: gosec
	if err := h.Validate(); err != nil {
		return err
	}
	if len(h.Text) > TextSize {
		return fmt.Errorf("%w: name %q longer than %d bytes", errs.ErrMalformedRecord, h.Text, TextSize)
	}

	w.buf = AppendHeader(w.buf[:0], h, w.engine)
	for _, v := range values {
		w.buf = w.engine.AppendUint32(w.buf, math.Float32bits(v))
	}
	_, err := w.w.Write(w.buf)

	return err
}
