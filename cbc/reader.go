package cbc

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/hydrocube/cube"
	"github.com/arloliu/hydrocube/endian"
	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/format"
	"github.com/arloliu/hydrocube/internal/collision"
	"github.com/arloliu/hydrocube/internal/options"
	"github.com/arloliu/hydrocube/internal/pool"
	"github.com/arloliu/hydrocube/progress"
)

// AllVariables selects every variable of the destination cube in Decode.
const AllVariables = -1

// Reader decodes cell-budget records from a stream. A Reader is single use:
// call either Scan or Decode once on a freshly opened stream.
type Reader struct {
	r      io.Reader
	engine endian.EndianEngine
	layer  int
	scale  float32

	size int64 // stream size for seekable inputs, -1 until known
	hdr  [HeaderSize]byte
}

// NewReader creates a Reader over r. When r implements io.Seeker, skipped
// payloads are seeked over instead of read.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	rd := &Reader{
		r:      r,
		engine: endian.GetLittleEndianEngine(),
		scale:  1,
		size:   -1,
	}
	if err := options.Apply(rd, opts...); err != nil {
		return nil, err
	}

	return rd, nil
}

// Decode streams records into dst until the stream ends, a record fails,
// the handler cancels, or the cube's time axis is full.
//
// Records are routed to cube variables by name, matching dst.Variables. When
// dst.Variables is empty, variables are numbered in order of first
// appearance. With variable set to a cube index only that variable is
// decoded; AllVariables decodes every allocated variable. Records for
// unallocated variables, other layers or unknown names are skipped.
//
// Decoding never rolls back: on any stop the cube keeps every record copied
// before it. A stream that ends before a record reached the last time step
// stops with format.ShortData.
func (r *Reader) Decode(dst *cube.DataCube[float32], variable int, h progress.Handler) format.DecodeResult {
	nvar, nt, ns := dst.VariableCount(), dst.TimeStepCount(), dst.SpatialUnitCount()
	if variable != AllVariables && (variable < 0 || variable >= nvar) {
		return format.DecodeResult{
			Reason: format.Malformed,
			Err:    fmt.Errorf("%w: variable %d of %d", errs.ErrInvalidConfiguration, variable, nvar),
		}
	}

	slots := collision.NewRegistry()
	for _, name := range dst.Variables {
		_, _, _ = slots.Register(name)
	}
	growSlots := len(dst.Variables) == 0

	selected := 0
	for v := range nvar {
		if dst.IsAllocated(v) && (variable == AllVariables || v == variable) {
			selected++
		}
	}
	expected := nt * selected

	tr := progress.NewTracker(h, "cbc")
	tr.Start(fmt.Sprintf("decoding %d steps of %d cells", nt, ns))

	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	var (
		res  format.DecodeResult
		prev Header
		step = -1
	)
	for {
		if tr.Cancelled() {
			res.Reason, res.Err = format.Cancelled, errs.ErrCancelled
			break
		}

		hdr, reason, err := r.readHeader()
		if reason == format.EndOfData && res.Steps < nt {
			reason = format.ShortData
			err = fmt.Errorf("%w: %d of %d steps, %d records", errs.ErrShortData, res.Steps, nt, res.Records)
		}
		if reason != 0 {
			res.Reason, res.Err = reason, err
			break
		}
		if step < 0 || !hdr.SameStep(prev) {
			step++
			prev = hdr
		}
		if step >= nt {
			res.Reason = format.Completed
			break
		}

		slot := slots.Index(hdr.Text)
		if slot < 0 && growSlots {
			slot, _, _ = slots.Register(hdr.Text)
		}
		if !r.wanted(dst, hdr, slot, variable) {
			if err := r.skip(hdr.PayloadSize()); err != nil {
				res.Reason, res.Err = classify(err)
				break
			}

			continue
		}
		if int(hdr.Count) != ns {
			res.Reason = format.Malformed
			res.Err = fmt.Errorf("%w: %s has %d values, grid has %d cells",
				errs.ErrMalformedRecord, hdr.Name(), hdr.Count, ns)

			break
		}

		row, err := dst.Row(slot, step)
		if err != nil {
			res.Reason, res.Err = format.Malformed, err
			break
		}
		if err := r.readValues(row, buf); err != nil {
			res.Reason, res.Err = classify(err)
			break
		}

		res.Records++
		res.Steps = step + 1
		tr.Update(res.Records, expected)
	}

	if res.Reason.Clean() {
		tr.Finish(fmt.Sprintf("decoded %d records", res.Records))
	}

	return res
}

func (r *Reader) wanted(dst *cube.DataCube[float32], hdr Header, slot, variable int) bool {
	if slot < 0 || slot >= dst.VariableCount() {
		return false
	}
	if variable != AllVariables && slot != variable {
		return false
	}
	if int(hdr.Layer)-1 != r.layer {
		return false
	}

	return dst.IsAllocated(slot)
}

// readHeader reads and validates the next header. The returned reason is
// zero on success; a clean end of stream is format.EndOfData with a nil error.
func (r *Reader) readHeader() (Header, format.StopReason, error) {
	n, err := io.ReadFull(r.r, r.hdr[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return Header{}, format.EndOfData, nil
		}
		reason, err := classify(err)

		return Header{}, reason, err
	}

	hdr, err := ParseHeader(r.hdr[:], r.engine)
	if err != nil {
		return Header{}, format.Malformed, err
	}

	return hdr, 0, nil
}

// readValues fills row from the payload. The row is only written once the
// whole payload has been read.
func (r *Reader) readValues(row []float32, buf *pool.ByteBuffer) error {
	b := buf.Resize(len(row) * ValueSize)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return err
	}

	scale := r.scale
	for i := range row {
		v := math.Float32frombits(r.engine.Uint32(b[i*ValueSize:]))
		if scale != 1 {
			v *= scale
		}
		row[i] = v
	}

	return nil
}

// skip advances past n payload bytes.
func (r *Reader) skip(n int64) error {
	if n == 0 {
		return nil
	}

	if s, ok := r.r.(io.Seeker); ok {
		cur, err := s.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		if r.size < 0 {
			end, err := s.Seek(0, io.SeekEnd)
			if err != nil {
				return err
			}
			if _, err := s.Seek(cur, io.SeekStart); err != nil {
				return err
			}
			r.size = end
		}
		if cur+n > r.size {
			_, _ = s.Seek(0, io.SeekEnd)
			return io.ErrUnexpectedEOF
		}
		_, err = s.Seek(n, io.SeekCurrent)

		return err
	}

	m, err := io.CopyN(io.Discard, r.r, n)
	if m < n {
		if err == nil || errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}

		return err
	}

	return nil
}

// classify maps a stream error to a stop reason.
func classify(err error) (format.StopReason, error) {
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return format.Truncated, fmt.Errorf("%w: %w", errs.ErrPrematureEOF, err)
	case errors.Is(err, errs.ErrMalformedRecord), errors.Is(err, errs.ErrInvalidHeaderSize):
		return format.Malformed, err
	default:
		return format.IOError, err
	}
}
