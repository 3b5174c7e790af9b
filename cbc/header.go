package cbc

import (
	"fmt"
	"strings"

	"github.com/arloliu/hydrocube/endian"
	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/internal/hash"
)

const (
	// HeaderSize is the encoded size of a record header in bytes.
	HeaderSize = 32
	// TextSize is the width of the variable name field.
	TextSize = 16
	// ValueSize is the encoded size of one value.
	ValueSize = 4
	// MaxRecordValues bounds NVAL so a corrupt header cannot request an
	// arbitrarily large payload.
	MaxRecordValues = 1 << 28
)

// Header is the decoded form of a record header.
type Header struct {
	Step   int32  // KSTP
	Period int32  // KPER
	Text   string // variable name, padding kept
	Layer  int32  // 1-based
	Count  int32  // NVAL
}

// Name returns the normalized variable name.
func (h Header) Name() string {
	return hash.NormalizeName(h.Text)
}

// PayloadSize returns the number of payload bytes following the header.
func (h Header) PayloadSize() int64 {
	return int64(h.Count) * ValueSize
}

// SameStep reports whether h and o belong to the same output time step.
func (h Header) SameStep(o Header) bool {
	return h.Step == o.Step && h.Period == o.Period
}

// Validate checks the header fields against the format bounds.
func (h Header) Validate() error {
	switch {
	case h.Step < 1:
		return fmt.Errorf("%w: KSTP %d", errs.ErrMalformedRecord, h.Step)
	case h.Period < 1:
		return fmt.Errorf("%w: KPER %d", errs.ErrMalformedRecord, h.Period)
	case h.Layer < 1:
		return fmt.Errorf("%w: ILAY %d", errs.ErrMalformedRecord, h.Layer)
	case h.Count < 0 || h.Count > MaxRecordValues:
		return fmt.Errorf("%w: NVAL %d", errs.ErrMalformedRecord, h.Count)
	case strings.TrimSpace(h.Text) == "":
		return fmt.Errorf("%w: empty variable name", errs.ErrMalformedRecord)
	}

	return nil
}

// ParseHeader decodes a header from b, which must hold exactly HeaderSize
// bytes.
func ParseHeader(b []byte, engine endian.EndianEngine) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes", errs.ErrInvalidHeaderSize, len(b))
	}

	h := Header{
		Step:   int32(engine.Uint32(b[0:4])), //nolint: gosec
		Period: int32(engine.Uint32(b[4:8])), //nolint: gosec
		Text:   string(b[8 : 8+TextSize]),
		Layer:  int32(engine.Uint32(b[24:28])), //nolint: gosec
		Count:  int32(engine.Uint32(b[28:32])), //nolint: gosec
	}

	return h, h.Validate()
}

// AppendHeader appends the encoded header to dst. Names longer than TextSize
// are truncated; shorter names are padded with spaces.
func AppendHeader(dst []byte, h Header, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, uint32(h.Step))   //nolint: gosec
	dst = engine.AppendUint32(dst, uint32(h.Period)) //nolint: gosec

	var text [TextSize]byte
	for i := range text {
		text[i] = ' '
	}
	copy(text[:], h.Text)
	dst = append(dst, text[:]...)

	dst = engine.AppendUint32(dst, uint32(h.Layer)) //nolint: gosec
	dst = engine.AppendUint32(dst, uint32(h.Count)) //nolint: gosec

	return dst
}
