package cbc

import (
	"fmt"

	"github.com/arloliu/hydrocube/endian"
	"github.com/arloliu/hydrocube/internal/options"
)

// Option configures a Reader.
type Option = options.Option[*Reader]

// WithByteOrder sets the byte order of the file. Nil keeps the little-endian
// default.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.NoError(func(r *Reader) {
		if engine != nil {
			r.engine = engine
		}
	})
}

// WithLayer selects the 0-based layer whose records are decoded. Records of
// other layers are skipped without being read.
func WithLayer(layer int) Option {
	return options.New(func(r *Reader) error {
		if layer < 0 {
			return fmt.Errorf("layer must be non-negative, got %d", layer)
		}
		r.layer = layer

		return nil
	})
}

// WithScale multiplies every decoded value by factor while it is copied into
// the cube.
func WithScale(factor float32) Option {
	return options.NoError(func(r *Reader) {
		r.scale = factor
	})
}
