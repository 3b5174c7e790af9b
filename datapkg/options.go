package datapkg

import (
	"fmt"

	"github.com/arloliu/hydrocube/endian"
	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/format"
	"github.com/arloliu/hydrocube/internal/options"
	"github.com/arloliu/hydrocube/timeline"
	"github.com/sirupsen/logrus"
)

// Option configures a Package.
type Option = options.Option[*Package]

// WithScaleFactor sets the multiplier applied to values surfaced by queries.
func WithScaleFactor(f float64) Option {
	return options.NoError(func(p *Package) {
		p.ScaleFactor = f
	})
}

// WithOffset sets the constant added to values surfaced by time series
// queries.
func WithOffset(off float64) Option {
	return options.NoError(func(p *Package) {
		p.Offset = off
	})
}

// WithDecodeScale sets the multiplier applied while values are copied into
// the cube, typically a unit conversion of the stored data.
func WithDecodeScale(f float32) Option {
	return options.NoError(func(p *Package) {
		p.DecodeScale = f
	})
}

// WithMaxTimeStep caps the number of steps loaded. Zero or less loads all.
func WithMaxTimeStep(n int) Option {
	return options.NoError(func(p *Package) {
		p.MaxTimeStep = n
	})
}

// WithSkippedSteps sets how many leading blocks of a text file are skipped.
func WithSkippedSteps(n int) Option {
	return options.New(func(p *Package) error {
		if n < 0 {
			return fmt.Errorf("%w: skipped steps %d", errs.ErrInvalidConfiguration, n)
		}
		p.SkippedSteps = n

		return nil
	})
}

// WithReadSSData includes the steady-state block of a text file, reducing
// the effective skip by one block.
func WithReadSSData(read bool) Option {
	return options.NoError(func(p *Package) {
		p.IsReadSSData = read
	})
}

// WithLayer selects the 0-based layer decoded from a binary file.
func WithLayer(layer int) Option {
	return options.New(func(p *Package) error {
		if layer < 0 {
			return fmt.Errorf("%w: layer %d", errs.ErrInvalidConfiguration, layer)
		}
		p.Layer = layer

		return nil
	})
}

// WithCompleteData selects full-reach loading of text files. Otherwise only
// the outlet reach of every river is loaded.
func WithCompleteData(complete bool) Option {
	return options.NoError(func(p *Package) {
		p.IsLoadCompleteData = complete
	})
}

// WithNativeUnit sets the spacing of the stored time steps.
func WithNativeUnit(u timeline.Unit) Option {
	return options.NoError(func(p *Package) {
		p.NativeUnit = u
	})
}

// WithDataType sets how values combine when derived to daily series.
func WithDataType(dt timeline.NumericalDataType) Option {
	return options.NoError(func(p *Package) {
		p.DataType = dt
	})
}

// WithByteOrder sets the byte order of binary files.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.NoError(func(p *Package) {
		if engine != nil {
			p.ByteOrder = engine
		}
	})
}

// WithCompression overrides the compression inferred from the file name.
func WithCompression(ct format.CompressionType) Option {
	return options.NoError(func(p *Package) {
		p.Compression = ct
	})
}

// WithMemoryLimit caps the bytes the cube may allocate. Zero means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return options.New(func(p *Package) error {
		if bytes < 0 {
			return fmt.Errorf("%w: memory limit %d", errs.ErrInvalidConfiguration, bytes)
		}
		p.MemoryLimit = bytes

		return nil
	})
}

// WithVariables replaces the default variable list.
func WithVariables(names ...string) Option {
	return options.NoError(func(p *Package) {
		p.Variables = append([]string(nil), names...)
	})
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log logrus.FieldLogger) Option {
	return options.NoError(func(p *Package) {
		if log != nil {
			p.Log = log
		}
	})
}
