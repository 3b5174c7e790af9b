package datapkg

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/arloliu/hydrocube/endian"
	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/format"
	"github.com/arloliu/hydrocube/timeline"
)

// Config is the file form of a package definition:
//
//	name = "sfr"
//	file = "output/sfr.out.gz"
//	format = "text"
//	scale_factor = 86400.0
//	complete_data = true
//	native_unit = "day"
type Config struct {
	Name         string   `toml:"name"`
	File         string   `toml:"file"`
	Format       string   `toml:"format"`
	Compression  string   `toml:"compression"`
	ScaleFactor  *float64 `toml:"scale_factor"`
	Offset       float64  `toml:"offset"`
	DecodeScale  *float64 `toml:"decode_scale"`
	MaxTimeStep  int      `toml:"max_time_step"`
	SkippedSteps *int     `toml:"skipped_steps"`
	ReadSSData   bool     `toml:"read_ss_data"`
	Layer        int      `toml:"layer"`
	CompleteData bool     `toml:"complete_data"`
	NativeUnit   string   `toml:"native_unit"`
	DataType     string   `toml:"data_type"`
	ByteOrder    string   `toml:"byte_order"`
	MemoryLimit  int64    `toml:"memory_limit"`
	Variables    []string `toml:"variables"`
}

// LoadConfig reads a package definition from a TOML file. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}

	return cfg, checkUndecoded(md)
}

// ParseConfig decodes a package definition from TOML text.
func ParseConfig(data string) (Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}

	return cfg, checkUndecoded(md)
}

func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}

		return fmt.Errorf("%w: unknown keys %s", errs.ErrInvalidConfiguration, strings.Join(names, ", "))
	}

	return nil
}

// Options converts the definition to package options. Unset fields keep the
// package defaults.
func (c Config) Options() ([]Option, error) {
	var opts []Option

	if c.Compression != "" {
		ct, err := format.ParseCompression(c.Compression)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
		}
		opts = append(opts, WithCompression(ct))
	}
	if c.ScaleFactor != nil {
		opts = append(opts, WithScaleFactor(*c.ScaleFactor))
	}
	if c.DecodeScale != nil {
		opts = append(opts, WithDecodeScale(float32(*c.DecodeScale)))
	}
	if c.SkippedSteps != nil {
		opts = append(opts, WithSkippedSteps(*c.SkippedSteps))
	}

	unit, err := timeline.ParseUnit(c.NativeUnit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}
	dt, err := timeline.ParseDataType(c.DataType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}
	engine, err := endian.Parse(c.ByteOrder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}

	opts = append(opts,
		WithOffset(c.Offset),
		WithMaxTimeStep(c.MaxTimeStep),
		WithReadSSData(c.ReadSSData),
		WithLayer(c.Layer),
		WithCompleteData(c.CompleteData),
		WithNativeUnit(unit),
		WithDataType(dt),
		WithByteOrder(engine),
		WithMemoryLimit(c.MemoryLimit),
	)
	if len(c.Variables) > 0 {
		opts = append(opts, WithVariables(c.Variables...))
	}

	return opts, nil
}

// NewPackage creates the package described by c. Extra options are applied
// after the configured ones.
func (c Config) NewPackage(extra ...Option) (*Package, error) {
	f, err := format.ParseFileFormat(c.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}

	name := c.Name
	if name == "" {
		name = f.String()
	}

	return New(name, c.File, f, append(opts, extra...)...)
}
