// Package manifest reads a TOML model manifest describing the grid, the
// river network, the simulation calendar and the result packages of a model
// run.
//
//	[grid]
//	rows = 10
//	cols = 12
//	layers = 3
//
//	[calendar]
//	start = 2020-01-01
//	steps = 365
//	unit = "day"
//
//	[[rivers]]
//	outlet = 2
//	lengths = [120.0, 80.5]
//
//	[[packages]]
//	name = "budget"
//	file = "output/model.cbc"
//	format = "binary"
package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/arloliu/hydrocube/datapkg"
	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/timeline"
	"github.com/arloliu/hydrocube/topology"
)

// GridSpec describes a regular grid, or just its active cell count when the
// connectivity is unknown.
type GridSpec struct {
	Rows        int `toml:"rows"`
	Cols        int `toml:"cols"`
	Layers      int `toml:"layers"`
	ActiveCells int `toml:"active_cells"`
}

// CalendarSpec describes a uniform simulation calendar. Output is written
// every OutputInterval steps.
type CalendarSpec struct {
	Start          time.Time `toml:"start"`
	Steps          int       `toml:"steps"`
	Unit           string    `toml:"unit"`
	OutputInterval int       `toml:"output_interval"`
}

// RiverSpec describes one river by the lengths of its reaches.
type RiverSpec struct {
	Name    string    `toml:"name"`
	Outlet  int       `toml:"outlet"`
	Lengths []float64 `toml:"lengths"`
}

// Manifest is the decoded manifest file.
type Manifest struct {
	Grid     *GridSpec        `toml:"grid"`
	Calendar CalendarSpec     `toml:"calendar"`
	Rivers   []RiverSpec      `toml:"rivers"`
	Packages []datapkg.Config `toml:"packages"`

	dir string
}

// Load decodes the manifest at path. Package file names are later resolved
// relative to the manifest directory.
func Load(path string) (*Manifest, error) {
	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", errs.ErrInvalidConfiguration, keys[0])
	}
	m.dir = filepath.Dir(path)

	return &m, nil
}

// Parse decodes a manifest from TOML text. Relative package paths stay
// relative to the working directory.
func Parse(data string) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(data, &m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", errs.ErrInvalidConfiguration, keys[0])
	}

	return &m, nil
}

// BuildGrid returns the grid, or nil when the manifest has none.
func (m *Manifest) BuildGrid() (*topology.Grid, error) {
	g := m.Grid
	if g == nil {
		return nil, nil
	}
	if g.Rows > 0 && g.Cols > 0 {
		return topology.NewRegularGrid(g.Rows, g.Cols, max(g.Layers, 1)), nil
	}
	if g.ActiveCells > 0 {
		return &topology.Grid{ActiveCellCount: g.ActiveCells, LayerCount: max(g.Layers, 1)}, nil
	}

	return nil, fmt.Errorf("%w: grid needs rows and cols or active_cells", errs.ErrInvalidConfiguration)
}

// BuildNetwork returns the river network, or nil when the manifest lists no
// rivers. Rivers are numbered in manifest order and reaches network-wide.
func (m *Manifest) BuildNetwork() (*topology.Network, error) {
	if len(m.Rivers) == 0 {
		return nil, nil
	}

	n := &topology.Network{Rivers: make([]topology.River, len(m.Rivers))}
	id := 1
	for i, rs := range m.Rivers {
		r := topology.River{ID: i + 1, Name: rs.Name, Outlet: rs.Outlet}
		if r.Name == "" {
			r.Name = fmt.Sprintf("river-%d", i+1)
		}
		for j, length := range rs.Lengths {
			r.Reaches = append(r.Reaches, topology.Reach{ID: id, SubID: j + 1, Length: length})
			id++
		}
		n.Rivers[i] = r
	}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}

	return n, nil
}

// BuildCalendar returns the calendar snapshot.
func (m *Manifest) BuildCalendar() (timeline.Calendar, error) {
	c := m.Calendar
	if c.Start.IsZero() || c.Steps <= 0 {
		return timeline.Calendar{}, errors.New("calendar needs a start and a positive step count")
	}
	unit, err := timeline.ParseUnit(c.Unit)
	if err != nil {
		return timeline.Calendar{}, err
	}

	cal := timeline.NewUniform(c.Start, c.Steps, unit)
	if every := c.OutputInterval; every > 1 {
		cal.IOTimeline = cal.IOTimeline[:0]
		for i := every - 1; i < len(cal.Timeline); i += every {
			cal.IOTimeline = append(cal.IOTimeline, cal.Timeline[i])
		}
	}

	return cal, cal.Validate()
}

// Model is a built manifest. It owns the collaborators every package borrows.
type Model struct {
	Calendar timeline.Calendar
	Packages []*datapkg.Package

	grid    *topology.Grid
	network *topology.Network
}

var _ datapkg.Owner = (*Model)(nil)

func (m *Model) Grid() *topology.Grid       { return m.grid }
func (m *Model) Network() *topology.Network { return m.network }

// Package returns the package with the given name.
func (m *Model) Package(name string) (*datapkg.Package, bool) {
	for _, p := range m.Packages {
		if p.Name == name {
			return p, true
		}
	}

	return nil, false
}

// Build creates the model and initializes every package against it. Extra
// options are applied to every package.
func (m *Manifest) Build(opts ...datapkg.Option) (*Model, error) {
	grid, err := m.BuildGrid()
	if err != nil {
		return nil, err
	}
	network, err := m.BuildNetwork()
	if err != nil {
		return nil, err
	}
	cal, err := m.BuildCalendar()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}

	model := &Model{Calendar: cal, grid: grid, network: network}
	for _, cfg := range m.Packages {
		if cfg.File != "" && !filepath.IsAbs(cfg.File) && m.dir != "" {
			cfg.File = filepath.Join(m.dir, cfg.File)
		}
		p, err := cfg.NewPackage(opts...)
		if err != nil {
			return nil, fmt.Errorf("package %q: %w", cfg.Name, err)
		}
		if err := p.Initialize(model, cal); err != nil {
			return nil, fmt.Errorf("package %q: %w", cfg.Name, err)
		}
		model.Packages = append(model.Packages, p)
	}

	return model, nil
}
