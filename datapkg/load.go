package datapkg

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arloliu/hydrocube/cbc"
	"github.com/arloliu/hydrocube/compress"
	"github.com/arloliu/hydrocube/cube"
	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/format"
	"github.com/arloliu/hydrocube/internal/hash"
	"github.com/arloliu/hydrocube/progress"
	"github.com/arloliu/hydrocube/sfr"
	"github.com/arloliu/hydrocube/topology"
	"github.com/sirupsen/logrus"
)

// target is the spatial side of a load: the extent of the cube and the
// topology attached to it once decoded.
type target struct {
	ns       int
	topology *topology.Topology
	network  *topology.Network
}

func (p *Package) load(v int, h progress.Handler) (format.LoadingState, error) {
	if err := p.checkCallable(); err != nil {
		return 0, err
	}

	prev := p.state
	fields := logrus.Fields{
		"package": p.Name,
		"file":    p.FileName,
		"format":  p.Format.String(),
	}
	if v != AllVariables {
		fields["variable"] = p.Variables[v]
	}

	fi, err := os.Stat(p.FileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p.terminal(format.FatalError, prev, fields, fmt.Errorf("%w: %s", errs.ErrFileNotFound, p.FileName)), nil
		}

		return p.terminal(format.FatalError, Error, fields, err), nil
	}

	tgt, err := p.target()
	if err != nil {
		return p.terminal(format.Warning, prev, fields, err), nil
	}

	fp := hash.Fingerprint(p.FileName, fi.Size(), fi.ModTime().UnixNano())
	c, err := p.prepareCube(v, tgt.ns, fp)
	if err != nil {
		return p.terminal(format.Warning, prev, fields, err), nil
	}

	p.state = Loading
	rc, err := compress.OpenFile(p.FileName, p.Compression)
	if err != nil {
		return p.terminal(format.FatalError, Error, fields, fmt.Errorf("open %s: %w", p.FileName, err)), nil
	}
	defer rc.Close()

	res, index, err := p.decode(rc, c, v, tgt, h)
	if err != nil {
		return p.terminal(format.FatalError, Error, fields, err), nil
	}

	c.Topology = tgt.topology
	p.cube = c
	p.fingerprint = fp
	if index != nil {
		p.reachIndex = index
	}

	fields["records"] = res.Records
	fields["steps"] = res.Steps
	fields["stop"] = res.Reason.String()
	if res.Err != nil {
		state := res.State()
		if state == format.FatalError {
			return p.terminal(state, Error, fields, res.Err), nil
		}

		return p.terminal(state, Loaded, fields, res.Err), nil
	}
	p.message = fmt.Sprintf("loaded %d steps of %s", res.Steps, p.Name)
	p.state = Loaded
	p.logger().WithFields(fields).Info(p.message)

	return res.State(), nil
}

// target resolves the spatial extent from the owner, failing with
// errs.ErrTopologyMissing when the collaborator for the format is absent.
func (p *Package) target() (target, error) {
	switch p.Format {
	case format.Binary:
		grid := p.owner.Grid()
		if grid == nil || grid.ActiveCellCount <= 0 {
			return target{}, fmt.Errorf("%w: no grid for %s", errs.ErrTopologyMissing, p.Name)
		}
		if layers := p.layerBound(grid); layers > 0 && p.Layer >= layers {
			return target{}, fmt.Errorf("%w: layer %d of %s, file has %d layers",
				errs.ErrInvalidConfiguration, p.Layer+1, p.Name, layers)
		}

		return target{ns: grid.ActiveCellCount, topology: grid.Topology}, nil
	case format.Text:
		network := p.owner.Network()
		if network == nil || network.ReachCount() == 0 {
			return target{}, fmt.Errorf("%w: no river network for %s", errs.ErrTopologyMissing, p.Name)
		}
		if p.IsLoadCompleteData {
			return target{ns: network.ReachCount(), topology: network.ReachTopology(), network: network}, nil
		}

		return target{ns: network.RiverCount(), topology: network.SegmentTopology(), network: network}, nil
	default:
		return target{}, fmt.Errorf("%w: file format %d", errs.ErrInvalidConfiguration, p.Format)
	}
}

// layerBound is the layer count a binary load is checked against: the one
// found by Scan, else the grid's. Zero means unknown.
func (p *Package) layerBound(grid *topology.Grid) int {
	if p.numLayer > 0 {
		return p.numLayer
	}

	return grid.LayerCount
}

// prepareCube returns the cube to decode into with the requested variables
// allocated. The current cube is reused only by single-variable loads of the
// same file version with unchanged extents; the package state is not touched
// on failure.
func (p *Package) prepareCube(v, ns int, fp uint64) (*cube.DataCube[float32], error) {
	nvar, nt := len(p.Variables), p.StepsToLoad()

	if v != AllVariables && p.cube != nil && p.fingerprint == fp && p.cube.Size() == [3]int{nvar, nt, ns} {
		if err := p.cube.Allocate(v); err != nil {
			return nil, err
		}

		return p.cube, nil
	}

	c, err := cube.New[float32](nvar, nt, ns,
		cube.WithName(p.Name),
		cube.WithLazyAllocation(),
		cube.WithMemoryLimit(p.MemoryLimit),
	)
	if err != nil {
		return nil, err
	}
	c.TimeBrowsable = true
	if err := c.SetVariables(p.Variables); err != nil {
		return nil, err
	}
	if err := c.SetDateTimes(p.cal.Dates(nt, p.Format == format.Binary, p.NativeUnit)); err != nil {
		return nil, err
	}

	if v != AllVariables {
		return c, c.Allocate(v)
	}
	for i := range nvar {
		if err := c.Allocate(i); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// decode runs the reader for the package format. Only reader construction
// errors are returned; decode faults are carried by the result.
func (p *Package) decode(r io.Reader, c *cube.DataCube[float32], v int, tgt target, h progress.Handler) (format.DecodeResult, *topology.ReachIndex, error) {
	h = progress.OrNop(h)
	h.Report(p.Name, 0, "loading "+p.FileName)

	if p.Format == format.Binary {
		rd, err := cbc.NewReader(r,
			cbc.WithByteOrder(p.ByteOrder),
			cbc.WithLayer(p.Layer),
			cbc.WithScale(p.DecodeScale),
		)
		if err != nil {
			return format.DecodeResult{}, nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
		}

		return rd.Decode(c, v, h), nil, nil
	}

	rd, err := sfr.NewReader(r, tgt.network,
		sfr.WithSkippedSteps(p.effectiveSkip()),
		sfr.WithCompleteData(p.IsLoadCompleteData),
	)
	if err != nil {
		return format.DecodeResult{}, nil, err
	}

	return rd.Decode(c, v, h), rd.ReachIndex(), nil
}

// terminal records the outcome of a load that stopped with err, moves the
// package to next and logs one entry at the level matching state.
func (p *Package) terminal(state format.LoadingState, next State, fields logrus.Fields, err error) format.LoadingState {
	p.state = next
	p.message = err.Error()

	entry := p.logger().WithFields(fields).WithField("state", state.String())
	if state == format.FatalError {
		entry.WithError(err).Error("load failed")
	} else {
		entry.WithError(err).Warn("load incomplete")
	}

	return state
}
