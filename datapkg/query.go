package datapkg

import (
	"fmt"
	"time"

	"github.com/arloliu/hydrocube/cube"
	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/timeline"
	"github.com/arloliu/hydrocube/topology"
	"gonum.org/v1/gonum/floats"
)

// Profile is a longitudinal series along a flow path. Distance holds the
// cumulative length at the downstream end of every unit.
type Profile struct {
	Distance []float64
	Values   []float64
}

// Len returns the number of points.
func (p Profile) Len() int {
	return len(p.Values)
}

// GetTimeSeries returns the series of variable v at one spatial unit with
// ScaleFactor and Offset applied, derived to daily values when NativeUnit is
// not a day.
func (p *Package) GetTimeSeries(spatial, v int) (timeline.Series, error) {
	raw, err := p.vector(v, cube.All(), cube.At(spatial))
	if err != nil {
		return timeline.Series{}, err
	}

	s := timeline.Series{Dates: p.cube.DateTimes, Values: p.transform(raw)}

	return timeline.DeriveDaily(s, p.NativeUnit, p.DataType)
}

// GetReachTimeSeries returns the series of variable v at the 0-based
// (river, reach) pair, dated daily from start. ScaleFactor and Offset are
// applied; no unit derivation takes place.
func (p *Package) GetReachTimeSeries(river, reach, v int, start time.Time) (timeline.Series, error) {
	spatial, err := p.spatialIndex(river, reach)
	if err != nil {
		return timeline.Series{}, err
	}

	raw, err := p.vector(v, cube.All(), cube.At(spatial))
	if err != nil {
		return timeline.Series{}, err
	}

	values := p.transform(raw)
	dates := make([]time.Time, len(values))
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}

	return timeline.Series{Dates: dates, Values: values}, nil
}

// ProfileTimeSeries walks rivers, given as 1-based river ids in flow order,
// at time step t. With allReaches every reach is a point and its length
// advances the distance; otherwise each river is one point at its outlet
// reach and advances the distance by the river length. Values are scaled by
// ScaleFactor and, when unified, divided by the length of the reach they
// were read from.
func (p *Package) ProfileTimeSeries(rivers []int, v, t int, allReaches, unified bool) (Profile, error) {
	row, err := p.vector(v, cube.At(t), cube.All())
	if err != nil {
		return Profile{}, err
	}

	return p.profile(row, rivers, allReaches, unified)
}

// GetProfileTimeSeries builds a 1 × steps × points cube holding the profile
// of every time step up to totalTime.
func (p *Package) GetProfileTimeSeries(rivers []int, v int, name string, totalTime int, allReaches, unified bool) (*cube.DataCube[float32], error) {
	if p.cube == nil {
		return nil, errs.ErrNotLoaded
	}
	nt := min(max(totalTime, 0), p.cube.TimeStepCount())

	var out *cube.DataCube[float32]
	for t := range nt {
		prof, err := p.ProfileTimeSeries(rivers, v, t, allReaches, unified)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out, err = cube.New[float32](1, nt, prof.Len(), cube.WithName(name))
			if err != nil {
				return nil, err
			}
		}

		row, err := out.Row(0, t)
		if err != nil {
			return nil, err
		}
		for i, x := range prof.Values {
			row[i] = float32(x)
		}
	}

	if out == nil {
		var err error
		if out, err = cube.New[float32](1, 0, 0, cube.WithName(name)); err != nil {
			return nil, err
		}
	}
	if err := out.SetVariables([]string{name}); err != nil {
		return nil, err
	}
	if err := out.SetDateTimes(p.cube.DateTimes[:nt]); err != nil {
		return nil, err
	}

	return out, nil
}

// GetReachIndex returns the spatial index of the 0-based (river, reach) pair
// in the last text load.
func (p *Package) GetReachIndex(river, reach int) (int, error) {
	s, ok := p.reachIndex.Lookup(river, reach)
	if !ok {
		return -1, fmt.Errorf("%w: river %d reach %d", errs.ErrReachNotFound, river, reach)
	}

	return s, nil
}

// GetReachSerialIndex returns the spatial index of the 1-based
// (riverID, reachID) pair, or -1 when it is not indexed.
func (p *Package) GetReachSerialIndex(riverID, reachID int) int {
	return p.reachIndex.SerialIndex(riverID, reachID)
}

func (p *Package) vector(v int, tsel, ssel cube.Selector) ([]float32, error) {
	if p.cube == nil {
		return nil, errs.ErrNotLoaded
	}

	return p.cube.Vector(v, tsel, ssel)
}

// transform applies ScaleFactor and Offset.
func (p *Package) transform(raw []float32) []float64 {
	out := make([]float64, len(raw))
	for i, x := range raw {
		out[i] = float64(x)
	}
	floats.Scale(p.ScaleFactor, out)
	floats.AddConst(p.Offset, out)

	return out
}

// spatialIndex maps a 0-based (river, reach) pair to the cube's spatial
// axis: the reach serial in full mode, the river index for the outlet reach
// in aggregated mode.
func (p *Package) spatialIndex(river, reach int) (int, error) {
	if p.IsLoadCompleteData {
		return p.GetReachIndex(river, reach)
	}

	network := p.network()
	if network == nil || river < 0 || river >= network.RiverCount() ||
		reach != len(network.Rivers[river].Reaches)-1 {
		return -1, fmt.Errorf("%w: river %d reach %d is not an outlet reach", errs.ErrReachNotFound, river, reach)
	}

	return river, nil
}

func (p *Package) profile(row []float32, rivers []int, allReaches, unified bool) (Profile, error) {
	network := p.network()
	if network == nil {
		return Profile{}, errs.ErrTopologyMissing
	}
	if allReaches && !p.IsLoadCompleteData {
		return Profile{}, fmt.Errorf("%w: per-reach profile needs complete data", errs.ErrInvalidConfiguration)
	}

	var (
		prof Profile
		dist float64
	)
	add := func(spatial int, length, advance float64) error {
		if spatial < 0 || spatial >= len(row) {
			return fmt.Errorf("%w: spatial index %d", errs.ErrIndexOutOfRange, spatial)
		}
		val := float64(row[spatial]) * p.ScaleFactor
		if unified && length > 0 {
			val /= length
		}
		dist += advance
		prof.Distance = append(prof.Distance, dist)
		prof.Values = append(prof.Values, val)

		return nil
	}

	for _, id := range rivers {
		river, ok := network.River(id)
		if !ok {
			return Profile{}, fmt.Errorf("%w: river %d", errs.ErrReachNotFound, id)
		}

		if allReaches {
			for j, rch := range river.Reaches {
				s, err := p.GetReachIndex(id-1, j)
				if err != nil {
					return Profile{}, err
				}
				if err := add(s, rch.Length, rch.Length); err != nil {
					return Profile{}, err
				}
			}

			continue
		}

		last, ok := river.LastReach()
		if !ok {
			return Profile{}, fmt.Errorf("%w: river %d has no reaches", errs.ErrReachNotFound, id)
		}
		spatial := id - 1
		if p.IsLoadCompleteData {
			s, err := p.GetReachIndex(id-1, len(river.Reaches)-1)
			if err != nil {
				return Profile{}, err
			}
			spatial = s
		}
		if err := add(spatial, last.Length, river.Length()); err != nil {
			return Profile{}, err
		}
	}

	return prof, nil
}

func (p *Package) network() *topology.Network {
	if p.owner == nil {
		return nil
	}

	return p.owner.Network()
}
