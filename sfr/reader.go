package sfr

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/hydrocube/cube"
	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/format"
	"github.com/arloliu/hydrocube/internal/options"
	"github.com/arloliu/hydrocube/progress"
	"github.com/arloliu/hydrocube/topology"
)

const (
	// HeaderLines is the number of boilerplate lines opening every block.
	HeaderLines = 8
	// SkipColumns is the number of identifier tokens leading every data line.
	SkipColumns = 5
	// AllVariables selects every variable of the destination cube in Decode.
	AllVariables = -1

	maxLineSize = 1 << 20
)

// Reader decodes stream-network output blocks. A Reader is single use.
type Reader struct {
	sc           *bufio.Scanner
	network      *topology.Network
	index        *topology.ReachIndex
	skippedSteps int
	complete     bool
}

// NewReader creates a Reader over r for the given network. The reach index
// is built here, before any data line is read. Without a network, or with an
// empty one, NewReader fails with errs.ErrTopologyMissing.
func NewReader(r io.Reader, network *topology.Network, opts ...Option) (*Reader, error) {
	if network == nil || network.ReachCount() == 0 {
		return nil, errs.ErrTopologyMissing
	}

	rd := &Reader{
		sc:           bufio.NewScanner(r),
		network:      network,
		skippedSteps: 1,
	}
	rd.sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	if err := options.Apply(rd, opts...); err != nil {
		return nil, err
	}
	rd.index = topology.BuildReachIndex(network)

	return rd, nil
}

// ReachIndex returns the (river, reach) → serial mapping of the full-reach
// spatial axis.
func (r *Reader) ReachIndex() *topology.ReachIndex {
	return r.index
}

// SpatialUnitCount returns the spatial extent Decode expects: the reach
// count in full mode, the river count in aggregated mode.
func (r *Reader) SpatialUnitCount() int {
	if r.complete {
		return r.network.ReachCount()
	}

	return r.network.RiverCount()
}

// BlockSize returns the number of lines in one block.
func (r *Reader) BlockSize() int {
	return r.network.ReachCount() + HeaderLines
}

// Decode streams blocks into dst until the stream ends, a line fails, the
// handler cancels, or the cube's time axis is full. Values of a block that is
// cut short stay in the cube but the block is not counted in Steps. Running
// out of blocks before the time axis is full stops with format.ShortData.
func (r *Reader) Decode(dst *cube.DataCube[float32], variable int, h progress.Handler) format.DecodeResult {
	nvar, nt, ns := dst.VariableCount(), dst.TimeStepCount(), dst.SpatialUnitCount()
	if variable != AllVariables && (variable < 0 || variable >= nvar) {
		return format.DecodeResult{
			Reason: format.Malformed,
			Err:    fmt.Errorf("%w: variable %d of %d", errs.ErrInvalidConfiguration, variable, nvar),
		}
	}
	if ns != r.SpatialUnitCount() {
		return format.DecodeResult{
			Reason: format.Malformed,
			Err: fmt.Errorf("%w: cube has %d spatial units, network needs %d",
				errs.ErrInvalidDimensions, ns, r.SpatialUnitCount()),
		}
	}

	tr := progress.NewTracker(h, "sfr")
	tr.Start(fmt.Sprintf("decoding %d steps of %d units", nt, ns))

	var res format.DecodeResult
	if reason, err := r.skipLines(r.skippedSteps * r.BlockSize()); reason != 0 {
		res.Reason, res.Err = reason, err
		return res
	}

	dec := blockDecoder{r: r, dst: dst, variable: variable, vals: make([]float32, nvar)}
	for t := range nt {
		if tr.Cancelled() {
			res.Reason, res.Err = format.Cancelled, errs.ErrCancelled
			return res
		}

		lines, reason, err := dec.decodeBlock(t, tr)
		res.Records += lines
		if reason == format.EndOfData {
			reason = format.ShortData
			err = fmt.Errorf("%w: %d of %d steps", errs.ErrShortData, t, nt)
		}
		if reason != 0 {
			res.Reason, res.Err = reason, err
			return res
		}
		res.Steps = t + 1
		tr.Update(t+1, nt)
	}

	res.Reason = format.Completed
	tr.Finish(fmt.Sprintf("decoded %d steps", res.Steps))

	return res
}

// skipLines discards n lines. Running out of lines is reported as Truncated.
func (r *Reader) skipLines(n int) (format.StopReason, error) {
	for i := range n {
		if !r.sc.Scan() {
			return r.stopReason(fmt.Sprintf("%d of %d leading lines", i, n))
		}
	}

	return 0, nil
}

func (r *Reader) stopReason(where string) (format.StopReason, error) {
	if err := r.sc.Err(); err != nil {
		return format.IOError, err
	}

	return format.Truncated, fmt.Errorf("%w: after %s", errs.ErrPrematureEOF, where)
}

type blockDecoder struct {
	r        *Reader
	dst      *cube.DataCube[float32]
	variable int
	vals     []float32
}

// decodeBlock reads one block into time step t. A missing first header line
// is EndOfData; anything cut later is Truncated.
func (d *blockDecoder) decodeBlock(t int, tr *progress.Tracker) (int, format.StopReason, error) {
	r := d.r
	for i := range HeaderLines {
		if !r.sc.Scan() {
			if i == 0 && r.sc.Err() == nil {
				return 0, format.EndOfData, nil
			}
			reason, err := r.stopReason(fmt.Sprintf("header line %d of step %d", i+1, t+1))

			return 0, reason, err
		}
	}

	lines := 0
	unit := 0
	for ri := range r.network.Rivers {
		reaches := r.network.Rivers[ri].Reaches
		for j := range reaches {
			if tr.Cancelled() {
				return lines, format.Cancelled, errs.ErrCancelled
			}

			line, ok := d.nextDataLine()
			if !ok {
				reason, err := r.stopReason(fmt.Sprintf("river %d reach %d of step %d", ri+1, j+1, t+1))
				return lines, reason, err
			}
			if !r.complete && j < len(reaches)-1 {
				continue
			}

			if err := d.parse(line); err != nil {
				return lines, format.Malformed, fmt.Errorf("river %d reach %d of step %d: %w", ri+1, j+1, t+1, err)
			}
			d.store(t, unit)
			unit++
			lines++
		}
	}

	return lines, 0, nil
}

// nextDataLine returns the next non-blank line. A blank line marks the
// physical end of data.
func (d *blockDecoder) nextDataLine() (string, bool) {
	if !d.r.sc.Scan() {
		return "", false
	}
	line := d.r.sc.Text()
	if strings.TrimSpace(line) == "" {
		return "", false
	}

	return line, true
}

// parse fills d.vals from the value tokens of line.
func (d *blockDecoder) parse(line string) error {
	fields := strings.Fields(line)
	nvar := len(d.vals)
	if len(fields) < SkipColumns+nvar {
		return fmt.Errorf("%w: %d values, want %d", errs.ErrMalformedRecord, len(fields)-SkipColumns, nvar)
	}

	for v := range nvar {
		if d.variable != AllVariables && v != d.variable {
			continue
		}
		tok := fields[SkipColumns+v]
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return fmt.Errorf("%w: value %q: %w", errs.ErrMalformedRecord, tok, err)
		}
		d.vals[v] = float32(f)
	}

	return nil
}

func (d *blockDecoder) store(t, unit int) {
	for v, x := range d.vals {
		if d.variable != AllVariables && v != d.variable {
			continue
		}
		if !d.dst.IsAllocated(v) {
			continue
		}
		row, err := d.dst.Row(v, t)
		if err != nil {
			continue
		}
		row[unit] = x
	}
}
