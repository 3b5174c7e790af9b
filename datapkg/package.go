package datapkg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/arloliu/hydrocube/cbc"
	"github.com/arloliu/hydrocube/compress"
	"github.com/arloliu/hydrocube/cube"
	"github.com/arloliu/hydrocube/endian"
	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/format"
	"github.com/arloliu/hydrocube/internal/options"
	"github.com/arloliu/hydrocube/progress"
	"github.com/arloliu/hydrocube/sfr"
	"github.com/arloliu/hydrocube/timeline"
	"github.com/arloliu/hydrocube/topology"
	"github.com/sirupsen/logrus"
)

// AllVariables selects every variable.
const AllVariables = -1

// Package is one result file bound to a model. It is not safe for
// concurrent use.
type Package struct {
	Name        string
	FileName    string
	Format      format.FileFormat
	Compression format.CompressionType

	// ScaleFactor and Offset transform values surfaced by queries.
	ScaleFactor float64
	Offset      float64
	// DecodeScale multiplies values as they are decoded into the cube.
	DecodeScale float32
	// MaxTimeStep caps the steps loaded; zero or less loads all.
	MaxTimeStep int
	// SkippedSteps is the number of leading text blocks skipped.
	SkippedSteps int
	// IsReadSSData keeps the steady-state text block.
	IsReadSSData bool
	// Layer is the 0-based layer decoded from binary files.
	Layer int
	// IsLoadCompleteData loads every reach of a text file instead of one
	// outlet reach per river.
	IsLoadCompleteData bool
	NativeUnit         timeline.Unit
	DataType           timeline.NumericalDataType
	ByteOrder          endian.EndianEngine
	MemoryLimit        int64
	Variables          []string

	Log logrus.FieldLogger

	state          State
	owner          Owner
	cal            timeline.Calendar
	numTimeStep    int
	numLayer       int
	startOfLoading time.Time
	endOfLoading   time.Time
	message        string
	cube           *cube.DataCube[float32]
	fingerprint    uint64
	reachIndex     *topology.ReachIndex
}

// New creates a Package in the Standby state. The compression container is
// inferred from the file extension unless WithCompression is given.
func New(name, fileName string, f format.FileFormat, opts ...Option) (*Package, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: file format %d", errs.ErrInvalidConfiguration, f)
	}

	p := &Package{
		Name:         name,
		FileName:     fileName,
		Format:       f,
		Compression:  format.CompressionFromExtension(fileName),
		ScaleFactor:  1,
		DecodeScale:  1,
		SkippedSteps: 1,
		NativeUnit:   timeline.Day,
		DataType:     timeline.Average,
		ByteOrder:    endian.GetLittleEndianEngine(),
		Log:          logrus.StandardLogger(),
	}
	if f == format.Binary {
		p.Variables = append([]string(nil), cbc.DefaultVariables...)
	} else {
		p.Variables = sfr.VariableNames()
	}

	if err := options.Apply(p, opts...); err != nil {
		return nil, err
	}

	return p, nil
}

// State returns the lifecycle state.
func (p *Package) State() State { return p.state }

// NumTimeStep returns the number of steps known from the calendar or the
// last Scan.
func (p *Package) NumTimeStep() int { return p.numTimeStep }

// NumLayer returns the layer count found by the last binary Scan.
func (p *Package) NumLayer() int { return p.numLayer }

// StartOfLoading returns the timestamp of the first loaded step.
func (p *Package) StartOfLoading() time.Time { return p.startOfLoading }

// EndOfLoading returns the end of the loading window.
func (p *Package) EndOfLoading() time.Time { return p.endOfLoading }

// Message returns the message of the last terminal load event.
func (p *Package) Message() string { return p.message }

// DataCube returns the loaded cube, or nil.
func (p *Package) DataCube() *cube.DataCube[float32] { return p.cube }

// ReachIndex returns the reach index of the last text load, or nil.
func (p *Package) ReachIndex() *topology.ReachIndex { return p.reachIndex }

// StepsToLoad returns NumTimeStep capped by MaxTimeStep.
func (p *Package) StepsToLoad() int {
	if p.MaxTimeStep > 0 && p.MaxTimeStep < p.numTimeStep {
		return p.MaxTimeStep
	}

	return p.numTimeStep
}

// Initialize binds the owner and a calendar snapshot and moves the package to
// Ready.
func (p *Package) Initialize(owner Owner, cal timeline.Calendar) error {
	if p.state == Loading {
		return errs.ErrAlreadyLoading
	}
	if owner == nil {
		return fmt.Errorf("%w: nil owner", errs.ErrInvalidConfiguration)
	}
	if err := cal.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}

	p.owner = owner
	p.applyCalendar(cal)
	p.state = Ready
	p.logger().WithFields(logrus.Fields{
		"steps": p.numTimeStep,
		"start": p.startOfLoading.Format(time.DateOnly),
	}).Debug("package initialized")

	return nil
}

// Resync replaces the calendar snapshot after the model calendar changed.
func (p *Package) Resync(cal timeline.Calendar) error {
	switch p.state {
	case Standby:
		return errs.ErrNotInitialized
	case Loading:
		return errs.ErrAlreadyLoading
	}
	if err := cal.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
	}
	p.applyCalendar(cal)

	return nil
}

func (p *Package) applyCalendar(cal timeline.Calendar) {
	p.cal = cal
	p.startOfLoading = cal.Start
	p.endOfLoading = cal.End
	p.numTimeStep = cal.StepCount()
}

// Scan probes the file for its variables and step count without loading
// values. It returns false, leaving the package untouched, when the file
// does not exist.
func (p *Package) Scan() (bool, error) {
	if err := p.checkCallable(); err != nil {
		return false, err
	}
	if _, err := os.Stat(p.FileName); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	rc, err := compress.OpenFile(p.FileName, p.Compression)
	if err != nil {
		return false, fmt.Errorf("scan %s: %w", p.FileName, err)
	}
	defer rc.Close()

	fields := logrus.Fields{"package": p.Name, "file": p.FileName}
	switch p.Format {
	case format.Binary:
		r, err := cbc.NewReader(rc, cbc.WithByteOrder(p.ByteOrder))
		if err != nil {
			return false, fmt.Errorf("%w: %w", errs.ErrInvalidConfiguration, err)
		}
		info, err := r.Scan()
		if err != nil {
			return false, fmt.Errorf("scan %s: %w", p.FileName, err)
		}
		if len(info.Variables) > 0 {
			p.Variables = info.Variables
		}
		p.numTimeStep = info.NumTimeStep
		p.numLayer = info.NumLayer
		fields["records"] = info.Records
		fields["stop"] = info.Reason.String()
		if info.Collision {
			p.logger().WithFields(fields).Warn("variable name hash collision")
		}
	case format.Text:
		p.Variables = sfr.VariableNames()
		if network := p.owner.Network(); network != nil && network.ReachCount() > 0 {
			n, err := sfr.CountSteps(rc, network, p.effectiveSkip())
			if err != nil {
				return false, fmt.Errorf("scan %s: %w", p.FileName, err)
			}
			p.numTimeStep = n
		} else {
			p.numTimeStep = p.cal.StepCount()
		}
	}

	p.startOfLoading = p.cal.Start
	if p.numTimeStep > 0 {
		p.MaxTimeStep = p.numTimeStep
	}

	fields["steps"] = p.numTimeStep
	fields["variables"] = len(p.Variables)
	p.logger().WithFields(fields).Info("package scanned")

	return true, nil
}

// Load decodes every variable into a fresh cube.
func (p *Package) Load(h progress.Handler) (format.LoadingState, error) {
	return p.load(AllVariables, h)
}

// LoadVariable decodes one variable. When the current cube was built from
// the same file version with the same extents it is reused, so variables can
// be loaded one at a time; otherwise a fresh cube is built.
func (p *Package) LoadVariable(v int, h progress.Handler) (format.LoadingState, error) {
	if v < 0 || v >= len(p.Variables) {
		if err := p.checkCallable(); err != nil {
			return 0, err
		}

		return 0, fmt.Errorf("%w: variable %d of %d", errs.ErrInvalidConfiguration, v, len(p.Variables))
	}

	return p.load(v, h)
}

// Clear releases the cube, the reach index, the owner and the calendar and
// returns the package to Standby. It does nothing while a load is running.
func (p *Package) Clear() {
	if p.state == Loading || (p.state == Standby && p.cube == nil) {
		return
	}

	p.cube = nil
	p.fingerprint = 0
	p.reachIndex = nil
	p.owner = nil
	p.cal = timeline.Calendar{}
	p.numTimeStep = 0
	p.numLayer = 0
	p.startOfLoading = time.Time{}
	p.endOfLoading = time.Time{}
	p.message = ""
	p.state = Standby

	p.logger().WithField("package", p.Name).Debug("package cleared")
}

func (p *Package) checkCallable() error {
	switch p.state {
	case Standby:
		return errs.ErrNotInitialized
	case Loading:
		return errs.ErrAlreadyLoading
	}

	return nil
}

func (p *Package) effectiveSkip() int {
	skip := p.SkippedSteps
	if p.IsReadSSData {
		skip--
	}

	return max(skip, 0)
}

func (p *Package) logger() logrus.FieldLogger {
	if p.Log == nil {
		return logrus.StandardLogger()
	}

	return p.Log
}
