package cube

import (
	"fmt"
	"math"
	"time"
	"unsafe"

	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/internal/options"
	"github.com/arloliu/hydrocube/topology"
)

// Number is the set of element types a DataCube can hold.
type Number interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// DataCube is a (variable, timestep, spatial unit) container with per-variable
// lazy allocation.
type DataCube[T Number] struct {
	// Name is the display label.
	Name string
	// Variables holds one name per variable; its length equals the variable count
	// once set through SetVariables.
	Variables []string
	// DateTimes holds one timestamp per timestep once set through SetDateTimes.
	DateTimes []time.Time
	// Topology is the optional spatial traversal metadata attached after a load.
	Topology *topology.Topology
	// TimeBrowsable marks cubes whose time axis is meaningful to step through.
	TimeBrowsable bool

	nvar, nt, ns int
	data         [][]T
	allocated    int64 // bytes currently held
	autoAllocate bool
	memoryLimit  int64
}

// New creates a cube of nvar × nt × ns elements. Unless WithLazyAllocation is
// given, every variable is allocated immediately; an allocation failure is
// reported as errs.ErrAllocationFailure and no cube is returned.
func New[T Number](nvar, nt, ns int, opts ...Option) (*DataCube[T], error) {
	if nvar < 0 || nt < 0 || ns < 0 {
		return nil, fmt.Errorf("%w: %d×%d×%d", errs.ErrInvalidDimensions, nvar, nt, ns)
	}

	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	c := &DataCube[T]{
		Name:         cfg.name,
		nvar:         nvar,
		nt:           nt,
		ns:           ns,
		data:         make([][]T, nvar),
		autoAllocate: cfg.autoAllocate,
		memoryLimit:  cfg.memoryLimit,
	}

	if !cfg.lazy {
		if err := c.checkBudget(int64(nvar)); err != nil {
			return nil, err
		}
		for v := range nvar {
			if err := c.Allocate(v); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

// Size returns the (variable, timestep, spatial unit) extents.
func (c *DataCube[T]) Size() [3]int {
	return [3]int{c.nvar, c.nt, c.ns}
}

// VariableCount returns the number of declared variables.
func (c *DataCube[T]) VariableCount() int { return c.nvar }

// TimeStepCount returns the length of the time axis.
func (c *DataCube[T]) TimeStepCount() int { return c.nt }

// SpatialUnitCount returns the length of the spatial axis.
func (c *DataCube[T]) SpatialUnitCount() int { return c.ns }

// MemoryUsage returns the bytes held by allocated variables.
func (c *DataCube[T]) MemoryUsage() int64 { return c.allocated }

// SetVariables sets the variable names. The length must equal the variable count.
func (c *DataCube[T]) SetVariables(names []string) error {
	if len(names) != c.nvar {
		return fmt.Errorf("%w: %d names for %d variables", errs.ErrInvalidDimensions, len(names), c.nvar)
	}
	c.Variables = append([]string(nil), names...)

	return nil
}

// SetDateTimes sets the time axis labels. The length must equal the timestep
// count and the sequence must be non-decreasing.
func (c *DataCube[T]) SetDateTimes(dates []time.Time) error {
	if len(dates) != c.nt {
		return fmt.Errorf("%w: %d dates for %d steps", errs.ErrInvalidDateTimes, len(dates), c.nt)
	}
	for i := 1; i < len(dates); i++ {
		if dates[i].Before(dates[i-1]) {
			return fmt.Errorf("%w: step %d precedes step %d", errs.ErrInvalidDateTimes, i, i-1)
		}
	}
	c.DateTimes = append([]time.Time(nil), dates...)

	return nil
}

// Allocate reserves the buffer of variable v. It is a no-op when v is
// already allocated.
func (c *DataCube[T]) Allocate(v int) error {
	if v < 0 || v >= c.nvar {
		return fmt.Errorf("%w: variable %d of %d", errs.ErrIndexOutOfRange, v, c.nvar)
	}
	if c.data[v] != nil {
		return nil
	}
	if err := c.checkBudget(1); err != nil {
		return err
	}

	buf, err := makeBuffer[T](c.nt * c.ns)
	if err != nil {
		return err
	}
	c.data[v] = buf
	c.allocated += int64(len(buf)) * c.elemSize()

	return nil
}

// IsAllocated reports whether variable v has a buffer. Out-of-range indices
// report false.
func (c *DataCube[T]) IsAllocated(v int) bool {
	return v >= 0 && v < c.nvar && c.data[v] != nil
}

// AllocatedCount returns how many variables currently hold a buffer.
func (c *DataCube[T]) AllocatedCount() int {
	n := 0
	for _, d := range c.data {
		if d != nil {
			n++
		}
	}

	return n
}

// Release drops the buffer of variable v.
func (c *DataCube[T]) Release(v int) {
	if !c.IsAllocated(v) {
		return
	}
	c.allocated -= int64(len(c.data[v])) * c.elemSize()
	c.data[v] = nil
}

// Get returns the value at (v, t, s).
func (c *DataCube[T]) Get(v, t, s int) (T, error) {
	var zero T
	if err := c.checkIndex(v, t, s); err != nil {
		return zero, err
	}
	if c.data[v] == nil {
		return zero, fmt.Errorf("%w: variable %d", errs.ErrNotAllocated, v)
	}

	return c.data[v][t*c.ns+s], nil
}

// Set writes x at (v, t, s). Writing to an unallocated variable allocates it
// when the cube was created WithAutoAllocate and fails otherwise.
func (c *DataCube[T]) Set(v, t, s int, x T) error {
	if err := c.checkIndex(v, t, s); err != nil {
		return err
	}
	if c.data[v] == nil {
		if !c.autoAllocate {
			return fmt.Errorf("%w: variable %d", errs.ErrNotAllocated, v)
		}
		if err := c.Allocate(v); err != nil {
			return err
		}
	}
	c.data[v][t*c.ns+s] = x

	return nil
}

// Row returns the writable spatial slice of variable v at timestep t. The
// slice aliases the cube's storage.
func (c *DataCube[T]) Row(v, t int) ([]T, error) {
	if v < 0 || v >= c.nvar || t < 0 || t >= c.nt {
		return nil, fmt.Errorf("%w: (%d, %d)", errs.ErrIndexOutOfRange, v, t)
	}
	if c.data[v] == nil {
		return nil, fmt.Errorf("%w: variable %d", errs.ErrNotAllocated, v)
	}
	off := t * c.ns

	return c.data[v][off : off+c.ns : off+c.ns], nil
}

// Vector returns a copy of a one-dimensional slice of variable v. Exactly one
// of tsel and ssel may be All; when both are fixed the result has one element.
func (c *DataCube[T]) Vector(v int, tsel, ssel Selector) ([]T, error) {
	if v < 0 || v >= c.nvar {
		return nil, fmt.Errorf("%w: variable %d of %d", errs.ErrIndexOutOfRange, v, c.nvar)
	}
	if tsel.IsAll() && ssel.IsAll() {
		return nil, fmt.Errorf("%w: time and space cannot both be All", errs.ErrInvalidSelector)
	}
	if !tsel.IsAll() && (tsel.Index() < 0 || tsel.Index() >= c.nt) {
		return nil, fmt.Errorf("%w: timestep %d of %d", errs.ErrIndexOutOfRange, tsel.Index(), c.nt)
	}
	if !ssel.IsAll() && (ssel.Index() < 0 || ssel.Index() >= c.ns) {
		return nil, fmt.Errorf("%w: spatial unit %d of %d", errs.ErrIndexOutOfRange, ssel.Index(), c.ns)
	}
	buf := c.data[v]
	if buf == nil {
		return nil, fmt.Errorf("%w: variable %d", errs.ErrNotAllocated, v)
	}

	switch {
	case tsel.IsAll():
		s := ssel.Index()
		out := make([]T, c.nt)
		for t := range c.nt {
			out[t] = buf[t*c.ns+s]
		}

		return out, nil
	case ssel.IsAll():
		off := tsel.Index() * c.ns
		out := make([]T, c.ns)
		copy(out, buf[off:off+c.ns])

		return out, nil
	default:
		return []T{buf[tsel.Index()*c.ns+ssel.Index()]}, nil
	}
}

// Scale multiplies every value of variable v by factor in place.
func (c *DataCube[T]) Scale(v int, factor T) error {
	if v < 0 || v >= c.nvar {
		return fmt.Errorf("%w: variable %d of %d", errs.ErrIndexOutOfRange, v, c.nvar)
	}
	buf := c.data[v]
	if buf == nil {
		return fmt.Errorf("%w: variable %d", errs.ErrNotAllocated, v)
	}
	for i := range buf {
		buf[i] *= factor
	}

	return nil
}

func (c *DataCube[T]) checkIndex(v, t, s int) error {
	if v < 0 || v >= c.nvar || t < 0 || t >= c.nt || s < 0 || s >= c.ns {
		return fmt.Errorf("%w: (%d, %d, %d) outside %d×%d×%d",
			errs.ErrIndexOutOfRange, v, t, s, c.nvar, c.nt, c.ns)
	}

	return nil
}

func (c *DataCube[T]) elemSize() int64 {
	var zero T
	return int64(unsafe.Sizeof(zero))
}

// checkBudget verifies that n more variable buffers fit the element-count and
// memory limits.
func (c *DataCube[T]) checkBudget(n int64) error {
	if c.ns != 0 && c.nt > math.MaxInt/c.ns {
		return fmt.Errorf("%w: %d×%d elements overflow", errs.ErrAllocationFailure, c.nt, c.ns)
	}
	if c.memoryLimit == 0 {
		return nil
	}

	per := int64(c.nt) * int64(c.ns) * c.elemSize()
	if per > 0 && n > (math.MaxInt64-c.allocated)/per {
		return fmt.Errorf("%w: request overflows", errs.ErrAllocationFailure)
	}
	if need := c.allocated + n*per; need > c.memoryLimit {
		return fmt.Errorf("%w: need %d bytes, limit %d", errs.ErrAllocationFailure, need, c.memoryLimit)
	}

	return nil
}

func makeBuffer[T Number](n int) (buf []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("%w: %v", errs.ErrAllocationFailure, r)
		}
	}()

	return make([]T, n), nil
}
