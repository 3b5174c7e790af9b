package timeline

import (
	"errors"
	"fmt"
	"time"
)

// StressPeriod is a simulation interval with constant boundary conditions.
type StressPeriod struct {
	Start time.Time
	// Steps is the number of time steps in the period.
	Steps int
	// Steady marks a steady-state period.
	Steady bool
}

// Calendar is a read-only snapshot of the simulation time service.
type Calendar struct {
	Start time.Time
	End   time.Time
	// Timeline holds one timestamp per simulated time step.
	Timeline []time.Time
	// IOTimeline holds one timestamp per time step written to result files.
	IOTimeline    []time.Time
	StressPeriods []StressPeriod
}

// NewDaily returns a calendar of n daily steps starting at start, written on
// every step, in a single transient stress period.
func NewDaily(start time.Time, n int) Calendar {
	return NewUniform(start, n, Day)
}

// NewUniform returns a calendar of n steps of the given unit.
func NewUniform(start time.Time, n int, unit Unit) Calendar {
	steps := make([]time.Time, n)
	for i := range n {
		steps[i] = unit.Add(start, i)
	}
	end := start
	if n > 0 {
		end = steps[n-1]
	}

	return Calendar{
		Start:         start,
		End:           end,
		Timeline:      steps,
		IOTimeline:    append([]time.Time(nil), steps...),
		StressPeriods: []StressPeriod{{Start: start, Steps: n}},
	}
}

// IsZero reports whether the calendar was never set.
func (c Calendar) IsZero() bool {
	return c.Start.IsZero() && len(c.Timeline) == 0 && len(c.IOTimeline) == 0
}

// Validate checks that both timelines are non-decreasing and lie inside
// [Start, End].
func (c Calendar) Validate() error {
	if c.End.Before(c.Start) {
		return errors.New("calendar ends before it starts")
	}
	for name, tl := range map[string][]time.Time{"timeline": c.Timeline, "io timeline": c.IOTimeline} {
		for i, ts := range tl {
			if i > 0 && ts.Before(tl[i-1]) {
				return fmt.Errorf("%s step %d is out of order", name, i)
			}
			if ts.Before(c.Start) || ts.After(c.End) {
				return fmt.Errorf("%s step %d (%s) is outside the calendar", name, i, ts.Format(time.DateOnly))
			}
		}
	}

	return nil
}

// Dates returns n step timestamps taken from the IO timeline (io=true) or the
// simulation timeline. Steps beyond the end of the timeline are extrapolated
// from the last known step, or from Start, using unit.
func (c Calendar) Dates(n int, io bool, unit Unit) []time.Time {
	src := c.Timeline
	if io {
		src = c.IOTimeline
	}

	out := make([]time.Time, n)
	copied := copy(out, src)
	for i := copied; i < n; i++ {
		if copied > 0 {
			out[i] = unit.Add(src[copied-1], i-copied+1)
		} else {
			out[i] = unit.Add(c.Start, i)
		}
	}

	return out
}

// StepCount returns the number of written steps.
func (c Calendar) StepCount() int {
	return len(c.IOTimeline)
}
