package timeline

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series is a dated sequence of values.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Values)
}

// Sum returns the sum of the values.
func (s Series) Sum() float64 {
	return floats.Sum(s.Values)
}

// Mean returns the arithmetic mean of the values, or 0 for an empty series.
func (s Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}

	return stat.Mean(s.Values, nil)
}

// DeriveDaily converts a series stored at unit into a daily series. Sub-daily
// points are grouped by calendar day and averaged or summed depending on dt;
// coarser points are spread over every day of their period, repeated for
// Average data and divided evenly for Cumulative data. A daily series is
// returned as a copy.
func DeriveDaily(s Series, unit Unit, dt NumericalDataType) (Series, error) {
	if len(s.Dates) != len(s.Values) {
		return Series{}, fmt.Errorf("series has %d dates and %d values", len(s.Dates), len(s.Values))
	}

	switch {
	case unit == Day:
		return Series{
			Dates:  append([]time.Time(nil), s.Dates...),
			Values: append([]float64(nil), s.Values...),
		}, nil
	case unit.FinerThanDay():
		return aggregateDaily(s, dt), nil
	default:
		return spreadDaily(s, unit, dt), nil
	}
}

func aggregateDaily(s Series, dt NumericalDataType) Series {
	var out Series
	start := 0
	for start < len(s.Values) {
		day := truncateDay(s.Dates[start])
		end := start + 1
		for end < len(s.Values) && truncateDay(s.Dates[end]).Equal(day) {
			end++
		}

		group := s.Values[start:end]
		v := stat.Mean(group, nil)
		if dt == Cumulative {
			v = floats.Sum(group)
		}
		out.Dates = append(out.Dates, day)
		out.Values = append(out.Values, v)
		start = end
	}

	return out
}

func spreadDaily(s Series, unit Unit, dt NumericalDataType) Series {
	var out Series
	for i, v := range s.Values {
		from := truncateDay(s.Dates[i])
		to := truncateDay(unit.Add(s.Dates[i], 1))
		days := int(to.Sub(from).Hours()/24 + 0.5)
		if days < 1 {
			days = 1
		}

		val := v
		if dt == Cumulative {
			val = v / float64(days)
		}
		for d := range days {
			out.Dates = append(out.Dates, from.AddDate(0, 0, d))
			out.Values = append(out.Values, val)
		}
	}

	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
