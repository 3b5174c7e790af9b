package timeline

import (
	"fmt"
	"strings"
	"time"
)

// Unit is the spacing of stored time steps.
type Unit uint8

const (
	Hour  Unit = 0x1
	Day   Unit = 0x2
	Week  Unit = 0x3
	Month Unit = 0x4
	Year  Unit = 0x5
)

func (u Unit) String() string {
	switch u {
	case Hour:
		return "Hour"
	case Day:
		return "Day"
	case Week:
		return "Week"
	case Month:
		return "Month"
	case Year:
		return "Year"
	default:
		return "Unknown"
	}
}

// ParseUnit parses a case-insensitive unit name.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hour", "hourly", "h":
		return Hour, nil
	case "", "day", "daily", "d":
		return Day, nil
	case "week", "weekly", "w":
		return Week, nil
	case "month", "monthly", "m":
		return Month, nil
	case "year", "yearly", "annual", "y":
		return Year, nil
	default:
		return 0, fmt.Errorf("unknown time unit: %q", s)
	}
}

// Add returns t advanced by n units. Calendar units use AddDate so month and
// year steps follow the calendar.
func (u Unit) Add(t time.Time, n int) time.Time {
	switch u {
	case Hour:
		return t.Add(time.Duration(n) * time.Hour)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return t.AddDate(0, n, 0)
	case Year:
		return t.AddDate(n, 0, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}

// FinerThanDay reports whether u subdivides a day.
func (u Unit) FinerThanDay() bool {
	return u == Hour
}

// NumericalDataType tells the derivation step how values combine over time.
type NumericalDataType uint8

const (
	// Average values (heads, rates) are averaged when aggregated and repeated
	// when spread.
	Average NumericalDataType = 0x1
	// Cumulative values (volumes) are summed when aggregated and divided evenly
	// when spread.
	Cumulative NumericalDataType = 0x2
)

func (d NumericalDataType) String() string {
	switch d {
	case Average:
		return "Average"
	case Cumulative:
		return "Cumulative"
	default:
		return "Unknown"
	}
}

// ParseDataType parses "average" or "cumulative".
func ParseDataType(s string) (NumericalDataType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "average", "avg", "mean":
		return Average, nil
	case "cumulative", "sum", "total":
		return Cumulative, nil
	default:
		return 0, fmt.Errorf("unknown numerical data type: %q", s)
	}
}
