package format

// StopReason explains why a decode loop stopped.
type StopReason uint8

const (
	// Completed means every expected time step was decoded.
	Completed StopReason = iota + 1
	// EndOfData means the stream ended cleanly on a record or block boundary
	// after the last expected time step.
	EndOfData
	// Malformed means a header or line failed validation.
	Malformed
	// Truncated means the stream ended inside a record or block.
	Truncated
	// Cancelled means the progress handler requested cancellation.
	Cancelled
	// IOError means the underlying reader failed.
	IOError
	// ShortData means the stream ended cleanly on a record or block boundary
	// before the cube's time axis was filled.
	ShortData
)

func (r StopReason) String() string {
	switch r {
	case Completed:
		return "Completed"
	case EndOfData:
		return "EndOfData"
	case Malformed:
		return "Malformed"
	case Truncated:
		return "Truncated"
	case Cancelled:
		return "Cancelled"
	case IOError:
		return "IOError"
	case ShortData:
		return "ShortData"
	default:
		return "Unknown"
	}
}

// Clean reports whether decoding stopped without losing data.
func (r StopReason) Clean() bool {
	return r == Completed || r == EndOfData
}

// DecodeResult summarizes one decode run. Records counts the records or lines
// copied into the cube and Steps the number of time steps that received data.
// Err is set for every reason except Completed and EndOfData.
type DecodeResult struct {
	Records int
	Steps   int
	Reason  StopReason
	Err     error
}

// State maps the result to the loading state reported to callers. A failing
// reader is fatal; every other unclean stop keeps its prefix and is a warning.
func (r DecodeResult) State() LoadingState {
	switch {
	case r.Reason.Clean():
		return Normal
	case r.Reason == IOError:
		return FatalError
	default:
		return Warning
	}
}
