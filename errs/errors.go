// Package errs defines the sentinel errors shared by the hydrocube packages.
//
// Errors are grouped by the layer that raises them. Callers should compare with
// errors.Is, since most call sites wrap these values with additional context.
package errs

import "errors"

// Data cube errors.
var (
	ErrInvalidDimensions = errors.New("invalid cube dimensions")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrNotAllocated      = errors.New("variable not allocated")
	ErrInvalidSelector   = errors.New("invalid vector selector")
	ErrAllocationFailure = errors.New("cube allocation failure")
	ErrInvalidDateTimes  = errors.New("date times must be non-decreasing and match the time dimension")
)

// Loading and decoding errors.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrTopologyMissing   = errors.New("topology missing")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrPrematureEOF      = errors.New("premature end of stream")
	ErrShortData         = errors.New("stream ended before the last time step")
	ErrCancelled         = errors.New("loading cancelled")
	ErrInvalidHeaderSize = errors.New("invalid record header size")
	ErrUnknownVariable   = errors.New("unknown variable")
)

// Contract violations. These are returned to the caller and never downgraded
// to a loading warning.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrAlreadyLoading       = errors.New("package is already loading")
	ErrNotInitialized       = errors.New("package is not initialized")
	ErrNotLoaded            = errors.New("package has no loaded data")
	ErrReachNotFound        = errors.New("reach not found in reach index")
)

// Compression errors.
var (
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)
