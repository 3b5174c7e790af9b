package sfr

import (
	"fmt"

	"github.com/arloliu/hydrocube/internal/options"
)

// Option configures a Reader.
type Option = options.Option[*Reader]

// WithSkippedSteps sets how many leading blocks are skipped before decoding.
func WithSkippedSteps(n int) Option {
	return options.New(func(r *Reader) error {
		if n < 0 {
			return fmt.Errorf("skipped steps must be non-negative, got %d", n)
		}
		r.skippedSteps = n

		return nil
	})
}

// WithCompleteData selects full-reach decoding. When false only the outlet
// reach of every river is decoded.
func WithCompleteData(complete bool) Option {
	return options.NoError(func(r *Reader) {
		r.complete = complete
	})
}
