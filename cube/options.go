package cube

import (
	"fmt"

	"github.com/arloliu/hydrocube/internal/options"
)

// Option configures a DataCube at construction time.
type Option = options.Option[*config]

type config struct {
	name         string
	lazy         bool
	autoAllocate bool
	memoryLimit  int64
}

// WithName sets the display label of the cube.
func WithName(name string) Option {
	return options.NoError(func(c *config) {
		c.name = name
	})
}

// WithLazyAllocation declares all variables without reserving their buffers.
// Buffers are created by Allocate, or by the first Set when WithAutoAllocate is
// also given.
func WithLazyAllocation() Option {
	return options.NoError(func(c *config) {
		c.lazy = true
	})
}

// WithAutoAllocate lets Set allocate an unallocated variable on first write.
// Without it, writing to an unallocated variable fails with ErrNotAllocated.
func WithAutoAllocate() Option {
	return options.NoError(func(c *config) {
		c.autoAllocate = true
	})
}

// WithMemoryLimit caps the total bytes the cube may hold across all allocated
// variables. Zero means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return options.New(func(c *config) error {
		if bytes < 0 {
			return fmt.Errorf("memory limit must be non-negative, got %d", bytes)
		}
		c.memoryLimit = bytes

		return nil
	})
}
