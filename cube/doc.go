// Package cube provides DataCube, a dense three-dimensional numeric container
// indexed by (variable, timestep, spatial unit).
//
// Each variable owns one contiguous buffer of timeStepCount × spatialUnitCount
// values. Buffers are allocated per variable, so a cube may declare many
// variables while holding memory for only the ones that were loaded:
//
//	c, err := cube.New[float32](8, 365, 12000, cube.WithLazyAllocation())
//	if err != nil {
//	    return err
//	}
//	if err := c.Allocate(3); err != nil {
//	    return err
//	}
//	_ = c.Set(3, 0, 42, 1.5)
//	series, _ := c.Vector(3, cube.All(), cube.At(42))
//
// Reading an unallocated variable is an error (errs.ErrNotAllocated), never a
// silent zero. Dimensions are fixed at construction; a size change requires a
// new cube.
//
// A DataCube is not safe for concurrent mutation. The owning decoder writes it
// during a load; readers may share it once the load returns.
package cube
