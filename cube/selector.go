package cube

// Selector picks either every index along one axis or a single fixed index.
// Arbitrary multi-index selection is intentionally not supported.
type Selector struct {
	all   bool
	index int
}

// All selects the whole axis.
func All() Selector {
	return Selector{all: true}
}

// At selects a single index.
func At(i int) Selector {
	return Selector{index: i}
}

// IsAll reports whether s spans the whole axis.
func (s Selector) IsAll() bool {
	return s.all
}

// Index returns the fixed index of s. It is meaningless when IsAll is true.
func (s Selector) Index() int {
	return s.index
}
