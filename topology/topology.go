package topology

import "fmt"

// Kind identifies what the nodes of a Topology represent.
type Kind uint8

const (
	KindGrid    Kind = 0x1 // KindGrid nodes are active grid cells.
	KindReach   Kind = 0x2 // KindReach nodes are individual reaches.
	KindSegment Kind = 0x3 // KindSegment nodes are whole rivers (segments).
)

func (k Kind) String() string {
	switch k {
	case KindGrid:
		return "Grid"
	case KindReach:
		return "Reach"
	case KindSegment:
		return "Segment"
	default:
		return "Unknown"
	}
}

// Topology is adjacency metadata over the spatial axis of a cube. Node i of
// the topology is spatial index i of the cube it is attached to.
type Topology struct {
	Kind Kind
	// Neighbors lists the adjacent nodes of each node.
	Neighbors [][]int
	// Downstream holds the receiving node of each node, or -1 for outlets. It is
	// only populated for network topologies.
	Downstream []int
}

// NodeCount returns the number of nodes.
func (t *Topology) NodeCount() int {
	if t == nil {
		return 0
	}

	return len(t.Neighbors)
}

// Validate checks that every referenced node exists.
func (t *Topology) Validate() error {
	n := len(t.Neighbors)
	for i, nb := range t.Neighbors {
		for _, j := range nb {
			if j < 0 || j >= n {
				return fmt.Errorf("node %d references missing neighbor %d", i, j)
			}
		}
	}
	if t.Downstream != nil && len(t.Downstream) != n {
		return fmt.Errorf("downstream has %d entries for %d nodes", len(t.Downstream), n)
	}
	for i, d := range t.Downstream {
		if d < -1 || d >= n {
			return fmt.Errorf("node %d drains to missing node %d", i, d)
		}
	}

	return nil
}

// Grid is the active-cell grid of a cell-budget model.
type Grid struct {
	// ActiveCellCount is the number of values per budget record.
	ActiveCellCount int
	// LayerCount is the number of model layers.
	LayerCount int
	// Topology is the cell connectivity, if known.
	Topology *Topology
}

// NewRegularGrid builds a grid of rows × cols active cells per layer with
// rook (4-neighbor) connectivity.
func NewRegularGrid(rows, cols, layers int) *Grid {
	n := rows * cols
	nb := make([][]int, n)
	for r := range rows {
		for c := range cols {
			i := r*cols + c
			if c > 0 {
				nb[i] = append(nb[i], i-1)
			}
			if c < cols-1 {
				nb[i] = append(nb[i], i+1)
			}
			if r > 0 {
				nb[i] = append(nb[i], i-cols)
			}
			if r < rows-1 {
				nb[i] = append(nb[i], i+cols)
			}
		}
	}

	return &Grid{
		ActiveCellCount: n,
		LayerCount:      layers,
		Topology:        &Topology{Kind: KindGrid, Neighbors: nb},
	}
}
