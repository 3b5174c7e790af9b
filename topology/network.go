package topology

import (
	"errors"
	"fmt"
)

// Reach is one discrete segment of a river.
type Reach struct {
	// ID is the network-wide reach number (1-based).
	ID int
	// SubID is the position of the reach inside its river (1-based).
	SubID int
	// Length is the reach length in model units.
	Length float64
}

// River is an ordered sequence of reaches, also called a segment.
type River struct {
	// ID is the river number (1-based); it equals its position in the network.
	ID   int
	Name string
	// Outlet is the ID of the river receiving this river's outflow, 0 for a
	// network outlet.
	Outlet  int
	Reaches []Reach
}

// Length returns the sum of the reach lengths.
func (r *River) Length() float64 {
	total := 0.0
	for _, rch := range r.Reaches {
		total += rch.Length
	}

	return total
}

// LastReach returns the outlet reach of the river.
func (r *River) LastReach() (Reach, bool) {
	if len(r.Reaches) == 0 {
		return Reach{}, false
	}

	return r.Reaches[len(r.Reaches)-1], true
}

// Network is a river network in the order rivers appear in stream output files.
type Network struct {
	Rivers []River
}

// RiverCount returns the number of rivers.
func (n *Network) RiverCount() int {
	return len(n.Rivers)
}

// ReachCount returns the total number of reaches.
func (n *Network) ReachCount() int {
	total := 0
	for i := range n.Rivers {
		total += len(n.Rivers[i].Reaches)
	}

	return total
}

// River returns the river with the given 1-based ID.
func (n *Network) River(id int) (*River, bool) {
	if id < 1 || id > len(n.Rivers) {
		return nil, false
	}

	return &n.Rivers[id-1], true
}

// Validate checks ids, outlets and reach numbering.
func (n *Network) Validate() error {
	if len(n.Rivers) == 0 {
		return errors.New("network has no rivers")
	}
	for i := range n.Rivers {
		r := &n.Rivers[i]
		if r.ID != i+1 {
			return fmt.Errorf("river at position %d has id %d", i+1, r.ID)
		}
		if r.Outlet < 0 || r.Outlet > len(n.Rivers) || r.Outlet == r.ID {
			return fmt.Errorf("river %d has invalid outlet %d", r.ID, r.Outlet)
		}
		if len(r.Reaches) == 0 {
			return fmt.Errorf("river %d has no reaches", r.ID)
		}
		for j, rch := range r.Reaches {
			if rch.SubID != j+1 {
				return fmt.Errorf("river %d reach %d has sub id %d", r.ID, j+1, rch.SubID)
			}
			if rch.Length < 0 {
				return fmt.Errorf("river %d reach %d has negative length", r.ID, rch.SubID)
			}
		}
	}

	return nil
}

// ReachTopology links every reach to the next reach downstream, following the
// river outlet at the end of each river.
func (n *Network) ReachTopology() *Topology {
	first := make([]int, len(n.Rivers))
	total := 0
	for i := range n.Rivers {
		first[i] = total
		total += len(n.Rivers[i].Reaches)
	}

	t := &Topology{
		Kind:       KindReach,
		Neighbors:  make([][]int, total),
		Downstream: make([]int, total),
	}
	for i := range n.Rivers {
		r := &n.Rivers[i]
		for j := range r.Reaches {
			node := first[i] + j
			down := -1
			switch {
			case j < len(r.Reaches)-1:
				down = node + 1
			case r.Outlet > 0:
				down = first[r.Outlet-1]
			}
			t.Downstream[node] = down
			if down >= 0 {
				t.Neighbors[node] = append(t.Neighbors[node], down)
				t.Neighbors[down] = append(t.Neighbors[down], node)
			}
		}
	}

	return t
}

// SegmentTopology links every river to its outlet river.
func (n *Network) SegmentTopology() *Topology {
	t := &Topology{
		Kind:       KindSegment,
		Neighbors:  make([][]int, len(n.Rivers)),
		Downstream: make([]int, len(n.Rivers)),
	}
	for i := range n.Rivers {
		down := n.Rivers[i].Outlet - 1
		t.Downstream[i] = down
		if down >= 0 {
			t.Neighbors[i] = append(t.Neighbors[i], down)
			t.Neighbors[down] = append(t.Neighbors[down], i)
		}
	}

	return t
}

// NewUniformNetwork builds a chain of rivers, each draining into the next,
// with reachesPerRiver reaches of the given length.
func NewUniformNetwork(rivers, reachesPerRiver int, length float64) *Network {
	n := &Network{Rivers: make([]River, rivers)}
	id := 1
	for i := range rivers {
		r := River{ID: i + 1, Name: fmt.Sprintf("river-%d", i+1)}
		if i < rivers-1 {
			r.Outlet = i + 2
		}
		for j := range reachesPerRiver {
			r.Reaches = append(r.Reaches, Reach{ID: id, SubID: j + 1, Length: length})
			id++
		}
		n.Rivers[i] = r
	}

	return n
}
