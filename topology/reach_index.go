package topology

// ReachEntry maps one (river, reach) pair to its serial position on the
// spatial axis. River and Reach are 0-based.
type ReachEntry struct {
	River  int
	Reach  int
	Serial int
}

type reachKey struct {
	river, reach int
}

// ReachIndex is the ordered (river, local reach) → serial index mapping built
// once per load. Its order is the order data lines appear in stream output.
type ReachIndex struct {
	entries []ReachEntry
	lookup  map[reachKey]int
}

// BuildReachIndex enumerates rivers and their reaches in network order.
func BuildReachIndex(n *Network) *ReachIndex {
	total := n.ReachCount()
	idx := &ReachIndex{
		entries: make([]ReachEntry, 0, total),
		lookup:  make(map[reachKey]int, total),
	}
	serial := 0
	for i := range n.Rivers {
		for j := range n.Rivers[i].Reaches {
			idx.entries = append(idx.entries, ReachEntry{River: i, Reach: j, Serial: serial})
			idx.lookup[reachKey{i, j}] = serial
			serial++
		}
	}

	return idx
}

// Len returns the number of entries.
func (x *ReachIndex) Len() int {
	if x == nil {
		return 0
	}

	return len(x.entries)
}

// Entries returns a copy of the entries in serial order.
func (x *ReachIndex) Entries() []ReachEntry {
	if x == nil {
		return nil
	}

	return append([]ReachEntry(nil), x.entries...)
}

// Lookup returns the serial index of the 0-based (river, reach) pair.
func (x *ReachIndex) Lookup(river, reach int) (int, bool) {
	if x == nil {
		return 0, false
	}
	s, ok := x.lookup[reachKey{river, reach}]

	return s, ok
}

// SerialIndex returns the serial index of the 1-based (riverID, reachID)
// pair, or -1 when the pair is not indexed.
func (x *ReachIndex) SerialIndex(riverID, reachID int) int {
	s, ok := x.Lookup(riverID-1, reachID-1)
	if !ok {
		return -1
	}

	return s
}
