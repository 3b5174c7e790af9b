// Package collision keeps the ordered set of variable names seen while
// scanning a result file and detects xxHash64 collisions between them.
package collision

import (
	"fmt"

	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/internal/hash"
)

// Registry maps normalized variable names to their first-seen position.
//
// Lookups go through the name hash. When two distinct names share a hash the
// registry falls back to a name-keyed map, so indices stay correct and
// HasCollision reports the event.
type Registry struct {
	byID         map[uint64]int // hash → index, first name wins
	byName       map[string]int // only populated after a collision
	names        []string       // normalized names in registration order
	hasCollision bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:  make(map[uint64]int),
		names: make([]string, 0, 8),
	}
}

// Register adds name if it is new and returns its index. added is false when
// the name was already registered.
func (r *Registry) Register(name string) (index int, added bool, err error) {
	norm := hash.NormalizeName(name)
	if norm == "" {
		return -1, false, fmt.Errorf("%w: empty variable name", errs.ErrUnknownVariable)
	}

	if idx, ok := r.lookup(norm); ok {
		return idx, false, nil
	}

	idx := len(r.names)
	id := hash.ID(norm)
	if existing, ok := r.byID[id]; ok && r.names[existing] != norm {
		r.markCollision()
		r.byName[norm] = idx
	} else {
		r.byID[id] = idx
		if r.byName != nil {
			r.byName[norm] = idx
		}
	}
	r.names = append(r.names, norm)

	return idx, true, nil
}

// Index returns the position of name, or -1 when it was never registered.
func (r *Registry) Index(name string) int {
	if idx, ok := r.lookup(hash.NormalizeName(name)); ok {
		return idx
	}

	return -1
}

// Names returns the normalized names in registration order.
func (r *Registry) Names() []string {
	return r.names
}

// HasCollision reports whether two distinct names hashed to the same id.
func (r *Registry) HasCollision() bool {
	return r.hasCollision
}

func (r *Registry) lookup(norm string) (int, bool) {
	if r.byName != nil {
		idx, ok := r.byName[norm]
		return idx, ok
	}
	idx, ok := r.byID[hash.ID(norm)]
	if ok && r.names[idx] != norm {
		return 0, false
	}

	return idx, ok
}

func (r *Registry) markCollision() {
	if r.hasCollision {
		return
	}
	r.hasCollision = true
	r.byName = make(map[string]int, len(r.names)+1)
	for i, n := range r.names {
		r.byName[n] = i
	}
}
