package message

import (
	"errors"
	"fmt"
	"sort"
)

var ErrDuplicateID = errors.New("message: duplicate id in registry")

// Constructor builds a fresh, default-valued instance of one concrete
// message type.
type Constructor func() Message

// Entry binds an id to its constructor.
type Entry struct {
	ID  ID
	New Constructor
}

// Registry maps message ids to constructors. It is built once, sorted by
// id, and read-only afterwards; lookups are binary searches.
type Registry struct {
	entries []Entry
}

// NewRegistry sorts the entries and rejects duplicate ids.
func NewRegistry(entries ...Entry) (*Registry, error) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, sorted[i].ID)
		}
	}
	return &Registry{entries: sorted}, nil
}

// MustRegistry is NewRegistry for statically-known entry sets, where a
// duplicate id is a programming error.
func MustRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup finds the constructor for id.
func (r *Registry) Lookup(id ID) (Constructor, bool) {
	i := sort.Search(len(r.entries), func(i int) bool { return r.entries[i].ID >= id })
	if i < len(r.entries) && r.entries[i].ID == id {
		return r.entries[i].New, true
	}
	return nil, false
}

// Len is the number of registered ids.
func (r *Registry) Len() int { return len(r.entries) }

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}
