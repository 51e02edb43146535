package vaultfilter

import "sort"

// NodeSet is a set of tree node ids, used for collapsed-node state.
type NodeSet map[string]struct{}

// NewNodeSet returns a set holding ids.
func NewNodeSet(ids ...string) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership. A nil set is empty.
func (s NodeSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy.
func (s NodeSet) Clone() NodeSet {
	c := make(NodeSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Toggle returns a copy with id removed if present, added otherwise.
func (s NodeSet) Toggle(id string) NodeSet {
	c := s.Clone()
	if c.Has(id) {
		delete(c, id)
	} else {
		c[id] = struct{}{}
	}
	return c
}

// Without returns a copy with id removed.
func (s NodeSet) Without(id string) NodeSet {
	c := s.Clone()
	delete(c, id)
	return c
}

// IDs returns the members sorted.
func (s NodeSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
