// Package selection computes participant-id sets from user interaction.
package selection

import "sort"

// Set is an unordered set of participant ids.
type Set map[string]struct{}

// New builds a set from ids; duplicates collapse.
func New(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Toggle returns a new set with id added if absent or removed if present.
// The input set is not modified.
func Toggle(current Set, id string) Set {
	next := make(Set, len(current)+1)
	for k := range current {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return next
}

// Has reports whether id is selected.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the selected ids sorted, for stable request payloads.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
