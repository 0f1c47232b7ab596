package domain

import "sort"

// Summary counts what a model holds.
type Summary struct {
	Entities      map[string]int
	Relationships map[string]int
	Errors        map[FailureKind]int

	EntityCount       int
	RelationshipCount int
	ErrorCount        int
}

func (m *Model) Summary() Summary {
	s := Summary{
		Entities:          map[string]int{},
		Relationships:     map[string]int{},
		Errors:            map[FailureKind]int{},
		EntityCount:       len(m.entities),
		RelationshipCount: len(m.relationships),
		ErrorCount:        m.errors.Len(),
	}
	for _, e := range m.entities {
		s.Entities[e.Core().EntityType]++
	}
	for _, r := range m.relationships {
		s.Relationships[r.Edge().EntityType]++
	}
	for _, e := range m.errors.entries {
		s.Errors[e.Kind]++
	}
	return s
}

// SortedKeys returns the keys of a count map in lexical order.
func SortedKeys[K ~string](counts map[K]int) []K {
	out := make([]K, 0, len(counts))
	for k := range counts {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
