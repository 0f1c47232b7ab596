package domain

import (
	"errors"
	"fmt"

	"github.com/aalvaropc/xmigraph/internal/codec"
)

// Model is the aggregate root: it owns the entity list, the relationship
// list, the error log and the document metadata.
//
// A Model is not safe for concurrent mutation. Use one Model per goroutine.
type Model struct {
	Name               string
	XmiVersion         string
	ApplicationName    string
	ApplicationVersion string
	// Histories is carried through untouched.
	Histories []any

	entities      []Entity
	relationships []Relationship
	errors        ErrorLog

	// known backs the closure check in AppendRelationship.
	known map[string]struct{}
}

func NewModel() *Model {
	return &Model{}
}

// Entities returns the entities in construction order.
func (m *Model) Entities() []Entity {
	out := make([]Entity, len(m.entities))
	copy(out, m.entities)
	return out
}

// Relationships returns the relationships in construction order.
func (m *Model) Relationships() []Relationship {
	out := make([]Relationship, len(m.relationships))
	copy(out, m.relationships)
	return out
}

// Errors exposes the append-only error log.
func (m *Model) Errors() *ErrorLog {
	return &m.errors
}

// FindEntity scans the entity list and returns the first entity with the
// given ID. Duplicate IDs are not an error: the earliest one wins.
// Callers doing many lookups should build their own index over Entities.
func (m *Model) FindEntity(id string) (Entity, bool) {
	for _, e := range m.entities {
		if e.Core().ID == id {
			return e, true
		}
	}
	return nil, false
}

// RelationshipsFrom returns, in construction order, the relationships whose
// source entity has the given ID.
func (m *Model) RelationshipsFrom(id string) []Relationship {
	return m.relationshipsWhere(func(e RelationshipCore) bool { return e.SourceID() == id })
}

// RelationshipsTo returns, in construction order, the relationships whose
// target entity has the given ID.
func (m *Model) RelationshipsTo(id string) []Relationship {
	return m.relationshipsWhere(func(e RelationshipCore) bool { return e.TargetID() == id })
}

func (m *Model) relationshipsWhere(keep func(RelationshipCore) bool) []Relationship {
	var out []Relationship
	for _, r := range m.relationships {
		if keep(r.Edge()) {
			out = append(out, r)
		}
	}
	return out
}

// AppendEntity adds an entity. IDs are not checked for uniqueness.
func (m *Model) AppendEntity(e Entity) error {
	if e == nil {
		return &OpError{
			Op:   "model.append_entity",
			Kind: KindInvalidInput,
			Err:  errors.New("entity is nil"),
		}
	}
	m.entities = append(m.entities, e)
	if m.known == nil {
		m.known = make(map[string]struct{})
	}
	m.known[e.Core().ID] = struct{}{}
	return nil
}

// AppendRelationship adds a relationship whose source and target are
// already in the entity list. Anything else is rejected, so every
// relationship in a Model always points at entities the Model holds.
func (m *Model) AppendRelationship(r Relationship) error {
	const op = "model.append_relationship"
	if r == nil {
		return &OpError{Op: op, Kind: KindInvalidInput, Err: errors.New("relationship is nil")}
	}

	edge := r.Edge()
	for _, end := range []struct {
		role string
		e    Entity
	}{{"source", edge.Source}, {"target", edge.Target}} {
		if end.e == nil {
			return &OpError{Op: op, Kind: KindUnresolved, Err: fmt.Errorf("%w: %s is nil", ErrUnresolved, end.role)}
		}
		if _, ok := m.known[end.e.Core().ID]; !ok {
			return &OpError{
				Op:   op,
				Kind: KindUnresolved,
				Err:  fmt.Errorf("%w: %s %q is not in the model", ErrUnresolved, end.role, end.e.Core().ID),
			}
		}
	}

	m.relationships = append(m.relationships, r)
	return nil
}

// Export encodes metadata, entities, relationships and the error log back
// into a payload. Nothing is re-validated.
func (m *Model) Export(mode codec.Mode) codec.Payload {
	p := codec.Payload{
		Name:               m.Name,
		XmiVersion:         m.XmiVersion,
		ApplicationName:    m.ApplicationName,
		ApplicationVersion: m.ApplicationVersion,
		Entities:           make([]any, 0, len(m.entities)),
		Relationships:      make([]any, 0, len(m.relationships)),
		Histories:          m.Histories,
		Errors:             make([]any, 0, m.errors.Len()),
	}
	for _, e := range m.entities {
		p.Entities = append(p.Entities, e.Schema().Encode(e.Canonical(), mode))
	}
	for _, r := range m.relationships {
		p.Relationships = append(p.Relationships, r.Schema().Encode(r.Canonical(), mode))
	}
	for _, e := range m.errors.entries {
		p.Errors = append(p.Errors, ErrorLogSchema.Encode(e.Canonical(), mode))
	}
	return p
}
