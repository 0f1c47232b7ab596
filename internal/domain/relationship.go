package domain

import "github.com/aalvaropc/xmigraph/internal/codec"

// RelationshipCoreSchema declares the fields every relationship shape carries.
var RelationshipCoreSchema = codec.NewSchema("XmiBaseRelationship",
	codec.F("id", "ID"),
	codec.F("source", "Source"),
	codec.F("target", "Target"),
	codec.F("name", "Name"),
	codec.F("description", "Description"),
	codec.F("entity_type", "EntityType"),
	codec.F("uml_type", "UmlType"),
)

// RelationshipCore holds the fields shared by every relationship shape.
//
// Source and Target point at entities owned by a Model. A relationship never
// owns them and is only built once both have been resolved.
type RelationshipCore struct {
	ID          string
	Name        string
	Description string
	EntityType  string
	UMLType     string
	Source      Entity
	Target      Entity
}

// Edge returns the shared fields; embedding RelationshipCore provides it.
func (c RelationshipCore) Edge() RelationshipCore { return c }

// SourceID is the ID of the source entity, or "" if unset.
func (c RelationshipCore) SourceID() string { return entityID(c.Source) }

// TargetID is the ID of the target entity, or "" if unset.
func (c RelationshipCore) TargetID() string { return entityID(c.Target) }

// PutCanonical writes the core fields into rec. Source and Target are written
// as entity IDs.
func (c RelationshipCore) PutCanonical(rec codec.Record) {
	rec["id"] = c.ID
	rec["source"] = c.SourceID()
	rec["target"] = c.TargetID()
	rec["name"] = c.Name
	rec["description"] = optional(c.Description)
	rec["entity_type"] = c.EntityType
	rec["uml_type"] = optional(c.UMLType)
}

// Relationship is a typed, directed edge between two entities.
type Relationship interface {
	Edge() RelationshipCore
	Schema() *codec.Schema
	Canonical() codec.Record
}

func entityID(e Entity) string {
	if e == nil {
		return ""
	}
	return e.Core().ID
}
