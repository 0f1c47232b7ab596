package domain

import "github.com/aalvaropc/xmigraph/internal/codec"

// DomainType is the coarse category of an entity shape. It is fixed per
// shape and never read from input.
type DomainType string

const (
	DomainPhysical             DomainType = "Physical"
	DomainStructuralAnalytical DomainType = "StructuralAnalytical"
	DomainGeometry             DomainType = "Geometry"
	DomainFunctional           DomainType = "Functional"
	DomainShared               DomainType = "Shared"
)

// EntityCoreSchema declares the fields every entity shape carries.
var EntityCoreSchema = codec.NewSchema("XmiBaseEntity",
	codec.F("id", "ID"),
	codec.F("name", "Name"),
	codec.F("ifcguid", "IFCGUID"),
	codec.F("native_id", "NativeId"),
	codec.F("description", "Description"),
	codec.F("entity_type", "EntityType"),
	codec.F("type", "Type"),
)

// EntityCore holds the fields shared by every entity shape. Shapes embed it.
type EntityCore struct {
	ID          string
	Name        string
	IFCGUID     string
	NativeID    string
	Description string
	EntityType  string
	Domain      DomainType
}

// Core returns the shared fields; embedding EntityCore provides it.
func (c EntityCore) Core() EntityCore { return c }

// PutCanonical writes the core fields into rec using canonical names.
// Empty optional strings are written as nil.
func (c EntityCore) PutCanonical(rec codec.Record) {
	rec["id"] = c.ID
	rec["name"] = c.Name
	rec["ifcguid"] = optional(c.IFCGUID)
	rec["native_id"] = optional(c.NativeID)
	rec["description"] = optional(c.Description)
	rec["entity_type"] = c.EntityType
	rec["type"] = string(c.Domain)
}

// Entity is a typed node of the model graph.
type Entity interface {
	Core() EntityCore
	// Schema is the field table of the concrete shape.
	Schema() *codec.Schema
	// Canonical returns every schema field under its canonical name.
	Canonical() codec.Record
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
