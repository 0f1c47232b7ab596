package shapes

import (
	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
)

const TypeUnit = "XmiUnit"

var unitSchema = domain.EntityCoreSchema.Extend(TypeUnit,
	codec.F("entity", "Entity"),
	codec.F("attribute", "Attribute"),
	codec.F("unit", "Unit"),
)

// Unit declares the unit of one attribute of one entity type, for example
// XmiStructuralMaterial.EModulus in "m^2".
type Unit struct {
	domain.EntityCore
	Entity    string
	Attribute string
	Unit      string
}

func NewUnit(raw map[string]any) (*Unit, error) {
	r := newReader(unitSchema, raw)
	u := &Unit{
		EntityCore: readCore(r, TypeUnit, domain.DomainShared),
		Entity:     r.requiredStr("entity"),
		Attribute:  r.requiredStr("attribute"),
		Unit:       r.enum("unit", Units, true),
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *Unit) Schema() *codec.Schema { return unitSchema }

func (u *Unit) Canonical() codec.Record {
	rec := codec.Record{
		"entity":    u.Entity,
		"attribute": u.Attribute,
		"unit":      u.Unit,
	}
	u.PutCanonical(rec)
	return rec
}
