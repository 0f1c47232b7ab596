package shapes

import (
	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
)

const (
	TypeBeam   = "XmiBeam"
	TypeColumn = "XmiColumn"
	TypeSlab   = "XmiSlab"
	TypeWall   = "XmiWall"
)

func physicalMemberSchema(name string) *codec.Schema {
	return domain.EntityCoreSchema.Extend(name, fields(
		[]codec.Field{
			codec.F("system_line", "SystemLine"),
			codec.F("length", "Length"),
		},
		axisFields,
		offsetFields,
		[]codec.Field{
			codec.F("end_fixity_start", "EndFixityStart"),
			codec.F("end_fixity_end", "EndFixityEnd"),
		},
	)...)
}

var (
	beamSchema   = physicalMemberSchema(TypeBeam)
	columnSchema = physicalMemberSchema(TypeColumn)
	slabSchema   = domain.EntityCoreSchema.Extend(TypeSlab)
	wallSchema   = domain.EntityCoreSchema.Extend(TypeWall)
)

// PhysicalMember holds the fields beams and columns share. End fixities are
// free text on the physical side.
type PhysicalMember struct {
	domain.EntityCore
	SystemLine string
	Length     float64
	Axes
	NodeOffsets
	EndFixityStart string
	EndFixityEnd   string

	schema *codec.Schema
}

func newPhysicalMember(schema *codec.Schema, raw map[string]any) (PhysicalMember, error) {
	r := newReader(schema, raw)
	m := PhysicalMember{
		EntityCore:     readCore(r, schema.Name(), domain.DomainPhysical),
		SystemLine:     r.enum("system_line", SystemLines, true),
		Length:         r.requiredFloat("length"),
		Axes:           readAxes(r),
		NodeOffsets:    readOffsets(r),
		EndFixityStart: r.str("end_fixity_start"),
		EndFixityEnd:   r.str("end_fixity_end"),
		schema:         schema,
	}
	if m.Length < 0 {
		r.fail("length", "must be non-negative")
	}
	return m, r.err()
}

func (m *PhysicalMember) Schema() *codec.Schema { return m.schema }

func (m *PhysicalMember) Canonical() codec.Record {
	rec := codec.Record{
		"system_line":      m.SystemLine,
		"length":           m.Length,
		"end_fixity_start": optString(m.EndFixityStart),
		"end_fixity_end":   optString(m.EndFixityEnd),
	}
	m.Axes.put(rec)
	m.NodeOffsets.put(rec)
	m.PutCanonical(rec)
	return rec
}

type Beam struct{ PhysicalMember }

func NewBeam(raw map[string]any) (*Beam, error) {
	m, err := newPhysicalMember(beamSchema, raw)
	if err != nil {
		return nil, err
	}
	return &Beam{m}, nil
}

type Column struct{ PhysicalMember }

func NewColumn(raw map[string]any) (*Column, error) {
	m, err := newPhysicalMember(columnSchema, raw)
	if err != nil {
		return nil, err
	}
	return &Column{m}, nil
}

// Slab carries only the shared entity fields; its analytical surface is
// linked through relationships.
type Slab struct{ domain.EntityCore }

func NewSlab(raw map[string]any) (*Slab, error) {
	r := newReader(slabSchema, raw)
	s := &Slab{readCore(r, TypeSlab, domain.DomainPhysical)}
	if err := r.err(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Slab) Schema() *codec.Schema { return slabSchema }

func (s *Slab) Canonical() codec.Record {
	rec := codec.Record{}
	s.PutCanonical(rec)
	return rec
}

type Wall struct{ domain.EntityCore }

func NewWall(raw map[string]any) (*Wall, error) {
	r := newReader(wallSchema, raw)
	w := &Wall{readCore(r, TypeWall, domain.DomainPhysical)}
	if err := r.err(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Wall) Schema() *codec.Schema { return wallSchema }

func (w *Wall) Canonical() codec.Record {
	rec := codec.Record{}
	w.PutCanonical(rec)
	return rec
}
