package shapes

import (
	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
)

const (
	TypeStructuralMaterial        = "XmiStructuralMaterial"
	TypeCrossSection              = "XmiCrossSection"
	TypeStructuralCurveMember     = "XmiStructuralCurveMember"
	TypeStructuralSurfaceMember   = "XmiStructuralSurfaceMember"
	TypeStructuralPointConnection = "XmiStructuralPointConnection"
	TypeStorey                    = "XmiStorey"
	TypeSegment                   = "XmiSegment"
)

// --- material ---

var materialSchema = domain.EntityCoreSchema.Extend(TypeStructuralMaterial,
	codec.F("material_type", "MaterialType"),
	codec.F("grade", "Grade"),
	codec.F("unit_weight", "UnitWeight"),
	codec.F("e_modulus", "EModulus"),
	codec.F("g_modulus", "GModulus"),
	codec.F("poisson_ratio", "PoissonRatio"),
	codec.F("thermal_coefficient", "ThermalCoefficient"),
)

type StructuralMaterial struct {
	domain.EntityCore
	MaterialType       string
	Grade              *float64
	UnitWeight         *float64
	EModulus           *float64
	GModulus           *float64
	PoissonRatio       *float64
	ThermalCoefficient *float64
}

func NewStructuralMaterial(raw map[string]any) (*StructuralMaterial, error) {
	r := newReader(materialSchema, raw)
	m := &StructuralMaterial{
		EntityCore:         readCore(r, TypeStructuralMaterial, domain.DomainStructuralAnalytical),
		MaterialType:       r.enum("material_type", MaterialTypes, true),
		Grade:              r.optFloat("grade"),
		UnitWeight:         r.optFloat("unit_weight"),
		EModulus:           r.optFloat("e_modulus"),
		GModulus:           r.optFloat("g_modulus"),
		PoissonRatio:       r.optFloat("poisson_ratio"),
		ThermalCoefficient: r.optFloat("thermal_coefficient"),
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *StructuralMaterial) Schema() *codec.Schema { return materialSchema }

func (m *StructuralMaterial) Canonical() codec.Record {
	rec := codec.Record{
		"material_type":       m.MaterialType,
		"grade":               floatPtr(m.Grade),
		"unit_weight":         floatPtr(m.UnitWeight),
		"e_modulus":           floatPtr(m.EModulus),
		"g_modulus":           floatPtr(m.GModulus),
		"poisson_ratio":       floatPtr(m.PoissonRatio),
		"thermal_coefficient": floatPtr(m.ThermalCoefficient),
	}
	m.PutCanonical(rec)
	return rec
}

// --- cross section ---

var crossSectionSchema = domain.EntityCoreSchema.Extend(TypeCrossSection,
	codec.F("shape", "Shape"),
	codec.F("parameters", "Parameters"),
	codec.F("area", "Area"),
	codec.F("second_moment_of_area_x_axis", "SecondMomentOfAreaXAxis"),
	codec.F("second_moment_of_area_y_axis", "SecondMomentOfAreaYAxis"),
	codec.F("radius_of_gyration_x_axis", "RadiusOfGyrationXAxis"),
	codec.F("radius_of_gyration_y_axis", "RadiusOfGyrationYAxis"),
	codec.F("elastic_modulus_x_axis", "ElasticModulusXAxis"),
	codec.F("elastic_modulus_y_axis", "ElasticModulusYAxis"),
	codec.F("plastic_modulus_x_axis", "PlasticModulusXAxis"),
	codec.F("plastic_modulus_y_axis", "PlasticModulusYAxis"),
	codec.F("torsional_constant", "TorsionalConstant"),
)

// CrossSection describes a member profile. Section properties, when given,
// must be non-negative. Parameters must match one of the shape's layouts.
type CrossSection struct {
	domain.EntityCore
	Shape                   string
	Parameters              []float64
	Area                    *float64
	SecondMomentOfAreaXAxis *float64
	SecondMomentOfAreaYAxis *float64
	RadiusOfGyrationXAxis   *float64
	RadiusOfGyrationYAxis   *float64
	ElasticModulusXAxis     *float64
	ElasticModulusYAxis     *float64
	PlasticModulusXAxis     *float64
	PlasticModulusYAxis     *float64
	TorsionalConstant       *float64
}

func NewCrossSection(raw map[string]any) (*CrossSection, error) {
	r := newReader(crossSectionSchema, raw)
	c := &CrossSection{
		EntityCore:              readCore(r, TypeCrossSection, domain.DomainStructuralAnalytical),
		Shape:                   r.enum("shape", CrossSectionShapes, true),
		Parameters:              r.numbers("parameters", true),
		Area:                    r.nonNegative("area"),
		SecondMomentOfAreaXAxis: r.nonNegative("second_moment_of_area_x_axis"),
		SecondMomentOfAreaYAxis: r.nonNegative("second_moment_of_area_y_axis"),
		RadiusOfGyrationXAxis:   r.nonNegative("radius_of_gyration_x_axis"),
		RadiusOfGyrationYAxis:   r.nonNegative("radius_of_gyration_y_axis"),
		ElasticModulusXAxis:     r.nonNegative("elastic_modulus_x_axis"),
		ElasticModulusYAxis:     r.nonNegative("elastic_modulus_y_axis"),
		PlasticModulusXAxis:     r.nonNegative("plastic_modulus_x_axis"),
		PlasticModulusYAxis:     r.nonNegative("plastic_modulus_y_axis"),
		TorsionalConstant:       r.nonNegative("torsional_constant"),
	}
	r.shapeParameters("parameters", c.Shape, c.Parameters)
	if err := r.err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CrossSection) Schema() *codec.Schema { return crossSectionSchema }

func (c *CrossSection) Canonical() codec.Record {
	params := make([]any, len(c.Parameters))
	for i, p := range c.Parameters {
		params[i] = p
	}
	rec := codec.Record{
		"shape":                        c.Shape,
		"parameters":                   params,
		"area":                         floatPtr(c.Area),
		"second_moment_of_area_x_axis": floatPtr(c.SecondMomentOfAreaXAxis),
		"second_moment_of_area_y_axis": floatPtr(c.SecondMomentOfAreaYAxis),
		"radius_of_gyration_x_axis":    floatPtr(c.RadiusOfGyrationXAxis),
		"radius_of_gyration_y_axis":    floatPtr(c.RadiusOfGyrationYAxis),
		"elastic_modulus_x_axis":       floatPtr(c.ElasticModulusXAxis),
		"elastic_modulus_y_axis":       floatPtr(c.ElasticModulusYAxis),
		"plastic_modulus_x_axis":       floatPtr(c.PlasticModulusXAxis),
		"plastic_modulus_y_axis":       floatPtr(c.PlasticModulusYAxis),
		"torsional_constant":           floatPtr(c.TorsionalConstant),
	}
	c.PutCanonical(rec)
	return rec
}

// --- curve member ---

var curveMemberSchema = domain.EntityCoreSchema.Extend(TypeStructuralCurveMember, fields(
	[]codec.Field{
		codec.F("curve_member_type", "CurveMemberType"),
		codec.F("system_line", "SystemLine"),
	},
	axisFields,
	offsetFields,
	[]codec.Field{
		codec.F("length", "Length"),
		codec.F("end_fixity_start", "EndFixityStart"),
		codec.F("end_fixity_end", "EndFixityEnd"),
	},
)...)

// StructuralCurveMember is the analytical line model of a beam, column or brace.
type StructuralCurveMember struct {
	domain.EntityCore
	CurveMemberType string
	SystemLine      string
	Axes
	NodeOffsets
	Length         *float64
	EndFixityStart *float64
	EndFixityEnd   *float64
}

func NewStructuralCurveMember(raw map[string]any) (*StructuralCurveMember, error) {
	r := newReader(curveMemberSchema, raw)
	c := &StructuralCurveMember{
		EntityCore:      readCore(r, TypeStructuralCurveMember, domain.DomainStructuralAnalytical),
		CurveMemberType: r.enum("curve_member_type", CurveMemberTypes, true),
		SystemLine:      r.enum("system_line", SystemLines, true),
		Axes:            readAxes(r),
		NodeOffsets:     readOffsets(r),
		Length:          r.optFloat("length"),
		EndFixityStart:  r.optFloat("end_fixity_start"),
		EndFixityEnd:    r.optFloat("end_fixity_end"),
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *StructuralCurveMember) Schema() *codec.Schema { return curveMemberSchema }

func (c *StructuralCurveMember) Canonical() codec.Record {
	rec := codec.Record{
		"curve_member_type": c.CurveMemberType,
		"system_line":       c.SystemLine,
		"length":            floatPtr(c.Length),
		"end_fixity_start":  floatPtr(c.EndFixityStart),
		"end_fixity_end":    floatPtr(c.EndFixityEnd),
	}
	c.Axes.put(rec)
	c.NodeOffsets.put(rec)
	c.PutCanonical(rec)
	return rec
}

// --- surface member ---

var surfaceMemberSchema = domain.EntityCoreSchema.Extend(TypeStructuralSurfaceMember, fields(
	[]codec.Field{
		codec.F("surface_member_type", "SurfaceMemberType"),
		codec.F("thickness", "Thickness"),
		codec.F("system_plane", "SystemPlane"),
		codec.F("span_type", "SpanType"),
		codec.F("area", "Area"),
		codec.F("z_offset", "ZOffset"),
	},
	axisFields,
	[]codec.Field{codec.F("height", "Height")},
)...)

type StructuralSurfaceMember struct {
	domain.EntityCore
	SurfaceMemberType string
	Thickness         float64
	SystemPlane       string
	SpanType          string
	Area              *float64
	ZOffset           float64
	Axes
	Height *float64
}

func NewStructuralSurfaceMember(raw map[string]any) (*StructuralSurfaceMember, error) {
	r := newReader(surfaceMemberSchema, raw)
	s := &StructuralSurfaceMember{
		EntityCore:        readCore(r, TypeStructuralSurfaceMember, domain.DomainStructuralAnalytical),
		SurfaceMemberType: r.enum("surface_member_type", SurfaceMemberTypes, true),
		Thickness:         r.requiredFloat("thickness"),
		SystemPlane:       r.enum("system_plane", SystemPlanes, true),
		SpanType:          r.enum("span_type", SpanTypes, false),
		Area:              r.nonNegative("area"),
		ZOffset:           r.floatOr("z_offset", 0),
		Axes:              readAxes(r),
		Height:            r.nonNegative("height"),
	}
	if s.Thickness < 0 {
		r.fail("thickness", "must be non-negative")
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StructuralSurfaceMember) Schema() *codec.Schema { return surfaceMemberSchema }

func (s *StructuralSurfaceMember) Canonical() codec.Record {
	rec := codec.Record{
		"surface_member_type": s.SurfaceMemberType,
		"thickness":           s.Thickness,
		"system_plane":        s.SystemPlane,
		"span_type":           optString(s.SpanType),
		"area":                floatPtr(s.Area),
		"z_offset":            s.ZOffset,
		"height":              floatPtr(s.Height),
	}
	s.Axes.put(rec)
	s.PutCanonical(rec)
	return rec
}

// --- point connection ---

var pointConnectionSchema = domain.EntityCoreSchema.Extend(TypeStructuralPointConnection,
	codec.F("point", "Point"),
)

// StructuralPointConnection is an analytical node.
type StructuralPointConnection struct {
	domain.EntityCore
	Point Point
}

func NewStructuralPointConnection(raw map[string]any) (*StructuralPointConnection, error) {
	r := newReader(pointConnectionSchema, raw)
	core := readCore(r, TypeStructuralPointConnection, domain.DomainStructuralAnalytical)
	p := r.point("point", true)
	if err := r.err(); err != nil {
		return nil, err
	}
	return &StructuralPointConnection{EntityCore: core, Point: *p}, nil
}

func (p *StructuralPointConnection) Schema() *codec.Schema { return pointConnectionSchema }

func (p *StructuralPointConnection) Canonical() codec.Record {
	rec := codec.Record{"point": p.Point.wire()}
	p.PutCanonical(rec)
	return rec
}

// --- storey ---

var storeySchema = domain.EntityCoreSchema.Extend(TypeStorey,
	codec.F("storey_elevation", "StoreyElevation"),
	codec.F("storey_mass", "StoreyMass"),
	codec.F("storey_horizontal_reaction_x", "StoreyHorizontalReactionX"),
	codec.F("storey_horizontal_reaction_y", "StoreyHorizontalReactionY"),
	codec.F("storey_vertical_reaction", "StoreyVerticalReaction"),
)

type Storey struct {
	domain.EntityCore
	StoreyElevation           float64
	StoreyMass                float64
	StoreyHorizontalReactionX string
	StoreyHorizontalReactionY string
	StoreyVerticalReaction    string
}

func NewStorey(raw map[string]any) (*Storey, error) {
	r := newReader(storeySchema, raw)
	s := &Storey{
		EntityCore:                readCore(r, TypeStorey, domain.DomainStructuralAnalytical),
		StoreyElevation:           r.requiredFloat("storey_elevation"),
		StoreyMass:                r.requiredFloat("storey_mass"),
		StoreyHorizontalReactionX: r.str("storey_horizontal_reaction_x"),
		StoreyHorizontalReactionY: r.str("storey_horizontal_reaction_y"),
		StoreyVerticalReaction:    r.str("storey_vertical_reaction"),
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storey) Schema() *codec.Schema { return storeySchema }

func (s *Storey) Canonical() codec.Record {
	rec := codec.Record{
		"storey_elevation":             s.StoreyElevation,
		"storey_mass":                  s.StoreyMass,
		"storey_horizontal_reaction_x": optString(s.StoreyHorizontalReactionX),
		"storey_horizontal_reaction_y": optString(s.StoreyHorizontalReactionY),
		"storey_vertical_reaction":     optString(s.StoreyVerticalReaction),
	}
	s.PutCanonical(rec)
	return rec
}

// --- segment ---

var segmentSchema = domain.EntityCoreSchema.Extend(TypeSegment,
	codec.F("position", "Position"),
	codec.F("segment_type", "SegmentType"),
)

// Segment is one piece of a member or surface outline. Its geometry and
// nodes are linked through relationships.
type Segment struct {
	domain.EntityCore
	Position    int
	SegmentType string
}

func NewSegment(raw map[string]any) (*Segment, error) {
	r := newReader(segmentSchema, raw)
	s := &Segment{
		EntityCore:  readCore(r, TypeSegment, domain.DomainStructuralAnalytical),
		Position:    r.requiredInt("position"),
		SegmentType: r.enum("segment_type", SegmentTypes, true),
	}
	if s.Position < 0 {
		r.fail("position", "must be non-negative")
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Segment) Schema() *codec.Schema { return segmentSchema }

func (s *Segment) Canonical() codec.Record {
	rec := codec.Record{
		"position":     s.Position,
		"segment_type": s.SegmentType,
	}
	s.PutCanonical(rec)
	return rec
}
