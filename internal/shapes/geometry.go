package shapes

import (
	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
)

const (
	TypePoint3D = "XmiPoint3D"
	TypeLine3D  = "XmiLine3D"
	TypeArc3D   = "XmiArc3D"
)

var (
	point3DSchema = domain.EntityCoreSchema.Extend(TypePoint3D,
		codec.F("x", "X"),
		codec.F("y", "Y"),
		codec.F("z", "Z"),
	)
	line3DSchema = domain.EntityCoreSchema.Extend(TypeLine3D,
		codec.F("start_point", "StartPoint"),
		codec.F("end_point", "EndPoint"),
	)
	arc3DSchema = domain.EntityCoreSchema.Extend(TypeArc3D,
		codec.F("start_point", "StartPoint"),
		codec.F("end_point", "EndPoint"),
		codec.F("center_point", "CenterPoint"),
		codec.F("radius", "Radius"),
	)
)

type Point3D struct {
	domain.EntityCore
	X, Y, Z float64
}

func NewPoint3D(raw map[string]any) (*Point3D, error) {
	r := newReader(point3DSchema, raw)
	p := &Point3D{
		EntityCore: readCore(r, TypePoint3D, domain.DomainGeometry),
		X:          r.requiredFloat("x"),
		Y:          r.requiredFloat("y"),
		Z:          r.requiredFloat("z"),
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Point3D) Schema() *codec.Schema { return point3DSchema }

func (p *Point3D) Canonical() codec.Record {
	rec := codec.Record{"x": p.X, "y": p.Y, "z": p.Z}
	p.PutCanonical(rec)
	return rec
}

// Line3D may carry its end points inline; in a graph they are usually
// linked as XmiPoint3D entities instead.
type Line3D struct {
	domain.EntityCore
	StartPoint *Point
	EndPoint   *Point
}

func NewLine3D(raw map[string]any) (*Line3D, error) {
	r := newReader(line3DSchema, raw)
	l := &Line3D{
		EntityCore: readCore(r, TypeLine3D, domain.DomainGeometry),
		StartPoint: r.point("start_point", false),
		EndPoint:   r.point("end_point", false),
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Line3D) Schema() *codec.Schema { return line3DSchema }

func (l *Line3D) Canonical() codec.Record {
	rec := codec.Record{
		"start_point": pointValue(l.StartPoint),
		"end_point":   pointValue(l.EndPoint),
	}
	l.PutCanonical(rec)
	return rec
}

type Arc3D struct {
	domain.EntityCore
	StartPoint  *Point
	EndPoint    *Point
	CenterPoint *Point
	Radius      *float64
}

func NewArc3D(raw map[string]any) (*Arc3D, error) {
	r := newReader(arc3DSchema, raw)
	a := &Arc3D{
		EntityCore:  readCore(r, TypeArc3D, domain.DomainGeometry),
		StartPoint:  r.point("start_point", false),
		EndPoint:    r.point("end_point", false),
		CenterPoint: r.point("center_point", false),
		Radius:      r.nonNegative("radius"),
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arc3D) Schema() *codec.Schema { return arc3DSchema }

func (a *Arc3D) Canonical() codec.Record {
	rec := codec.Record{
		"start_point":  pointValue(a.StartPoint),
		"end_point":    pointValue(a.EndPoint),
		"center_point": pointValue(a.CenterPoint),
		"radius":       floatPtr(a.Radius),
	}
	a.PutCanonical(rec)
	return rec
}
