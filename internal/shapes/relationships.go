package shapes

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
)

const (
	TypeRelationship                 = "XmiRelationship"
	TypeHasGeometry                  = "XmiHasGeometry"
	TypeHasLine3D                    = "XmiHasLine3D"
	TypeHasPoint3D                   = "XmiHasPoint3D"
	TypeHasSegment                   = "XmiHasSegment"
	TypeHasCrossSection              = "XmiHasCrossSection"
	TypeHasStructuralMaterial        = "XmiHasStructuralMaterial"
	TypeHasStructuralPointConnection = "XmiHasStructuralPointConnection"
	TypeHasStructuralStorey          = "XmiHasStructuralStorey"
	TypeHasStructuralCurveMember     = "XmiHasStructuralCurveMember"
)

// linkKind describes one relationship shape: its defaults and what it may
// connect. A nil check accepts any entity.
type linkKind struct {
	entityType  string
	defaultName string
	defaultUML  string
	// endFlags adds the IsBegin/IsEnd fields.
	endFlags bool

	source     func(domain.Entity) bool
	sourceDesc string
	target     func(domain.Entity) bool
	targetDesc string

	schema *codec.Schema
}

var endFlagFields = []codec.Field{
	codec.F("is_begin", "IsBegin"),
	codec.F("is_end", "IsEnd"),
}

func is[T domain.Entity](e domain.Entity) bool {
	_, ok := e.(T)
	return ok
}

func inDomain(d domain.DomainType) func(domain.Entity) bool {
	return func(e domain.Entity) bool { return e.Core().Domain == d }
}

var linkKinds = []*linkKind{
	{entityType: TypeRelationship, defaultName: "relatesTo"},
	{
		entityType: TypeHasGeometry, defaultName: "hasGeometry", endFlags: true,
		target: inDomain(domain.DomainGeometry), targetDesc: "a geometry entity",
	},
	{entityType: TypeHasLine3D, defaultName: "hasLine3D", target: is[*Line3D], targetDesc: TypeLine3D},
	{entityType: TypeHasPoint3D, defaultName: "hasPoint3D", target: is[*Point3D], targetDesc: TypePoint3D},
	{entityType: TypeHasSegment, defaultName: "hasSegment", target: is[*Segment], targetDesc: TypeSegment},
	{entityType: TypeHasCrossSection, defaultName: "hasCrossSection", target: is[*CrossSection], targetDesc: TypeCrossSection},
	{
		entityType: TypeHasStructuralMaterial, defaultName: "hasStructuralMaterial",
		target: is[*StructuralMaterial], targetDesc: TypeStructuralMaterial,
	},
	{
		entityType: TypeHasStructuralPointConnection, defaultName: "hasStructuralPointConnection", endFlags: true,
		target: is[*StructuralPointConnection], targetDesc: TypeStructuralPointConnection,
	},
	{entityType: TypeHasStructuralStorey, defaultName: "hasStructuralStorey", target: is[*Storey], targetDesc: TypeStorey},
	{
		entityType: TypeHasStructuralCurveMember, defaultName: "hasStructuralCurveMember", defaultUML: "Association",
		source: inDomain(domain.DomainPhysical), sourceDesc: "a physical entity",
		target: is[*StructuralCurveMember], targetDesc: TypeStructuralCurveMember,
	},
}

func init() {
	for _, k := range linkKinds {
		if k.endFlags {
			k.schema = domain.RelationshipCoreSchema.Extend(k.entityType, endFlagFields...)
		} else {
			k.schema = domain.RelationshipCoreSchema.Extend(k.entityType)
		}
	}
}

// Link is a relationship between two loaded entities. All relationship
// shapes share this type and differ by EntityType and the checks applied
// when they are built.
type Link struct {
	domain.RelationshipCore
	// IsBegin and IsEnd are only carried by shapes that mark member ends.
	IsBegin *bool
	IsEnd   *bool

	kind *linkKind
}

func (l *Link) Schema() *codec.Schema { return l.kind.schema }

func (l *Link) Canonical() codec.Record {
	rec := codec.Record{}
	if l.kind.endFlags {
		rec["is_begin"] = boolPtr(l.IsBegin)
		rec["is_end"] = boolPtr(l.IsEnd)
	}
	l.PutCanonical(rec)
	return rec
}

// build constructs a Link of this kind. raw must not carry Source or
// Target; they arrive already resolved.
func (k *linkKind) build(raw map[string]any, source, target domain.Entity) (*Link, error) {
	if source == nil || target == nil {
		return nil, fmt.Errorf("%s: source and target must be resolved entities", k.entityType)
	}

	r := newReader(k.schema, raw)
	id := r.str("id")
	if id == "" {
		id = uuid.NewString()
	}
	name := r.str("name")
	if name == "" {
		name = k.defaultName
	}
	uml := r.str("uml_type")
	if uml == "" {
		uml = k.defaultUML
	}

	l := &Link{
		RelationshipCore: domain.RelationshipCore{
			ID:          id,
			Name:        name,
			Description: r.str("description"),
			EntityType:  k.entityType,
			UMLType:     uml,
			Source:      source,
			Target:      target,
		},
		kind: k,
	}
	if k.endFlags {
		l.IsBegin = r.optBool("is_begin")
		l.IsEnd = r.optBool("is_end")
	}

	if k.source != nil && !k.source(source) {
		r.fail("source", "must be %s, got %s", k.sourceDesc, source.Core().EntityType)
	}
	if k.target != nil && !k.target(target) {
		r.fail("target", "must be %s, got %s", k.targetDesc, target.Core().EntityType)
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return l, nil
}

// NewLink builds a relationship of the given discriminator.
func NewLink(entityType string, raw map[string]any, source, target domain.Entity) (*Link, error) {
	for _, k := range linkKinds {
		if k.entityType == entityType {
			return k.build(raw, source, target)
		}
	}
	return nil, fmt.Errorf("unknown relationship type %q", entityType)
}
