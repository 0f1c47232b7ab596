package shapes

import (
	"sync"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/registry"
)

func entity[T domain.Entity](fn func(map[string]any) (T, error)) registry.EntityConstructor {
	return func(raw map[string]any) (domain.Entity, error) {
		v, err := fn(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

var entityConstructors = map[string]registry.EntityConstructor{
	TypeStructuralMaterial:        entity(NewStructuralMaterial),
	TypeCrossSection:              entity(NewCrossSection),
	TypeStructuralCurveMember:     entity(NewStructuralCurveMember),
	TypeStructuralSurfaceMember:   entity(NewStructuralSurfaceMember),
	TypeStructuralPointConnection: entity(NewStructuralPointConnection),
	TypeStorey:                    entity(NewStorey),
	TypeSegment:                   entity(NewSegment),
	TypeBeam:                      entity(NewBeam),
	TypeColumn:                    entity(NewColumn),
	TypeSlab:                      entity(NewSlab),
	TypeWall:                      entity(NewWall),
	TypePoint3D:                   entity(NewPoint3D),
	TypeLine3D:                    entity(NewLine3D),
	TypeArc3D:                     entity(NewArc3D),
	TypeUnit:                      entity(NewUnit),
}

// Register adds every entity and relationship shape to reg.
func Register(reg *registry.Registry) error {
	for name, fn := range entityConstructors {
		if err := reg.RegisterEntity(name, fn); err != nil {
			return err
		}
	}
	for _, k := range linkKinds {
		k := k
		err := reg.RegisterRelationship(k.entityType, func(raw map[string]any, src, tgt domain.Entity) (domain.Relationship, error) {
			l, err := k.build(raw, src, tgt)
			if err != nil {
				return nil, err
			}
			return l, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

var (
	defaultOnce sync.Once
	defaultReg  *registry.Registry
)

// Default returns a sealed registry with the full catalogue. It is built
// once per process.
func Default() *registry.Registry {
	defaultOnce.Do(func() {
		reg := registry.New()
		if err := Register(reg); err != nil {
			// Only reachable through a duplicate name in this package.
			panic(err)
		}
		reg.Seal()
		defaultReg = reg
	})
	return defaultReg
}
