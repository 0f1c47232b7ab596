package shapes

import (
	"github.com/google/uuid"

	"github.com/aalvaropc/xmigraph/internal/domain"
)

// readCore fills the shared entity fields. A missing ID gets a fresh UUID
// and a missing Name falls back to the ID. EntityType and the domain come
// from the shape, never from the record.
func readCore(r *reader, entityType string, dom domain.DomainType) domain.EntityCore {
	id := r.str("id")
	if id == "" {
		id = uuid.NewString()
	}
	name := r.str("name")
	if name == "" {
		name = id
	}
	return domain.EntityCore{
		ID:          id,
		Name:        name,
		IFCGUID:     r.str("ifcguid"),
		NativeID:    r.str("native_id"),
		Description: r.str("description"),
		EntityType:  entityType,
		Domain:      dom,
	}
}
