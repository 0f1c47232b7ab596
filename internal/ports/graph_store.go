package ports

import (
	"context"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
)

// GraphStore keeps loaded models in a queryable database.
type GraphStore interface {
	SaveModel(ctx context.Context, m *domain.Model) (id int64, err error)
	ListModels(ctx context.Context) ([]domain.StoredModel, error)
	LoadPayload(ctx context.Context, id int64) (codec.Payload, error)
}
