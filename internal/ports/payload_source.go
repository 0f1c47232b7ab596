package ports

import (
	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
)

// PayloadSource reads exported documents from a source (e.g., filesystem).
type PayloadSource interface {
	ReadPayload(path string) (codec.Payload, error)
	ListModels(root string) ([]domain.ModelRef, error)
}
