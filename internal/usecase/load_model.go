package usecase

import (
	"context"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/loader"
	"github.com/aalvaropc/xmigraph/internal/ports"
)

// LoadModel reads a document and builds its model graph. Record-level
// failures end up in the model's error log; only unreadable documents
// return an error.
type LoadModel struct {
	source ports.PayloadSource
	loader *loader.Loader
}

func NewLoadModel(src ports.PayloadSource, ld *loader.Loader) *LoadModel {
	return &LoadModel{source: src, loader: ld}
}

func (uc *LoadModel) Execute(ctx context.Context, path string) (*domain.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := uc.source.ReadPayload(path)
	if err != nil {
		return nil, err
	}
	return uc.loader.Load(p), nil
}
