package usecase

import (
	"context"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/loader"
	"github.com/aalvaropc/xmigraph/internal/ports"
)

// PersistModel moves models between documents and a graph store.
type PersistModel struct {
	load   *LoadModel
	loader *loader.Loader
	store  ports.GraphStore
}

func NewPersistModel(load *LoadModel, ld *loader.Loader, store ports.GraphStore) *PersistModel {
	return &PersistModel{load: load, loader: ld, store: store}
}

// Save loads the document at path and stores the resulting model.
func (uc *PersistModel) Save(ctx context.Context, path string) (int64, *domain.Model, error) {
	m, err := uc.load.Execute(ctx, path)
	if err != nil {
		return 0, nil, err
	}
	id, err := uc.store.SaveModel(ctx, m)
	if err != nil {
		return 0, m, err
	}
	return id, m, nil
}

// Restore rebuilds a stored model by running its payload through the loader.
func (uc *PersistModel) Restore(ctx context.Context, id int64) (*domain.Model, error) {
	p, err := uc.store.LoadPayload(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.loader.Load(p), nil
}

func (uc *PersistModel) List(ctx context.Context) ([]domain.StoredModel, error) {
	return uc.store.ListModels(ctx)
}
