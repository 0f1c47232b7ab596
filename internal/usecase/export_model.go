package usecase

import (
	"context"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/ports"
)

// ExportModel loads a document and writes the re-encoded model, error log
// included, to an export store.
type ExportModel struct {
	load  *LoadModel
	store ports.ExportStore
}

func NewExportModel(load *LoadModel, store ports.ExportStore) *ExportModel {
	return &ExportModel{load: load, store: store}
}

func (uc *ExportModel) Execute(ctx context.Context, path string, opts domain.ExportOptions) (string, *domain.Model, error) {
	m, err := uc.load.Execute(ctx, path)
	if err != nil {
		return "", nil, err
	}
	id, err := uc.store.SaveExport(m, opts)
	if err != nil {
		return "", m, err
	}
	return id, m, nil
}
