package usecase

import (
	"context"
	"fmt"

	"github.com/aalvaropc/xmigraph/internal/domain"
)

// InvalidModelError reports a document that loaded with rejected records.
type InvalidModelError struct {
	Path    string
	Entries []domain.ErrorLogEntry
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("%s: %d record(s) rejected", e.Path, len(e.Entries))
}

// ValidateModel loads a document and fails when any record was rejected.
type ValidateModel struct {
	load *LoadModel
}

func NewValidateModel(load *LoadModel) *ValidateModel {
	return &ValidateModel{load: load}
}

// Execute returns the model summary. The summary is filled even when the
// returned error is an *InvalidModelError.
func (uc *ValidateModel) Execute(ctx context.Context, path string) (domain.Summary, error) {
	m, err := uc.load.Execute(ctx, path)
	if err != nil {
		return domain.Summary{}, err
	}
	sum := m.Summary()
	if m.Errors().Len() > 0 {
		return sum, &InvalidModelError{Path: path, Entries: m.Errors().Entries()}
	}
	return sum, nil
}
