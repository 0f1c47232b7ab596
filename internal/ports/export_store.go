package ports

import "github.com/aalvaropc/xmigraph/internal/domain"

// ExportStore persists exported models.
type ExportStore interface {
	SaveExport(m *domain.Model, opts domain.ExportOptions) (id string, err error)
}
