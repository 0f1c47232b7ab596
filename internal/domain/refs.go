package domain

import (
	"time"

	"github.com/aalvaropc/xmigraph/internal/codec"
)

// ModelRef points at a model document inside the workspace.
type ModelRef struct {
	Name string
	Path string
}

// ExportOptions controls how a model is written by an export store.
type ExportOptions struct {
	Mode   codec.Mode
	Format ExportFormat
	// Name overrides the model name used for the file slug.
	Name string
}

// StoredModel is a summary row of a model kept in a graph store.
type StoredModel struct {
	ID            int64
	Name          string
	XmiVersion    string
	Entities      int
	Relationships int
	Errors        int
	StoredAt      time.Time
}
