package ports

import "github.com/aalvaropc/xmigraph/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
