package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/infra/config"
	"github.com/aalvaropc/xmigraph/internal/ports"
)

// Finder walks upward from a start directory until it finds the workspace
// marker file.
type Finder struct {
	Marker string
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func NewFinder() *Finder {
	return &Finder{Marker: config.FileName}
}

// FindRoot returns the closest ancestor of start (inclusive) holding the
// marker. A file path is treated as its parent directory.
func (f *Finder) FindRoot(start string) (string, error) {
	if start == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("start directory is empty"),
		}
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindExecution,
			Path: start,
			Err:  err,
		}
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	marker := f.Marker
	if marker == "" {
		marker = config.FileName
	}

	for dir = filepath.Clean(dir); ; {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Path: start,
				Err:  domain.ErrNotFound,
			}
		}
		dir = parent
	}
}

// Locate finds the workspace root from start and loads its config.
func (f *Finder) Locate(start string) (string, domain.Config, error) {
	root, err := f.FindRoot(start)
	if err != nil {
		return "", domain.DefaultConfig(), err
	}
	cfg, err := config.LoadConfig(root)
	if err != nil {
		return root, cfg, err
	}
	return root, cfg, nil
}
