package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/infra/config"
	"github.com/aalvaropc/xmigraph/internal/infra/exportstore"
	"github.com/aalvaropc/xmigraph/internal/infra/logger"
	"github.com/aalvaropc/xmigraph/internal/infra/payloadfile"
	"github.com/aalvaropc/xmigraph/internal/infra/sqlitestore"
	"github.com/aalvaropc/xmigraph/internal/infra/workspacefinder"
	"github.com/aalvaropc/xmigraph/internal/loader"
	"github.com/aalvaropc/xmigraph/internal/shapes"
	"github.com/aalvaropc/xmigraph/internal/usecase"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config
	// detected is false when no xmigraph.yaml was found and defaults are in use.
	detected bool

	source  *payloadfile.Source
	loader  *loader.Loader
	exports *exportstore.Store
}

// loadWorkspace resolves the workspace from the flag or the working
// directory. Outside a workspace it falls back to the working directory
// with default settings unless required is set.
func loadWorkspace(workspaceFlag string, required bool) (*workspaceCtx, error) {
	root, detected, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		if required {
			return nil, err
		}
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("get working directory: %w", wdErr)
		}
		root = wd
	}

	cfg := domain.DefaultConfig()
	if detected {
		if cfg, err = config.LoadConfig(root); err != nil {
			return nil, err
		}
	}

	return &workspaceCtx{
		root:     root,
		cfg:      cfg,
		detected: detected,
		source:   payloadfile.NewSource(payloadfile.WithModelsDir(cfg.Paths.ModelsDir)),
		loader:   loader.New(shapes.Default(), loader.WithLogger(logger.L())),
		exports:  exportstore.New(root, cfg),
	}, nil
}

func (ws *workspaceCtx) loadModel() *usecase.LoadModel {
	return usecase.NewLoadModel(ws.source, ws.loader)
}

func (ws *workspaceCtx) openStore() (*sqlitestore.Store, error) {
	p := ws.cfg.Paths.Database
	if !filepath.IsAbs(p) {
		p = filepath.Join(ws.root, p)
	}
	return sqlitestore.Open(p)
}

// resolveWorkspaceRoot reports whether the returned root holds xmigraph.yaml.
func resolveWorkspaceRoot(workspaceFlag string) (string, bool, error) {
	if w := strings.TrimSpace(workspaceFlag); w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", false, fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, fileExists(filepath.Join(abs, config.FileName)), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}
	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		return "", false, fmt.Errorf("workspace not found from %q (tip: run `xmigraph init`): %w", wd, err)
	}
	return root, true, nil
}

// resolveModelPath accepts a file path, a file name under the models
// dir (with or without extension) or a model Name.
func resolveModelPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("model is required")
	}

	if looksLikePath(in) || fileExists(in) {
		p := in
		if !filepath.IsAbs(p) && !fileExists(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	modelsDir := ws.cfg.Paths.ModelsDir
	if !filepath.IsAbs(modelsDir) {
		modelsDir = filepath.Join(ws.root, modelsDir)
	}
	candidates := []string{in}
	if filepath.Ext(in) == "" {
		for _, ext := range modelExts {
			candidates = append(candidates, in+ext)
		}
	}
	for _, c := range candidates {
		if p := filepath.Join(modelsDir, c); fileExists(p) {
			return p, nil
		}
	}

	if refs, err := ws.source.ListModels(ws.root); err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", fmt.Errorf("model %q not found in %q", in, modelsDir)
}

var modelExts = []string{".json", ".yaml", ".yml", ".msgpack"}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
