package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/xmigraph/internal/domain"
)

func copyFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func TestLoadConfig_Full(t *testing.T) {
	cfg, err := LoadConfig(copyFixture(t, "full.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Export.Mode != "verbose" {
		t.Fatalf("expected mode=verbose, got %q", cfg.Export.Mode)
	}
	if cfg.Export.Format != domain.FormatMsgpack {
		t.Fatalf("expected format=msgpack, got %q", cfg.Export.Format)
	}
	if cfg.Export.Index {
		t.Fatalf("expected index=false")
	}
	if cfg.Paths.ModelsDir != "input" || cfg.Paths.ExportsDir != "out" || cfg.Paths.Database != "data/graph.db" {
		t.Fatalf("unexpected paths: %+v", cfg.Paths)
	}
	if cfg.Load.Workers != 8 {
		t.Fatalf("expected workers=8, got %d", cfg.Load.Workers)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := t.TempDir()
	content := []byte("xmigraph:\n  export:\n    index: false\n")
	if err := os.WriteFile(filepath.Join(root, FileName), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	def := domain.DefaultConfig()
	if cfg.Export.Index {
		t.Fatalf("expected index=false")
	}
	if cfg.Export.Mode != def.Export.Mode || cfg.Export.Format != def.Export.Format {
		t.Fatalf("expected default export settings, got %+v", cfg.Export)
	}
	if cfg.Paths != def.Paths {
		t.Fatalf("expected default paths, got %+v", cfg.Paths)
	}
	if cfg.Load.Workers != def.Load.Workers {
		t.Fatalf("expected default workers, got %d", cfg.Load.Workers)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("xmigraph: ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := LoadConfig(root)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}

func TestLoadConfig_BadMode(t *testing.T) {
	_, err := LoadConfig(copyFixture(t, "bad_mode.yaml"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
