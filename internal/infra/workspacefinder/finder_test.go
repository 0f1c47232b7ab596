package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/xmigraph/internal/domain"
)

func writeMarker(t *testing.T, root, content string) {
	t.Helper()
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "xmigraph.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestFindRoot_FindsWorkspaceFromNestedDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	nested := filepath.Join(root, "models", "2024", "q1")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeMarker(t, root, "xmigraph:\n  export:\n    mode: compact\n")

	got, err := NewFinder().FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestFindRoot_FromFilePath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	writeMarker(t, root, "")
	model := filepath.Join(root, "model.json")
	if err := os.WriteFile(model, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewFinder().FindRoot(model)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	tmp := t.TempDir()
	_ = os.MkdirAll(filepath.Join(tmp, "a", "b"), 0o755)

	_, err := NewFinder().FindRoot(filepath.Join(tmp, "a", "b"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestFindRoot_EmptyStart(t *testing.T) {
	_, err := NewFinder().FindRoot("")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got: %v", err)
	}
}

func TestLocate_LoadsConfig(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	writeMarker(t, root, "xmigraph:\n  load:\n    workers: 2\n")

	gotRoot, cfg, err := NewFinder().Locate(root)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if gotRoot != root {
		t.Fatalf("expected root=%s, got=%s", root, gotRoot)
	}
	if cfg.Load.Workers != 2 {
		t.Fatalf("expected workers=2, got %d", cfg.Load.Workers)
	}
}
