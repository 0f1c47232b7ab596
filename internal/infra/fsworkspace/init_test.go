package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/infra/config"
	"github.com/aalvaropc/xmigraph/internal/infra/payloadfile"
	"github.com/aalvaropc/xmigraph/internal/loader"
	"github.com/aalvaropc/xmigraph/internal/shapes"
)

func TestInitializer_Init_CreatesWorkspace(t *testing.T) {
	tmp := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertExists(t, filepath.Join(tmp, "xmigraph.yaml"))
	assertExists(t, filepath.Join(tmp, "models", "demo.json"))
	assertExists(t, filepath.Join(tmp, "exports"))
	assertExists(t, filepath.Join(tmp, ".xmigraph", "logs"))

	cfg, err := config.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("template config does not load: %v", err)
	}
	if cfg != domain.DefaultConfig() {
		t.Fatalf("template config differs from defaults: %+v", cfg)
	}
}

func TestInitializer_DemoModelLoadsCleanly(t *testing.T) {
	tmp := t.TempDir()
	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	p, err := payloadfile.NewSource().ReadPayload(filepath.Join(tmp, "models", "demo.json"))
	if err != nil {
		t.Fatalf("ReadPayload error: %v", err)
	}
	m := loader.New(shapes.Default()).Load(p)
	if m.Errors().Len() != 0 {
		t.Fatalf("demo model has load errors: %+v", m.Errors().Entries())
	}
	if len(m.Entities()) != 4 || len(m.Relationships()) != 3 {
		t.Fatalf("unexpected demo graph: %d entities, %d relationships", len(m.Entities()), len(m.Relationships()))
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "xmigraph.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing xmigraph.yaml: %v", err)
	}

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read xmigraph.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected xmigraph.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}
	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read xmigraph.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "xmigraph:") {
		t.Fatalf("expected xmigraph.yaml overwritten with template, got %q", string(b))
	}
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s, stat err=%v", path, err)
	}
}
