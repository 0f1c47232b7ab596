package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/loader"
	"github.com/aalvaropc/xmigraph/internal/infra/payloadfile"
	"github.com/aalvaropc/xmigraph/internal/shapes"
	"github.com/aalvaropc/xmigraph/internal/usecase"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	out, err := run(t, "init", root)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "workspace ready") {
		t.Fatalf("unexpected init output:\n%s", out)
	}
	return root
}

func writeModel(t *testing.T, root, name, body string) string {
	t.Helper()
	p := filepath.Join(root, "models", name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return p
}

const badModel = `{
  "Name": "Broken",
  "Entities": [{"ID": "p1", "EntityType": "XmiPile"}],
  "Relationships": []
}`

// --- helpers ---

func TestLooksLikePath(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"demo", false},
		{"demo.json", false},
		{"./demo.json", true},
		{"models/demo.json", true},
		{"/abs/path/demo.json", true},
	}
	for _, c := range cases {
		if got := looksLikePath(c.input); got != c.want {
			t.Errorf("looksLikePath(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestFileExists(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "exists.txt")
	if err := os.WriteFile(p, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !fileExists(p) {
		t.Errorf("expected fileExists=true for %s", p)
	}
	if fileExists(filepath.Join(tmp, "not_there.txt")) {
		t.Error("expected fileExists=false for non-existent file")
	}
	if fileExists(tmp) {
		t.Error("expected fileExists=false for a directory")
	}
}

func TestExportOptions(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Export.Mode = "verbose"
	cfg.Export.Format = domain.FormatMsgpack

	opts, err := exportOptions(cfg, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Mode != codec.Verbose || opts.Format != domain.FormatMsgpack {
		t.Fatalf("expected config defaults, got %+v", opts)
	}

	opts, err = exportOptions(cfg, "compact", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Mode != codec.Compact || opts.Format != domain.FormatJSON {
		t.Fatalf("expected flag overrides, got %+v", opts)
	}

	if _, err := exportOptions(cfg, "loud", ""); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if _, err := exportOptions(cfg, "", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestParseStoreID(t *testing.T) {
	if id, err := parseStoreID("12"); err != nil || id != 12 {
		t.Fatalf("parseStoreID(12) = %d, %v", id, err)
	}
	for _, in := range []string{"", "0", "-3", "abc"} {
		if _, err := parseStoreID(in); !domain.IsKind(err, domain.KindInvalidInput) {
			t.Errorf("parseStoreID(%q): expected KindInvalidInput, got %v", in, err)
		}
	}
}

func TestResolveModelPath(t *testing.T) {
	root := newWorkspace(t)
	ws, err := loadWorkspace(root, true)
	if err != nil {
		t.Fatalf("loadWorkspace: %v", err)
	}
	demo := filepath.Join(root, "models", "demo.json")

	for _, arg := range []string{"demo", "demo.json", "Demo Frame", "models/demo.json", demo} {
		got, err := resolveModelPath(ws, arg)
		if err != nil {
			t.Fatalf("resolveModelPath(%q): %v", arg, err)
		}
		if got != demo {
			t.Errorf("resolveModelPath(%q) = %q, want %q", arg, got, demo)
		}
	}

	if _, err := resolveModelPath(ws, "nope"); err == nil {
		t.Fatalf("expected error for unknown model")
	}
}

func TestResolveWorkspaceRoot_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	got, detected, err := resolveWorkspaceRoot(tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tmp || detected {
		t.Errorf("expected %q (not detected), got %q (detected=%v)", tmp, got, detected)
	}
}

// --- command structure ---

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range newRootCmd().Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"init", "load", "validate", "export", "models", "types", "units", "query", "relations", "store", "watch", "version"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
}

// --- end to end ---

func TestLoad_PrintsSummary(t *testing.T) {
	root := newWorkspace(t)

	out, err := run(t, "-w", root, "load", "demo", "--errors")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, want := range []string{"Demo Frame", "XmiStructuralCurveMember", "XmiHasStructuralPointConnection"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestLoad_AllAsJSON(t *testing.T) {
	root := newWorkspace(t)
	writeModel(t, root, "broken.json", badModel)

	out, err := run(t, "-w", root, "load", "--all", "--format", "json", "--errors")
	if err != nil {
		t.Fatalf("load --all: %v", err)
	}

	var lines []batchLine
	if err := json.Unmarshal([]byte(out), &lines); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 models, got %d", len(lines))
	}
	// ListModels sorts by Name: "Broken" < "Demo Frame".
	if lines[0].Summary.ErrorCount != 1 || len(lines[0].Errors) != 1 {
		t.Errorf("expected one logged error for broken model, got %+v", lines[0])
	}
	if lines[1].Summary.EntityCount != 4 || lines[1].Summary.RelationshipCount != 3 {
		t.Errorf("unexpected demo summary: %+v", lines[1].Summary)
	}
}

func TestLoad_RequiresArgs(t *testing.T) {
	if _, err := run(t, "-w", t.TempDir(), "load"); err == nil {
		t.Fatalf("expected error without models")
	}
}

func TestValidate(t *testing.T) {
	root := newWorkspace(t)
	writeModel(t, root, "broken.json", badModel)

	out, err := run(t, "-w", root, "validate", "demo")
	if err != nil {
		t.Fatalf("validate demo: %v", err)
	}
	if !strings.Contains(out, "OK (4 entities, 3 relationships)") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, "-w", root, "validate", "broken")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(out, "type not recognized") {
		t.Errorf("expected rejected record in output:\n%s", out)
	}
}

func TestExport_WritesFileAndIndex(t *testing.T) {
	root := newWorkspace(t)

	if _, err := run(t, "-w", root, "export", "demo", "--mode", "verbose", "--format", "msgpack"); err != nil {
		t.Fatalf("export: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(root, "exports", "*_demo-frame.msgpack"))
	if len(matches) != 1 {
		t.Fatalf("expected one msgpack export, got %v", matches)
	}
	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	p, err := payloadfile.Decode(f, payloadfile.EncodingMsgpack)
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if p.Name != "Demo Frame" || len(p.Entities) != 4 {
		t.Fatalf("unexpected export: %+v", p)
	}

	out, err := run(t, "-w", root, "export", "--list")
	if err != nil {
		t.Fatalf("export --list: %v", err)
	}
	if !strings.Contains(out, "verbose/msgpack") {
		t.Errorf("expected index entry in output:\n%s", out)
	}
}

func TestQuery(t *testing.T) {
	root := newWorkspace(t)

	out, err := run(t, "-w", root, "query", "demo", "$.Name")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if strings.TrimSpace(out) != `"Demo Frame"` {
		t.Errorf("unexpected output: %q", out)
	}

	if _, err := run(t, "-w", root, "query", "demo", "$.Entities[*].ID", "--count", "4"); err != nil {
		t.Fatalf("expected count check to pass: %v", err)
	}
	out, err = run(t, "-w", root, "query", "demo", "$.Entities[*].ID", "--count", "1")
	if err == nil {
		t.Fatalf("expected count check to fail")
	}
	if !strings.Contains(out, "expected 1 match(es), got 4") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRelations(t *testing.T) {
	root := newWorkspace(t)

	out, err := run(t, "-w", root, "relations", "demo", "beam-1")
	if err != nil {
		t.Fatalf("relations: %v", err)
	}
	for _, want := range []string{"outgoing (3)", "rel-2  XmiHasStructuralPointConnection  beam-1 -> node-1", "incoming (0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = run(t, "-w", root, "relations", "demo", "mat-1", "--to")
	if err != nil {
		t.Fatalf("relations --to: %v", err)
	}
	if !strings.Contains(out, "incoming (1)") || strings.Contains(out, "outgoing") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := run(t, "-w", root, "relations", "demo", "ghost"); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound for unknown entity, got %v", err)
	}
}

func TestUnits(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "-w", dir, "units", "convert", "1000", "mm", "m")
	if err != nil {
		t.Fatalf("units convert: %v", err)
	}
	if strings.TrimSpace(out) != "1 m" {
		t.Errorf("unexpected output: %q", out)
	}

	out, err = run(t, "-w", dir, "units", "convert", "0.001", "m", "--display")
	if err != nil {
		t.Fatalf("units convert --display: %v", err)
	}
	if strings.TrimSpace(out) != "1 mm" {
		t.Errorf("unexpected output: %q", out)
	}

	if _, err := run(t, "-w", dir, "units", "convert", "1", "mm", "mm^2"); err == nil {
		t.Fatalf("expected error across unit families")
	}

	out, err = run(t, "-w", dir, "units", "list")
	if err != nil {
		t.Fatalf("units list: %v", err)
	}
	if !strings.Contains(out, "in^4   inertia") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestStore_Lifecycle(t *testing.T) {
	root := newWorkspace(t)

	out, err := run(t, "-w", root, "store", "save", "demo")
	if err != nil {
		t.Fatalf("store save: %v", err)
	}
	if !strings.Contains(out, "#1") {
		t.Errorf("expected id in output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(root, ".xmigraph", "models.db")); err != nil {
		t.Fatalf("expected database file: %v", err)
	}

	out, err = run(t, "-w", root, "store", "list")
	if err != nil {
		t.Fatalf("store list: %v", err)
	}
	if !strings.Contains(out, "Demo Frame") {
		t.Errorf("expected stored model in list:\n%s", out)
	}

	out, err = run(t, "-w", root, "store", "show", "1")
	if err != nil {
		t.Fatalf("store show: %v", err)
	}
	if !strings.Contains(out, "XmiStructuralPointConnection") {
		t.Errorf("expected summary in output:\n%s", out)
	}

	if _, err := run(t, "-w", root, "store", "rm", "1"); err != nil {
		t.Fatalf("store rm: %v", err)
	}
	if _, err := run(t, "-w", root, "store", "show", "1"); err == nil {
		t.Fatalf("expected error after delete")
	}
}

func TestModelsList(t *testing.T) {
	root := newWorkspace(t)
	writeModel(t, root, "broken.json", badModel)

	out, err := run(t, "-w", root, "models", "list")
	if err != nil {
		t.Fatalf("models list: %v", err)
	}
	broken := strings.Index(out, "- Broken  (models/broken.json)")
	demo := strings.Index(out, "- Demo Frame  (models/demo.json)")
	if broken < 0 || demo < 0 || broken > demo {
		t.Errorf("expected both models sorted by name:\n%s", out)
	}
}

func TestTypesAndVersion(t *testing.T) {
	out, err := run(t, "-w", t.TempDir(), "types")
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	for _, want := range []string{"XmiStructuralMaterial", "XmiHasStructuralCurveMember", "XmiRelationship", "D B T t r"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = run(t, "-w", t.TempDir(), "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "xmigraph ") {
		t.Errorf("unexpected version output: %q", out)
	}
}

// --- watch ---

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestWatchModel_ReloadsOnChange(t *testing.T) {
	root := newWorkspace(t)
	path := writeModel(t, root, "live.json", `{"Name": "Live", "Entities": []}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	load := usecase.NewLoadModel(payloadfile.NewSource(), loader.New(shapes.Default()))
	done := make(chan error, 1)
	go func() { done <- watchModel(ctx, &out, load, path, false) }()

	waitFor(t, &out, "entities: 0")

	body := `{"Name": "Live", "Entities": [{"ID": "m1", "EntityType": "XmiStructuralMaterial", "MaterialType": "Steel"}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("rewrite model: %v", err)
	}
	waitFor(t, &out, "entities: 1")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watchModel returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watchModel did not stop after cancel")
	}
}

func waitFor(t *testing.T, out *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in:\n%s", want, out.String())
}
