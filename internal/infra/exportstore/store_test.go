package exportstore

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/infra/payloadfile"
	"github.com/aalvaropc/xmigraph/internal/shapes"
)

func fixedNow() time.Time {
	return time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
}

func sampleModel(t *testing.T) *domain.Model {
	t.Helper()
	m := domain.NewModel()
	m.Name = "Tower Block A"
	m.XmiVersion = "1.0"

	n, err := shapes.NewStructuralPointConnection(map[string]any{
		"ID":    "n1",
		"Point": map[string]any{"X": 1.0, "Y": 2.0, "Z": 0.0},
	})
	if err != nil {
		t.Fatalf("build entity: %v", err)
	}
	if err := m.AppendEntity(n); err != nil {
		t.Fatalf("append: %v", err)
	}
	return m
}

func TestSaveExport_WritesJSONFile(t *testing.T) {
	root := t.TempDir()
	store := New(root, domain.DefaultConfig(), WithNow(fixedNow))

	id, err := store.SaveExport(sampleModel(t), domain.ExportOptions{Mode: codec.Verbose})
	if err != nil {
		t.Fatalf("SaveExport error: %v", err)
	}
	if id != "20260203T101112Z_tower-block-a" {
		t.Fatalf("unexpected id %q", id)
	}

	b, err := os.ReadFile(filepath.Join(root, "exports", id+".json"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	p, err := codec.ReadPayload(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if p.Name != "Tower Block A" || len(p.Entities) != 1 {
		t.Fatalf("unexpected payload: %+v", p)
	}
	rec := p.Entities[0].(map[string]any)
	if _, ok := rec["Description"]; !ok {
		t.Fatalf("verbose export should keep absent fields as null: %v", rec)
	}
}

func TestSaveExport_Msgpack(t *testing.T) {
	root := t.TempDir()
	store := New(root, domain.DefaultConfig(), WithNow(fixedNow))

	id, err := store.SaveExport(sampleModel(t), domain.ExportOptions{Format: domain.FormatMsgpack, Name: "custom"})
	if err != nil {
		t.Fatalf("SaveExport error: %v", err)
	}

	f, err := os.Open(filepath.Join(root, "exports", id+".msgpack"))
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	p, err := payloadfile.Decode(f, payloadfile.EncodingMsgpack)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(p.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(p.Entities))
	}
}

func TestSaveExport_IndexLines(t *testing.T) {
	root := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Paths.ExportsDir = "out"
	store := New(root, cfg, WithNow(fixedNow), WithIndex(true))

	m := sampleModel(t)
	if _, err := store.SaveExport(m, domain.ExportOptions{}); err != nil {
		t.Fatalf("SaveExport error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(root, "out", "index.jsonl"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var e IndexEntry
	if err := json.Unmarshal(bytes.TrimSpace(b), &e); err != nil {
		t.Fatalf("decode index: %v", err)
	}
	if e.Entities != 1 || e.Format != "json" || e.Mode != "compact" {
		t.Fatalf("unexpected index entry: %+v", e)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 || list[0].ID != e.ID {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestSaveExport_NoIndexWhenDisabled(t *testing.T) {
	root := t.TempDir()
	store := New(root, domain.DefaultConfig(), WithIndex(false))

	if _, err := store.SaveExport(sampleModel(t), domain.ExportOptions{}); err != nil {
		t.Fatalf("SaveExport error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "exports", "index.jsonl")); !os.IsNotExist(err) {
		t.Fatalf("expected no index file, stat err=%v", err)
	}
	list, err := store.List()
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v (err=%v)", list, err)
	}
}

func TestSaveExport_NilModel(t *testing.T) {
	store := New(t.TempDir(), domain.DefaultConfig())
	_, err := store.SaveExport(nil, domain.ExportOptions{})
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected KindInvalidInput, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Tower Block A":  "tower-block-a",
		"  --x__y..z-- ": "x-y-z",
		"Über":           "ber",
		"":               "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
