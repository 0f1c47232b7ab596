package exportstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/infra/payloadfile"
	"github.com/aalvaropc/xmigraph/internal/ports"
)

const (
	defaultExportsDir = "exports"
	indexFile         = "index.jsonl"
)

// Store writes exported models as files under <root>/<exports_dir>.
type Store struct {
	rootDir    string
	exportsDir string
	writeIndex bool
	now        func() time.Time
}

type Option func(*Store)

// WithIndex appends one line per export to exports/index.jsonl.
func WithIndex(enabled bool) Option {
	return func(s *Store) { s.writeIndex = enabled }
}

func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(root string, cfg domain.Config, opts ...Option) *Store {
	dir := cfg.Paths.ExportsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultExportsDir
	}

	s := &Store{
		rootDir:    root,
		exportsDir: dir,
		writeIndex: cfg.Export.Index,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ExportStore = (*Store)(nil)

// Dir is the absolute exports directory.
func (s *Store) Dir() string {
	if filepath.IsAbs(s.exportsDir) {
		return s.exportsDir
	}
	return filepath.Join(s.rootDir, s.exportsDir)
}

// SaveExport encodes m and writes it as <timestamp>_<slug><ext>. The
// returned id is the file name without extension.
func (s *Store) SaveExport(m *domain.Model, opts domain.ExportOptions) (string, error) {
	if m == nil {
		return "", &domain.OpError{
			Op:   "exportstore.save",
			Kind: domain.KindInvalidInput,
			Err:  errors.New("model is nil"),
		}
	}
	format := opts.Format
	if format == "" {
		format = domain.FormatJSON
	}

	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "exportstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	name := opts.Name
	if strings.TrimSpace(name) == "" {
		name = m.Name
	}
	slug := slugify(name)
	if slug == "" {
		slug = "model"
	}

	ts := s.now().UTC()
	id := fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug)
	filename := id + format.Ext()
	path := filepath.Join(dir, filename)

	b, err := payloadfile.Marshal(m.Export(opts.Mode), format)
	if err != nil {
		return "", &domain.OpError{
			Op:   "exportstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return "", &domain.OpError{
			Op:   "exportstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "exportstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, IndexEntry{
			ID:            id,
			File:          filename,
			Name:          m.Name,
			Mode:          opts.Mode.String(),
			Format:        string(format),
			Entities:      len(m.Entities()),
			Relationships: len(m.Relationships()),
			Errors:        m.Errors().Len(),
			CreatedAt:     ts,
		})
	}

	return id, nil
}

// IndexEntry is one line of exports/index.jsonl.
type IndexEntry struct {
	ID            string    `json:"id"`
	File          string    `json:"file"`
	Name          string    `json:"name"`
	Mode          string    `json:"mode"`
	Format        string    `json:"format"`
	Entities      int       `json:"entities"`
	Relationships int       `json:"relationships"`
	Errors        int       `json:"errors"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *Store) appendIndex(dir string, e IndexEntry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// List reads the export index, oldest first. A missing index is empty.
func (s *Store) List() ([]IndexEntry, error) {
	path := filepath.Join(s.Dir(), indexFile)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.OpError{
			Op:   "exportstore.list",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	var out []IndexEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e IndexEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			// skip torn lines
			continue
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return out, &domain.OpError{
			Op:   "exportstore.list",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return out, nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
