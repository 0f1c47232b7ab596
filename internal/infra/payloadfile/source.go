package payloadfile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/ports"
)

// Source reads model documents from the filesystem.
type Source struct {
	modelsDir string
}

type Option func(*Source)

func WithModelsDir(dir string) Option {
	return func(s *Source) {
		if strings.TrimSpace(dir) != "" {
			s.modelsDir = dir
		}
	}
}

func NewSource(opts ...Option) *Source {
	s := &Source{modelsDir: "models"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.PayloadSource = (*Source)(nil)

func (s *Source) ReadPayload(path string) (codec.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return codec.Payload{}, &domain.OpError{
			Op:   "payloadfile.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	p, err := Decode(f, EncodingFor(path))
	if err != nil {
		return codec.Payload{}, &domain.OpError{
			Op:   "payloadfile.decode",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  err,
		}
	}
	return p, nil
}

// ListModels returns the model documents directly under the models dir,
// sorted by name. A document without a Name is listed under its file stem.
func (s *Source) ListModels(root string) ([]domain.ModelRef, error) {
	dir := s.modelsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "payloadfile.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.ModelRef
	for _, e := range entries {
		if e.IsDir() || !isModelFile(e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())

		name := ""
		if doc, err := s.ReadPayload(p); err == nil {
			name = strings.TrimSpace(doc.Name)
		}
		if name == "" {
			name = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		refs = append(refs, domain.ModelRef{Name: name, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Name == refs[j].Name {
			return refs[i].Path < refs[j].Path
		}
		return refs[i].Name < refs[j].Name
	})
	return refs, nil
}
