// Package loader turns a parsed XMI payload into a domain.Model.
//
// Loading runs in two passes. Entities are built first; relationships are
// built second and may only point at entities that were built. A record
// that cannot be built is written to the model's error log and the load
// carries on, so Load never fails as a whole.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/registry"
)

const (
	msgUnrecognized = "type not recognized"
	msgUnresolved   = "missing source or target entity"
	msgValidation   = "validation failed"
	msgConstruction = "construction failed"
)

type Loader struct {
	reg *registry.Registry
	log *slog.Logger
	now func() time.Time
}

type Option func(*Loader)

// WithLogger sets the logger used for per-record debug lines and the load
// summary. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(ld *Loader) { ld.now = now }
}

func New(reg *registry.Registry, opts ...Option) *Loader {
	ld := &Loader{
		reg: reg,
		log: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load builds a new Model from p.
func (l *Loader) Load(p codec.Payload) *domain.Model {
	m := domain.NewModel()
	l.LoadInto(m, p)
	return m
}

// LoadInto copies p's metadata onto m and appends p's entities and
// relationships. Relationships may reference entities that m already held.
// The Errors section of p is ignored.
func (l *Loader) LoadInto(m *domain.Model, p codec.Payload) {
	start := l.now()

	m.Name = p.Name
	m.XmiVersion = p.XmiVersion
	m.ApplicationName = p.ApplicationName
	m.ApplicationVersion = p.ApplicationVersion
	m.Histories = p.Histories

	sink := m.Errors()
	before := sink.Len()

	entities := l.loadEntities(m, p.Entities, sink)
	relationships := l.loadRelationships(m, p.Relationships, sink)

	l.log.Info("loader.loaded",
		"model", m.Name,
		"entities", entities,
		"relationships", relationships,
		"errors", sink.Len()-before,
		"duration", l.now().Sub(start).String(),
	)
}

// loadEntities is the first pass. It returns how many entities were added.
func (l *Loader) loadEntities(m *domain.Model, records []any, sink domain.ErrorSink) int {
	added := 0
	for i, item := range records {
		raw, ok := item.(map[string]any)
		if !ok {
			l.reject(sink, domain.SectionEntities, i, domain.UnknownEntityType, domain.UnrecognizedType,
				msgUnrecognized+": record is not an object", item)
			continue
		}

		disc := discriminator(domain.EntityCoreSchema, raw)
		ctor, found := l.reg.ResolveEntity(disc)
		if disc == "" || !found {
			l.reject(sink, domain.SectionEntities, i, orUnknown(disc), domain.UnrecognizedType, msgUnrecognized, raw)
			continue
		}

		e, err := guard(func() (domain.Entity, error) { return ctor(raw) })
		if err == nil && e == nil {
			err = fmt.Errorf("constructor returned no entity")
		}
		if err == nil {
			err = m.AppendEntity(e)
		}
		if err != nil {
			kind, msg := classify(err)
			l.reject(sink, domain.SectionEntities, i, disc, kind, msg, raw)
			continue
		}
		added++
	}
	return added
}

// loadRelationships is the second pass. Source and Target are looked up
// among the entities already in m; with duplicate IDs the first one wins.
func (l *Loader) loadRelationships(m *domain.Model, records []any, sink domain.ErrorSink) int {
	index := firstByID(m.Entities())

	added := 0
	for j, item := range records {
		raw, ok := item.(map[string]any)
		if !ok {
			l.reject(sink, domain.SectionRelationships, j, domain.UnknownEntityType, domain.UnrecognizedType,
				msgUnrecognized+": record is not an object", item)
			continue
		}

		disc := discriminator(domain.RelationshipCoreSchema, raw)
		ctor, found := l.reg.ResolveRelationship(disc)
		if disc == "" || !found {
			l.reject(sink, domain.SectionRelationships, j, orUnknown(disc), domain.UnrecognizedType, msgUnrecognized, raw)
			continue
		}

		srcID := reference(raw, "source")
		tgtID := reference(raw, "target")
		src, srcOK := index[srcID]
		tgt, tgtOK := index[tgtID]
		if srcID == "" || tgtID == "" || !srcOK || !tgtOK {
			l.reject(sink, domain.SectionRelationships, j, disc, domain.UnresolvedReference,
				fmt.Sprintf("%s (source=%q found=%t, target=%q found=%t)", msgUnresolved, srcID, srcOK, tgtID, tgtOK), raw)
			continue
		}

		rest := withoutEnds(raw)
		r, err := guard(func() (domain.Relationship, error) { return ctor(rest, src, tgt) })
		if err == nil && r == nil {
			err = fmt.Errorf("constructor returned no relationship")
		}
		if err == nil {
			err = m.AppendRelationship(r)
		}
		if err != nil {
			kind, msg := classify(err)
			l.reject(sink, domain.SectionRelationships, j, disc, kind, msg, raw)
			continue
		}
		added++
	}
	return added
}

func (l *Loader) reject(sink domain.ErrorSink, section domain.Section, index int, entityType string, kind domain.FailureKind, msg string, raw any) {
	sink.Append(domain.ErrorLogEntry{
		EntityType: entityType,
		Index:      index,
		Message:    msg,
		Raw:        snapshot(raw),
		Kind:       kind,
		Section:    section,
	})
	l.log.Debug("loader.rejected",
		"section", string(section),
		"index", index,
		"entity_type", entityType,
		"kind", string(kind),
		"message", msg,
	)
}

// guard runs a constructor and turns a panic into an error.
func guard[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			v, err = zero, fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn()
}

func classify(err error) (domain.FailureKind, string) {
	switch {
	case domain.IsValidation(err):
		return domain.ValidationFailure, msgValidation + ": " + err.Error()
	case domain.IsKind(err, domain.KindUnresolved):
		return domain.UnresolvedReference, msgUnresolved + ": " + err.Error()
	default:
		return domain.ConstructionFailure, msgConstruction + ": " + err.Error()
	}
}

func discriminator(s *codec.Schema, raw map[string]any) string {
	v, _ := s.Lookup(raw, "entity_type")
	str, _ := v.(string)
	return str
}

func reference(raw map[string]any, field string) string {
	v, _ := domain.RelationshipCoreSchema.Lookup(raw, field)
	s, _ := codec.Text(v)
	return s
}

// withoutEnds copies raw without the Source and Target fields, under
// either name.
func withoutEnds(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, field := range []string{"source", "target"} {
		ext, _ := domain.RelationshipCoreSchema.ExternalName(field)
		delete(out, ext)
		delete(out, field)
	}
	return out
}

func firstByID(entities []domain.Entity) map[string]domain.Entity {
	out := make(map[string]domain.Entity, len(entities))
	for _, e := range entities {
		id := e.Core().ID
		if _, seen := out[id]; !seen {
			out[id] = e
		}
	}
	return out
}

func orUnknown(disc string) string {
	if disc == "" {
		return domain.UnknownEntityType
	}
	return disc
}

// snapshot renders a record for the error log. JSON when possible.
func snapshot(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
