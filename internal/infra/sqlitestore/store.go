package sqlitestore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/ports"
)

// Store keeps loaded models in a single SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

type Option func(*Store)

func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, opErr("sqlitestore.open", domain.KindExecution, path, err)
		}
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, opErr("sqlitestore.open", domain.KindExecution, path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, opErr("sqlitestore.ping", domain.KindExecution, path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, opErr("sqlitestore.migrate", domain.KindExecution, path, err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

var _ ports.GraphStore = (*Store)(nil)

// SaveModel writes the model, its relationships and its error log in one
// transaction and returns the new model id.
func (s *Store) SaveModel(ctx context.Context, m *domain.Model) (int64, error) {
	if m == nil {
		return 0, opErr("sqlitestore.save", domain.KindInvalidInput, "", errors.New("model is nil"))
	}

	p := m.Export(codec.Verbose)
	histories, err := json.Marshal(nonNil(p.Histories))
	if err != nil {
		return 0, opErr("sqlitestore.save", domain.KindInvalidInput, "", fmt.Errorf("histories: %w", err))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, opErr("sqlitestore.begin", domain.KindExecution, "", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO models (name, xmi_version, application_name, application_version, histories, stored_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.Name, m.XmiVersion, m.ApplicationName, m.ApplicationVersion, string(histories),
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, opErr("sqlitestore.insert_model", domain.KindExecution, "", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, opErr("sqlitestore.insert_model", domain.KindExecution, "", err)
	}

	for i, e := range m.Entities() {
		c := e.Core()
		body, err := json.Marshal(p.Entities[i])
		if err != nil {
			return 0, opErr("sqlitestore.insert_entity", domain.KindInvalidInput, "", fmt.Errorf("entity %q: %w", c.ID, err))
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entities (model_id, seq, id, name, entity_type, domain, body) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, c.ID, c.Name, c.EntityType, string(c.Domain), string(body),
		); err != nil {
			return 0, opErr("sqlitestore.insert_entity", domain.KindExecution, "", fmt.Errorf("entity %q: %w", c.ID, err))
		}
	}

	for i, r := range m.Relationships() {
		c := r.Edge()
		body, err := json.Marshal(p.Relationships[i])
		if err != nil {
			return 0, opErr("sqlitestore.insert_relationship", domain.KindInvalidInput, "", fmt.Errorf("relationship %q: %w", c.ID, err))
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO relationships (model_id, seq, id, entity_type, source_id, target_id, body) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, c.ID, c.EntityType, c.SourceID(), c.TargetID(), string(body),
		); err != nil {
			return 0, opErr("sqlitestore.insert_relationship", domain.KindExecution, "", fmt.Errorf("relationship %q: %w", c.ID, err))
		}
	}

	for i, e := range m.Errors().Entries() {
		body, err := json.Marshal(p.Errors[i])
		if err != nil {
			return 0, opErr("sqlitestore.insert_error", domain.KindInvalidInput, "", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO load_errors (model_id, seq, section, kind, entity_type, idx, message, body) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, string(e.Section), string(e.Kind), e.EntityType, e.Index, e.Message, string(body),
		); err != nil {
			return 0, opErr("sqlitestore.insert_error", domain.KindExecution, "", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, opErr("sqlitestore.commit", domain.KindExecution, "", err)
	}
	return id, nil
}

// ListModels returns every stored model, newest first.
func (s *Store) ListModels(ctx context.Context) ([]domain.StoredModel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.xmi_version, m.stored_at,
		       (SELECT COUNT(*) FROM entities e WHERE e.model_id = m.id),
		       (SELECT COUNT(*) FROM relationships r WHERE r.model_id = m.id),
		       (SELECT COUNT(*) FROM load_errors x WHERE x.model_id = m.id)
		FROM models m
		ORDER BY m.id DESC`)
	if err != nil {
		return nil, opErr("sqlitestore.list", domain.KindExecution, "", err)
	}
	defer rows.Close()

	var out []domain.StoredModel
	for rows.Next() {
		var sm domain.StoredModel
		var storedAt string
		if err := rows.Scan(&sm.ID, &sm.Name, &sm.XmiVersion, &storedAt, &sm.Entities, &sm.Relationships, &sm.Errors); err != nil {
			return nil, opErr("sqlitestore.list", domain.KindExecution, "", err)
		}
		sm.StoredAt, _ = time.Parse(time.RFC3339Nano, storedAt)
		out = append(out, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, opErr("sqlitestore.list", domain.KindExecution, "", err)
	}
	return out, nil
}

// LoadPayload rebuilds the exported document of a stored model. The error
// log is not replayed: reloading the payload regenerates it.
func (s *Store) LoadPayload(ctx context.Context, id int64) (codec.Payload, error) {
	var p codec.Payload
	var histories string
	err := s.db.QueryRowContext(ctx,
		`SELECT name, xmi_version, application_name, application_version, histories FROM models WHERE id = ?`, id,
	).Scan(&p.Name, &p.XmiVersion, &p.ApplicationName, &p.ApplicationVersion, &histories)
	if errors.Is(err, sql.ErrNoRows) {
		return codec.Payload{}, opErr("sqlitestore.load", domain.KindNotFound, "", fmt.Errorf("model %d: %w", id, domain.ErrNotFound))
	}
	if err != nil {
		return codec.Payload{}, opErr("sqlitestore.load", domain.KindExecution, "", err)
	}

	if err := decodeJSON(histories, &p.Histories); err != nil {
		return codec.Payload{}, opErr("sqlitestore.load", domain.KindExecution, "", fmt.Errorf("histories: %w", err))
	}
	if p.Entities, err = s.bodies(ctx, `SELECT body FROM entities WHERE model_id = ? ORDER BY seq`, id); err != nil {
		return codec.Payload{}, err
	}
	if p.Relationships, err = s.bodies(ctx, `SELECT body FROM relationships WHERE model_id = ? ORDER BY seq`, id); err != nil {
		return codec.Payload{}, err
	}
	return p, nil
}

// CountByType returns the number of stored entities per entity type.
func (s *Store) CountByType(ctx context.Context, id int64) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entity_type, COUNT(*) FROM entities WHERE model_id = ? GROUP BY entity_type`, id)
	if err != nil {
		return nil, opErr("sqlitestore.count", domain.KindExecution, "", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, opErr("sqlitestore.count", domain.KindExecution, "", err)
		}
		out[t] = n
	}
	return out, rows.Err()
}

// DeleteModel removes a stored model and everything attached to it.
func (s *Store) DeleteModel(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM models WHERE id = ?`, id)
	if err != nil {
		return opErr("sqlitestore.delete", domain.KindExecution, "", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return opErr("sqlitestore.delete", domain.KindNotFound, "", fmt.Errorf("model %d: %w", id, domain.ErrNotFound))
	}
	return nil
}

func (s *Store) bodies(ctx context.Context, query string, id int64) ([]any, error) {
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, opErr("sqlitestore.load", domain.KindExecution, "", err)
	}
	defer rows.Close()

	out := []any{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, opErr("sqlitestore.load", domain.KindExecution, "", err)
		}
		var rec map[string]any
		if err := decodeJSON(body, &rec); err != nil {
			return nil, opErr("sqlitestore.load", domain.KindExecution, "", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, opErr("sqlitestore.load", domain.KindExecution, "", err)
	}
	return out, nil
}

// decodeJSON keeps numbers as json.Number, like payloads read from disk.
func decodeJSON(s string, dst any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	return dec.Decode(dst)
}

func nonNil(s []any) []any {
	if s == nil {
		return []any{}
	}
	return s
}

func opErr(op string, kind domain.ErrorKind, path string, err error) error {
	return &domain.OpError{Op: op, Kind: kind, Path: path, Err: err}
}
