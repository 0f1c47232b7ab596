package sqlitestore

// schema is applied on every Open. Entity and relationship bodies are the
// verbose wire records, so a stored model can be replayed through the loader.
const schema = `
CREATE TABLE IF NOT EXISTS models (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    name                TEXT NOT NULL DEFAULT '',
    xmi_version         TEXT NOT NULL DEFAULT '',
    application_name    TEXT NOT NULL DEFAULT '',
    application_version TEXT NOT NULL DEFAULT '',
    histories           TEXT NOT NULL DEFAULT '[]',
    stored_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entities (
    model_id    INTEGER NOT NULL REFERENCES models(id) ON DELETE CASCADE,
    seq         INTEGER NOT NULL,
    id          TEXT NOT NULL,
    name        TEXT NOT NULL,
    entity_type TEXT NOT NULL,
    domain      TEXT NOT NULL,
    body        TEXT NOT NULL,
    PRIMARY KEY (model_id, seq)
);

CREATE TABLE IF NOT EXISTS relationships (
    model_id    INTEGER NOT NULL REFERENCES models(id) ON DELETE CASCADE,
    seq         INTEGER NOT NULL,
    id          TEXT NOT NULL,
    entity_type TEXT NOT NULL,
    source_id   TEXT NOT NULL,
    target_id   TEXT NOT NULL,
    body        TEXT NOT NULL,
    PRIMARY KEY (model_id, seq)
);

CREATE TABLE IF NOT EXISTS load_errors (
    model_id    INTEGER NOT NULL REFERENCES models(id) ON DELETE CASCADE,
    seq         INTEGER NOT NULL,
    section     TEXT NOT NULL,
    kind        TEXT NOT NULL,
    entity_type TEXT NOT NULL,
    idx         INTEGER NOT NULL,
    message     TEXT NOT NULL,
    body        TEXT NOT NULL,
    PRIMARY KEY (model_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_entities_type ON entities(model_id, entity_type);
CREATE INDEX IF NOT EXISTS idx_relationships_source ON relationships(model_id, source_id);
CREATE INDEX IF NOT EXISTS idx_relationships_target ON relationships(model_id, target_id);
`
