// Package index provides the SQLite-backed corpus cache with optional FTS5
// full-text search. The cache is rewritten wholesale after every successful
// pipeline run; it never mutates incrementally.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS posts (
	id            TEXT PRIMARY KEY,
	source_path   TEXT NOT NULL,
	segment_index INTEGER NOT NULL DEFAULT 0,
	title         TEXT NOT NULL,
	date          TEXT NOT NULL,
	excerpt       TEXT NOT NULL DEFAULT '',
	featured      INTEGER NOT NULL DEFAULT 0,
	tags          TEXT NOT NULL DEFAULT '[]',
	word_count    INTEGER NOT NULL DEFAULT 0,
	body          TEXT NOT NULL DEFAULT '',
	related       TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS post_tags (
	tag     TEXT NOT NULL,
	post_id TEXT NOT NULL,
	UNIQUE(tag, post_id)
);

CREATE INDEX IF NOT EXISTS idx_post_tags_tag ON post_tags(tag);
CREATE INDEX IF NOT EXISTS idx_posts_date ON posts(date);
`

// DB wraps a sql.DB with corpus cache operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
