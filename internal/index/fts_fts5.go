//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS posts_fts USING fts5(
			id UNINDEXED,
			title,
			body,
			tags,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsClear(tx *sql.Tx) error {
	if _, err := tx.Exec(`DELETE FROM posts_fts`); err != nil {
		return fmt.Errorf("index: clear fts: %w", err)
	}
	return nil
}

func ftsInsert(tx *sql.Tx, id, title, body string, tags []string) error {
	_, err := tx.Exec(`INSERT INTO posts_fts (id, title, body, tags) VALUES (?, ?, ?, ?)`,
		id, title, body, strings.Join(tags, " "))
	if err != nil {
		return fmt.Errorf("index: insert fts: %w", err)
	}
	return nil
}

// Search performs an FTS5 full-text search and returns matching results with snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id,
		       title,
		       snippet(posts_fts, 2, '<b>', '</b>', '...', 64)
		FROM posts_fts
		WHERE posts_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
