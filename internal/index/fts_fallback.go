//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; full-text search uses LIKE fallback on the posts table.
	return nil
}

func ftsClear(_ *sql.Tx) error { return nil }

func ftsInsert(_ *sql.Tx, _, _, _ string, _ []string) error {
	// Body is already stored in the posts table; nothing extra to do.
	return nil
}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT id, title, substr(body, 1, 200)
		FROM posts
		WHERE title LIKE ? OR body LIKE ? OR tags LIKE ?
		ORDER BY date DESC, id ASC
		LIMIT ?
	`, like, like, like, limit)
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
