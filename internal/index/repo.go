package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/starford/raido/internal/corpus"
)

// PostRow represents a row in the posts table.
type PostRow struct {
	ID           string
	SourcePath   string
	SegmentIndex int
	Title        string
	Date         time.Time
	Excerpt      string
	Featured     bool
	Tags         []string
	WordCount    int
	Related      []string
}

// SearchResult represents one search hit.
type SearchResult struct {
	ID      string
	Title   string
	Snippet string
}

// Rebuild replaces the entire cache with the given snapshot in a single
// transaction. The corpus lifecycle is wholesale rebuild, so no row-level
// diffing is attempted.
func (db *DB) Rebuild(snap corpus.Snapshot) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM posts`); err != nil {
		return fmt.Errorf("index: clear posts: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM post_tags`); err != nil {
		return fmt.Errorf("index: clear post_tags: %w", err)
	}
	if err := ftsClear(tx); err != nil {
		return err
	}

	postStmt, err := tx.Prepare(`
		INSERT INTO posts (id, source_path, segment_index, title, date, excerpt, featured, tags, word_count, body, related)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("index: prepare post insert: %w", err)
	}
	defer postStmt.Close()

	tagStmt, err := tx.Prepare(`INSERT OR IGNORE INTO post_tags (tag, post_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare tag insert: %w", err)
	}
	defer tagStmt.Close()

	for _, p := range snap.Posts {
		tagsJSON, _ := json.Marshal(p.Tags)
		relatedJSON, _ := json.Marshal(p.RelatedIDs)

		_, err = postStmt.Exec(
			p.ID, p.SourcePath, p.SegmentIndex, p.Title,
			p.Date.UTC().Format(time.RFC3339), p.Excerpt, p.Featured,
			string(tagsJSON), p.WordCount, p.Body, string(relatedJSON),
		)
		if err != nil {
			return fmt.Errorf("index: insert post %s: %w", p.ID, err)
		}
		for _, tag := range p.Tags {
			if _, err := tagStmt.Exec(corpus.NormalizeTag(tag), p.ID); err != nil {
				return fmt.Errorf("index: insert tag: %w", err)
			}
		}
		if err := ftsInsert(tx, p.ID, p.Title, p.Body, p.Tags); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetPost returns the cached post with the given id, or nil when absent.
func (db *DB) GetPost(id string) (*PostRow, error) {
	row := db.conn.QueryRow(`
		SELECT id, source_path, segment_index, title, date, excerpt, featured, tags, word_count, related
		FROM posts WHERE id = ?
	`, id)

	var p PostRow
	var dateStr, tagsJSON, relatedJSON string
	err := row.Scan(&p.ID, &p.SourcePath, &p.SegmentIndex, &p.Title, &dateStr,
		&p.Excerpt, &p.Featured, &tagsJSON, &p.WordCount, &relatedJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get post: %w", err)
	}

	if p.Date, err = time.Parse(time.RFC3339, dateStr); err != nil {
		return nil, fmt.Errorf("index: parse date for %s: %w", id, err)
	}
	_ = json.Unmarshal([]byte(tagsJSON), &p.Tags)
	_ = json.Unmarshal([]byte(relatedJSON), &p.Related)
	return &p, nil
}

// IDsByDate returns every cached post id, newest first.
func (db *DB) IDsByDate() ([]string, error) {
	return db.ids(`SELECT id FROM posts ORDER BY date DESC, id ASC`)
}

// IDsByTag returns the ids carrying the given tag, newest first.
func (db *DB) IDsByTag(tag string) ([]string, error) {
	return db.ids(`
		SELECT p.id FROM posts p
		JOIN post_tags t ON t.post_id = p.id
		WHERE t.tag = ?
		ORDER BY p.date DESC, p.id ASC
	`, corpus.NormalizeTag(tag))
}

// FeaturedIDs returns the ids of featured posts, newest first.
func (db *DB) FeaturedIDs() ([]string, error) {
	return db.ids(`SELECT id FROM posts WHERE featured = 1 ORDER BY date DESC, id ASC`)
}

func (db *DB) ids(query string, args ...any) ([]string, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: query ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
