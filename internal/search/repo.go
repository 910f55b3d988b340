package search

import (
	"encoding/json"
	"fmt"
	"time"
)

// PageRow represents a row in the pages table.
type PageRow struct {
	Location  string
	Title     string
	Checksum  string
	Tags      []string
	UpdatedAt time.Time
}

// Result represents one search hit.
type Result struct {
	Location string
	Title    string
	Snippet  string
}

// UpsertPage inserts or replaces a page and its FTS entry in a transaction.
func (db *DB) UpsertPage(p PageRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("search: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(p.Tags)

	// Body lives in the pages table too, for the fallback LIKE search.
	_, err = tx.Exec(`
		INSERT INTO pages (location, title, checksum, tags, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(location) DO UPDATE SET
			title      = excluded.title,
			checksum   = excluded.checksum,
			tags       = excluded.tags,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, p.Location, p.Title, p.Checksum, string(tagsJSON), body, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("search: upsert page: %w", err)
	}

	if err := ftsUpsert(tx, p.Location, p.Title, body, p.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// DeletePage removes a page and its FTS entry.
func (db *DB) DeletePage(location string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("search: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, location)
	_, _ = tx.Exec(`DELETE FROM pages WHERE location = ?`, location)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a page, or empty string if
// not indexed.
func (db *DB) GetChecksum(location string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM pages WHERE location = ?`, location).Scan(&cs)
	if err != nil {
		return "", nil // not indexed is fine
	}
	return cs, nil
}

// AllChecksums returns the checksum of every indexed page keyed by location.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT location, checksum FROM pages`)
	if err != nil {
		return nil, fmt.Errorf("search: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var loc, cs string
		if err := rows.Scan(&loc, &cs); err != nil {
			return nil, err
		}
		out[loc] = cs
	}
	return out, rows.Err()
}
