// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrQueryNotFound = errors.New("saved query not found")
	ErrEmptyQuery    = errors.New("query name and SQL must not be empty")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// SAVED QUERY TYPE
// =============================================================================

// SavedQuery is a SQL statement the user bookmarked from an assistant
// answer, keyed by a user-chosen name.
type SavedQuery struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	SQL        string    `json:"sql"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
	UseCount   int       `json:"use_count"`
}

// =============================================================================
// QUERY STORE
// =============================================================================

// QueryStore persists saved queries in a local SQLite database.
type QueryStore struct {
	db   *sql.DB
	path string
}

const queriesSchema = `
CREATE TABLE IF NOT EXISTS saved_queries (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL UNIQUE,
	sql_text     TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	last_used_at INTEGER NOT NULL,
	use_count    INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_saved_queries_name ON saved_queries(name);
`

// OpenQueryStore opens (creating if needed) the saved-query database at
// the given path.
func OpenQueryStore(path string) (*QueryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(queriesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &QueryStore{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *QueryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *QueryStore) Path() string {
	return s.path
}

// =============================================================================
// SAVE / LOAD
// =============================================================================

// Save stores a query under a name. Saving to an existing name replaces
// its SQL but keeps the usage history.
func (s *QueryStore) Save(ctx context.Context, name, sqlText string) (*SavedQuery, error) {
	name = strings.TrimSpace(name)
	sqlText = strings.TrimSpace(sqlText)
	if name == "" || sqlText == "" {
		return nil, ErrEmptyQuery
	}

	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_queries (name, sql_text, created_at, last_used_at, use_count)
		VALUES (?, ?, ?, ?, 0)
		ON CONFLICT(name) DO UPDATE SET sql_text = excluded.sql_text
	`, name, sqlText, now, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	return s.Get(ctx, name)
}

// Get retrieves a saved query by name.
func (s *QueryStore) Get(ctx context.Context, name string) (*SavedQuery, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, sql_text, created_at, last_used_at, use_count
		FROM saved_queries WHERE name = ?
	`, strings.TrimSpace(name))

	q, err := scanQuery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQueryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return q, nil
}

// MarkUsed records a use of the named query: bumps the counter and the
// last-used time.
func (s *QueryStore) MarkUsed(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE saved_queries
		SET use_count = use_count + 1, last_used_at = ?
		WHERE name = ?
	`, time.Now().Unix(), strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if n == 0 {
		return ErrQueryNotFound
	}
	return nil
}

// =============================================================================
// LIST / SEARCH / DELETE
// =============================================================================

// List returns all saved queries, most recently used first.
func (s *QueryStore) List(ctx context.Context) ([]SavedQuery, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sql_text, created_at, last_used_at, use_count
		FROM saved_queries
		ORDER BY last_used_at DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	return collectQueries(rows)
}

// Search returns saved queries whose name or SQL contains the substring,
// case-insensitively.
func (s *QueryStore) Search(ctx context.Context, query string) ([]SavedQuery, error) {
	if strings.TrimSpace(query) == "" {
		return s.List(ctx)
	}

	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sql_text, created_at, last_used_at, use_count
		FROM saved_queries
		WHERE lower(name) LIKE ? OR lower(sql_text) LIKE ?
		ORDER BY last_used_at DESC, name ASC
	`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	return collectQueries(rows)
}

// Delete removes a saved query by name.
func (s *QueryStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_queries WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if n == 0 {
		return ErrQueryNotFound
	}
	return nil
}

// Count returns the number of saved queries.
func (s *QueryStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saved_queries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuery(row rowScanner) (*SavedQuery, error) {
	var q SavedQuery
	var created, lastUsed int64
	if err := row.Scan(&q.ID, &q.Name, &q.SQL, &created, &lastUsed, &q.UseCount); err != nil {
		return nil, err
	}
	q.CreatedAt = time.Unix(created, 0)
	q.LastUsedAt = time.Unix(lastUsed, 0)
	return &q, nil
}

func collectQueries(rows *sql.Rows) ([]SavedQuery, error) {
	var queries []SavedQuery
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		queries = append(queries, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return queries, nil
}
