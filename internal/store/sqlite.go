// Package store persists the resolved document index to SQLite so the
// rendering and search layers can consume a build without re-scanning
// content.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/doctree/internal/collection"
)

// IndexStore writes one row per document per build into SQLite.
type IndexStore struct {
	db *sql.DB
	mu sync.Mutex
}

// IndexedDocument is the stored view of a document.
type IndexedDocument struct {
	Route       string
	Path        string
	Title       string
	Description string
	BodyHash    string
	Headings    []byte // JSON-encoded outline
}

// Open creates or opens an index database. Use ":memory:" for tests.
func Open(dbPath string) (*IndexStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &IndexStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *IndexStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		build_id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		documents INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS documents (
		build_id TEXT NOT NULL,
		route TEXT NOT NULL,
		path TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		body_hash TEXT NOT NULL,
		headings TEXT,
		PRIMARY KEY (build_id, route)
	);
	CREATE INDEX IF NOT EXISTS idx_documents_route ON documents(route);
	`
	_, err := s.db.Exec(schema)
	return err
}

// WriteBuild stores the full document set of one build in a transaction.
func (s *IndexStore) WriteBuild(ctx context.Context, buildID, outcome string, docs []collection.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO builds (build_id, created_at, outcome, documents) VALUES (?, ?, ?, ?)",
		buildID, time.Now().Unix(), outcome, len(docs),
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO documents (build_id, route, path, title, description, body_hash, headings) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, doc := range docs {
		headings, err := json.Marshal(doc.Headings)
		if err != nil {
			return fmt.Errorf("marshal headings for %s: %w", doc.Path, err)
		}
		if _, err := stmt.ExecContext(ctx,
			buildID, doc.Route, doc.Path, doc.Meta.Title, doc.Meta.Description, doc.BodyHash, string(headings),
		); err != nil {
			return fmt.Errorf("insert document %s: %w", doc.Path, err)
		}
	}

	return tx.Commit()
}

// LatestBuildID returns the most recently written build, or "" when empty.
func (s *IndexStore) LatestBuildID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT build_id FROM builds ORDER BY created_at DESC, build_id DESC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query latest build: %w", err)
	}
	return id, nil
}

// DocumentsForBuild returns the stored documents of one build ordered by route.
func (s *IndexStore) DocumentsForBuild(ctx context.Context, buildID string) ([]IndexedDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT route, path, title, description, body_hash, headings FROM documents WHERE build_id = ? ORDER BY route",
		buildID,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []IndexedDocument
	for rows.Next() {
		var d IndexedDocument
		var description, headings sql.NullString
		if err := rows.Scan(&d.Route, &d.Path, &d.Title, &description, &d.BodyHash, &headings); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.Description = description.String
		d.Headings = []byte(headings.String)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Prune removes all builds except the most recent keep builds.
func (s *IndexStore) Prune(ctx context.Context, keep int) error {
	if keep < 1 {
		keep = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM documents WHERE build_id NOT IN (
			SELECT build_id FROM builds ORDER BY created_at DESC, build_id DESC LIMIT ?
		);
		`, keep)
	if err != nil {
		return fmt.Errorf("prune documents: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		DELETE FROM builds WHERE build_id NOT IN (
			SELECT build_id FROM builds ORDER BY created_at DESC, build_id DESC LIMIT ?
		);
		`, keep)
	if err != nil {
		return fmt.Errorf("prune builds: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *IndexStore) Close() error {
	return s.db.Close()
}
