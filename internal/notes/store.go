// Package notes persists sticky annotations and manual connections. They
// are user data layered over the graph, so unlike the analysis dataset they
// survive rescans and process restarts.
package notes

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/codeatlas-dev/codeatlas/internal/graph"
)

// Store wraps a SQLite database holding annotations.
type Store struct {
	*sql.DB
}

// Open creates or opens the annotation database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating notes directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening notes database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging notes database: %w", err)
	}

	s := &Store{DB: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	s := &Store{DB: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS sticky_notes (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '#fde047',
    x REAL NOT NULL DEFAULT 0,
    y REAL NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS manual_connections (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    target TEXT NOT NULL
);
`

// SaveSticky inserts or updates a sticky node.
func (s *Store) SaveSticky(n *graph.Node) error {
	_, err := s.Exec(`
		INSERT INTO sticky_notes (id, text, color, x, y) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET text=excluded.text, color=excluded.color,
			x=excluded.x, y=excluded.y`,
		n.ID, n.Text, n.Color, n.X, n.Y)
	if err != nil {
		return fmt.Errorf("saving sticky %s: %w", n.ID, err)
	}
	return nil
}

// DeleteSticky removes a sticky and its connections.
func (s *Store) DeleteSticky(id string) error {
	if _, err := s.Exec(`DELETE FROM sticky_notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting sticky %s: %w", id, err)
	}
	_, err := s.Exec(`DELETE FROM manual_connections WHERE source = ? OR target = ?`, id, id)
	if err != nil {
		return fmt.Errorf("deleting connections of %s: %w", id, err)
	}
	return nil
}

// ListStickies returns all persisted stickies ordered by creation time.
func (s *Store) ListStickies() ([]*graph.Node, error) {
	rows, err := s.Query(`SELECT id, text, color, x, y FROM sticky_notes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing stickies: %w", err)
	}
	defer rows.Close()

	var out []*graph.Node
	for rows.Next() {
		n := &graph.Node{Kind: graph.KindSticky, Label: "note"}
		if err := rows.Scan(&n.ID, &n.Text, &n.Color, &n.X, &n.Y); err != nil {
			return nil, fmt.Errorf("scanning sticky: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// SaveConnection persists a manual edge.
func (s *Store) SaveConnection(e *graph.Edge) error {
	_, err := s.Exec(`
		INSERT INTO manual_connections (id, source, target) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		e.ID, e.Source, e.Target)
	if err != nil {
		return fmt.Errorf("saving connection %s: %w", e.ID, err)
	}
	return nil
}

// DeleteConnection removes a manual edge by id.
func (s *Store) DeleteConnection(id string) error {
	if _, err := s.Exec(`DELETE FROM manual_connections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting connection %s: %w", id, err)
	}
	return nil
}

// ListConnections returns all persisted manual edges.
func (s *Store) ListConnections() ([]*graph.Edge, error) {
	rows, err := s.Query(`SELECT id, source, target FROM manual_connections ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	defer rows.Close()

	var out []*graph.Edge
	for rows.Next() {
		e := &graph.Edge{Kind: graph.EdgeManual, Weight: 1}
		if err := rows.Scan(&e.ID, &e.Source, &e.Target); err != nil {
			return nil, fmt.Errorf("scanning connection: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
