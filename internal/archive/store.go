// Package archive keeps exported dossiers in a local SQLite database.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/structura/structura/internal/report"
)

// ErrNotFound is returned by Get for an unknown dossier id
var ErrNotFound = errors.New("dossier not found")

// TimeLayout stores created_at at fixed width in UTC so the text column
// sorts in time order
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultLimit applies when List is called with a non-positive limit
const DefaultLimit = 20

// Store is a SQLite-backed dossier archive
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the archive at path. ":memory:" opens a
// throwaway in-memory archive.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	// One connection keeps writers serialized and an in-memory database alive
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS dossiers (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		created_at TEXT NOT NULL,
		parameters TEXT NOT NULL,
		result TEXT NOT NULL,
		compliant INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_dossiers_created ON dossiers(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create archive schema: %w", err)
	}
	return nil
}

// Path returns the database location
func (s *Store) Path() string {
	return s.path
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a dossier. Saving an id twice replaces the earlier entry.
func (s *Store) Save(ctx context.Context, d report.Dossier) error {
	params, err := json.Marshal(d.Parameters)
	if err != nil {
		return fmt.Errorf("encode parameters: %w", err)
	}
	result, err := json.Marshal(d.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO dossiers (id, title, created_at, parameters, result, compliant)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Title, d.CreatedAt.UTC().Format(TimeLayout), string(params), string(result), d.Result.IsCompliant,
	)
	if err != nil {
		return fmt.Errorf("save dossier %s: %w", d.ID, err)
	}
	return nil
}

// Get loads one dossier
func (s *Store) Get(ctx context.Context, id string) (report.Dossier, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, created_at, parameters, result
		FROM dossiers WHERE id = ?`, id)

	d, err := scanDossier(row)
	if errors.Is(err, sql.ErrNoRows) {
		return report.Dossier{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return report.Dossier{}, fmt.Errorf("load dossier %s: %w", id, err)
	}
	return d, nil
}

// List returns up to limit dossiers, newest first
func (s *Store) List(ctx context.Context, limit int) ([]report.Dossier, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, created_at, parameters, result
		FROM dossiers ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list dossiers: %w", err)
	}
	defer rows.Close()

	var out []report.Dossier
	for rows.Next() {
		d, err := scanDossier(rows)
		if err != nil {
			return nil, fmt.Errorf("list dossiers: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Count returns the number of archived dossiers
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dossiers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count dossiers: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDossier(sc scanner) (report.Dossier, error) {
	var (
		d              report.Dossier
		created        string
		params, result string
	)
	if err := sc.Scan(&d.ID, &d.Title, &created, &params, &result); err != nil {
		return d, err
	}

	t, err := time.Parse(TimeLayout, created)
	if err != nil {
		return d, fmt.Errorf("parse created_at: %w", err)
	}
	d.CreatedAt = t

	if err := json.Unmarshal([]byte(params), &d.Parameters); err != nil {
		return d, fmt.Errorf("decode parameters: %w", err)
	}
	if err := json.Unmarshal([]byte(result), &d.Result); err != nil {
		return d, fmt.Errorf("decode result: %w", err)
	}
	return d, nil
}
