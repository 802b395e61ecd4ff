package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// SQLiteStore implements Store on a SQLite database. The snapshot is stored
// as a JSON blob; id, name and modified are lifted into columns so listing
// and latest-lookup don't deserialize every row.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateTable creates the projects table. Run once at startup.
func (s *SQLiteStore) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS projects (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			modified TIMESTAMP NOT NULL,
			data     BLOB NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_projects_modified
			ON projects (modified DESC);
	`)
	return err
}

func (s *SQLiteStore) SaveProject(ctx context.Context, p *model.CTRLProject) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding project %s: %w", p.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, modified, data)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			modified = excluded.modified,
			data = excluded.data
	`, p.ID, p.Name, p.Modified, data)
	if err != nil {
		return fmt.Errorf("saving project %s: %w", p.ID, err)
	}
	return nil
}

func (s *SQLiteStore) LoadProject(ctx context.Context, id string) (*model.CTRLProject, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM projects WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", id, err)
	}
	return decodeProject(data)
}

func (s *SQLiteStore) LatestProject(ctx context.Context) (*model.CTRLProject, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM projects ORDER BY modified DESC LIMIT 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest project: %w", err)
	}
	return decodeProject(data)
}

func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}

func decodeProject(data []byte) (*model.CTRLProject, error) {
	var p model.CTRLProject
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding project: %w", err)
	}
	return &p, nil
}
