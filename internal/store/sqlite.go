package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-share/internal/types"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteStore keeps records in a local SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS resumes (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		template_id TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		data TEXT NOT NULL
	);
	`)
	return err
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) List(ctx context.Context) ([]types.SavedResume, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, template_id, updated_at, data FROM resumes ORDER BY seq`)
	if err != nil {
		return nil, &StorageError{Op: "list resumes", Cause: err}
	}
	defer func() { _ = rows.Close() }()

	records := []types.SavedResume{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list resumes", Cause: err}
	}
	return records, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*types.SavedResume, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, template_id, updated_at, data FROM resumes WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (s *SQLiteStore) Put(ctx context.Context, rec *types.SavedResume) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return &StorageError{Op: "encode resume", Cause: err}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resumes (id, name, template_id, updated_at, data)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   template_id = excluded.template_id,
		   updated_at = excluded.updated_at,
		   data = excluded.data`,
		rec.ID, rec.Name, rec.TemplateID, rec.UpdatedAt.UTC().Format(time.RFC3339Nano), string(data))
	if err != nil {
		return &StorageError{Op: "save resume " + rec.ID, Cause: err}
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id)
	if err != nil {
		return &StorageError{Op: "delete resume " + id, Cause: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &StorageError{Op: "delete resume " + id, Cause: err}
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*types.SavedResume, error) {
	var (
		rec       types.SavedResume
		updatedAt string
		data      string
	)
	if err := row.Scan(&rec.ID, &rec.Name, &rec.TemplateID, &updatedAt, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, &StorageError{Op: "scan resume", Cause: err}
	}

	t, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, &StorageError{Op: "parse updated_at of " + rec.ID, Cause: err}
	}
	rec.UpdatedAt = t

	if err := json.Unmarshal([]byte(data), &rec.Data); err != nil {
		return nil, &StorageError{Op: "decode resume " + rec.ID, Cause: err}
	}
	return &rec, nil
}
