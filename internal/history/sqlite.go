package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/iwvelando/finance-calculators/internal/calculator"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLite stores records in a single SQLite table. The parameters and summary
// are kept as JSON documents.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and applies migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite history needs a path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases shared and serialises writes.
	db.SetMaxOpenConns(1)

	store := &SQLite{db: db}
	if err := store.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLite) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS calculations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			created_at TEXT NOT NULL,
			record TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_calculations_kind ON calculations(kind);`,
		`CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate history database: %w", err)
		}
	}
	return nil
}

func (s *SQLite) Save(ctx context.Context, record Record) (Record, error) {
	record = prepare(record)
	data, err := encode(record)
	if err != nil {
		return Record{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO calculations (id, name, kind, created_at, record) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, kind = excluded.kind,
		 created_at = excluded.created_at, record = excluded.record`,
		record.ID.String(),
		record.Name,
		string(record.Kind),
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(data),
	)
	if err != nil {
		return Record{}, fmt.Errorf("failed to save record %s: %w", record.ID, err)
	}
	return record, nil
}

func (s *SQLite) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM calculations WHERE id = ?`, id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load record %s: %w", id, err)
	}
	return decode([]byte(data))
}

func (s *SQLite) List(ctx context.Context, kind calculator.Kind) ([]Record, error) {
	query := `SELECT record FROM calculations`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		record, err := decode([]byte(data))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	newestFirst(records)
	return records, nil
}

func (s *SQLite) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM calculations WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
