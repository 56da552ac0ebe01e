// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package settings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ManuGH/vuejs/internal/library"
	"github.com/ManuGH/vuejs/internal/persistence/sqlite"
)

const sqliteSchemaVersion = 1

// SqliteStore keeps one row per library.
type SqliteStore struct {
	DB *sql.DB
}

// NewSqliteStore opens (and migrates) the database at dbPath.
func NewSqliteStore(ctx context.Context, dbPath string) (*SqliteStore, error) {
	db, err := sqlite.Open(ctx, dbPath, sqlite.DefaultConfig())
	if err != nil {
		return nil, err
	}

	s := &SqliteStore{DB: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("settings store: migration failed: %w", err)
	}
	return s, nil
}

func (s *SqliteStore) migrate(ctx context.Context) error {
	current, err := sqlite.UserVersion(ctx, s.DB)
	if err != nil {
		return err
	}
	if current >= sqliteSchemaVersion {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	schema := `
	CREATE TABLE IF NOT EXISTS library_settings (
		name TEXT PRIMARY KEY,
		installation TEXT NOT NULL,
		development INTEGER NOT NULL,
		cdn TEXT NOT NULL,
		version TEXT NOT NULL,
		path TEXT NOT NULL,
		updated_at_ms INTEGER NOT NULL
	);`
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", sqliteSchemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SqliteStore) Load(ctx context.Context) (Record, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT name, installation, development, cdn, version, path FROM library_settings ORDER BY name`)
	if err != nil {
		return Record{}, fmt.Errorf("query library settings: %w", err)
	}
	defer rows.Close()

	rec := Record{Libraries: map[string]library.LibrarySetting{}}
	for rows.Next() {
		var (
			name, installation, cdn, version, path string
			dev                                    int
		)
		if err := rows.Scan(&name, &installation, &dev, &cdn, &version, &path); err != nil {
			return Record{}, fmt.Errorf("scan library setting: %w", err)
		}
		rec.Libraries[name] = library.LibrarySetting{
			Name:         name,
			Installation: library.Installation(installation),
			Development:  dev != 0,
			CDN:          library.CDNProvider(cdn),
			Version:      version,
			Path:         path,
		}
	}
	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("iterate library settings: %w", err)
	}
	if len(rec.Libraries) == 0 {
		return Record{}, nil
	}
	return rec, nil
}

// Save replaces all rows inside one transaction.
func (s *SqliteStore) Save(ctx context.Context, rec Record) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM library_settings`); err != nil {
		return fmt.Errorf("clear library settings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO library_settings (name, installation, development, cdn, version, path, updated_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UnixMilli()
	for _, name := range rec.Names() {
		ls := rec.Libraries[name]
		dev := 0
		if ls.Development {
			dev = 1
		}
		if _, err := stmt.ExecContext(ctx, name, string(ls.Installation), dev, string(ls.CDN), ls.Version, ls.Path, now); err != nil {
			return fmt.Errorf("insert library %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings tx: %w", err)
	}
	return nil
}

func (s *SqliteStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// VerifyIntegrity runs a quick integrity check of the database.
func (s *SqliteStore) VerifyIntegrity(ctx context.Context) ([]string, error) {
	return sqlite.VerifyIntegrity(ctx, s.DB, "quick")
}

func (s *SqliteStore) Backend() string { return BackendSQLite }

func (s *SqliteStore) Close() error {
	return s.DB.Close()
}
