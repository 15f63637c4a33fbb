// Package session persists the active session across process restarts, the
// Go stand-in for the browser's localStorage. Two keys are kept, the raw
// token and the serialized user; callers always write and clear them as a
// pair, and the absence of either one reads as "no session".
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"simplecrud/internal/client/session/migrations"
	"simplecrud/internal/models"
)

const (
	keyAuthToken = "authToken"
	keyUser      = "user"
)

type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	// SQLite tolerates one writer; a single pooled connection keeps every
	// statement on it.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate session store: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes both keys inside one transaction so a crash cannot leave the
// half-state of a token without a user.
func (s *Store) Save(ctx context.Context, token string, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := tx.ExecContext(ctx, upsert, keyAuthToken, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, keyUser, raw); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load returns the stored session and whether one exists. A missing token or
// user key both count as no session.
func (s *Store) Load(ctx context.Context) (models.Session, bool, error) {
	token, ok, err := s.get(ctx, keyAuthToken)
	if err != nil || !ok {
		return models.Session{}, false, err
	}

	raw, ok, err := s.get(ctx, keyUser)
	if err != nil || !ok {
		return models.Session{}, false, err
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return models.Session{}, false, fmt.Errorf("deserialize user: %w", err)
	}

	return models.Session{Token: string(token), User: user}, true, nil
}

func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session WHERE key IN (?, ?)`, keyAuthToken, keyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get session[%s]: %w", key, err)
	}
	return value, true, nil
}
