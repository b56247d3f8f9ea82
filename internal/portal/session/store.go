// Package session holds the client-side auth state: current user, bearer
// token, and the loading flag observed by the route guard. The token is
// persisted in a local sqlite metadata table so a restarted portal can
// resume an existing session.
package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/veridoc/portal/internal/dbx"
)

// TokenStore persists the single durable bearer token between runs.
// Load returns "" when no token is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

const (
	keyToken   = "token"
	keySavedAt = "token_saved_at"
)

// SQLiteStore keeps the token in a key/value metadata table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// InitDatabase opens (creating if needed) the local metadata database.
// The caller is responsible for importing a database/sql driver named
// "sqlite" (modernc.org/sqlite).
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key=?`, keyToken).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Save stores the token and its save time in one transaction, so a partially
// written session can never be observed.
func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyToken, token); err != nil {
			return err
		}
		return set(ctx, tx, keySavedAt, time.Now().UTC().Format(time.RFC3339))
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (?, ?)`, keyToken, keySavedAt)
	return err
}

func set(ctx context.Context, tx dbx.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO metadata(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`, key, value)
	return err
}
