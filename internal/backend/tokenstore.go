package backend

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const tokenTimeLayout = time.RFC3339Nano

// TokenStore persists the auth session between runs. It is the only local
// durable state the app keeps; task and bookmark data never touches disk.
type TokenStore struct {
	db *sql.DB
}

func OpenTokenStore(path string) (*TokenStore, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create token store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &TokenStore{db: db}, nil
}

func (s *TokenStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored session. A single row is kept.
func (s *TokenStore) Save(session AuthSession) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (id, access_token, refresh_token, user_id, email, expires_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			user_id = excluded.user_id,
			email = excluded.email,
			expires_at = excluded.expires_at`,
		session.AccessToken, session.RefreshToken, session.UserID, session.Email,
		session.ExpiresAt.UTC().Format(tokenTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the stored session, or nil when none exists.
func (s *TokenStore) Load() (*AuthSession, error) {
	row := s.db.QueryRow(`SELECT access_token, refresh_token, user_id, email, expires_at FROM sessions WHERE id = 1`)
	var out AuthSession
	var expires string
	err := row.Scan(&out.AccessToken, &out.RefreshToken, &out.UserID, &out.Email, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	expiresAt, err := time.Parse(tokenTimeLayout, expires)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	out.ExpiresAt = expiresAt
	return &out, nil
}

func (s *TokenStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
