// Package session persists the signed-in user's API tokens between runs.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "modernc.org/sqlite"
)

var (
	ErrNoSession = errors.New("not logged in")
	ErrExpired   = errors.New("session expired, log in again")
)

// Session is the stored token pair of one user.
type Session struct {
	Username  string
	Access    string
	Refresh   string
	ExpiresAt time.Time // zero when the token carries no exp claim
	CreatedAt time.Time
}

// Store provides SQLite-backed storage for the current session.
// It keeps at most one row.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (or creates) the SQLite database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createTable(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func createTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id          INTEGER PRIMARY KEY CHECK (id = 1),
			username    TEXT NOT NULL DEFAULT '',
			access      TEXT NOT NULL,
			refresh     TEXT NOT NULL DEFAULT '',
			expires_at  TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored session with the given tokens.
func (s *Store) Save(ctx context.Context, username, access, refresh string) (*Session, error) {
	if access == "" {
		return nil, errors.New("access token is empty")
	}

	sess := Session{
		Username:  username,
		Access:    access,
		Refresh:   refresh,
		ExpiresAt: TokenExpiry(access),
		CreatedAt: s.now().UTC(),
	}

	var expires string
	if !sess.ExpiresAt.IsZero() {
		expires = sess.ExpiresAt.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, username, access, refresh, expires_at, created_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			access = excluded.access,
			refresh = excluded.refresh,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at
	`, sess.Username, sess.Access, sess.Refresh, expires, sess.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return &sess, nil
}

// Load returns the stored session, or ErrNoSession.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT username, access, refresh, expires_at, created_at
		FROM sessions WHERE id = 1
	`)

	var sess Session
	var expires, created string
	if err := row.Scan(&sess.Username, &sess.Access, &sess.Refresh, &expires, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if expires != "" {
		sess.ExpiresAt, _ = time.Parse(time.RFC3339, expires)
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &sess, nil
}

// Clear removes the stored session. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Token returns the stored access token. It satisfies postly.TokenSource.
func (s *Store) Token(ctx context.Context) (string, error) {
	sess, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	if !sess.ExpiresAt.IsZero() && !s.now().Before(sess.ExpiresAt) {
		return "", ErrExpired
	}
	return sess.Access, nil
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// It returns the zero time when there is no readable exp claim.
func TokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
