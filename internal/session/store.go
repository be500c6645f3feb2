// Package session persists the client's three durable values (the
// credential token, the user identity and the dark-mode preference)
// and gates protected views on the presence of a valid session.
//
// The store is a tiny key-value table that survives restarts, standing
// in for what a browser would keep in per-origin storage.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	keyToken    = "token"
	keyUserID   = "userId"
	keyDarkMode = "darkMode"
)

type Store struct {
	db *sql.DB
}

// Open creates (or reuses) the session database at dbPath and runs
// pending migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create session db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping session database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session key %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write session key %s: %w", key, err)
	}
	return nil
}

func (s *Store) delete(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM session WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete session key %s: %w", key, err)
		}
	}
	return nil
}

// Token returns the stored credential token, empty when logged out.
// Implements api.TokenSource.
func (s *Store) Token() (string, error) {
	return s.get(keyToken)
}

func (s *Store) UserID() (string, error) {
	return s.get(keyUserID)
}

func (s *Store) SetCredentials(token, userID string) error {
	if err := s.set(keyToken, token); err != nil {
		return err
	}
	return s.set(keyUserID, userID)
}

// ClearCredentials removes the token and derived user identity; the
// dark-mode preference survives logout.
func (s *Store) ClearCredentials() error {
	return s.delete(keyToken, keyUserID)
}

func (s *Store) DarkMode() (bool, error) {
	v, err := s.get(keyDarkMode)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

func (s *Store) SetDarkMode(enabled bool) error {
	if enabled {
		return s.set(keyDarkMode, "true")
	}
	return s.set(keyDarkMode, "false")
}
