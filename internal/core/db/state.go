package db

import (
	"database/sql"
)

// Application state slot keys
const (
	StateStarred   = "starred_sessions"
	StateShareLink = "share_link"
)

// GetState returns the value of an app_state slot and whether it was set
func (db *DB) GetState(key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetState writes an app_state slot
func (db *DB) SetState(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// AgendaStore adapts the app_state slots to the starred-set synchronizer's
// persistence contract
type AgendaStore struct {
	db *DB
}

// AgendaStore returns the starred-set persistence backend
func (db *DB) AgendaStore() *AgendaStore {
	return &AgendaStore{db: db}
}

// LoadStarred returns the stored starred payload. Unreadable or missing
// slots degrade to the empty payload; reads never fail here.
func (s *AgendaStore) LoadStarred() string {
	value, ok, err := s.db.GetState(StateStarred)
	if err != nil || !ok {
		return ""
	}
	return value
}

// SaveStarred writes the storage encoding of the starred set
func (s *AgendaStore) SaveStarred(payload string) error {
	return s.db.SetState(StateStarred, payload)
}

// SaveLink writes the current shareable URL
func (s *AgendaStore) SaveLink(url string) error {
	return s.db.SetState(StateShareLink, url)
}
