package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// KV is the persistence boundary: one logical record per key, always written
// and read as a whole.
type KV struct {
	db *sql.DB
}

func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

func (kv *KV) Put(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("state key is required")
	}
	_, err := kv.db.Exec(`
INSERT INTO kv_state(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("put state %q: %w", key, err)
	}
	return nil
}

func (kv *KV) Get(key string) (string, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, fmt.Errorf("state key is required")
	}
	var value string
	err := kv.db.QueryRow(`SELECT value FROM kv_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state %q: %w", key, err)
	}
	return value, true, nil
}

// Keys lists the stored keys starting with prefix, in key order.
func (kv *KV) Keys(prefix string) ([]string, error) {
	rows, err := kv.db.Query(`SELECT key FROM kv_state WHERE substr(key, 1, ?) = ? ORDER BY key`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("list state keys: %w", err)
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan state key: %w", err)
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

func (kv *KV) Delete(key string) error {
	if _, err := kv.db.Exec(`DELETE FROM kv_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

// LastWrite reports the most recent updated_at across all records. The bool
// is false for an empty profile.
func (kv *KV) LastWrite() (time.Time, bool, error) {
	var raw sql.NullString
	if err := kv.db.QueryRow(`SELECT MAX(updated_at) FROM kv_state`).Scan(&raw); err != nil {
		return time.Time{}, false, fmt.Errorf("read last write: %w", err)
	}
	if !raw.Valid || raw.String == "" {
		return time.Time{}, false, nil
	}
	// CURRENT_TIMESTAMP is UTC "YYYY-MM-DD HH:MM:SS"; the driver may also hand
	// back an RFC 3339 rendering.
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, raw.String, time.UTC); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("parse last write %q", raw.String)
}
