// internal/store/sqlite.go
//
// Durable KV implementation over a SQLite table:
//
//	CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);
//
// One upserted row per key.

package store

import (
	"database/sql"
	"errors"
)

type sqliteKV struct{ db *sql.DB }

// NewSQLiteKV constructs a KV backed by the kv table in db.
func NewSQLiteKV(db *sql.DB) KV {
	return &sqliteKV{db: db}
}

func (s *sqliteKV) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key=?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *sqliteKV) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO kv(key, value) VALUES(?,?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value`, key, value)
	return err
}

func (s *sqliteKV) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key=?`, key)
	return err
}
