// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
)

// Store persists records. Loading from an empty store returns the defaults.
type Store interface {
	Load() (*Record, error)
	Save(r *Record) error
	Close() error
}

// envPrefix is prepended to the upper-cased keys in env files.
const envPrefix = "PAPERFRAME_"

func envKey(key string) string {
	return envPrefix + strings.ToUpper(key)
}

// EnvStore keeps the record in a dotenv file.
type EnvStore struct {
	path string
}

// NewEnvStore returns a store backed by the dotenv file at path. The file is
// created on the first Save.
func NewEnvStore(path string) *EnvStore {
	return &EnvStore{path: path}
}

// Load reads the record. Variables without the PAPERFRAME_ prefix are
// ignored.
func (s *EnvStore) Load() (*Record, error) {
	env, err := godotenv.Read(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", s.path, err)
	}

	values := map[string]string{}
	for _, key := range Keys {
		if v, ok := env[envKey(key)]; ok {
			values[key] = v
		}
	}
	return FromValues(values)
}

// Save replaces the file contents with r.
func (s *EnvStore) Save(r *Record) error {
	env := map[string]string{}
	for key, v := range r.Values() {
		env[envKey(key)] = v
	}
	if err := godotenv.Write(env, s.path); err != nil {
		return fmt.Errorf("config: writing %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op.
func (s *EnvStore) Close() error {
	return nil
}

func (s *EnvStore) String() string {
	return "env:" + s.path
}

// SQLiteStore keeps the record as key/value rows in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("config: opening %s: %w", path, err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("config: creating table in %s: %w", path, err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Load reads all rows. An empty table yields the defaults.
func (s *SQLiteStore) Load() (*Record, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer rows.Close()

	values := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return FromValues(values)
}

// Save replaces all rows with r in one transaction.
func (s *SQLiteStore) Save(r *Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM settings`); err != nil {
		tx.Rollback()
		return fmt.Errorf("config: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO settings (key, value) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("config: %w", err)
	}
	defer stmt.Close()

	for key, v := range r.Values() {
		if _, err := stmt.Exec(key, v); err != nil {
			tx.Rollback()
			return fmt.Errorf("config: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) String() string {
	return "sqlite:" + s.path
}

var (
	_ Store = &EnvStore{}
	_ Store = &SQLiteStore{}
)
