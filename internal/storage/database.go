package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// KV is the key-value persistence the tracker state is written to. Each
// namespace holds one serialized value.
type KV interface {
	Load(namespace string) (string, bool, error)
	Save(namespace, value string) error
}

// Database is a KV backed by a SQLite file.
type Database struct {
	db *sql.DB
}

func New(path string) (*Database, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// Load returns the value stored under namespace. ok is false when nothing
// has been saved there yet.
func (d *Database) Load(namespace string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM kv WHERE namespace = ?`, namespace).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", namespace, err)
	}
	return value, true, nil
}

// Save replaces the value stored under namespace.
func (d *Database) Save(namespace, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO kv (namespace, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(namespace) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		namespace,
		value,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", namespace, err)
	}
	return nil
}

// Namespaces lists the stored namespaces, most recently written first.
func (d *Database) Namespaces() ([]string, error) {
	rows, err := d.db.Query(`SELECT namespace FROM kv ORDER BY updated_at DESC, namespace ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
