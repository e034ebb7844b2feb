package statestore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/dockwork/pkg/layout"
)

// DB stores named layout presets in a SQLite database.
type DB struct {
	db   *sql.DB
	path string
}

// Entry describes one stored preset.
type Entry struct {
	Name      string
	UpdatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS layouts (
	name       TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Open opens (creating if needed) the preset database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create layouts table: %w", err)
	}
	return &DB{db: db, path: path}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Path returns the database file location.
func (d *DB) Path() string { return d.path }

// Save upserts a preset under name.
func (d *DB) Save(name string, s *layout.LayoutState) error {
	if name == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(`
		INSERT INTO layouts (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cannot save preset %q: %w", name, err)
	}
	return nil
}

// Load reads the preset stored under name, or ErrNotFound.
func (d *DB) Load(name string) (*layout.LayoutState, error) {
	var data []byte
	err := d.db.QueryRow(`SELECT data FROM layouts WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot load preset %q: %w", name, err)
	}
	return Decode(data)
}

// List returns all presets ordered by name.
func (d *DB) List() ([]Entry, error) {
	rows, err := d.db.Query(`SELECT name, updated_at FROM layouts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("cannot list presets: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var updatedAt sql.NullTime
		if err := rows.Scan(&e.Name, &updatedAt); err != nil {
			continue
		}
		if updatedAt.Valid {
			e.UpdatedAt = updatedAt.Time
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating presets: %w", err)
	}
	return entries, nil
}

// Delete removes a preset. Deleting a missing preset is not an error.
func (d *DB) Delete(name string) error {
	if _, err := d.db.Exec(`DELETE FROM layouts WHERE name = ?`, name); err != nil {
		return fmt.Errorf("cannot delete preset %q: %w", name, err)
	}
	return nil
}
