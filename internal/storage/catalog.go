package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nmiell/tinybasic/internal/engine"
)

// Catalog indexes saved program metadata in a SQLite database so FILES can
// answer without re-reading every program file. It is never the source of
// truth for program text -- TextStore is -- so a missing or corrupt
// catalog only degrades FILES, never SAVE/LOAD.
type Catalog struct {
	db *sql.DB
}

// Entry is one row of catalog metadata.
type Entry struct {
	Name     string
	Size     int64
	SavedAt  time.Time
	Checksum string
}

// OpenCatalog opens (creating if necessary) the catalog database at path.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	const schema = `
CREATE TABLE IF NOT EXISTS programs (
	name      TEXT PRIMARY KEY,
	size      INTEGER NOT NULL,
	saved_at  DATETIME NOT NULL,
	checksum  TEXT NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Catalog) Close() error { return c.db.Close() }

// Record upserts metadata for a just-saved program.
func (c *Catalog) Record(name string, listing []string) error {
	text := strings.Join(listing, "\n")
	sum := sha256.Sum256([]byte(text))
	const upsert = `
INSERT INTO programs (name, size, saved_at, checksum) VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET size=excluded.size, saved_at=excluded.saved_at, checksum=excluded.checksum`
	_, err := c.db.Exec(upsert, name, len(text), time.Now().UTC(), hex.EncodeToString(sum[:]))
	return err
}

// List returns every catalogued program, ordered by name.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query(`SELECT name, size, saved_at, checksum FROM programs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Size, &e.SavedAt, &e.Checksum); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Forget removes name's catalog row, if any.
func (c *Catalog) Forget(name string) error {
	_, err := c.db.Exec(`DELETE FROM programs WHERE name = ?`, name)
	return err
}

// Store combines TextStore (authoritative program text) with Catalog
// (FILES metadata), falling back to a directory scan when the catalog is
// unavailable, per spec.md §4.7.
type Store struct {
	Text    *TextStore
	Catalog *Catalog
}

// Save writes listing and records it in the catalog.
func (s *Store) Save(name string, listing []string) error {
	if err := s.Text.Save(name, listing); err != nil {
		return err
	}
	if s.Catalog != nil {
		_ = s.Catalog.Record(name, listing)
	}
	return nil
}

// Load reads back listing by name.
func (s *Store) Load(name string) ([]string, error) {
	return s.Text.Load(name)
}

// List returns catalog entries when available, otherwise a directory scan
// with sizes read straight off disk.
func (s *Store) List() ([]engine.FileInfo, error) {
	if s.Catalog != nil {
		entries, err := s.Catalog.List()
		if err == nil {
			out := make([]engine.FileInfo, len(entries))
			for i, e := range entries {
				out[i] = engine.FileInfo{Name: e.Name, Size: e.Size}
			}
			return out, nil
		}
	}
	names, err := s.Text.ScanNames()
	if err != nil {
		return nil, fmt.Errorf("files: %w", err)
	}
	out := make([]engine.FileInfo, 0, len(names))
	for _, name := range names {
		size, err := s.Text.Stat(name)
		if err != nil {
			continue
		}
		out = append(out, engine.FileInfo{Name: name, Size: size})
	}
	return out, nil
}
