package alerts

import (
	"database/sql"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists named rule books in a local SQLite file so a rule set built
// in one browser survives and can be shared across operators. The raw
// document is stored verbatim; repair happens on read via ParseBook.
type Store struct {
	db *sql.DB
}

// BookInfo is the listing row for a saved book.
type BookInfo struct {
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OpenStore opens (and migrates) the rule book database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS rule_books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		document TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts a book under the slug of its display name. The document is
// validated (and repaired) before it is written.
func (s *Store) Save(name string, document []byte) (*Book, error) {
	book, err := ParseBook(document)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`INSERT INTO rule_books (slug, name, document, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slug) DO UPDATE SET name=excluded.name, document=excluded.document, updated_at=CURRENT_TIMESTAMP`,
		Slugify(name), name, string(document))
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Get loads and repairs a book by name or slug.
func (s *Store) Get(name string) (*Book, error) {
	var document string
	err := s.db.QueryRow(`SELECT document FROM rule_books WHERE slug = ?`, Slugify(name)).Scan(&document)
	if err != nil {
		return nil, err
	}
	return ParseBook([]byte(document))
}

// List returns the saved books, most recently updated first.
func (s *Store) List() ([]BookInfo, error) {
	rows, err := s.db.Query(`SELECT slug, name, updated_at FROM rule_books ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []BookInfo{}
	for rows.Next() {
		var info BookInfo
		if err := rows.Scan(&info.Slug, &info.Name, &info.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, info)
	}
	return books, rows.Err()
}

// Delete removes a saved book. Deleting a missing book is not an error.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM rule_books WHERE slug = ?`, Slugify(name))
	return err
}

var (
	nonSlugChars = regexp.MustCompile("[^a-z0-9-]+")
	dashRuns     = regexp.MustCompile("-+")
)

// Slugify turns a display name into the URL-safe key books are stored under.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
