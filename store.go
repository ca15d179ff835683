package pubindex

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/eringen/pubindex/listing"
)

// Store wraps a SQLite database holding post records. It is one of the
// corpus sources the server can read from; `pubindex import` fills it.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the server read while an import writes; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    path TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    lang INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS posts_lang_date ON posts (lang, date DESC);
`)
	return err
}

const postColumns = `path, title, date, tags, summary, lang`

func scanPost(sc interface{ Scan(...any) error }) (listing.Post, error) {
	var path, title, date, tags, summary string
	var lang int
	if err := sc.Scan(&path, &title, &date, &tags, &summary, &lang); err != nil {
		return listing.Post{}, err
	}
	return listing.Post{
		Path:      path,
		Title:     title,
		Date:      date,
		Tags:      ParseTags(tags),
		Summary:   summary,
		Partition: listing.Partition(lang),
	}, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]listing.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []listing.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns every post ordered by date descending.
func (s *Store) ListPosts() ([]listing.Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC, path`)
}

// ListPartition returns the posts of one language ordered by date descending.
func (s *Store) ListPartition(p listing.Partition) ([]listing.Post, error) {
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE lang = ? ORDER BY date DESC, path`, int(p))
}

// LoadPosts implements Corpus.
func (s *Store) LoadPosts() ([]listing.Post, error) {
	return s.ListPosts()
}

// GetPost returns a single post by path.
func (s *Store) GetPost(path string) (listing.Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE path = ?`, path))
}

// SavePost upserts a post.
func (s *Store) SavePost(p listing.Post) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Path, p.Title, p.Date, JoinTagField(p.Tags), p.Summary, int(p.Partition))
	return err
}

// ImportPosts upserts posts in a single transaction. With replace set, posts
// not present in the input are removed.
func (s *Store) ImportPosts(posts []listing.Post, replace bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.Exec(`DELETE FROM posts`); err != nil {
			return err
		}
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO posts (` + postColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range posts {
		if _, err := stmt.Exec(p.Path, p.Title, p.Date, JoinTagField(p.Tags), p.Summary, int(p.Partition)); err != nil {
			return fmt.Errorf("import %s: %w", p.Path, err)
		}
	}
	return tx.Commit()
}

// DeletePost removes a post by path.
func (s *Store) DeletePost(path string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE path = ?`, path)
	return err
}

// JoinTagField encodes tags as ",a,b,". Tags keep their authored case;
// commas inside a tag are dropped.
func JoinTagField(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.ReplaceAll(t, ",", ""))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return ","
	}
	return "," + strings.Join(cleaned, ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return []string{}
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
