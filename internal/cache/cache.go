// Package cache stores fetched paper records in a local SQLite
// database so repeated crawls over the same bibliography skip the
// network for papers already seen.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fporter/citegraph/internal/s2"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite connection holding cached paper records, keyed
// by the wire form of the id they were requested under.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			request_id TEXT PRIMARY KEY,
			paper_id TEXT NOT NULL,
			title TEXT NOT NULL,
			url TEXT,
			refs_json TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get looks up a cached record by wire id. The second return is false
// on a cache miss.
func (s *Store) Get(id string) (*s2.Paper, bool, error) {
	row := s.db.QueryRow(
		`SELECT paper_id, title, url, refs_json FROM papers WHERE request_id = ?`, id)

	var p s2.Paper
	var refsJSON string
	err := row.Scan(&p.ID, &p.Title, &p.URL, &refsJSON)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(refsJSON), &p.References); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry %s: %w", id, err)
	}
	return &p, true, nil
}

// Put stores a record under the wire id it was requested as.
func (s *Store) Put(id string, p *s2.Paper) error {
	refsJSON, err := json.Marshal(p.References)
	if err != nil {
		return fmt.Errorf("encoding references for %s: %w", id, err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO papers (request_id, paper_id, title, url, refs_json)
		 VALUES (?, ?, ?, ?, ?)`,
		id, p.ID, p.Title, p.URL, string(refsJSON))
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", id, err)
	}
	return nil
}

// Fetcher is the batch-fetch dependency a Source wraps; internal/s2's
// Client satisfies it.
type Fetcher interface {
	FetchBatch(ctx context.Context, ids []s2.PaperID) ([]*s2.Paper, error)
}

// Source is a caching batch source: cached ids are answered locally and
// only the misses go to the wrapped fetcher. Records fetched through it
// are written back to the cache. Unresolvable ids are not cached, so a
// paper the upstream later learns about is not masked forever.
type Source struct {
	store   *Store
	fetcher Fetcher
}

// NewSource wraps a fetcher with the cache.
func NewSource(store *Store, fetcher Fetcher) *Source {
	return &Source{store: store, fetcher: fetcher}
}

// FetchBatch implements the batch-source contract: one entry per id in
// input order, nil for unresolvable ids, no network call when every id
// is cached (or the id list is empty).
func (s *Source) FetchBatch(ctx context.Context, ids []s2.PaperID) ([]*s2.Paper, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	records := make([]*s2.Paper, len(ids))
	var missing []s2.PaperID
	var missingAt []int
	for i, id := range ids {
		p, ok, err := s.store.Get(id.String())
		if err != nil {
			return nil, err
		}
		if ok {
			records[i] = p
			continue
		}
		missing = append(missing, id)
		missingAt = append(missingAt, i)
	}

	if len(missing) == 0 {
		return records, nil
	}

	fetched, err := s.fetcher.FetchBatch(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(fetched) != len(missing) {
		return nil, fmt.Errorf("batch source returned %d entries for %d ids", len(fetched), len(missing))
	}

	for i, p := range fetched {
		records[missingAt[i]] = p
		if p == nil {
			continue
		}
		if err := s.store.Put(missing[i].String(), p); err != nil {
			return nil, err
		}
	}
	return records, nil
}
