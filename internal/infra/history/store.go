// Package history persists answered exchanges in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"patriot-buddy/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS exchanges (
	id          TEXT PRIMARY KEY,
	utterance   TEXT NOT NULL,
	intent      TEXT NOT NULL,
	overridden  INTEGER NOT NULL,
	response    TEXT NOT NULL,
	duration_ns INTEGER NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS exchanges_created_at ON exchanges (created_at);
`

type Store struct {
	db *sql.DB
}

// Open creates the database file if needed. Use ":memory:" for a
// throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// One connection keeps ":memory:" a single database and serializes writes.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, ex domain.Exchange) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exchanges (id, utterance, intent, overridden, response, duration_ns, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ex.ID, ex.Utterance, string(ex.Intent), ex.Overridden, ex.Response,
		int64(ex.Duration), ex.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting exchange %s: %w", ex.ID, err)
	}
	return nil
}

// Recent returns up to limit exchanges, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.Exchange, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, utterance, intent, overridden, response, duration_ns, created_at
		 FROM exchanges ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Exchange, 0, limit)
	for rows.Next() {
		var (
			ex         domain.Exchange
			intent     string
			durationNS int64
			createdNS  int64
		)
		if err := rows.Scan(&ex.ID, &ex.Utterance, &intent, &ex.Overridden, &ex.Response, &durationNS, &createdNS); err != nil {
			return nil, fmt.Errorf("scanning exchange: %w", err)
		}
		ex.Intent = domain.Intent(intent)
		ex.Duration = time.Duration(durationNS)
		ex.CreatedAt = time.Unix(0, createdNS).UTC()
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exchanges: %w", err)
	}
	return out, nil
}
