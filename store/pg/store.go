// Package pg keeps the terms of indexed messages in PostgreSQL so they can be
// searched later.
//
// Each message is stored as a document row keyed by a document id, with one
// row per term. Saving a document replaces all of its terms, so indexing the
// same message again leaves the store unchanged.
package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zostay/go-email-index/term"
)

// ErrNoDSN is returned by Open when it is given an empty connection string.
var ErrNoDSN = errors.New("no postgres connection string")

const (
	documentsTable = "email_index_documents"
	termsTable     = "email_index_terms"
)

// Record describes a stored document.
type Record struct {
	// DocID identifies the document. It is the key of the store.
	DocID string `json:"doc_id" yaml:"doc_id"`

	// MessageID is the Message-Id of the message, if it had one.
	MessageID string `json:"message_id,omitempty" yaml:"message_id,omitempty"`

	// Path is where the message was read from.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// When is the Date of the message. It is the zero time when unknown.
	When time.Time `json:"when,omitempty" yaml:"when,omitempty"`
}

// Store is a PostgreSQL term store.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database and creates the tables if they do not
// already exist.
func Open(ctx context.Context, dsn string) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrNoDSN
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS `+documentsTable+` (
  doc_id text PRIMARY KEY,
  message_id text NOT NULL DEFAULT '',
  path text NOT NULL DEFAULT '',
  when_ts timestamptz,
  indexed_at timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS `+termsTable+` (
  doc_id text NOT NULL REFERENCES `+documentsTable+` (doc_id) ON DELETE CASCADE,
  prefix text NOT NULL,
  value text NOT NULL,
  PRIMARY KEY (doc_id, prefix, value)
);
CREATE INDEX IF NOT EXISTS email_index_terms_lookup_idx ON `+termsTable+` (prefix, value);
`)
	return err
}

// Close releases the database connections.
func (s *Store) Close() {
	s.pool.Close()
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Save stores the document and replaces its terms with the given terms.
func (s *Store) Save(ctx context.Context, rec Record, terms []term.Term) error {
	if rec.DocID == "" {
		return errors.New("document id is required")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO `+documentsTable+` (doc_id, message_id, path, when_ts, indexed_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (doc_id) DO UPDATE
  SET message_id=EXCLUDED.message_id,
      path=EXCLUDED.path,
      when_ts=EXCLUDED.when_ts,
      indexed_at=EXCLUDED.indexed_at;
`, rec.DocID, rec.MessageID, rec.Path, nullTime(rec.When))
	if err != nil {
		return fmt.Errorf("saving document %s: %w", rec.DocID, err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM `+termsTable+` WHERE doc_id = $1`, rec.DocID)
	if err != nil {
		return fmt.Errorf("clearing terms of %s: %w", rec.DocID, err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{termsTable},
		[]string{"doc_id", "prefix", "value"},
		pgx.CopyFromSlice(len(terms), func(i int) ([]any, error) {
			return []any{rec.DocID, terms[i].Prefix, terms[i].Value}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("saving terms of %s: %w", rec.DocID, err)
	}

	return tx.Commit(ctx)
}

// Search returns the documents having the term, most recent first.
func (s *Store) Search(ctx context.Context, prefix, value string, limit int) ([]Record, error) {
	limitClause := ""
	if limit > 0 {
		limitClause = fmt.Sprintf("LIMIT %d", limit)
	}

	rows, err := s.pool.Query(ctx, `
SELECT d.doc_id, d.message_id, d.path, d.when_ts
FROM `+documentsTable+` d
JOIN `+termsTable+` t ON t.doc_id = d.doc_id
WHERE t.prefix = $1 AND t.value = $2
ORDER BY d.when_ts DESC NULLS LAST, d.doc_id
`+limitClause, prefix, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec  Record
			when *time.Time
		)
		if err := rows.Scan(&rec.DocID, &rec.MessageID, &rec.Path, &when); err != nil {
			return nil, err
		}
		if when != nil {
			rec.When = *when
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

// Terms returns the stored terms of the document, sorted.
func (s *Store) Terms(ctx context.Context, docID string) ([]term.Term, error) {
	rows, err := s.pool.Query(ctx, `
SELECT prefix, value FROM `+termsTable+`
WHERE doc_id = $1
ORDER BY prefix, value
`, docID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (term.Term, error) {
		var t term.Term
		err := row.Scan(&t.Prefix, &t.Value)
		return t, err
	})
}
