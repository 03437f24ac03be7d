package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-tourism/pkg/tourism"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type pinger interface {
	Ping(context.Context) error
}

type beginner interface {
	Begin(context.Context) (pgx.Tx, error)
}

// Schema creates the documents table. Each row is one document of one
// collection; position keeps the order documents were written in.
const Schema = `
CREATE TABLE IF NOT EXISTS content_documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	position   INTEGER NOT NULL,
	data       JSONB NOT NULL DEFAULT '{}'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS content_documents_collection_position_idx
	ON content_documents (collection, position);`

// Store implements tourism.DocumentStore and tourism.DocumentWriter using PostgreSQL
type Store struct {
	db DBTX
}

// New creates a new PostgreSQL document store
func New(db DBTX) *Store {
	return &Store{db: db}
}

// NewWithPool creates a new PostgreSQL document store with connection pool
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// EnsureSchema creates the documents table if it does not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return s.handlePostgresError("ensure_schema", err)
	}
	return nil
}

// Ping verifies the database answers
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.db.(pinger); ok {
		return p.Ping(ctx)
	}
	var one int
	return s.db.QueryRow(ctx, "SELECT 1").Scan(&one)
}

// ReadCollection returns all documents of a collection in write order
func (s *Store) ReadCollection(ctx context.Context, name tourism.CollectionName) ([]tourism.Record, error) {
	query := `
		SELECT id, data
		FROM content_documents
		WHERE collection = $1
		ORDER BY position, id`

	rows, err := s.db.Query(ctx, query, string(name))
	if err != nil {
		return nil, s.handlePostgresError("read_collection", err)
	}
	defer rows.Close()

	var records []tourism.Record
	for rows.Next() {
		var (
			id     string
			fields map[string]any
		)
		if err := rows.Scan(&id, &fields); err != nil {
			return nil, s.handlePostgresError("read_collection", err)
		}
		records = append(records, tourism.Record{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, s.handlePostgresError("read_collection", err)
	}

	return records, nil
}

// WriteCollection replaces a collection inside one transaction when the
// underlying DBTX can begin one
func (s *Store) WriteCollection(ctx context.Context, name tourism.CollectionName, records []tourism.Record) error {
	b, ok := s.db.(beginner)
	if !ok {
		return s.writeCollection(ctx, s.db, name, records)
	}

	tx, err := b.Begin(ctx)
	if err != nil {
		return s.handlePostgresError("write_collection", err)
	}
	defer tx.Rollback(ctx)

	if err := s.writeCollection(ctx, tx, name, records); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return s.handlePostgresError("write_collection", err)
	}
	return nil
}

func (s *Store) writeCollection(ctx context.Context, db DBTX, name tourism.CollectionName, records []tourism.Record) error {
	if _, err := db.Exec(ctx, `DELETE FROM content_documents WHERE collection = $1`, string(name)); err != nil {
		return s.handlePostgresError("write_collection", err)
	}

	query := `
		INSERT INTO content_documents (collection, id, position, data, updated_at)
		VALUES ($1, $2, $3, $4, now())`

	for i, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("document %d in %s has no id", i, name)
		}
		fields := rec.Fields
		if fields == nil {
			fields = map[string]any{}
		}
		if _, err := db.Exec(ctx, query, string(name), rec.ID, i, fields); err != nil {
			return s.handlePostgresError("write_collection", err)
		}
	}
	return nil
}

// Error handling helper
func (s *Store) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("duplicate document id: %w", err)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - run EnsureSchema: %w", err)
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}
