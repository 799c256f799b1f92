package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"greencart/internal/domain"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Driver, route and order records are imported from heterogeneous sources,
// so each row stores the original document as JSONB next to a generated id
// and an insertion sequence. Only the service-layer normalizer interprets
// the documents.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS drivers (
		id  TEXT PRIMARY KEY,
		seq BIGSERIAL,
		doc JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS routes (
		id  TEXT PRIMARY KEY,
		seq BIGSERIAL,
		doc JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id  TEXT PRIMARY KEY,
		seq BIGSERIAL,
		doc JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS simulation_results (
		id         TEXT PRIMARY KEY,
		input      JSONB NOT NULL,
		result     JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// scanDocs reads (id, doc) rows into raw records with the row id merged in.
func scanDocs(rows *sql.Rows) ([]domain.RawRecord, error) {
	defer rows.Close()

	var records []domain.RawRecord
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		rec := domain.RawRecord{}
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", id, err)
		}
		rec["id"] = id
		records = append(records, rec)
	}
	return records, rows.Err()
}

// insertDoc stores a document row, stripping any transient "id" key so the
// column stays authoritative.
func insertDoc(ctx context.Context, q Querier, table, id string, doc domain.RawRecord) error {
	payload := make(domain.RawRecord, len(doc))
	for k, v := range doc {
		if k == "id" {
			continue
		}
		payload[k] = v
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, table)
	_, err = q.ExecContext(ctx, query, id, data)
	return err
}
