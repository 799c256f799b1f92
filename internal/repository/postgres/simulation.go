package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"greencart/internal/domain"
)

// SimulationRepository is a PostgreSQL implementation of
// repository.SimulationRepository.
type SimulationRepository struct {
	q Querier
}

// NewSimulationRepository creates a new PostgreSQL simulation repository.
func NewSimulationRepository(db *sql.DB) *SimulationRepository {
	return &SimulationRepository{q: db}
}

// Save persists a history record.
func (r *SimulationRepository) Save(ctx context.Context, rec *domain.SimulationRecord) error {
	input, err := json.Marshal(rec.Config)
	if err != nil {
		return err
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return err
	}

	query := `INSERT INTO simulation_results (id, input, result, created_at) VALUES ($1, $2, $3, $4)`
	_, err = r.q.ExecContext(ctx, query, rec.ID, input, result, rec.CreatedAt)
	return err
}

// ListRecent retrieves up to limit history records, most recent first.
func (r *SimulationRepository) ListRecent(ctx context.Context, limit int) ([]domain.SimulationRecord, error) {
	query := `SELECT id, input, result, created_at FROM simulation_results ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SimulationRecord
	for rows.Next() {
		var rec domain.SimulationRecord
		var input, result []byte
		if err := rows.Scan(&rec.ID, &input, &result, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(input, &rec.Config); err != nil {
			return nil, fmt.Errorf("decode history input %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal(result, &rec.Result); err != nil {
			return nil, fmt.Errorf("decode history result %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
