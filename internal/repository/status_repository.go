package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
)

// StatusRepositoryImpl implements the StatusRepository interface
type StatusRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewStatusRepository creates a new StatusRepository
func NewStatusRepository(db *pgxpool.Pool) domain.StatusRepository {
	return &StatusRepositoryImpl{db: db}
}

// Save stores a new status check
func (r *StatusRepositoryImpl) Save(ctx context.Context, check *domain.StatusCheck) error {
	query := `
		INSERT INTO status_checks (id, client_name, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, check.ID, check.ClientName, check.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save status check: %w", err)
	}

	return nil
}

// List retrieves status checks, newest first, up to limit
func (r *StatusRepositoryImpl) List(ctx context.Context, limit int) ([]*domain.StatusCheck, error) {
	query := `
		SELECT id, client_name, created_at
		FROM status_checks
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query status checks: %w", err)
	}
	defer rows.Close()

	var checks []*domain.StatusCheck
	for rows.Next() {
		check := &domain.StatusCheck{}
		if err := rows.Scan(&check.ID, &check.ClientName, &check.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan status check: %w", err)
		}
		checks = append(checks, check)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status checks: %w", err)
	}

	return checks, nil
}
