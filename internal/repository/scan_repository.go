package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
)

// ScanRepositoryImpl implements the ScanRepository interface
type ScanRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewScanRepository creates a new ScanRepository
func NewScanRepository(db *pgxpool.Pool) domain.ScanRepository {
	return &ScanRepositoryImpl{db: db}
}

// Save stores the summary of one pipeline run
func (r *ScanRepositoryImpl) Save(ctx context.Context, result *domain.ScanResult) error {
	query := `
		INSERT INTO scan_results (
			id, total_markets, filtered_markets, top_symbol, top_funding_rate, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := r.db.Exec(ctx, query,
		result.ID,
		result.TotalMarkets,
		result.FilteredMarkets,
		result.TopSymbol,
		result.TopFundingRate,
		result.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save scan result: %w", err)
	}

	return nil
}

// GetRecent retrieves the most recent scan results
func (r *ScanRepositoryImpl) GetRecent(ctx context.Context, limit int) ([]*domain.ScanResult, error) {
	query := `
		SELECT id, total_markets, filtered_markets, top_symbol, top_funding_rate, created_at
		FROM scan_results
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent scan results: %w", err)
	}
	defer rows.Close()

	var results []*domain.ScanResult
	for rows.Next() {
		result := &domain.ScanResult{}
		err := rows.Scan(
			&result.ID,
			&result.TotalMarkets,
			&result.FilteredMarkets,
			&result.TopSymbol,
			&result.TopFundingRate,
			&result.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scan results: %w", err)
	}

	return results, nil
}

// GetByID retrieves a scan result by its ID
func (r *ScanRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScanResult, error) {
	query := `
		SELECT id, total_markets, filtered_markets, top_symbol, top_funding_rate, created_at
		FROM scan_results
		WHERE id = $1
	`

	result := &domain.ScanResult{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.TotalMarkets,
		&result.FilteredMarkets,
		&result.TopSymbol,
		&result.TopFundingRate,
		&result.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get scan result: %w", err)
	}

	return result, nil
}
